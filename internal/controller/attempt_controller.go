package controller

import (
	"betania_backend/internal/service"
	"betania_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	Attempts *service.AttemptService
}

func NewAttemptController(attempts *service.AttemptService) *AttemptController {
	return &AttemptController{Attempts: attempts}
}

// @Summary 开始考试作答
// @Description 已有未超时的进行中作答时返回该作答(200)，否则新建(201)
// @Tags 考试
// @Produce json
// @Security BearerAuth
// @Param id path int true "考试ID"
// @Success 201 {object} model.Attempt
// @Success 200 {object} model.Attempt
// @Failure 403 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/examenes/{id}/intentos [post]
func (c *AttemptController) CreateAttempt(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	examID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	attempt, created, err := c.Attempts.CreateAttempt(ctx.Request.Context(), examID, user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if created {
		util.Created(ctx, attempt)
		return
	}
	util.Success(ctx, attempt)
}

// @Summary 提交作答
// @Description 覆盖同一题的已有答案，交卷前可重复提交
// @Tags 考试
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "作答ID"
// @Param body body []AnswerInput true "作答"
// @Success 200 {object} service.SubmitOutcome
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/examenes/intentos/{id}/respuestas [post]
func (c *AttemptController) SubmitAnswers(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	attemptID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	choices, ok := bindAnswers(ctx)
	if !ok {
		return
	}

	out, err := c.Attempts.SubmitAnswers(ctx.Request.Context(), attemptID, user.UserID, choices)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// @Summary 交卷
// @Tags 考试
// @Produce json
// @Security BearerAuth
// @Param id path int true "作答ID"
// @Success 200 {object} service.FinalizeOutcome
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/examenes/intentos/{id}/finalizar [post]
func (c *AttemptController) FinalizeAttempt(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	attemptID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	out, err := c.Attempts.FinalizeAttempt(ctx.Request.Context(), attemptID, user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// @Summary 我的作答记录
// @Tags 考试
// @Produce json
// @Security BearerAuth
// @Param examen_id query int false "按考试筛选"
// @Success 200 {array} model.Attempt
// @Router /api/examenes/intentos [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var examID *uint
	if raw := ctx.Query("examen_id"); raw != "" {
		id, ok := util.ParseID(raw)
		if !ok {
			util.BadRequest(ctx, "examen_id inválido")
			return
		}
		examID = &id
	}

	attempts, err := c.Attempts.ListAttempts(ctx.Request.Context(), user.UserID, examID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}
