package controller

import (
	"betania_backend/internal/service"
	"betania_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	Progress *service.ProgressService
	Quiz     *service.QuizService
}

func NewLessonController(progress *service.ProgressService, quiz *service.QuizService) *LessonController {
	return &LessonController{Progress: progress, Quiz: quiz}
}

// @Summary 课时详情
// @Tags 课时
// @Produce json
// @Security BearerAuth
// @Param id path int true "课时ID"
// @Success 200 {object} service.LessonView
// @Failure 403 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/cursos/leccion/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	view, err := c.Progress.GetLessonView(ctx.Request.Context(), lessonID, user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 获取课时测验
// @Description 返回题目和选项，不包含正确答案
// @Tags 课时
// @Produce json
// @Security BearerAuth
// @Param id path int true "课时ID"
// @Success 200 {object} service.QuizView
// @Failure 404 {object} util.ErrorResponse
// @Router /api/cursos/leccion/{id}/prueba [get]
func (c *LessonController) GetQuiz(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	quiz, err := c.Quiz.GetLessonQuiz(ctx.Request.Context(), lessonID, user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// @Summary 提交课时测验
// @Tags 课时
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "课时ID"
// @Param body body AnswersRequest true "作答"
// @Success 200 {object} service.QuizOutcome
// @Failure 400 {object} util.ErrorResponse
// @Failure 403 {object} util.ErrorResponse
// @Router /api/cursos/leccion/{id}/prueba/responder [post]
func (c *LessonController) SubmitQuiz(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req AnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || len(req.Answers) == 0 {
		util.BadRequest(ctx, util.ErrAnswersRequired.Error())
		return
	}

	out, err := c.Quiz.GradeLessonQuiz(ctx.Request.Context(), lessonID, user.UserID, toChoices(req.Answers))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// @Summary 完成无测验课时
// @Tags 课时
// @Produce json
// @Security BearerAuth
// @Param id path int true "课时ID"
// @Success 200 {object} service.CompletionOutcome
// @Failure 400 {object} util.ErrorResponse
// @Failure 403 {object} util.ErrorResponse
// @Router /api/cursos/leccion/{id}/completar [post]
func (c *LessonController) CompleteLesson(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	out, err := c.Quiz.CompleteLesson(ctx.Request.Context(), lessonID, user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, out)
}
