package controller

import (
	"bytes"
	"encoding/json"

	"betania_backend/internal/grading"
	"betania_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AnswerInput 单题作答
type AnswerInput struct {
	QuestionID uint `json:"pregunta_id" example:"12"`
	OptionID   uint `json:"alternativa_id" example:"48"`
}

// AnswersRequest POST /prueba/responder 请求体
type AnswersRequest struct {
	Answers []AnswerInput `json:"respuestas"`
}

func toChoices(in []AnswerInput) []grading.Choice {
	out := make([]grading.Choice, 0, len(in))
	for _, a := range in {
		out = append(out, grading.Choice{QuestionID: a.QuestionID, OptionID: a.OptionID})
	}
	return out
}

// bindAnswers 同时接受数组和 {respuestas:[...]} 两种请求体
func bindAnswers(ctx *gin.Context) ([]grading.Choice, bool) {
	raw, err := ctx.GetRawData()
	if err != nil {
		util.BadRequest(ctx, util.ErrAnswersRequired.Error())
		return nil, false
	}
	raw = bytes.TrimSpace(raw)

	var answers []AnswerInput
	if len(raw) > 0 && raw[0] == '[' {
		err = json.Unmarshal(raw, &answers)
	} else {
		var req AnswersRequest
		err = json.Unmarshal(raw, &req)
		answers = req.Answers
	}
	if err != nil || len(answers) == 0 {
		util.BadRequest(ctx, util.ErrAnswersRequired.Error())
		return nil, false
	}
	return toChoices(answers), true
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, ok := util.ParseID(ctx.Param(name))
	if !ok {
		util.BadRequest(ctx, "ID inválido")
		return 0, false
	}
	return id, true
}

func currentUser(ctx *gin.Context) (*util.Claims, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	return user, true
}
