package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"betania_backend/internal/grading"
	"betania_backend/internal/model"
	"betania_backend/internal/util"
)

// passing 返回测验 examID 的全对答案
func passing(examID uint) []grading.Choice {
	q1, q2 := examID*10+1, examID*10+2
	return []grading.Choice{
		{QuestionID: q1, OptionID: rightAnswer(q1)},
		{QuestionID: q2, OptionID: rightAnswer(q2)},
	}
}

func failing(examID uint) []grading.Choice {
	q1, q2 := examID*10+1, examID*10+2
	return []grading.Choice{
		{QuestionID: q1, OptionID: wrongAnswer(q1)},
		{QuestionID: q2, OptionID: wrongAnswer(q2)},
	}
}

func initCourse(t *testing.T, f *fixture) {
	t.Helper()
	if _, err := f.progress.GetCourseView(context.Background(), 1, learner); err != nil {
		t.Fatalf("GetCourseView: %v", err)
	}
}

func TestGradeLessonQuizPassUnlocksOnlyNextLesson(t *testing.T) {
	f := newFixture()
	f.addStandardCourse()
	initCourse(t, f)

	out, err := f.quiz.GradeLessonQuiz(context.Background(), 101, learner, passing(1))
	if err != nil {
		t.Fatalf("GradeLessonQuiz: %v", err)
	}
	if !out.Passed || out.Percentage != 100 || out.Correct != 2 || out.Incorrect != 0 || out.Total != 2 {
		t.Fatalf("outcome = %+v", out)
	}
	if out.LessonState != model.LessonCompleted {
		t.Fatalf("lesson state = %s", out.LessonState)
	}
	if out.NextLessonID == nil || *out.NextLessonID != 102 {
		t.Fatalf("next lesson = %v, want 102", out.NextLessonID)
	}

	l1, _ := f.lessonRow(learner, 101)
	l2, _ := f.lessonRow(learner, 102)
	l3, _ := f.lessonRow(learner, 103)
	if l1.State != model.LessonCompleted || l1.CompletedAt == nil || !l1.Passed {
		t.Fatalf("L1 = %+v", l1)
	}
	if l2.State != model.LessonAvailable {
		t.Fatalf("L2 = %s, want available", l2.State)
	}
	if l3.State != model.LessonLocked {
		t.Fatalf("L3 = %s, want locked", l3.State)
	}
}

func TestGradeLessonQuizFailKeepsLessonReachable(t *testing.T) {
	f := newFixture()
	f.addStandardCourse()
	initCourse(t, f)

	out, err := f.quiz.GradeLessonQuiz(context.Background(), 102, learner, failing(2))
	if err != nil {
		t.Fatalf("GradeLessonQuiz: %v", err)
	}
	if out.Passed || out.Percentage != 0 || out.NextLessonID != nil {
		t.Fatalf("outcome = %+v", out)
	}
	row, _ := f.lessonRow(learner, 102)
	if row.State != model.LessonAvailable || row.Passed || row.LastScore == nil || *row.LastScore != 0 {
		t.Fatalf("L2 = %+v, want available with score 0", row)
	}
	if row3, _ := f.lessonRow(learner, 103); row3.State != model.LessonLocked {
		t.Fatalf("failing L2 touched L3: %s", row3.State)
	}
}

func TestGradeLessonQuizFailAfterPassKeepsCompleted(t *testing.T) {
	f := newFixture()
	f.addStandardCourse()
	initCourse(t, f)
	ctx := context.Background()

	if _, err := f.quiz.GradeLessonQuiz(ctx, 101, learner, passing(1)); err != nil {
		t.Fatalf("pass: %v", err)
	}
	half := passing(1)[:1]
	out, err := f.quiz.GradeLessonQuiz(ctx, 101, learner, half)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if out.Percentage != 50 || out.Passed {
		t.Fatalf("outcome = %+v, want 50%% failed", out)
	}
	row, _ := f.lessonRow(learner, 101)
	if row.State != model.LessonCompleted || row.Passed || *row.LastScore != 50 {
		t.Fatalf("L1 = %+v, want completed, passed=false, score 50", row)
	}
}

func TestGradeLessonQuizRejections(t *testing.T) {
	f := newFixture()
	f.addStandardCourse()
	ctx := context.Background()

	if _, err := f.quiz.GradeLessonQuiz(ctx, 101, learner, passing(1)); !errors.Is(err, util.ErrForbidden) {
		t.Fatalf("before course visit err = %v, want forbidden", err)
	}
	initCourse(t, f)

	tests := []struct {
		name    string
		lesson  uint
		choices []grading.Choice
		kind    error
	}{
		{"empty", 101, nil, util.ErrInvalidState},
		{"zero option", 101, []grading.Choice{{QuestionID: 11}}, util.ErrInvalidState},
		{"duplicate question", 101, []grading.Choice{{QuestionID: 11, OptionID: 111}, {QuestionID: 11, OptionID: 112}}, util.ErrInvalidState},
		{"no quiz", 201, passing(1), util.ErrNotFound},
		{"unknown lesson", 999, passing(1), util.ErrNotFound},
		{"unpublished lesson", 104, passing(4), util.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.quiz.GradeLessonQuiz(ctx, tt.lesson, learner, tt.choices)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("err = %v, want %v", err, tt.kind)
			}
		})
	}
}

func TestGradeLessonQuizIgnoresForeignQuestions(t *testing.T) {
	f := newFixture()
	f.addStandardCourse()
	initCourse(t, f)

	choices := append(passing(1), grading.Choice{QuestionID: 21, OptionID: rightAnswer(21)})
	out, err := f.quiz.GradeLessonQuiz(context.Background(), 101, learner, choices)
	if err != nil {
		t.Fatalf("GradeLessonQuiz: %v", err)
	}
	if out.Total != 2 || out.Correct != 2 || len(out.Details) != 2 {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestGetLessonQuizHidesCorrectOptions(t *testing.T) {
	f := newFixture()
	f.addStandardCourse()
	initCourse(t, f)

	view, err := f.quiz.GetLessonQuiz(context.Background(), 101, learner)
	if err != nil {
		t.Fatalf("GetLessonQuiz: %v", err)
	}
	if len(view.Questions) != 2 || len(view.Questions[0].Options) != 2 {
		t.Fatalf("view = %+v", view)
	}
	raw, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	for _, leak := range []string{"es_correcta", "correct", "IsCorrect"} {
		if strings.Contains(body, leak) {
			t.Fatalf("quiz payload leaks %q: %s", leak, body)
		}
	}
}

func TestCompleteLessonRules(t *testing.T) {
	f := newFixture()
	f.addStandardCourse()
	initCourse(t, f)
	ctx := context.Background()

	if _, err := f.quiz.CompleteLesson(ctx, 101, learner); !errors.Is(err, util.ErrInvalidState) {
		t.Fatalf("lesson with quiz err = %v, want invalid state", err)
	}
	if _, err := f.quiz.CompleteLesson(ctx, 201, learner); !errors.Is(err, util.ErrForbidden) {
		t.Fatalf("lesson in locked module err = %v, want forbidden", err)
	}
}

func TestCompleteLessonAdvancesThroughTiedOrders(t *testing.T) {
	f := newFixture()
	c := &model.Course{
		BaseModel: model.BaseModel{ID: 3}, Published: true, Active: true,
		Modules: []model.Module{
			{
				BaseModel: model.BaseModel{ID: 40}, CourseID: 3, Order: intp(1),
				Lessons: []model.Lesson{
					lesson(404, 40, nil, true, nil),
					lesson(402, 40, intp(1), true, nil),
					lesson(403, 40, nil, true, nil),
					lesson(401, 40, intp(1), true, nil),
				},
			},
			{
				BaseModel: model.BaseModel{ID: 41}, CourseID: 3, Order: intp(2),
				Lessons: []model.Lesson{lesson(411, 41, intp(1), true, nil)},
			},
		},
	}
	f.store.courses[c.ID] = c
	ctx := context.Background()
	if err := f.progress.InitializeIfAbsent(ctx, c, learner); err != nil {
		t.Fatalf("InitializeIfAbsent: %v", err)
	}

	steps := []struct {
		lesson uint
		next   uint
	}{
		{lesson: 401, next: 402},
		{lesson: 402, next: 403},
		{lesson: 403, next: 404},
	}
	for _, st := range steps {
		out, err := f.quiz.CompleteLesson(ctx, st.lesson, learner)
		if err != nil {
			t.Fatalf("complete %d: %v", st.lesson, err)
		}
		if out.NextLessonID == nil || *out.NextLessonID != st.next {
			t.Fatalf("complete %d next = %v, want %d", st.lesson, out.NextLessonID, st.next)
		}
		if out.ModuleCompleted {
			t.Fatalf("complete %d finished module early", st.lesson)
		}
	}

	out, err := f.quiz.CompleteLesson(ctx, 404, learner)
	if err != nil {
		t.Fatalf("complete 404: %v", err)
	}
	if out.NextLessonID != nil || !out.ModuleCompleted || out.NextModuleID == nil || *out.NextModuleID != 41 {
		t.Fatalf("last lesson outcome = %+v, want module 40 done and 41 unlocked", out)
	}
	if st, _ := f.moduleState(learner, 41); st != model.ModuleAvailable {
		t.Fatalf("module 41 = %s, want available", st)
	}
}
