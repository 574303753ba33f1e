package service

import (
	"context"
	"errors"
	"testing"

	"betania_backend/internal/grading"
	"betania_backend/internal/model"
	"betania_backend/internal/repository"
	"betania_backend/internal/util"
	"betania_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: "file:" + t.Name() + "?mode=memory&cache=shared"}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestProgressFlowOnSQLite(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	exam := model.Exam{Title: "Quiz", Published: true, Questions: []model.Question{
		{Text: "2+2", Score: 1, Options: []model.Option{{Text: "4", IsCorrect: true}, {Text: "5"}}},
	}}
	if err := db.Create(&exam).Error; err != nil {
		t.Fatalf("seed exam: %v", err)
	}
	course := model.Course{Title: "Matemática", Published: true, Active: true, Modules: []model.Module{
		{Title: "M1", Order: intp(1), Lessons: []model.Lesson{
			{Title: "L1", Order: intp(1), Published: true, ExamID: &exam.ID},
		}},
		{Title: "M2", Order: intp(2), Lessons: []model.Lesson{
			{Title: "L2", Order: intp(1), Published: true},
			{Title: "L3", Order: intp(2), Published: true},
		}},
	}}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}

	tx := repository.NewTxManager(db)
	progress := NewProgressService(repository.NewCourseRepository(db, nil, 0), repository.NewProgressRepository(db), tx)
	quiz := NewQuizService(progress, repository.NewExamRepository(db))

	view, err := progress.GetCourseView(ctx, course.ID, 42)
	if err != nil {
		t.Fatalf("GetCourseView: %v", err)
	}
	if view.Modules[0].State != model.ModuleAvailable || view.Modules[1].State != model.ModuleLocked {
		t.Fatalf("modules = %+v", view.Modules)
	}
	if _, err := progress.GetCourseView(ctx, course.ID, 42); err != nil {
		t.Fatalf("second GetCourseView: %v", err)
	}
	var rows int64
	db.Model(&model.ModuleProgress{}).Where("usuario_id = ?", 42).Count(&rows)
	if rows != 2 {
		t.Fatalf("module rows = %d after two visits, want 2", rows)
	}

	q := exam.Questions[0]
	wrong := q.Options[1].ID
	out, err := quiz.GradeLessonQuiz(ctx, course.Modules[0].Lessons[0].ID, 42, []grading.Choice{{QuestionID: q.ID, OptionID: wrong}})
	if err != nil {
		t.Fatalf("failing grade: %v", err)
	}
	if out.Passed || out.LessonState != model.LessonAvailable {
		t.Fatalf("failing outcome = %+v", out)
	}

	out, err = quiz.GradeLessonQuiz(ctx, course.Modules[0].Lessons[0].ID, 42, []grading.Choice{{QuestionID: q.ID, OptionID: q.Options[0].ID}})
	if err != nil {
		t.Fatalf("passing grade: %v", err)
	}
	if !out.ModuleCompleted || out.NextModuleID == nil || *out.NextModuleID != course.Modules[1].ID {
		t.Fatalf("passing outcome = %+v", out)
	}

	mv, err := progress.GetModuleView(ctx, course.ID, course.Modules[1].ID, 42)
	if err != nil {
		t.Fatalf("GetModuleView M2: %v", err)
	}
	if len(mv.Lessons) != 1 || mv.Lessons[0].Title != "L2" {
		t.Fatalf("M2 lessons = %+v, want only L2 unlocked", mv.Lessons)
	}
}

func TestAttemptFlowOnSQLite(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	exam := model.Exam{Title: "Final", Published: true, MaxAttempts: intp(1), Questions: []model.Question{
		{Text: "a", Score: 2, Order: intp(1), Options: []model.Option{{Text: "ok", IsCorrect: true}, {Text: "x"}}},
		{Text: "b", Score: 3, Order: intp(2), Options: []model.Option{{Text: "ok", IsCorrect: true}, {Text: "x"}}},
		{Text: "c", Score: 5, Order: intp(3), Options: []model.Option{{Text: "ok", IsCorrect: true}, {Text: "x"}}},
	}}
	if err := db.Create(&exam).Error; err != nil {
		t.Fatalf("seed exam: %v", err)
	}
	svc := NewAttemptService(repository.NewExamRepository(db), repository.NewAttemptRepository(db), repository.NewTxManager(db))

	a, created, err := svc.CreateAttempt(ctx, exam.ID, 5)
	if err != nil || !created {
		t.Fatalf("CreateAttempt = %v, %v", created, err)
	}
	qs := exam.Questions
	choices := []grading.Choice{
		{QuestionID: qs[0].ID, OptionID: qs[0].Options[0].ID},
		{QuestionID: qs[1].ID, OptionID: qs[1].Options[1].ID},
		{QuestionID: qs[2].ID, OptionID: qs[2].Options[0].ID},
	}
	if _, err := svc.SubmitAnswers(ctx, a.ID, 5, choices); err != nil {
		t.Fatalf("SubmitAnswers: %v", err)
	}

	out, err := svc.FinalizeAttempt(ctx, a.ID, 5)
	if err != nil {
		t.Fatalf("FinalizeAttempt: %v", err)
	}
	if out.TotalScore != 7 || out.Percentage != 70 || !out.Passed {
		t.Fatalf("outcome = %+v", out)
	}
	if _, err := svc.FinalizeAttempt(ctx, a.ID, 5); !errors.Is(err, util.ErrInvalidState) {
		t.Fatalf("second finalize err = %v", err)
	}
	if _, _, err := svc.CreateAttempt(ctx, exam.ID, 5); !errors.Is(err, util.ErrForbidden) {
		t.Fatalf("capped attempt err = %v", err)
	}

	var graded []model.Answer
	db.Where("intento_id = ?", a.ID).Order("pregunta_id").Find(&graded)
	if len(graded) != 3 || !graded[0].Correct || graded[1].Correct || graded[2].Score != 5 {
		t.Fatalf("graded answers = %+v", graded)
	}
}
