package service

import (
	"context"
	"errors"
	"sort"

	"betania_backend/internal/model"

	"gorm.io/gorm"
)

// Transactor 在同一事务中执行 fn，fn 内的仓储调用通过 ctx 复用事务
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CourseRepository interface {
	ListPublished(ctx context.Context) ([]model.Course, error)
	FindPublishedTree(ctx context.Context, id uint) (*model.Course, error)
	FindLesson(ctx context.Context, id uint) (*model.Lesson, error)
	InvalidateTree(ctx context.Context, id uint) error
}

type ExamRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Exam, error)
	FindWithQuestions(ctx context.Context, id uint) (*model.Exam, error)
}

// ProgressRepository 的 Find 方法在事务内调用时加行锁，Create 方法遇唯一键冲突跳过
type ProgressRepository interface {
	HasModuleProgress(ctx context.Context, userID, courseID uint) (bool, error)
	CreateModuleProgress(ctx context.Context, rows []model.ModuleProgress) error
	CreateLessonProgress(ctx context.Context, rows []model.LessonProgress) error
	ListModuleProgress(ctx context.Context, userID, courseID uint) ([]model.ModuleProgress, error)
	FindModuleProgress(ctx context.Context, userID, courseID, moduleID uint) (*model.ModuleProgress, error)
	ListLessonProgress(ctx context.Context, userID, courseID, moduleID uint) ([]model.LessonProgress, error)
	FindLessonProgress(ctx context.Context, userID, courseID, moduleID, lessonID uint) (*model.LessonProgress, error)
	SaveModuleProgress(ctx context.Context, row *model.ModuleProgress) error
	SaveLessonProgress(ctx context.Context, row *model.LessonProgress) error
	UserStats(ctx context.Context, userID uint) (*model.ProgressCounts, error)
}

type AttemptRepository interface {
	Create(ctx context.Context, a *model.Attempt) error
	LockSlot(ctx context.Context, examID, userID uint) error
	CountByExamAndUser(ctx context.Context, examID, userID uint) (int64, error)
	FindInProgress(ctx context.Context, examID, userID uint) (*model.Attempt, error)
	FindByID(ctx context.Context, id uint) (*model.Attempt, error)
	ListByUser(ctx context.Context, userID uint, examID *uint) ([]model.Attempt, error)
	ReplaceAnswers(ctx context.Context, attemptID uint, answers []model.Answer) error
	ListAnswers(ctx context.Context, attemptID uint) ([]model.Answer, error)
	SaveAnswerGrades(ctx context.Context, answers []model.Answer) error
	MarkFinalized(ctx context.Context, a *model.Attempt) (bool, error)
}

// notFoundAs 将记录不存在替换为业务错误，其余错误原样返回
func notFoundAs(err error, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func sortedModules(modules []model.Module) []model.Module {
	out := append([]model.Module(nil), modules...)
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := model.OrderKey(out[i].Order), model.OrderKey(out[j].Order)
		if oi != oj {
			return oi < oj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func sortedLessons(lessons []model.Lesson) []model.Lesson {
	out := append([]model.Lesson(nil), lessons...)
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := model.OrderKey(out[i].Order), model.OrderKey(out[j].Order)
		if oi != oj {
			return oi < oj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func publishedLessons(lessons []model.Lesson) []model.Lesson {
	var out []model.Lesson
	for _, l := range sortedLessons(lessons) {
		if l.Published {
			out = append(out, l)
		}
	}
	return out
}
