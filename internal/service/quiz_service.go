package service

import (
	"context"
	"fmt"

	"betania_backend/internal/grading"
	"betania_backend/internal/model"
	"betania_backend/internal/util"
	"betania_backend/pkg/logger"
	"betania_backend/pkg/monitoring"
	"betania_backend/pkg/tracing"

	"go.uber.org/zap"
)

// QuizService 课时内嵌测验：取题、判分并推进课时进度
type QuizService struct {
	Progress *ProgressService
	Exams    ExamRepository
}

func NewQuizService(progress *ProgressService, exams ExamRepository) *QuizService {
	return &QuizService{Progress: progress, Exams: exams}
}

type QuizOption struct {
	ID   uint   `json:"id"`
	Text string `json:"texto"`
}

type QuizQuestion struct {
	ID      uint         `json:"id"`
	Text    string       `json:"enunciado"`
	Order   *int         `json:"orden"`
	Score   float64      `json:"puntaje"`
	Options []QuizOption `json:"alternativas"`
}

// QuizView 不包含正确答案
type QuizView struct {
	ExamID           uint           `json:"examen_id"`
	LessonID         uint           `json:"leccion_id"`
	Title            string         `json:"titulo"`
	TimeLimitSeconds *int           `json:"tiempo_limite_seg"`
	Questions        []QuizQuestion `json:"preguntas"`
}

type QuizOutcome struct {
	LessonID        uint                   `json:"leccion_id"`
	Total           int                    `json:"total_preguntas"`
	Correct         int                    `json:"correctas"`
	Incorrect       int                    `json:"incorrectas"`
	Percentage      int                    `json:"porcentaje"`
	Passed          bool                   `json:"aprobado"`
	Details         []grading.ChoiceResult `json:"detalle"`
	LessonState     model.LessonState      `json:"estado_leccion"`
	NextLessonID    *uint                  `json:"siguiente_leccion_id"`
	ModuleCompleted bool                   `json:"modulo_completado"`
	NextModuleID    *uint                  `json:"siguiente_modulo_id"`
}

type CompletionOutcome struct {
	LessonID        uint              `json:"leccion_id"`
	LessonState     model.LessonState `json:"estado_leccion"`
	NextLessonID    *uint             `json:"siguiente_leccion_id"`
	ModuleCompleted bool              `json:"modulo_completado"`
	NextModuleID    *uint             `json:"siguiente_modulo_id"`
}

// ValidateChoices 空提交、缺少 ID 或同一题重复作答均视为非法
func ValidateChoices(choices []grading.Choice) error {
	if len(choices) == 0 {
		return util.ErrAnswersRequired
	}
	for _, c := range choices {
		if c.QuestionID == 0 || c.OptionID == 0 {
			return util.ErrInvalidAnswerEntry
		}
	}
	if id, dup := grading.FirstDuplicate(choices); dup {
		return util.InvalidStateError("Respuestas duplicadas para la pregunta %d", id)
	}
	return nil
}

func (s *QuizService) loadQuiz(ctx context.Context, lesson *model.Lesson) (*model.Exam, error) {
	if lesson.ExamID == nil {
		return nil, util.ErrQuizNotFound
	}
	exam, err := s.Exams.FindWithQuestions(ctx, *lesson.ExamID)
	if err != nil {
		return nil, notFoundAs(err, util.ErrQuizNotFound)
	}
	if len(exam.Questions) == 0 {
		return nil, util.ErrQuizNotFound
	}
	return exam, nil
}

func (s *QuizService) GetLessonQuiz(ctx context.Context, lessonID, userID uint) (*QuizView, error) {
	lesson, course, module, err := s.Progress.ResolveLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Progress.RequireModuleReachable(ctx, course.ID, module.ID, userID); err != nil {
		return nil, err
	}
	exam, err := s.loadQuiz(ctx, lesson)
	if err != nil {
		return nil, err
	}

	view := &QuizView{
		ExamID:           exam.ID,
		LessonID:         lesson.ID,
		Title:            exam.Title,
		TimeLimitSeconds: exam.TimeLimitSeconds,
		Questions:        make([]QuizQuestion, 0, len(exam.Questions)),
	}
	for _, q := range exam.Questions {
		qq := QuizQuestion{ID: q.ID, Text: q.Text, Order: q.Order, Score: q.Score, Options: make([]QuizOption, 0, len(q.Options))}
		for _, o := range q.Options {
			qq.Options = append(qq.Options, QuizOption{ID: o.ID, Text: o.Text})
		}
		view.Questions = append(view.Questions, qq)
	}
	return view, nil
}

// GradeLessonQuiz 判分后更新课时进度：通过则完成并解锁后续，未通过时锁定的课时转为可用
func (s *QuizService) GradeLessonQuiz(ctx context.Context, lessonID, userID uint, choices []grading.Choice) (*QuizOutcome, error) {
	ctx, span := tracing.Tracer.Start(ctx, "QuizService.GradeLessonQuiz")
	defer span.End()

	if err := ValidateChoices(choices); err != nil {
		return nil, err
	}
	lesson, course, module, err := s.Progress.ResolveLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	exam, err := s.loadQuiz(ctx, lesson)
	if err != nil {
		return nil, err
	}

	result := grading.GradeQuiz(grading.NewKey(exam.Questions), choices)
	out := &QuizOutcome{
		LessonID:   lesson.ID,
		Total:      result.Total,
		Correct:    result.Correct,
		Incorrect:  result.Incorrect,
		Percentage: result.Percentage,
		Passed:     result.Passed,
		Details:    result.Details,
	}

	err = s.Progress.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.Progress.RequireModuleReachable(ctx, course.ID, module.ID, userID); err != nil {
			return err
		}
		lp, err := s.Progress.EnsureLessonProgress(ctx, course.ID, module.ID, lesson.ID, userID)
		if err != nil {
			return err
		}

		score := float64(result.Percentage)
		lp.LastScore = &score
		lp.Passed = result.Passed
		if result.Passed {
			now := s.Progress.now()
			lp.State = model.LessonCompleted
			lp.CompletedAt = &now
		} else if lp.State == model.LessonLocked {
			lp.State = model.LessonAvailable
		}
		if err := s.Progress.Progress.SaveLessonProgress(ctx, lp); err != nil {
			return fmt.Errorf("save lesson progress: %w", err)
		}
		out.LessonState = lp.State

		if !result.Passed {
			return nil
		}
		adv, err := s.Progress.AdvanceAfterPass(ctx, course, module, lesson, userID)
		if err != nil {
			return err
		}
		out.NextLessonID = adv.NextLessonID
		out.ModuleCompleted = adv.ModuleCompleted
		out.NextModuleID = adv.NextModuleID
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.QuizGraded.WithLabelValues(monitoring.OutcomeLabel(result.Passed)).Inc()
	logger.Log.Info("课时测验判分",
		zap.Uint("user_id", userID),
		zap.Uint("lesson_id", lesson.ID),
		zap.Int("percentage", result.Percentage),
		zap.Bool("passed", result.Passed))
	return out, nil
}

// CompleteLesson 无测验课时直接标记完成
func (s *QuizService) CompleteLesson(ctx context.Context, lessonID, userID uint) (*CompletionOutcome, error) {
	lesson, course, module, err := s.Progress.ResolveLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.ExamID != nil {
		return nil, util.ErrLessonHasQuiz
	}

	out := &CompletionOutcome{LessonID: lesson.ID}
	err = s.Progress.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.Progress.RequireModuleReachable(ctx, course.ID, module.ID, userID); err != nil {
			return err
		}
		lp, err := s.Progress.EnsureLessonProgress(ctx, course.ID, module.ID, lesson.ID, userID)
		if err != nil {
			return err
		}
		if lp.State == model.LessonLocked {
			return util.ErrLessonLocked
		}
		if lp.State != model.LessonCompleted {
			now := s.Progress.now()
			lp.State = model.LessonCompleted
			lp.Passed = true
			lp.CompletedAt = &now
			if err := s.Progress.Progress.SaveLessonProgress(ctx, lp); err != nil {
				return fmt.Errorf("save lesson progress: %w", err)
			}
		}
		out.LessonState = lp.State

		adv, err := s.Progress.AdvanceAfterPass(ctx, course, module, lesson, userID)
		if err != nil {
			return err
		}
		out.NextLessonID = adv.NextLessonID
		out.ModuleCompleted = adv.ModuleCompleted
		out.NextModuleID = adv.NextModuleID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
