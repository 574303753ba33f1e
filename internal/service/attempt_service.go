package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"betania_backend/internal/grading"
	"betania_backend/internal/model"
	"betania_backend/internal/util"
	"betania_backend/pkg/logger"
	"betania_backend/pkg/monitoring"
	"betania_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// AttemptService 独立考试作答：开考、提交答案、交卷
type AttemptService struct {
	Exams    ExamRepository
	Attempts AttemptRepository
	Tx       Transactor
	now      func() time.Time
}

func NewAttemptService(exams ExamRepository, attempts AttemptRepository, tx Transactor) *AttemptService {
	return &AttemptService{Exams: exams, Attempts: attempts, Tx: tx, now: time.Now}
}

type SubmitOutcome struct {
	AttemptID uint `json:"intento_id"`
	Saved     int  `json:"respuestas_guardadas"`
}

type FinalizeOutcome struct {
	AttemptID       uint    `json:"intento_id"`
	TotalScore      float64 `json:"puntaje_total"`
	PossibleScore   float64 `json:"puntaje_posible"`
	Percentage      float64 `json:"porcentaje"`
	Passed          bool    `json:"aprobado"`
	DurationSeconds int     `json:"duracion_seg"`
}

func (s *AttemptService) expired(exam *model.Exam, a *model.Attempt, at time.Time) bool {
	if !exam.HasTimeLimit() {
		return false
	}
	deadline := a.StartTime.Add(time.Duration(*exam.TimeLimitSeconds) * time.Second)
	return at.After(deadline)
}

// CreateAttempt 返回作答记录及是否新建。已达次数上限返回 ErrAttemptLimit；
// 存在未超时的进行中作答时直接返回该作答。
func (s *AttemptService) CreateAttempt(ctx context.Context, examID, userID uint) (*model.Attempt, bool, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AttemptService.CreateAttempt")
	defer span.End()
	span.SetAttributes(attribute.Int64("exam.id", int64(examID)))

	var (
		attempt *model.Attempt
		created bool
	)
	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		exam, err := s.Exams.FindByID(ctx, examID)
		if err != nil {
			return notFoundAs(err, util.ErrExamNotFound)
		}
		if !exam.Published {
			return util.ErrExamNotFound
		}
		// 计数与新建在同一把 (考试, 学员) 锁下完成
		if err := s.Attempts.LockSlot(ctx, examID, userID); err != nil {
			return fmt.Errorf("lock attempt slot: %w", err)
		}

		count, err := s.Attempts.CountByExamAndUser(ctx, examID, userID)
		if err != nil {
			return fmt.Errorf("count attempts: %w", err)
		}
		if exam.HasAttemptCap() && count >= int64(*exam.MaxAttempts) {
			return util.ErrAttemptLimit
		}

		now := s.now()
		current, err := s.Attempts.FindInProgress(ctx, examID, userID)
		switch {
		case err == nil:
			if !s.expired(exam, current, now) {
				attempt = current
				return nil
			}
		case !isNotFound(err):
			return fmt.Errorf("find attempt in progress: %w", err)
		}

		attempt = &model.Attempt{ExamID: examID, UserID: userID, StartTime: now}
		if err := s.Attempts.Create(ctx, attempt); err != nil {
			return fmt.Errorf("create attempt: %w", err)
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		logger.Log.Info("开始考试作答",
			zap.Uint("user_id", userID),
			zap.Uint("exam_id", examID),
			zap.Uint("attempt_id", attempt.ID))
	}
	return attempt, created, nil
}

// ownedOpenAttempt 事务内锁定作答行，校验归属且未交卷
func (s *AttemptService) ownedOpenAttempt(ctx context.Context, attemptID, userID uint) (*model.Attempt, error) {
	a, err := s.Attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, notFoundAs(err, util.ErrAttemptNotFound)
	}
	if a.UserID != userID {
		return nil, util.ErrAttemptNotFound
	}
	if a.Finalized() {
		return nil, util.ErrAttemptFinalized
	}
	return a, nil
}

// SubmitAnswers 覆盖同题已有答案，判分推迟到交卷
func (s *AttemptService) SubmitAnswers(ctx context.Context, attemptID, userID uint, choices []grading.Choice) (*SubmitOutcome, error) {
	if err := ValidateChoices(choices); err != nil {
		return nil, err
	}

	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		a, err := s.ownedOpenAttempt(ctx, attemptID, userID)
		if err != nil {
			return err
		}
		exam, err := s.Exams.FindByID(ctx, a.ExamID)
		if err != nil {
			return notFoundAs(err, util.ErrExamNotFound)
		}
		if s.expired(exam, a, s.now()) {
			return util.ErrTimeLimitExceeded
		}

		answers := make([]model.Answer, 0, len(choices))
		for _, c := range choices {
			answers = append(answers, model.Answer{QuestionID: c.QuestionID, OptionID: c.OptionID})
		}
		if err := s.Attempts.ReplaceAnswers(ctx, a.ID, answers); err != nil {
			return fmt.Errorf("replace answers: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SubmitOutcome{AttemptID: attemptID, Saved: len(choices)}, nil
}

// FinalizeAttempt 判分与结束作答在同一事务内完成，fecha_fin 只会被写入一次
func (s *AttemptService) FinalizeAttempt(ctx context.Context, attemptID, userID uint) (*FinalizeOutcome, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AttemptService.FinalizeAttempt")
	defer span.End()
	span.SetAttributes(attribute.Int64("attempt.id", int64(attemptID)))

	var out *FinalizeOutcome
	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		a, err := s.ownedOpenAttempt(ctx, attemptID, userID)
		if err != nil {
			return err
		}
		exam, err := s.Exams.FindWithQuestions(ctx, a.ExamID)
		if err != nil {
			return notFoundAs(err, util.ErrExamNotFound)
		}
		answers, err := s.Attempts.ListAnswers(ctx, a.ID)
		if err != nil {
			return fmt.Errorf("list answers: %w", err)
		}

		score := grading.GradeAnswers(grading.NewKey(exam.Questions), answers)
		if err := s.Attempts.SaveAnswerGrades(ctx, answers); err != nil {
			return fmt.Errorf("save answer grades: %w", err)
		}

		end := s.now()
		duration := int(math.Max(0, math.Round(end.Sub(a.StartTime).Seconds())))
		a.EndTime = &end
		a.TotalScore = &score.Achieved
		a.Passed = &score.Passed
		a.DurationSeconds = &duration

		ok, err := s.Attempts.MarkFinalized(ctx, a)
		if err != nil {
			return fmt.Errorf("finalize attempt: %w", err)
		}
		if !ok {
			return util.ErrAttemptFinalized
		}

		out = &FinalizeOutcome{
			AttemptID:       a.ID,
			TotalScore:      score.Achieved,
			PossibleScore:   score.Possible,
			Percentage:      score.Percentage,
			Passed:          score.Passed,
			DurationSeconds: duration,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.AttemptFinalized.WithLabelValues(monitoring.OutcomeLabel(out.Passed)).Inc()
	logger.Log.Info("考试交卷",
		zap.Uint("user_id", userID),
		zap.Uint("attempt_id", attemptID),
		zap.Float64("score", out.TotalScore),
		zap.Bool("passed", out.Passed))
	return out, nil
}

func (s *AttemptService) ListAttempts(ctx context.Context, userID uint, examID *uint) ([]model.Attempt, error) {
	attempts, err := s.Attempts.ListByUser(ctx, userID, examID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, nil
}
