package repository

import (
	"context"

	"betania_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(ctx context.Context, a *model.Attempt) error {
	return conn(ctx, r.DB).Create(a).Error
}

func (r *AttemptRepository) CountByExamAndUser(ctx context.Context, examID, userID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.DB).Model(&model.Attempt{}).
		Where("examen_id = ? AND usuario_id = ?", examID, userID).
		Count(&count).Error
	return count, err
}

// LockSlot 确保 (考试, 学员) 占位行存在并在事务内加行锁，不同学员互不阻塞
func (r *AttemptRepository) LockSlot(ctx context.Context, examID, userID uint) error {
	slot := model.AttemptSlot{ExamID: examID, UserID: userID}
	if err := conn(ctx, r.DB).Clauses(clause.OnConflict{DoNothing: true}).Create(&slot).Error; err != nil {
		return err
	}
	var locked model.AttemptSlot
	return lockForUpdate(ctx, conn(ctx, r.DB)).
		Where("examen_id = ? AND usuario_id = ?", examID, userID).
		First(&locked).Error
}

// FindInProgress 返回最近一次未结束的作答
func (r *AttemptRepository) FindInProgress(ctx context.Context, examID, userID uint) (*model.Attempt, error) {
	var a model.Attempt
	err := conn(ctx, r.DB).
		Where("examen_id = ? AND usuario_id = ? AND fecha_fin IS NULL", examID, userID).
		Order("id DESC").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByID 事务内加行锁
func (r *AttemptRepository) FindByID(ctx context.Context, id uint) (*model.Attempt, error) {
	var a model.Attempt
	if err := lockForUpdate(ctx, conn(ctx, r.DB)).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttemptRepository) ListByUser(ctx context.Context, userID uint, examID *uint) ([]model.Attempt, error) {
	q := conn(ctx, r.DB).Where("usuario_id = ?", userID)
	if examID != nil {
		q = q.Where("examen_id = ?", *examID)
	}
	var attempts []model.Attempt
	err := q.Order("id DESC").Find(&attempts).Error
	return attempts, err
}

// ReplaceAnswers 删除同题旧答案后写入新答案
func (r *AttemptRepository) ReplaceAnswers(ctx context.Context, attemptID uint, answers []model.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	questionIDs := make([]uint, 0, len(answers))
	for i := range answers {
		answers[i].AttemptID = attemptID
		questionIDs = append(questionIDs, answers[i].QuestionID)
	}

	db := conn(ctx, r.DB)
	if err := db.Where("intento_id = ? AND pregunta_id IN ?", attemptID, questionIDs).
		Delete(&model.Answer{}).Error; err != nil {
		return err
	}
	return db.Create(&answers).Error
}

func (r *AttemptRepository) ListAnswers(ctx context.Context, attemptID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := conn(ctx, r.DB).Where("intento_id = ?", attemptID).Order("id ASC").Find(&answers).Error
	return answers, err
}

func (r *AttemptRepository) SaveAnswerGrades(ctx context.Context, answers []model.Answer) error {
	db := conn(ctx, r.DB)
	for _, a := range answers {
		err := db.Model(&model.Answer{}).Where("id = ?", a.ID).
			Updates(map[string]interface{}{"correcta": a.Correct, "puntaje_obtenido": a.Score}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// MarkFinalized 仅在 fecha_fin 仍为空时写入结果，返回是否由本次调用完成
func (r *AttemptRepository) MarkFinalized(ctx context.Context, a *model.Attempt) (bool, error) {
	res := conn(ctx, r.DB).Model(&model.Attempt{}).
		Where("id = ? AND fecha_fin IS NULL", a.ID).
		Updates(map[string]interface{}{
			"fecha_fin":     a.EndTime,
			"puntaje_total": a.TotalScore,
			"aprobado":      a.Passed,
			"duracion_seg":  a.DurationSeconds,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
