package repository

import (
	"context"

	"betania_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) HasModuleProgress(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.DB).Model(&model.ModuleProgress{}).
		Where("usuario_id = ? AND curso_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// CreateModuleProgress 唯一索引冲突的行直接跳过，不覆盖已有状态
func (r *ProgressRepository) CreateModuleProgress(ctx context.Context, rows []model.ModuleProgress) error {
	if len(rows) == 0 {
		return nil
	}
	return conn(ctx, r.DB).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func (r *ProgressRepository) CreateLessonProgress(ctx context.Context, rows []model.LessonProgress) error {
	if len(rows) == 0 {
		return nil
	}
	return conn(ctx, r.DB).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func (r *ProgressRepository) ListModuleProgress(ctx context.Context, userID, courseID uint) ([]model.ModuleProgress, error) {
	var rows []model.ModuleProgress
	err := conn(ctx, r.DB).
		Where("usuario_id = ? AND curso_id = ?", userID, courseID).
		Find(&rows).Error
	return rows, err
}

// FindModuleProgress 事务内加行锁
func (r *ProgressRepository) FindModuleProgress(ctx context.Context, userID, courseID, moduleID uint) (*model.ModuleProgress, error) {
	var row model.ModuleProgress
	err := lockForUpdate(ctx, conn(ctx, r.DB)).
		Where("usuario_id = ? AND curso_id = ? AND modulo_id = ?", userID, courseID, moduleID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ProgressRepository) ListLessonProgress(ctx context.Context, userID, courseID, moduleID uint) ([]model.LessonProgress, error) {
	var rows []model.LessonProgress
	err := conn(ctx, r.DB).
		Where("usuario_id = ? AND curso_id = ? AND modulo_id = ?", userID, courseID, moduleID).
		Find(&rows).Error
	return rows, err
}

// FindLessonProgress 事务内加行锁
func (r *ProgressRepository) FindLessonProgress(ctx context.Context, userID, courseID, moduleID, lessonID uint) (*model.LessonProgress, error) {
	var row model.LessonProgress
	err := lockForUpdate(ctx, conn(ctx, r.DB)).
		Where("usuario_id = ? AND curso_id = ? AND modulo_id = ? AND leccion_id = ?", userID, courseID, moduleID, lessonID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ProgressRepository) SaveModuleProgress(ctx context.Context, row *model.ModuleProgress) error {
	return conn(ctx, r.DB).Save(row).Error
}

func (r *ProgressRepository) SaveLessonProgress(ctx context.Context, row *model.LessonProgress) error {
	return conn(ctx, r.DB).Save(row).Error
}

func (r *ProgressRepository) UserStats(ctx context.Context, userID uint) (*model.ProgressCounts, error) {
	db := conn(ctx, r.DB)
	var stats model.ProgressCounts

	if err := db.Model(&model.ModuleProgress{}).
		Where("usuario_id = ?", userID).
		Distinct("curso_id").
		Count(&stats.ActiveCourses).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.LessonProgress{}).
		Where("usuario_id = ?", userID).
		Count(&stats.LessonRows).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.LessonProgress{}).
		Where("usuario_id = ? AND estado = ?", userID, model.LessonCompleted).
		Count(&stats.CompletedLessons).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
