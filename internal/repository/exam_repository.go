package repository

import (
	"context"

	"betania_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

// FindWithQuestions 加载试题与选项，题目按 (orden, id) 排序
func (r *ExamRepository) FindWithQuestions(ctx context.Context, id uint) (*model.Exam, error) {
	var exam model.Exam
	err := conn(ctx, r.DB).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("orden ASC").Order("id ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *ExamRepository) FindByID(ctx context.Context, id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := conn(ctx, r.DB).First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}
