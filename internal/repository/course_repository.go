package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"betania_backend/internal/model"
	"betania_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CourseRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	TTL   time.Duration
}

// NewCourseRepository rdb 为 nil 时不使用缓存
func NewCourseRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) *CourseRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CourseRepository{DB: db, Redis: rdb, TTL: ttl}
}

func courseTreeKey(id uint) string {
	return fmt.Sprintf("curso:arbol:%d", id)
}

func (r *CourseRepository) ListPublished(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := conn(ctx, r.DB).
		Where("publicado = ? AND activo = ?", true, true).
		Order("id ASC").
		Find(&courses).Error
	return courses, err
}

// FindPublishedTree 加载已发布且启用的课程及其全部模块和课时，未命中返回 gorm.ErrRecordNotFound
func (r *CourseRepository) FindPublishedTree(ctx context.Context, id uint) (*model.Course, error) {
	if c, ok := r.cachedTree(ctx, id); ok {
		return c, nil
	}

	var course model.Course
	err := conn(ctx, r.DB).
		Where("id = ? AND publicado = ? AND activo = ?", id, true, true).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("orden ASC").Order("id ASC")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("orden ASC").Order("id ASC")
		}).
		First(&course).Error
	if err != nil {
		return nil, err
	}

	r.storeTree(ctx, &course)
	return &course, nil
}

// FindLesson 连同所属模块一起加载
func (r *CourseRepository) FindLesson(ctx context.Context, id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := conn(ctx, r.DB).Preload("Module").First(&lesson, id).Error; err != nil {
		return nil, err
	}
	if lesson.Module == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &lesson, nil
}

// InvalidateTree 课程结构变更后调用，未启用缓存时为空操作
func (r *CourseRepository) InvalidateTree(ctx context.Context, id uint) error {
	if r.Redis == nil {
		return nil
	}
	if err := r.Redis.Del(ctx, courseTreeKey(id)).Err(); err != nil {
		logger.Log.Warn("Course cache invalidation failed", zap.Uint("course_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *CourseRepository) cachedTree(ctx context.Context, id uint) (*model.Course, bool) {
	if r.Redis == nil {
		return nil, false
	}
	raw, err := r.Redis.Get(ctx, courseTreeKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("Course cache read failed", zap.Uint("course_id", id), zap.Error(err))
		}
		return nil, false
	}
	return decodeTree(id, raw)
}

// decodeTree 缓存内容无法解析时按未命中处理，由后续查询重新写入
func decodeTree(id uint, raw []byte) (*model.Course, bool) {
	var course model.Course
	if err := json.Unmarshal(raw, &course); err != nil {
		logger.Log.Warn("Course cache decode failed", zap.Uint("course_id", id), zap.Error(err))
		return nil, false
	}
	return &course, true
}

func (r *CourseRepository) storeTree(ctx context.Context, c *model.Course) {
	if r.Redis == nil {
		return
	}
	raw, err := json.Marshal(c)
	if err != nil {
		logger.Log.Warn("Course cache encode failed", zap.Uint("course_id", c.ID), zap.Error(err))
		return
	}
	if err := r.Redis.Set(ctx, courseTreeKey(c.ID), raw, r.TTL).Err(); err != nil {
		logger.Log.Warn("Course cache write failed", zap.Uint("course_id", c.ID), zap.Error(err))
	}
}
