package repository

import (
	"fmt"
	"strings"
	"testing"

	"betania_backend/internal/model"
	"betania_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

func newTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

func intp(v int) *int { return &v }

func uintp(v uint) *uint { return &v }

// seedCourse 课程含两个模块，第一个模块两个课时且第一个课时挂测验
func seedCourse(tb testing.TB, db *gorm.DB, published bool) *model.Course {
	tb.Helper()
	exam := model.Exam{
		Title:     "Prueba 1",
		Published: true,
		Questions: []model.Question{
			{Text: "¿Uno?", Score: 1, Order: intp(1), Options: []model.Option{
				{Text: "Sí", IsCorrect: true},
				{Text: "No"},
			}},
			{Text: "¿Dos?", Score: 1, Order: intp(2), Options: []model.Option{
				{Text: "Sí"},
				{Text: "No", IsCorrect: true},
			}},
		},
	}
	if err := db.Create(&exam).Error; err != nil {
		tb.Fatalf("seed exam: %v", err)
	}

	course := model.Course{
		Title:     "Curso",
		Published: published,
		Active:    true,
		Modules: []model.Module{
			{Title: "B", Order: intp(2)},
			{Title: "A", Order: intp(1), Lessons: []model.Lesson{
				{Title: "A2", Order: intp(2), Published: true},
				{Title: "A1", Order: intp(1), Published: true, ExamID: &exam.ID},
			}},
		},
	}
	if err := db.Create(&course).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return &course
}
