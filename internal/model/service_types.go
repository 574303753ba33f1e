package model

// ProgressCounts 学员进度汇总，非数据表
type ProgressCounts struct {
	ActiveCourses    int64
	LessonRows       int64
	CompletedLessons int64
}
