package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"betania_backend/internal/model"
	"betania_backend/internal/util"
	"betania_backend/pkg/logger"
	"betania_backend/pkg/tracing"

	"go.uber.org/zap"
)

type ProgressService struct {
	Courses  CourseRepository
	Progress ProgressRepository
	Tx       Transactor
	now      func() time.Time
}

func NewProgressService(courses CourseRepository, progress ProgressRepository, tx Transactor) *ProgressService {
	return &ProgressService{
		Courses:  courses,
		Progress: progress,
		Tx:       tx,
		now:      time.Now,
	}
}

type CourseSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
}

type ModuleSummary struct {
	ID          uint              `json:"id"`
	Title       string            `json:"titulo"`
	Description string            `json:"descripcion"`
	Order       *int              `json:"orden"`
	State       model.ModuleState `json:"estado"`
}

type CourseView struct {
	ID          uint            `json:"id"`
	Title       string          `json:"titulo"`
	Description string          `json:"descripcion"`
	Modules     []ModuleSummary `json:"modulos"`
}

type LessonSummary struct {
	ID          uint              `json:"id"`
	Title       string            `json:"titulo"`
	Description string            `json:"descripcion"`
	Order       *int              `json:"orden"`
	YoutubeID   string            `json:"youtube_id"`
	PDFURL      string            `json:"pdf_url"`
	State       model.LessonState `json:"estado"`
	Passed      bool              `json:"aprobado"`
	LastScore   *float64          `json:"nota_ultima_prueba"`
}

type ModuleView struct {
	ID            uint              `json:"id"`
	CourseID      uint              `json:"curso_id"`
	Title         string            `json:"titulo"`
	Description   string            `json:"descripcion"`
	Order         *int              `json:"orden"`
	VideoIntroURL string            `json:"video_intro_url"`
	PDFIntroURL   string            `json:"pdf_intro_url"`
	State         model.ModuleState `json:"estado"`
	Lessons       []LessonSummary   `json:"lecciones"`
}

type LessonView struct {
	ID          uint              `json:"id"`
	ModuleID    uint              `json:"modulo_id"`
	CourseID    uint              `json:"curso_id"`
	Title       string            `json:"titulo"`
	Description string            `json:"descripcion"`
	Order       *int              `json:"orden"`
	YoutubeID   string            `json:"youtube_id"`
	PDFURL      string            `json:"pdf_url"`
	ExamID      *uint             `json:"examen_id"`
	Progress    model.LessonState `json:"progreso"`
	Passed      bool              `json:"aprobado"`
	LastScore   *float64          `json:"nota_ultima_prueba"`
}

type UserStats struct {
	ActiveCourses  int64 `json:"cursos_activos"`
	PendingLessons int64 `json:"lecciones_pendientes"`
	GlobalProgress int   `json:"progreso_global"`
}

// Advance 课时通过后的解锁结果
type Advance struct {
	NextLessonID    *uint
	ModuleCompleted bool
	NextModuleID    *uint
}

func (s *ProgressService) ListCourses(ctx context.Context) ([]CourseSummary, error) {
	courses, err := s.Courses.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	out := make([]CourseSummary, 0, len(courses))
	for _, c := range courses {
		out = append(out, CourseSummary{ID: c.ID, Title: c.Title, Description: c.Description})
	}
	return out, nil
}

// LoadCourse 返回课程树，课程不存在、未发布或已停用时返回 ErrCourseNotFound
func (s *ProgressService) LoadCourse(ctx context.Context, courseID uint) (*model.Course, error) {
	course, err := s.Courses.FindPublishedTree(ctx, courseID)
	if err != nil {
		return nil, notFoundAs(err, util.ErrCourseNotFound)
	}
	return course, nil
}

// InvalidateCourseCache 课程内容在外部变更后清除缓存的课程树
func (s *ProgressService) InvalidateCourseCache(ctx context.Context, courseID uint) error {
	if err := s.Courses.InvalidateTree(ctx, courseID); err != nil {
		return fmt.Errorf("invalidate course %d: %w", courseID, err)
	}
	return nil
}

// InitializeIfAbsent 首次访问课程时创建进度：排序后第一个模块可用，其余锁定；
// 仅为第一个模块创建课时进度。已存在任意模块进度时不做任何修改。
func (s *ProgressService) InitializeIfAbsent(ctx context.Context, course *model.Course, userID uint) error {
	return s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.Progress.HasModuleProgress(ctx, userID, course.ID)
		if err != nil {
			return fmt.Errorf("check module progress: %w", err)
		}
		if exists {
			return nil
		}

		modules := sortedModules(course.Modules)
		if len(modules) == 0 {
			return nil
		}

		now := s.now()
		rows := make([]model.ModuleProgress, 0, len(modules))
		for i, m := range modules {
			row := model.ModuleProgress{
				UserID:   userID,
				CourseID: course.ID,
				ModuleID: m.ID,
				State:    model.ModuleLocked,
			}
			if i == 0 {
				row.State = model.ModuleAvailable
				row.UnlockedAt = &now
			}
			rows = append(rows, row)
		}
		if err := s.Progress.CreateModuleProgress(ctx, rows); err != nil {
			return fmt.Errorf("create module progress: %w", err)
		}
		if err := s.initLessons(ctx, course.ID, &modules[0], userID); err != nil {
			return err
		}

		logger.Log.Info("初始化课程进度",
			zap.Uint("user_id", userID),
			zap.Uint("course_id", course.ID),
			zap.Int("modules", len(modules)))
		return nil
	})
}

// initLessons 为模块创建课时进度：第一个已发布课时可用，其余锁定，已有行保持不变
func (s *ProgressService) initLessons(ctx context.Context, courseID uint, m *model.Module, userID uint) error {
	lessons := sortedLessons(m.Lessons)
	if len(lessons) == 0 {
		return nil
	}

	first := 0
	for i, l := range lessons {
		if l.Published {
			first = i
			break
		}
	}

	rows := make([]model.LessonProgress, 0, len(lessons))
	for i, l := range lessons {
		state := model.LessonLocked
		if i == first {
			state = model.LessonAvailable
		}
		rows = append(rows, model.LessonProgress{
			UserID:   userID,
			CourseID: courseID,
			ModuleID: m.ID,
			LessonID: l.ID,
			State:    state,
		})
	}
	if err := s.Progress.CreateLessonProgress(ctx, rows); err != nil {
		return fmt.Errorf("create lesson progress: %w", err)
	}
	return nil
}

// GetCourseView 触发进度初始化并返回全部模块状态，没有进度行的模块视为锁定
func (s *ProgressService) GetCourseView(ctx context.Context, courseID, userID uint) (*CourseView, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ProgressService.GetCourseView")
	defer span.End()

	course, err := s.LoadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.InitializeIfAbsent(ctx, course, userID); err != nil {
		return nil, err
	}

	rows, err := s.Progress.ListModuleProgress(ctx, userID, course.ID)
	if err != nil {
		return nil, fmt.Errorf("list module progress: %w", err)
	}
	states := make(map[uint]model.ModuleState, len(rows))
	for _, r := range rows {
		states[r.ModuleID] = r.State
	}

	view := &CourseView{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Modules:     []ModuleSummary{},
	}
	for _, m := range sortedModules(course.Modules) {
		state, ok := states[m.ID]
		if !ok {
			state = model.ModuleLocked
		}
		view.Modules = append(view.Modules, ModuleSummary{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Order:       m.Order,
			State:       state,
		})
	}
	return view, nil
}

func findModule(course *model.Course, moduleID uint) (*model.Module, bool) {
	for i := range course.Modules {
		if course.Modules[i].ID == moduleID {
			return &course.Modules[i], true
		}
	}
	return nil, false
}

// GetModuleView 模块锁定或无进度时返回 ErrModuleLocked；只列出已发布且未锁定的课时
func (s *ProgressService) GetModuleView(ctx context.Context, courseID, moduleID, userID uint) (*ModuleView, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ProgressService.GetModuleView")
	defer span.End()

	course, err := s.LoadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	module, ok := findModule(course, moduleID)
	if !ok {
		return nil, util.ErrModuleNotFound
	}

	mp, err := s.Progress.FindModuleProgress(ctx, userID, course.ID, module.ID)
	if err != nil {
		return nil, notFoundAs(err, util.ErrModuleLocked)
	}
	if mp.State == model.ModuleLocked {
		return nil, util.ErrModuleLocked
	}

	rows, err := s.Progress.ListLessonProgress(ctx, userID, course.ID, module.ID)
	if err != nil {
		return nil, fmt.Errorf("list lesson progress: %w", err)
	}
	byLesson := make(map[uint]model.LessonProgress, len(rows))
	for _, r := range rows {
		byLesson[r.LessonID] = r
	}

	view := &ModuleView{
		ID:            module.ID,
		CourseID:      course.ID,
		Title:         module.Title,
		Description:   module.Description,
		Order:         module.Order,
		VideoIntroURL: module.VideoIntroURL,
		PDFIntroURL:   module.PDFIntroURL,
		State:         mp.State,
		Lessons:       []LessonSummary{},
	}
	for _, l := range publishedLessons(module.Lessons) {
		lp, ok := byLesson[l.ID]
		if !ok || lp.State == model.LessonLocked {
			continue
		}
		view.Lessons = append(view.Lessons, LessonSummary{
			ID:          l.ID,
			Title:       l.Title,
			Description: l.Description,
			Order:       l.Order,
			YoutubeID:   l.YoutubeID,
			PDFURL:      l.PDFURL,
			State:       lp.State,
			Passed:      lp.Passed,
			LastScore:   lp.LastScore,
		})
	}
	return view, nil
}

// ResolveLesson 加载已发布课时及其课程和模块
func (s *ProgressService) ResolveLesson(ctx context.Context, lessonID uint) (*model.Lesson, *model.Course, *model.Module, error) {
	lesson, err := s.Courses.FindLesson(ctx, lessonID)
	if err != nil {
		return nil, nil, nil, notFoundAs(err, util.ErrLessonNotFound)
	}
	if !lesson.Published {
		return nil, nil, nil, util.ErrLessonNotFound
	}
	course, err := s.Courses.FindPublishedTree(ctx, lesson.Module.CourseID)
	if err != nil {
		return nil, nil, nil, notFoundAs(err, util.ErrLessonNotFound)
	}
	module, ok := findModule(course, lesson.ModuleID)
	if !ok {
		return nil, nil, nil, util.ErrLessonNotFound
	}
	return lesson, course, module, nil
}

// RequireModuleReachable 模块进度不存在或锁定时返回 ErrModuleLocked
func (s *ProgressService) RequireModuleReachable(ctx context.Context, courseID, moduleID, userID uint) (*model.ModuleProgress, error) {
	mp, err := s.Progress.FindModuleProgress(ctx, userID, courseID, moduleID)
	if err != nil {
		return nil, notFoundAs(err, util.ErrModuleLocked)
	}
	if mp.State == model.ModuleLocked {
		return nil, util.ErrModuleLocked
	}
	return mp, nil
}

// GetLessonView 无课时进度时按可用处理
func (s *ProgressService) GetLessonView(ctx context.Context, lessonID, userID uint) (*LessonView, error) {
	lesson, course, module, err := s.ResolveLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if _, err := s.RequireModuleReachable(ctx, course.ID, module.ID, userID); err != nil {
		return nil, err
	}

	view := &LessonView{
		ID:          lesson.ID,
		ModuleID:    module.ID,
		CourseID:    course.ID,
		Title:       lesson.Title,
		Description: lesson.Description,
		Order:       lesson.Order,
		YoutubeID:   lesson.YoutubeID,
		PDFURL:      lesson.PDFURL,
		ExamID:      lesson.ExamID,
		Progress:    model.LessonAvailable,
	}

	lp, err := s.Progress.FindLessonProgress(ctx, userID, course.ID, module.ID, lesson.ID)
	switch {
	case err == nil:
		if lp.State == model.LessonLocked {
			return nil, util.ErrLessonLocked
		}
		view.Progress = lp.State
		view.Passed = lp.Passed
		view.LastScore = lp.LastScore
	case !isNotFound(err):
		return nil, fmt.Errorf("find lesson progress: %w", err)
	}
	return view, nil
}

// EnsureLessonProgress 返回课时进度行，不存在时以锁定状态创建；事务内调用时该行被锁定
func (s *ProgressService) EnsureLessonProgress(ctx context.Context, courseID, moduleID, lessonID, userID uint) (*model.LessonProgress, error) {
	err := s.Progress.CreateLessonProgress(ctx, []model.LessonProgress{{
		UserID:   userID,
		CourseID: courseID,
		ModuleID: moduleID,
		LessonID: lessonID,
		State:    model.LessonLocked,
	}})
	if err != nil {
		return nil, fmt.Errorf("ensure lesson progress: %w", err)
	}
	lp, err := s.Progress.FindLessonProgress(ctx, userID, courseID, moduleID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("find lesson progress: %w", err)
	}
	return lp, nil
}

// AdvanceAfterPass 课时完成后的状态推进，须在事务内调用：
// 解锁同模块中按 (orden, id) 排在其后的下一个已发布课时；模块内已发布课时全部完成时
// 模块标记完成并解锁下一个模块，同时为其创建课时进度。
func (s *ProgressService) AdvanceAfterPass(ctx context.Context, course *model.Course, module *model.Module, lesson *model.Lesson, userID uint) (*Advance, error) {
	out := &Advance{}
	now := s.now()

	lessons := publishedLessons(module.Lessons)
	if next := nextLesson(lessons, lesson); next != nil {
		lp, err := s.EnsureLessonProgress(ctx, course.ID, module.ID, next.ID, userID)
		if err != nil {
			return nil, err
		}
		if lp.State == model.LessonLocked {
			lp.State = model.LessonAvailable
			if err := s.Progress.SaveLessonProgress(ctx, lp); err != nil {
				return nil, fmt.Errorf("unlock lesson: %w", err)
			}
		}
		id := next.ID
		out.NextLessonID = &id
	}

	done, err := s.moduleFinished(ctx, course.ID, module, lessons, userID)
	if err != nil || !done {
		return out, err
	}

	mp, err := s.Progress.FindModuleProgress(ctx, userID, course.ID, module.ID)
	if err != nil {
		return nil, fmt.Errorf("find module progress: %w", err)
	}
	if mp.State != model.ModuleCompleted {
		mp.State = model.ModuleCompleted
		mp.CompletedAt = &now
		if err := s.Progress.SaveModuleProgress(ctx, mp); err != nil {
			return nil, fmt.Errorf("complete module: %w", err)
		}
	}
	out.ModuleCompleted = true

	next := nextModule(course, module.ID)
	if next == nil {
		return out, nil
	}
	unlocked, err := s.unlockModule(ctx, course.ID, next, userID, now)
	if err != nil {
		return nil, err
	}
	if unlocked {
		id := next.ID
		out.NextModuleID = &id
	}
	return out, nil
}

// nextLesson 在按 (orden, id) 排序的课时中取排在 current 之后的第一个，orden 相同时按 id 区分
func nextLesson(sorted []model.Lesson, current *model.Lesson) *model.Lesson {
	key := model.OrderKey(current.Order)
	for i := range sorted {
		k := model.OrderKey(sorted[i].Order)
		if k > key || (k == key && sorted[i].ID > current.ID) {
			return &sorted[i]
		}
	}
	return nil
}

func (s *ProgressService) moduleFinished(ctx context.Context, courseID uint, module *model.Module, published []model.Lesson, userID uint) (bool, error) {
	if len(published) == 0 {
		return false, nil
	}
	rows, err := s.Progress.ListLessonProgress(ctx, userID, courseID, module.ID)
	if err != nil {
		return false, fmt.Errorf("list lesson progress: %w", err)
	}
	completed := make(map[uint]bool, len(rows))
	for _, r := range rows {
		completed[r.LessonID] = r.State == model.LessonCompleted
	}
	for _, l := range published {
		if !completed[l.ID] {
			return false, nil
		}
	}
	return true, nil
}

func nextModule(course *model.Course, moduleID uint) *model.Module {
	modules := sortedModules(course.Modules)
	for i := range modules {
		if modules[i].ID == moduleID && i+1 < len(modules) {
			return &modules[i+1]
		}
	}
	return nil
}

// unlockModule 锁定模块转为可用时创建该模块的课时进度，返回是否发生了解锁
func (s *ProgressService) unlockModule(ctx context.Context, courseID uint, m *model.Module, userID uint, now time.Time) (bool, error) {
	err := s.Progress.CreateModuleProgress(ctx, []model.ModuleProgress{{
		UserID:   userID,
		CourseID: courseID,
		ModuleID: m.ID,
		State:    model.ModuleLocked,
	}})
	if err != nil {
		return false, fmt.Errorf("ensure module progress: %w", err)
	}
	mp, err := s.Progress.FindModuleProgress(ctx, userID, courseID, m.ID)
	if err != nil {
		return false, fmt.Errorf("find module progress: %w", err)
	}
	if mp.State != model.ModuleLocked {
		return false, nil
	}

	mp.State = model.ModuleAvailable
	mp.UnlockedAt = &now
	if err := s.Progress.SaveModuleProgress(ctx, mp); err != nil {
		return false, fmt.Errorf("unlock module: %w", err)
	}
	if err := s.initLessons(ctx, courseID, m, userID); err != nil {
		return false, err
	}

	logger.Log.Info("模块解锁",
		zap.Uint("user_id", userID),
		zap.Uint("course_id", courseID),
		zap.Uint("module_id", m.ID))
	return true, nil
}

func (s *ProgressService) GetUserStats(ctx context.Context, userID uint) (*UserStats, error) {
	counts, err := s.Progress.UserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	stats := &UserStats{
		ActiveCourses:  counts.ActiveCourses,
		PendingLessons: counts.LessonRows - counts.CompletedLessons,
	}
	if counts.LessonRows > 0 {
		stats.GlobalProgress = int(math.Round(float64(counts.CompletedLessons) * 100 / float64(counts.LessonRows)))
	}
	return stats, nil
}
