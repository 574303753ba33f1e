package service

import (
	"context"
	"sync"
	"time"

	"betania_backend/internal/model"

	"gorm.io/gorm"
)

// memStore 内存实现，供服务层测试使用
type memStore struct {
	mu          sync.Mutex
	nextID      uint
	courses     map[uint]*model.Course
	exams       map[uint]*model.Exam
	modules     []model.ModuleProgress
	lessons     []model.LessonProgress
	attempts    map[uint]*model.Attempt
	answers     []model.Answer
	slotLocks   [][2]uint
	invalidated []uint
	txCalls     int
}

func newMemStore() *memStore {
	return &memStore{
		nextID:   1000,
		courses:  map[uint]*model.Course{},
		exams:    map[uint]*model.Exam{},
		attempts: map[uint]*model.Attempt{},
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	s.txCalls++
	s.mu.Unlock()
	return fn(ctx)
}

type fakeCourses struct{ s *memStore }

func (f fakeCourses) ListPublished(ctx context.Context) ([]model.Course, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []model.Course
	for id := uint(0); id <= f.s.nextID; id++ {
		if c, ok := f.s.courses[id]; ok && c.Published && c.Active {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f fakeCourses) FindPublishedTree(ctx context.Context, id uint) (*model.Course, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.courses[id]
	if !ok || !c.Published || !c.Active {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f fakeCourses) InvalidateTree(ctx context.Context, id uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.invalidated = append(f.s.invalidated, id)
	return nil
}

func (f fakeCourses) FindLesson(ctx context.Context, id uint) (*model.Lesson, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.courses {
		for i := range c.Modules {
			m := c.Modules[i]
			for _, l := range m.Lessons {
				if l.ID == id {
					l.Module = &m
					return &l, nil
				}
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeExams struct{ s *memStore }

func (f fakeExams) FindByID(ctx context.Context, id uint) (*model.Exam, error) {
	return f.FindWithQuestions(ctx, id)
}

func (f fakeExams) FindWithQuestions(ctx context.Context, id uint) (*model.Exam, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	e, ok := f.s.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}


type fakeProgress struct{ s *memStore }

func (f fakeProgress) HasModuleProgress(ctx context.Context, userID, courseID uint) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, r := range f.s.modules {
		if r.UserID == userID && r.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeProgress) CreateModuleProgress(ctx context.Context, rows []model.ModuleProgress) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
next:
	for _, row := range rows {
		for _, r := range f.s.modules {
			if r.UserID == row.UserID && r.CourseID == row.CourseID && r.ModuleID == row.ModuleID {
				continue next
			}
		}
		row.ID = f.s.id()
		f.s.modules = append(f.s.modules, row)
	}
	return nil
}

func (f fakeProgress) CreateLessonProgress(ctx context.Context, rows []model.LessonProgress) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
next:
	for _, row := range rows {
		for _, r := range f.s.lessons {
			if r.UserID == row.UserID && r.CourseID == row.CourseID && r.ModuleID == row.ModuleID && r.LessonID == row.LessonID {
				continue next
			}
		}
		row.ID = f.s.id()
		f.s.lessons = append(f.s.lessons, row)
	}
	return nil
}

func (f fakeProgress) ListModuleProgress(ctx context.Context, userID, courseID uint) ([]model.ModuleProgress, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []model.ModuleProgress
	for _, r := range f.s.modules {
		if r.UserID == userID && r.CourseID == courseID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f fakeProgress) FindModuleProgress(ctx context.Context, userID, courseID, moduleID uint) (*model.ModuleProgress, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, r := range f.s.modules {
		if r.UserID == userID && r.CourseID == courseID && r.ModuleID == moduleID {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakeProgress) ListLessonProgress(ctx context.Context, userID, courseID, moduleID uint) ([]model.LessonProgress, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []model.LessonProgress
	for _, r := range f.s.lessons {
		if r.UserID == userID && r.CourseID == courseID && r.ModuleID == moduleID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f fakeProgress) FindLessonProgress(ctx context.Context, userID, courseID, moduleID, lessonID uint) (*model.LessonProgress, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, r := range f.s.lessons {
		if r.UserID == userID && r.CourseID == courseID && r.ModuleID == moduleID && r.LessonID == lessonID {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakeProgress) SaveModuleProgress(ctx context.Context, row *model.ModuleProgress) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for i := range f.s.modules {
		if f.s.modules[i].ID == row.ID {
			f.s.modules[i] = *row
			return nil
		}
	}
	row.ID = f.s.id()
	f.s.modules = append(f.s.modules, *row)
	return nil
}

func (f fakeProgress) SaveLessonProgress(ctx context.Context, row *model.LessonProgress) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for i := range f.s.lessons {
		if f.s.lessons[i].ID == row.ID {
			f.s.lessons[i] = *row
			return nil
		}
	}
	row.ID = f.s.id()
	f.s.lessons = append(f.s.lessons, *row)
	return nil
}

func (f fakeProgress) UserStats(ctx context.Context, userID uint) (*model.ProgressCounts, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out model.ProgressCounts
	courses := map[uint]bool{}
	for _, r := range f.s.modules {
		if r.UserID == userID {
			courses[r.CourseID] = true
		}
	}
	out.ActiveCourses = int64(len(courses))
	for _, r := range f.s.lessons {
		if r.UserID != userID {
			continue
		}
		out.LessonRows++
		if r.State == model.LessonCompleted {
			out.CompletedLessons++
		}
	}
	return &out, nil
}

type fakeAttempts struct{ s *memStore }

func (f fakeAttempts) Create(ctx context.Context, a *model.Attempt) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a.ID = f.s.id()
	cp := *a
	f.s.attempts[a.ID] = &cp
	return nil
}

func (f fakeAttempts) LockSlot(ctx context.Context, examID, userID uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.slotLocks = append(f.s.slotLocks, [2]uint{examID, userID})
	return nil
}

func (f fakeAttempts) CountByExamAndUser(ctx context.Context, examID, userID uint) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, a := range f.s.attempts {
		if a.ExamID == examID && a.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f fakeAttempts) FindInProgress(ctx context.Context, examID, userID uint) (*model.Attempt, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var found *model.Attempt
	for _, a := range f.s.attempts {
		if a.ExamID == examID && a.UserID == userID && a.EndTime == nil {
			if found == nil || a.ID > found.ID {
				found = a
			}
		}
	}
	if found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *found
	return &cp, nil
}

func (f fakeAttempts) FindByID(ctx context.Context, id uint) (*model.Attempt, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (f fakeAttempts) ListByUser(ctx context.Context, userID uint, examID *uint) ([]model.Attempt, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []model.Attempt
	for id := f.s.nextID; id > 0; id-- {
		a, ok := f.s.attempts[id]
		if !ok || a.UserID != userID || (examID != nil && a.ExamID != *examID) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f fakeAttempts) ReplaceAnswers(ctx context.Context, attemptID uint, answers []model.Answer) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	replaced := map[uint]bool{}
	for _, a := range answers {
		replaced[a.QuestionID] = true
	}
	kept := f.s.answers[:0]
	for _, a := range f.s.answers {
		if a.AttemptID == attemptID && replaced[a.QuestionID] {
			continue
		}
		kept = append(kept, a)
	}
	f.s.answers = kept
	for _, a := range answers {
		a.ID = f.s.id()
		a.AttemptID = attemptID
		f.s.answers = append(f.s.answers, a)
	}
	return nil
}

func (f fakeAttempts) ListAnswers(ctx context.Context, attemptID uint) ([]model.Answer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []model.Answer
	for _, a := range f.s.answers {
		if a.AttemptID == attemptID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f fakeAttempts) SaveAnswerGrades(ctx context.Context, answers []model.Answer) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, g := range answers {
		for i := range f.s.answers {
			if f.s.answers[i].ID == g.ID {
				f.s.answers[i].Correct = g.Correct
				f.s.answers[i].Score = g.Score
			}
		}
	}
	return nil
}

func (f fakeAttempts) MarkFinalized(ctx context.Context, a *model.Attempt) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	stored, ok := f.s.attempts[a.ID]
	if !ok || stored.EndTime != nil {
		return false, nil
	}
	stored.EndTime = a.EndTime
	stored.TotalScore = a.TotalScore
	stored.Passed = a.Passed
	stored.DurationSeconds = a.DurationSeconds
	return true, nil
}

func intp(v int) *int { return &v }

func uintp(v uint) *uint { return &v }

// clock 可控时间源
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	store    *memStore
	clock    *clock
	progress *ProgressService
	quiz     *QuizService
	attempts *AttemptService
}

func newFixture() *fixture {
	s := newMemStore()
	c := &clock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}

	progress := NewProgressService(fakeCourses{s}, fakeProgress{s}, s)
	progress.now = c.now
	attempts := NewAttemptService(fakeExams{s}, fakeAttempts{s}, s)
	attempts.now = c.now

	return &fixture{
		store:    s,
		clock:    c,
		progress: progress,
		quiz:     NewQuizService(progress, fakeExams{s}),
		attempts: attempts,
	}
}

// addQuizExam 每道题两个选项：id*10+1 正确，id*10+2 错误
func (f *fixture) addQuizExam(examID uint, weights ...float64) *model.Exam {
	e := &model.Exam{BaseModel: model.BaseModel{ID: examID}, Title: "Prueba", Published: true}
	for i, w := range weights {
		qid := examID*10 + uint(i) + 1
		e.Questions = append(e.Questions, model.Question{
			BaseModel: model.BaseModel{ID: qid},
			ExamID:    examID,
			Score:     w,
			Order:     intp(i + 1),
			Options: []model.Option{
				{BaseModel: model.BaseModel{ID: qid*10 + 1}, QuestionID: qid, Text: "Opción A", IsCorrect: true},
				{BaseModel: model.BaseModel{ID: qid*10 + 2}, QuestionID: qid, Text: "Opción B"},
			},
		})
	}
	f.store.exams[examID] = e
	return e
}

func rightAnswer(qid uint) uint { return qid*10 + 1 }

func wrongAnswer(qid uint) uint { return qid*10 + 2 }

func lesson(id, moduleID uint, order *int, published bool, examID *uint) model.Lesson {
	return model.Lesson{
		BaseModel: model.BaseModel{ID: id},
		ModuleID:  moduleID,
		Title:     "Lección",
		Order:     order,
		Published: published,
		ExamID:    examID,
	}
}

// addStandardCourse 课程 1：模块 11(orden 1) -> 10(orden 2) -> 12(orden 空)
// 模块 11 的课时 101/102/103 各带一套两题测验，104 未发布；模块 10 的课时 201 无测验
func (f *fixture) addStandardCourse() *model.Course {
	for _, id := range []uint{1, 2, 3, 4} {
		f.addQuizExam(id, 1, 1)
	}
	c := &model.Course{
		BaseModel: model.BaseModel{ID: 1},
		Title:     "Curso de prueba",
		Published: true,
		Active:    true,
		Modules: []model.Module{
			{
				BaseModel: model.BaseModel{ID: 10}, CourseID: 1, Title: "Segundo", Order: intp(2),
				Lessons: []model.Lesson{lesson(201, 10, intp(1), true, nil)},
			},
			{
				BaseModel: model.BaseModel{ID: 11}, CourseID: 1, Title: "Primero", Order: intp(1),
				Lessons: []model.Lesson{
					lesson(103, 11, intp(3), true, uintp(3)),
					lesson(101, 11, intp(1), true, uintp(1)),
					lesson(104, 11, intp(4), false, uintp(4)),
					lesson(102, 11, intp(2), true, uintp(2)),
				},
			},
			{BaseModel: model.BaseModel{ID: 12}, CourseID: 1, Title: "Extra"},
		},
	}
	f.store.courses[c.ID] = c
	return c
}

func (f *fixture) moduleState(userID, moduleID uint) (model.ModuleState, bool) {
	for _, r := range f.store.modules {
		if r.UserID == userID && r.ModuleID == moduleID {
			return r.State, true
		}
	}
	return "", false
}

func (f *fixture) lessonRow(userID, lessonID uint) (model.LessonProgress, bool) {
	for _, r := range f.store.lessons {
		if r.UserID == userID && r.LessonID == lessonID {
			return r, true
		}
	}
	return model.LessonProgress{}, false
}
