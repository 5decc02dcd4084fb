package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
)

// ── 测试夹具 ──

const (
	testStudent = "stu-1"
	otherID     = "stu-2"
)

// fixture 以内存 mock 组装的完整 Repository
type fixture struct {
	repo       *repository.Repository
	students   *mockStudentRepo
	semesters  *mockSemesterRepo
	subjects   *mockSubjectRepo
	classes    *mockClassRepo
	tasks      *mockTaskRepo
	events     *mockEventRepo
	activities *mockActivityRepo
	goals      *mockGoalRepo
	goalScheds *mockGoalScheduleRepo
	entries    *mockEntryRepo
	timeLogs   *mockTimeLogRepo
	sleepLogs  *mockSleepLogRepo
	attendance *mockAttendanceRepo
	prefs      *mockUserPrefRepo
	tokens     *mockPushTokenRepo
}

func newFixture() *fixture {
	subjects := newMockSubjectRepo()
	f := &fixture{
		students:   &mockStudentRepo{ids: map[string]bool{testStudent: true, otherID: true}},
		semesters:  newMockSemesterRepo(),
		subjects:   subjects,
		classes:    newMockClassRepo(subjects),
		tasks:      &mockTaskRepo{newSlotMock[model.Task]("task", func(t *model.Task, id string) { t.TaskID = id })},
		events:     &mockEventRepo{newSlotMock[model.Event]("event", func(e *model.Event, id string) { e.EventID = id })},
		activities: &mockActivityRepo{newSlotMock[model.Activity]("activity", func(a *model.Activity, id string) { a.ActivityID = id })},
		goals:      newMockGoalRepo(),
		goalScheds: &mockGoalScheduleRepo{newSlotMock[model.GoalSchedule]("gs", func(g *model.GoalSchedule, id string) { g.GoalScheduleID = id })},
		entries:    &mockEntryRepo{},
		timeLogs:   &mockTimeLogRepo{},
		sleepLogs:  &mockSleepLogRepo{},
		attendance: newMockAttendanceRepo(),
		prefs:      newMockUserPrefRepo(),
		tokens:     &mockPushTokenRepo{tokens: make(map[string]*model.PushToken)},
	}
	f.entries.alive = f.alive
	f.goals.onDelete = func(goalID string) {
		for id, gs := range f.goalScheds.items {
			if gs.GoalID == goalID {
				delete(f.goalScheds.items, id)
			}
		}
	}
	f.repo = &repository.Repository{
		Student:       f.students,
		Semester:      f.semesters,
		Subject:       f.subjects,
		ClassSchedule: f.classes,
		Task:          f.tasks,
		Event:         f.events,
		Activity:      f.activities,
		Goal:          f.goals,
		GoalSchedule:  f.goalScheds,
		ScheduleEntry: f.entries,
		TimeLog:       f.timeLogs,
		SleepLog:      f.sleepLogs,
		Attendance:    f.attendance,
		UserPref:      f.prefs,
		PushToken:     f.tokens,
	}
	return f
}

// alive 引用的源实体是否仍存在，供 PruneOrphans 使用
func (f *fixture) alive(ref model.EntryRef) bool {
	switch ref.Category {
	case model.CategoryTask:
		_, ok := f.tasks.items[ref.ReferenceID]
		return ok
	case model.CategoryEvent:
		_, ok := f.events.items[ref.ReferenceID]
		return ok
	case model.CategoryActivity:
		_, ok := f.activities.items[ref.ReferenceID]
		return ok
	case model.CategoryGoal:
		_, ok := f.goalScheds.items[ref.ReferenceID]
		return ok
	case model.CategoryClass:
		_, ok := f.classes.classes[ref.ReferenceID]
		return ok
	}
	return false
}

func mustDate(s string) time.Time {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func mustClock(s string) model.ClockTime {
	c, err := model.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func strPtr(s string) *string { return &s }

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	ids map[string]bool
}

func (m *mockStudentRepo) Exists(_ context.Context, id string) (bool, error) {
	return m.ids[id], nil
}

// ── 通用时间段实体 mock ──

type slotMock[T any, PT interface {
	*T
	model.Schedulable
}] struct {
	items  map[string]PT
	seq    int
	prefix string
	assign func(PT, string)
}

func newSlotMock[T any, PT interface {
	*T
	model.Schedulable
}](prefix string, assign func(PT, string)) *slotMock[T, PT] {
	return &slotMock[T, PT]{items: make(map[string]PT), prefix: prefix, assign: assign}
}

func (m *slotMock[T, PT]) ExistsSlot(_ context.Context, studentID string, iv model.TimeInterval, excludeID string) (bool, error) {
	for id, e := range m.items {
		if id != excludeID && e.OwnerID() == studentID && e.Slot().Equals(iv) {
			return true, nil
		}
	}
	return false, nil
}

func (m *slotMock[T, PT]) Create(_ context.Context, e PT) error {
	m.seq++
	m.assign(e, fmt.Sprintf("%s-%d", m.prefix, m.seq))
	m.put(e)
	return nil
}

func (m *slotMock[T, PT]) Update(_ context.Context, e PT) error {
	m.put(e)
	return nil
}

func (m *slotMock[T, PT]) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *slotMock[T, PT]) put(e PT) {
	cp := new(T)
	*cp = *e
	m.items[e.Ref().ReferenceID] = PT(cp)
}

func (m *slotMock[T, PT]) get(id string) (PT, error) {
	e, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := new(T)
	*cp = *e
	return PT(cp), nil
}

// matches 模拟 ListFilter 的日期条件
func matches(iv model.TimeInterval, status model.Status, f repository.ListFilter) bool {
	d := iv.ScheduledDate
	if f.DateFrom != nil && d.Before(model.DateOf(*f.DateFrom)) {
		return false
	}
	if f.DateTo != nil && d.After(model.DateOf(*f.DateTo)) {
		return false
	}
	if f.DateBefore != nil && !d.Before(model.DateOf(*f.DateBefore)) {
		return false
	}
	if f.Status != "" && status != f.Status {
		return false
	}
	return true
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	*slotMock[model.Task, *model.Task]
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	return m.get(id)
}

func (m *mockTaskRepo) List(_ context.Context, studentID string, f repository.ListFilter) ([]model.Task, error) {
	var out []model.Task
	for _, t := range m.items {
		if t.StudentID == studentID && matches(t.TimeInterval, t.Status, f) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out, nil
}

func (m *mockTaskRepo) Count(ctx context.Context, studentID string, f repository.ListFilter) (int64, error) {
	list, _ := m.List(ctx, studentID, f)
	return int64(len(list)), nil
}

func (m *mockTaskRepo) SetStatus(_ context.Context, id string, status model.Status) error {
	if t, ok := m.items[id]; ok {
		t.Status = status
	}
	return nil
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	*slotMock[model.Event, *model.Event]
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	return m.get(id)
}

func (m *mockEventRepo) List(_ context.Context, studentID string, f repository.ListFilter) ([]model.Event, error) {
	var out []model.Event
	for _, e := range m.items {
		if e.StudentID == studentID && matches(e.TimeInterval, "", f) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockEventRepo) Count(ctx context.Context, studentID string, f repository.ListFilter) (int64, error) {
	list, _ := m.List(ctx, studentID, f)
	return int64(len(list)), nil
}

// ── Mock ActivityRepository ──

type mockActivityRepo struct {
	*slotMock[model.Activity, *model.Activity]
}

func (m *mockActivityRepo) GetByID(_ context.Context, id string) (*model.Activity, error) {
	return m.get(id)
}

func (m *mockActivityRepo) List(_ context.Context, studentID string, f repository.ListFilter) ([]model.Activity, error) {
	var out []model.Activity
	for _, a := range m.items {
		if a.StudentID == studentID && matches(a.TimeInterval, a.Status, f) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockActivityRepo) Count(ctx context.Context, studentID string, f repository.ListFilter) (int64, error) {
	list, _ := m.List(ctx, studentID, f)
	return int64(len(list)), nil
}

func (m *mockActivityRepo) SetStatus(_ context.Context, id string, status model.Status) error {
	if a, ok := m.items[id]; ok {
		a.Status = status
	}
	return nil
}

// ── Mock GoalScheduleRepository ──

type mockGoalScheduleRepo struct {
	*slotMock[model.GoalSchedule, *model.GoalSchedule]
}

func (m *mockGoalScheduleRepo) GetByID(_ context.Context, id string) (*model.GoalSchedule, error) {
	return m.get(id)
}

func (m *mockGoalScheduleRepo) List(_ context.Context, studentID, goalID string, f repository.ListFilter) ([]model.GoalSchedule, error) {
	var out []model.GoalSchedule
	for _, g := range m.items {
		if g.StudentID != studentID || (goalID != "" && g.GoalID != goalID) {
			continue
		}
		if matches(g.TimeInterval, g.Status, f) {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *mockGoalScheduleRepo) SetStatus(_ context.Context, id string, status model.Status) error {
	if g, ok := m.items[id]; ok {
		g.Status = status
	}
	return nil
}

// ── Mock GoalRepository ──

type mockGoalRepo struct {
	goals map[string]*model.Goal
	seq   int
	// onDelete 模拟外键级联
	onDelete func(goalID string)
}

func newMockGoalRepo() *mockGoalRepo {
	return &mockGoalRepo{goals: make(map[string]*model.Goal)}
}

func (m *mockGoalRepo) Create(_ context.Context, g *model.Goal) error {
	m.seq++
	g.GoalID = fmt.Sprintf("goal-%d", m.seq)
	cp := *g
	m.goals[g.GoalID] = &cp
	return nil
}

func (m *mockGoalRepo) GetByID(_ context.Context, id string) (*model.Goal, error) {
	g, ok := m.goals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *mockGoalRepo) List(_ context.Context, studentID string, f repository.GoalFilter) ([]model.Goal, error) {
	var out []model.Goal
	for _, g := range m.goals {
		if g.StudentID != studentID || (f.GoalType != "" && g.GoalType != f.GoalType) {
			continue
		}
		if f.SemesterID != "" && (g.SemesterID == nil || *g.SemesterID != f.SemesterID) {
			continue
		}
		out = append(out, *g)
	}
	return out, nil
}

func (m *mockGoalRepo) Count(ctx context.Context, studentID string, f repository.GoalFilter) (int64, error) {
	list, _ := m.List(ctx, studentID, f)
	return int64(len(list)), nil
}

func (m *mockGoalRepo) ExistsDuplicate(_ context.Context, g *model.Goal, excludeID string) (bool, error) {
	for id, e := range m.goals {
		if id == excludeID || e.StudentID != g.StudentID {
			continue
		}
		sameSem := (e.SemesterID == nil && g.SemesterID == nil) ||
			(e.SemesterID != nil && g.SemesterID != nil && *e.SemesterID == *g.SemesterID)
		if e.GoalName == g.GoalName && e.Timeframe == g.Timeframe && e.TargetHours == g.TargetHours && sameSem {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockGoalRepo) Update(_ context.Context, g *model.Goal) error {
	cp := *g
	m.goals[g.GoalID] = &cp
	return nil
}

func (m *mockGoalRepo) Delete(_ context.Context, id string) error {
	delete(m.goals, id)
	if m.onDelete != nil {
		m.onDelete(id)
	}
	return nil
}

// ── Mock SemesterRepository ──

type mockSemesterRepo struct {
	semesters map[string]*model.Semester
	order     []string
	seq       int
}

func newMockSemesterRepo() *mockSemesterRepo {
	return &mockSemesterRepo{semesters: make(map[string]*model.Semester)}
}

func (m *mockSemesterRepo) Create(_ context.Context, s *model.Semester) error {
	m.seq++
	s.SemesterID = fmt.Sprintf("sem-%d", m.seq)
	cp := *s
	m.semesters[s.SemesterID] = &cp
	m.order = append(m.order, s.SemesterID)
	return nil
}

func (m *mockSemesterRepo) GetByID(_ context.Context, id string) (*model.Semester, error) {
	s, ok := m.semesters[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockSemesterRepo) List(_ context.Context, studentID string, _ repository.SemesterFilter) ([]model.Semester, error) {
	var out []model.Semester
	for _, id := range m.order {
		if s, ok := m.semesters[id]; ok && s.StudentID == studentID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockSemesterRepo) ExistsDuplicate(_ context.Context, s *model.Semester, excludeID string) (bool, error) {
	for id, e := range m.semesters {
		if id != excludeID && e.StudentID == s.StudentID && e.AcadYearStart == s.AcadYearStart &&
			e.AcadYearEnd == s.AcadYearEnd && e.YearLevel == s.YearLevel && e.Term == s.Term {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSemesterRepo) Current(_ context.Context, studentID string, today time.Time) (*model.Semester, error) {
	var best *model.Semester
	for _, s := range m.semesters {
		if s.StudentID != studentID || s.SemStartDate.After(today) {
			continue
		}
		if best == nil || s.SemStartDate.After(best.SemStartDate) {
			best = s
		}
	}
	if best == nil {
		for i := len(m.order) - 1; i >= 0; i-- {
			if s, ok := m.semesters[m.order[i]]; ok && s.StudentID == studentID {
				best = s
				break
			}
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *best
	return &cp, nil
}

func (m *mockSemesterRepo) Update(_ context.Context, s *model.Semester) error {
	cp := *s
	m.semesters[s.SemesterID] = &cp
	return nil
}

func (m *mockSemesterRepo) Delete(_ context.Context, id string) error {
	delete(m.semesters, id)
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
	seq      int
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) GetOrCreate(_ context.Context, s *model.Subject) (*model.Subject, error) {
	for _, existing := range m.subjects {
		if existing.StudentID == s.StudentID && existing.SemesterID == s.SemesterID && existing.SubjectCode == s.SubjectCode {
			return existing, nil
		}
	}
	m.seq++
	s.SubjectID = fmt.Sprintf("subject-%d", m.seq)
	cp := *s
	m.subjects[s.SubjectID] = &cp
	return s, nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) GetByCode(_ context.Context, studentID, code string) (*model.Subject, error) {
	for _, s := range m.subjects {
		if s.StudentID == studentID && s.SubjectCode == code {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context, studentID, semesterID string) ([]model.Subject, error) {
	var out []model.Subject
	for _, s := range m.subjects {
		if s.StudentID == studentID && (semesterID == "" || s.SemesterID == semesterID) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockSubjectRepo) ExistsCode(_ context.Context, studentID, semesterID, code, excludeID string) (bool, error) {
	for id, s := range m.subjects {
		if id != excludeID && s.StudentID == studentID && s.SemesterID == semesterID && s.SubjectCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, s *model.Subject) error {
	cp := *s
	m.subjects[s.SubjectID] = &cp
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string) error {
	delete(m.subjects, id)
	return nil
}

// ── Mock ClassScheduleRepository ──

type mockClassRepo struct {
	classes  map[string]*model.ClassSchedule
	subjects *mockSubjectRepo
	seq      int
}

func newMockClassRepo(subjects *mockSubjectRepo) *mockClassRepo {
	return &mockClassRepo{classes: make(map[string]*model.ClassSchedule), subjects: subjects}
}

func (m *mockClassRepo) Create(_ context.Context, cs *model.ClassSchedule) error {
	m.seq++
	cs.ClassSchedID = fmt.Sprintf("class-%d", m.seq)
	cp := *cs
	cp.Subject = nil
	m.classes[cs.ClassSchedID] = &cp
	return nil
}

func (m *mockClassRepo) GetByID(_ context.Context, id string) (*model.ClassSchedule, error) {
	cs, ok := m.classes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *cs
	if s, ok := m.subjects.subjects[cs.SubjectID]; ok {
		subj := *s
		cp.Subject = &subj
	}
	return &cp, nil
}

func (m *mockClassRepo) List(ctx context.Context, studentID, semesterID string) ([]model.ClassSchedule, error) {
	var out []model.ClassSchedule
	for id, c := range m.classes {
		if c.StudentID != studentID {
			continue
		}
		full, _ := m.GetByID(ctx, id)
		if semesterID != "" && (full.Subject == nil || full.Subject.SemesterID != semesterID) {
			continue
		}
		out = append(out, *full)
	}
	return out, nil
}

func (m *mockClassRepo) ExistsTemplate(_ context.Context, cs *model.ClassSchedule, excludeID string) (bool, error) {
	for id, c := range m.classes {
		if id != excludeID && c.StudentID == cs.StudentID && c.SubjectID == cs.SubjectID &&
			c.DayOfWeek == cs.DayOfWeek && c.StartTime == cs.StartTime && c.EndTime == cs.EndTime {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockClassRepo) CountBySubject(_ context.Context, studentID, subjectID string) (int64, error) {
	var n int64
	for _, c := range m.classes {
		if c.StudentID == studentID && c.SubjectID == subjectID {
			n++
		}
	}
	return n, nil
}

func (m *mockClassRepo) CountBySemester(_ context.Context, studentID, semesterID string) (int64, error) {
	var n int64
	for _, c := range m.classes {
		s, ok := m.subjects.subjects[c.SubjectID]
		if c.StudentID == studentID && ok && s.SemesterID == semesterID {
			n++
		}
	}
	return n, nil
}

func (m *mockClassRepo) Update(_ context.Context, cs *model.ClassSchedule) error {
	cp := *cs
	cp.Subject = nil
	m.classes[cs.ClassSchedID] = &cp
	return nil
}

func (m *mockClassRepo) Delete(_ context.Context, id string) error {
	delete(m.classes, id)
	return nil
}

// ── Mock ScheduleEntryRepository ──

type mockEntryRepo struct {
	entries []model.ScheduleEntry
	seq     int
	alive   func(model.EntryRef) bool
}

func (m *mockEntryRepo) LockOwner(_ context.Context, _ string) error { return nil }

func (m *mockEntryRepo) FirstOverlap(_ context.Context, studentID string, iv model.TimeInterval, exclude *model.EntryRef) (*model.ScheduleEntry, error) {
	for i := range m.entries {
		e := m.entries[i]
		if e.StudentID != studentID || (exclude != nil && e.Ref() == *exclude) {
			continue
		}
		if e.TimeInterval.Overlaps(iv) {
			return &e, nil
		}
	}
	return nil, nil
}

func (m *mockEntryRepo) Create(_ context.Context, entry *model.ScheduleEntry) error {
	m.seq++
	entry.EntryID = fmt.Sprintf("entry-%d", m.seq)
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockEntryRepo) CreateBatch(ctx context.Context, entries []model.ScheduleEntry) error {
	for i := range entries {
		if err := m.Create(ctx, &entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockEntryRepo) UpdateInterval(_ context.Context, ref model.EntryRef, studentID string, iv model.TimeInterval) (int64, error) {
	var n int64
	for i := range m.entries {
		if m.entries[i].Ref() == ref && m.entries[i].StudentID == studentID {
			m.entries[i].TimeInterval = iv
			n++
		}
	}
	return n, nil
}

func (m *mockEntryRepo) DeleteByRef(_ context.Context, ref model.EntryRef, studentID string) (int64, error) {
	return m.removeWhere(func(e model.ScheduleEntry) bool {
		return e.Ref() == ref && e.StudentID == studentID
	}), nil
}

func (m *mockEntryRepo) ListByRef(_ context.Context, ref model.EntryRef, studentID string) ([]model.ScheduleEntry, error) {
	var out []model.ScheduleEntry
	for _, e := range m.entries {
		if e.Ref() == ref && e.StudentID == studentID {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out, nil
}

func (m *mockEntryRepo) List(_ context.Context, studentID string, f repository.EntryFilter) ([]model.ScheduleEntry, error) {
	var out []model.ScheduleEntry
	for _, e := range m.entries {
		if e.StudentID != studentID || (f.Category != "" && e.CategoryType != f.Category) {
			continue
		}
		if f.DateFrom != nil && e.ScheduledDate.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && e.ScheduledDate.After(*f.DateTo) {
			continue
		}
		out = append(out, e)
	}
	sortEntries(out)
	return out, nil
}

func (m *mockEntryRepo) PruneOrphans(_ context.Context, studentID string) (int64, error) {
	return m.removeWhere(func(e model.ScheduleEntry) bool {
		return e.StudentID == studentID && m.alive != nil && !m.alive(e.Ref())
	}), nil
}

func (m *mockEntryRepo) removeWhere(pred func(model.ScheduleEntry) bool) int64 {
	kept := m.entries[:0]
	var n int64
	for _, e := range m.entries {
		if pred(e) {
			n++
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	return n
}

func (m *mockEntryRepo) countRef(ref model.EntryRef) int {
	n := 0
	for _, e := range m.entries {
		if e.Ref() == ref {
			n++
		}
	}
	return n
}

func sortEntries(list []model.ScheduleEntry) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].ScheduledDate.Equal(list[j].ScheduledDate) {
			return list[i].ScheduledDate.Before(list[j].ScheduledDate)
		}
		return list[i].StartTime < list[j].StartTime
	})
}

// ── Mock TimeLogRepository ──

type mockTimeLogRepo struct {
	taskLogs     []model.TaskTimeLog
	activityLogs []model.ActivityTimeLog
	progress     []model.GoalProgress
}

func (m *mockTimeLogRepo) CreateTaskLog(_ context.Context, l *model.TaskTimeLog) error {
	l.TaskLogID = fmt.Sprintf("tasklog-%d", len(m.taskLogs)+1)
	m.taskLogs = append(m.taskLogs, *l)
	return nil
}

func (m *mockTimeLogRepo) ExistsTaskLog(_ context.Context, taskID string, date time.Time) (bool, error) {
	for _, l := range m.taskLogs {
		if l.TaskID == taskID && l.DateLogged.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTimeLogRepo) ListTaskLogs(_ context.Context, studentID string, _ repository.DateRange) ([]model.TaskTimeLog, error) {
	var out []model.TaskTimeLog
	for _, l := range m.taskLogs {
		if l.StudentID == studentID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockTimeLogRepo) CreateActivityLog(_ context.Context, l *model.ActivityTimeLog) error {
	l.ActivityLogID = fmt.Sprintf("activitylog-%d", len(m.activityLogs)+1)
	m.activityLogs = append(m.activityLogs, *l)
	return nil
}

func (m *mockTimeLogRepo) ExistsActivityLog(_ context.Context, activityID string, date time.Time) (bool, error) {
	for _, l := range m.activityLogs {
		if l.ActivityID == activityID && l.DateLogged.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTimeLogRepo) ListActivityLogs(_ context.Context, studentID string, _ repository.DateRange) ([]model.ActivityTimeLog, error) {
	var out []model.ActivityTimeLog
	for _, l := range m.activityLogs {
		if l.StudentID == studentID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockTimeLogRepo) CreateGoalProgress(_ context.Context, p *model.GoalProgress) error {
	p.GoalProgressID = fmt.Sprintf("progress-%d", len(m.progress)+1)
	m.progress = append(m.progress, *p)
	return nil
}

func (m *mockTimeLogRepo) ExistsGoalProgress(_ context.Context, goalScheduleID string, date time.Time) (bool, error) {
	for _, p := range m.progress {
		if p.GoalScheduleID == goalScheduleID && p.SessionDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTimeLogRepo) ListGoalProgress(_ context.Context, studentID string, _ repository.DateRange) ([]model.GoalProgress, error) {
	var out []model.GoalProgress
	for _, p := range m.progress {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ── Mock SleepLogRepository ──

type mockSleepLogRepo struct {
	logs []model.SleepLog
}

func (m *mockSleepLogRepo) Create(_ context.Context, l *model.SleepLog) error {
	l.SleepLogID = fmt.Sprintf("sleep-%d", len(m.logs)+1)
	m.logs = append(m.logs, *l)
	return nil
}

func (m *mockSleepLogRepo) List(_ context.Context, studentID string, _ repository.DateRange) ([]model.SleepLog, error) {
	var out []model.SleepLog
	for _, l := range m.logs {
		if l.StudentID == studentID {
			out = append(out, l)
		}
	}
	return out, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	events  map[string]*model.AttendedEvent
	classes map[string]*model.AttendedClass // key: classsched_id|date
	seq     int
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{
		events:  make(map[string]*model.AttendedEvent),
		classes: make(map[string]*model.AttendedClass),
	}
}

func (m *mockAttendanceRepo) GetEventAttendance(_ context.Context, eventID, studentID string) (*model.AttendedEvent, error) {
	for _, a := range m.events {
		if a.EventID == eventID && a.StudentID == studentID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) GetEventAttendanceByID(_ context.Context, id string) (*model.AttendedEvent, error) {
	if a, ok := m.events[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) SaveEventAttendance(_ context.Context, a *model.AttendedEvent) error {
	if a.AttEventsID == "" {
		m.seq++
		a.AttEventsID = fmt.Sprintf("att-%d", m.seq)
	}
	cp := *a
	m.events[a.AttEventsID] = &cp
	return nil
}

func (m *mockAttendanceRepo) ListEventAttendance(_ context.Context, studentID string, _ repository.DateRange) ([]model.AttendedEvent, error) {
	var out []model.AttendedEvent
	for _, a := range m.events {
		if a.StudentID == studentID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepo) UpsertClassAttendance(_ context.Context, a *model.AttendedClass) error {
	key := a.ClassSchedID + "|" + a.AttendanceDate.Format(model.DateLayout)
	if existing, ok := m.classes[key]; ok {
		existing.Status = a.Status
		a.AttendanceID = existing.AttendanceID
		return nil
	}
	m.seq++
	a.AttendanceID = fmt.Sprintf("attc-%d", m.seq)
	cp := *a
	m.classes[key] = &cp
	return nil
}

func (m *mockAttendanceRepo) ListClassAttendance(_ context.Context, studentID, classSchedID string, _ repository.DateRange) ([]model.AttendedClass, error) {
	var out []model.AttendedClass
	for _, a := range m.classes {
		if a.StudentID == studentID && (classSchedID == "" || a.ClassSchedID == classSchedID) {
			out = append(out, *a)
		}
	}
	return out, nil
}

// ── Mock UserPrefRepository / PushTokenRepository ──

type mockUserPrefRepo struct {
	prefs map[string]*model.UserPref
	seq   int
}

func newMockUserPrefRepo() *mockUserPrefRepo {
	return &mockUserPrefRepo{prefs: make(map[string]*model.UserPref)}
}

func (m *mockUserPrefRepo) Create(_ context.Context, p *model.UserPref) error {
	m.seq++
	p.PrefID = fmt.Sprintf("pref-%d", m.seq)
	cp := *p
	m.prefs[p.PrefID] = &cp
	return nil
}

func (m *mockUserPrefRepo) GetByID(_ context.Context, id string) (*model.UserPref, error) {
	if p, ok := m.prefs[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserPrefRepo) GetByStudent(_ context.Context, studentID string) (*model.UserPref, error) {
	for _, p := range m.prefs {
		if p.StudentID == studentID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserPrefRepo) Update(_ context.Context, p *model.UserPref) error {
	cp := *p
	m.prefs[p.PrefID] = &cp
	return nil
}

func (m *mockUserPrefRepo) Delete(_ context.Context, id string) error {
	delete(m.prefs, id)
	return nil
}

type mockPushTokenRepo struct {
	tokens map[string]*model.PushToken // key: student_id
}

func (m *mockPushTokenRepo) Upsert(_ context.Context, t *model.PushToken) error {
	if existing, ok := m.tokens[t.StudentID]; ok {
		existing.Token = t.Token
		t.TokenID = existing.TokenID
		return nil
	}
	t.TokenID = "token-" + t.StudentID
	cp := *t
	m.tokens[t.StudentID] = &cp
	return nil
}

func (m *mockPushTokenRepo) GetByStudent(_ context.Context, studentID string) (*model.PushToken, error) {
	if t, ok := m.tokens[studentID]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock KVStore ──

type mockKV struct {
	cache     map[string][]byte
	blacklist map[string]time.Duration
	queues    map[string][][]byte
	gets      int
}

func newMockKV() *mockKV {
	return &mockKV{
		cache:     make(map[string][]byte),
		blacklist: make(map[string]time.Duration),
		queues:    make(map[string][][]byte),
	}
}

func (m *mockKV) GetCache(_ context.Context, key string) ([]byte, error) {
	m.gets++
	b, ok := m.cache[key]
	if !ok {
		return nil, fmt.Errorf("miss")
	}
	return b, nil
}

func (m *mockKV) SetCache(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.cache[key] = value
	return nil
}

func (m *mockKV) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.blacklist[jti] = ttl
	return nil
}

func (m *mockKV) Enqueue(_ context.Context, queue string, payload []byte) error {
	m.queues[queue] = append(m.queues[queue], payload)
	return nil
}
