package scheduling

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/jakkusu1/planma-app/internal/model"
	"github.com/jakkusu1/planma-app/internal/repository"
)

// ── 串行化事务：模拟 pg_advisory_xact_lock ──

type serialTx struct {
	mu   sync.Mutex
	repo *repository.Repository
}

func (t *serialTx) Transaction(_ context.Context, fn func(*repository.Repository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.repo)
}

// ── Mock ScheduleEntryRepository ──

type mockEntryRepo struct {
	mu      sync.Mutex
	entries []model.ScheduleEntry
	locks   int
	seq     int
}

func (m *mockEntryRepo) LockOwner(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks++
	return nil
}

func (m *mockEntryRepo) FirstOverlap(_ context.Context, studentID string, iv model.TimeInterval, exclude *model.EntryRef) (*model.ScheduleEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		e := m.entries[i]
		if e.StudentID != studentID {
			continue
		}
		if exclude != nil && e.Ref() == *exclude {
			continue
		}
		if e.TimeInterval.Overlaps(iv) {
			return &e, nil
		}
	}
	return nil, nil
}

func (m *mockEntryRepo) Create(_ context.Context, entry *model.ScheduleEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
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
	m.mu.Lock()
	defer m.mu.Unlock()
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
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.entries[:0]
	var n int64
	for _, e := range m.entries {
		if e.Ref() == ref && e.StudentID == studentID {
			n++
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	return n, nil
}

func (m *mockEntryRepo) ListByRef(_ context.Context, ref model.EntryRef, studentID string) ([]model.ScheduleEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ScheduleEntry
	for _, e := range m.entries {
		if e.Ref() == ref && e.StudentID == studentID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out, nil
}

func (m *mockEntryRepo) List(_ context.Context, studentID string, f repository.EntryFilter) ([]model.ScheduleEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ScheduleEntry
	for _, e := range m.entries {
		if e.StudentID != studentID {
			continue
		}
		if f.Category != "" && e.CategoryType != f.Category {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEntryRepo) PruneOrphans(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

func (m *mockEntryRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]*model.Task
	seq   int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) ExistsSlot(_ context.Context, studentID string, iv model.TimeInterval, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.tasks {
		if id != excludeID && t.StudentID == studentID && t.TimeInterval.Equals(iv) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTaskRepo) Create(_ context.Context, t *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t.TaskID = fmt.Sprintf("task-%d", m.seq)
	cp := *t
	m.tasks[t.TaskID] = &cp
	return nil
}

func (m *mockTaskRepo) Update(_ context.Context, t *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.tasks[t.TaskID] = &cp
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) List(_ context.Context, _ string, _ repository.ListFilter) ([]model.Task, error) {
	return nil, nil
}

func (m *mockTaskRepo) Count(_ context.Context, _ string, _ repository.ListFilter) (int64, error) {
	return int64(len(m.tasks)), nil
}

func (m *mockTaskRepo) SetStatus(_ context.Context, id string, status model.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		t.Status = status
	}
	return nil
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	events map[string]*model.Event
	seq    int
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*model.Event)}
}

func (m *mockEventRepo) ExistsSlot(_ context.Context, studentID string, iv model.TimeInterval, excludeID string) (bool, error) {
	for id, e := range m.events {
		if id != excludeID && e.StudentID == studentID && e.TimeInterval.Equals(iv) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEventRepo) Create(_ context.Context, e *model.Event) error {
	m.seq++
	e.EventID = fmt.Sprintf("event-%d", m.seq)
	cp := *e
	m.events[e.EventID] = &cp
	return nil
}

func (m *mockEventRepo) Update(_ context.Context, e *model.Event) error {
	cp := *e
	m.events[e.EventID] = &cp
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string) error {
	delete(m.events, id)
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) List(_ context.Context, _ string, _ repository.ListFilter) ([]model.Event, error) {
	return nil, nil
}

func (m *mockEventRepo) Count(_ context.Context, _ string, _ repository.ListFilter) (int64, error) {
	return int64(len(m.events)), nil
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
	m.subjects[s.SubjectID] = s
	return s, nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) GetByCode(_ context.Context, studentID, code string) (*model.Subject, error) {
	for _, s := range m.subjects {
		if s.StudentID == studentID && s.SubjectCode == code {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context, _, _ string) ([]model.Subject, error) {
	return nil, nil
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
	m.subjects[s.SubjectID] = s
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
	m.classes[cs.ClassSchedID] = &cp
	return nil
}

func (m *mockClassRepo) GetByID(_ context.Context, id string) (*model.ClassSchedule, error) {
	cs, ok := m.classes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *cs
	cp.Subject = m.subjects.subjects[cs.SubjectID]
	return &cp, nil
}

func (m *mockClassRepo) List(_ context.Context, _, _ string) ([]model.ClassSchedule, error) {
	return nil, nil
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

func (m *mockClassRepo) CountBySemester(_ context.Context, _, _ string) (int64, error) {
	return int64(len(m.classes)), nil
}

func (m *mockClassRepo) Update(_ context.Context, cs *model.ClassSchedule) error {
	cp := *cs
	m.classes[cs.ClassSchedID] = &cp
	return nil
}

func (m *mockClassRepo) Delete(_ context.Context, id string) error {
	delete(m.classes, id)
	return nil
}
