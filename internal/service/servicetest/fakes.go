// Package servicetest provides in-memory repositories for service and
// handler tests. Identifier columns are matched on their exact text form,
// the same way the PostgreSQL repositories compare id::text.
package servicetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/identifier"
)

// Tx runs fn directly and counts transactions.
type Tx struct {
	mu    sync.Mutex
	Calls int
}

func (t *Tx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.Calls++
	t.mu.Unlock()
	return fn(ctx)
}

// ========================================
// EMPLOYEES
// ========================================

type EmployeeRepo struct {
	mu   sync.Mutex
	rows []employee.Employee
	seq  int

	// LookupErr, when set, is returned by every single-row lookup.
	LookupErr error
}

func NewEmployeeRepo(rows ...employee.Employee) *EmployeeRepo {
	return &EmployeeRepo{rows: rows}
}

// Add stores e and returns it.
func (r *EmployeeRepo) Add(e employee.Employee) employee.Employee {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, e)
	return e
}

// NameOf returns the name of the employee stored under id, "" if none.
func (r *EmployeeRepo) NameOf(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.rows {
		if e.ID == id {
			return e.Name
		}
	}
	return ""
}

func (r *EmployeeRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *EmployeeRepo) first(match func(employee.Employee) bool) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LookupErr != nil {
		return employee.Employee{}, r.LookupErr
	}
	for _, e := range r.rows {
		if match(e) {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *EmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	variants := identifier.Variants(id)
	return r.first(func(e employee.Employee) bool { return contains(variants, e.ID) })
}

func (r *EmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	return r.first(func(e employee.Employee) bool { return e.UserID != nil && *e.UserID == userID })
}

func (r *EmployeeRepo) GetByContact(_ context.Context, contact string) (employee.Employee, error) {
	contact = strings.TrimSpace(contact)
	return r.first(func(e employee.Employee) bool { return strings.EqualFold(e.Contact, contact) })
}

func (r *EmployeeRepo) GetByName(_ context.Context, name string) (employee.Employee, error) {
	name = strings.TrimSpace(name)
	return r.first(func(e employee.Employee) bool { return strings.EqualFold(e.Name, name) })
}

func (r *EmployeeRepo) FindIDByUserIDVariants(_ context.Context, variants []string) (string, error) {
	e, err := r.first(func(e employee.Employee) bool { return e.UserID != nil && contains(variants, *e.UserID) })
	return e.ID, err
}

func (r *EmployeeRepo) FindIDByContact(ctx context.Context, contact string) (string, error) {
	e, err := r.GetByContact(ctx, contact)
	return e.ID, err
}

func (r *EmployeeRepo) FindIDByName(ctx context.Context, name string) (string, error) {
	e, err := r.GetByName(ctx, name)
	return e.ID, err
}

func (r *EmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if filter.Scope.None {
		return []employee.Employee{}, 0, nil
	}

	matched := []employee.Employee{}
	for _, e := range r.rows {
		if !filter.Scope.Matches(e) {
			continue
		}
		if filter.Search != nil && *filter.Search != "" {
			s := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(e.Name), s) &&
				!strings.Contains(strings.ToLower(e.Position), s) &&
				!strings.Contains(strings.ToLower(e.Contact), s) {
				continue
			}
		}
		if filter.Status != nil && *filter.Status != "" && string(e.Status) != *filter.Status {
			continue
		}
		matched = append(matched, e)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	limit, page := filter.Limit, filter.Page
	if limit <= 0 {
		limit = employee.DefaultPageLimit
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *EmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == "" {
		r.seq++
		e.ID = fmt.Sprintf("emp-new-%d", r.seq)
	}
	r.rows = append(r.rows, e)
	return e, nil
}

func (r *EmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == e.ID {
			r.rows[i] = e
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *EmployeeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}

// ========================================
// ATTENDANCE
// ========================================

type AttendanceRepo struct {
	mu        sync.Mutex
	rows      []attendance.Record
	seq       int
	employees *EmployeeRepo
}

func NewAttendanceRepo(employees *EmployeeRepo, rows ...attendance.Record) *AttendanceRepo {
	return &AttendanceRepo{employees: employees, rows: rows}
}

// All returns every stored record.
func (r *AttendanceRepo) All() []attendance.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]attendance.Record(nil), r.rows...)
}

func (r *AttendanceRepo) join(rec attendance.Record) attendance.Record {
	if r.employees != nil {
		rec.EmployeeName = r.employees.NameOf(rec.EmployeeID)
	}
	return rec
}

func (r *AttendanceRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.rows {
		if rec.ID == id {
			return r.join(rec), nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (r *AttendanceRepo) GetOrCreate(_ context.Context, rec attendance.Record) (attendance.Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.EmployeeID == rec.EmployeeID && existing.Date.Equal(rec.Date) {
			return r.join(existing), false, nil
		}
	}
	r.seq++
	rec.ID = fmt.Sprintf("att-%d", r.seq)
	r.rows = append(r.rows, rec)
	return r.join(rec), true, nil
}

func (r *AttendanceRepo) Update(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == rec.ID {
			r.rows[i] = rec
			return r.join(rec), nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (r *AttendanceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (r *AttendanceRepo) List(_ context.Context, filter attendance.ListFilter) ([]attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []attendance.Record{}
	for _, rec := range r.rows {
		if filter.EmployeeIDs != nil && !contains(filter.EmployeeIDs, rec.EmployeeID) {
			continue
		}
		if filter.From != nil && rec.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && rec.Date.After(*filter.To) {
			continue
		}
		if filter.Status != nil && rec.Status != *filter.Status {
			continue
		}
		out = append(out, r.join(rec))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		if out[i].EmployeeName != out[j].EmployeeName {
			return out[i].EmployeeName < out[j].EmployeeName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ========================================
// LEAVE
// ========================================

type LeaveRepo struct {
	mu        sync.Mutex
	rows      []leave.Record
	seq       int
	employees *EmployeeRepo
}

func NewLeaveRepo(employees *EmployeeRepo, rows ...leave.Record) *LeaveRepo {
	return &LeaveRepo{employees: employees, rows: rows}
}

func (r *LeaveRepo) All() []leave.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]leave.Record(nil), r.rows...)
}

func (r *LeaveRepo) join(rec leave.Record) leave.Record {
	if r.employees != nil {
		rec.EmployeeName = r.employees.NameOf(rec.EmployeeID)
	}
	return rec
}

func (r *LeaveRepo) GetByID(_ context.Context, id string) (leave.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.rows {
		if rec.ID == id {
			return r.join(rec), nil
		}
	}
	return leave.Record{}, leave.ErrLeaveRequestNotFound
}

func (r *LeaveRepo) Create(_ context.Context, rec leave.Record) (leave.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	rec.ID = fmt.Sprintf("leave-%d", r.seq)
	r.rows = append(r.rows, rec)
	return r.join(rec), nil
}

func (r *LeaveRepo) Update(_ context.Context, rec leave.Record) (leave.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == rec.ID {
			r.rows[i] = rec
			return r.join(rec), nil
		}
	}
	return leave.Record{}, leave.ErrLeaveRequestNotFound
}

func (r *LeaveRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return leave.ErrLeaveRequestNotFound
}

func (r *LeaveRepo) List(_ context.Context, filter leave.ListFilter) ([]leave.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []leave.Record{}
	for _, rec := range r.rows {
		if filter.EmployeeIDs != nil && !contains(filter.EmployeeIDs, rec.EmployeeID) {
			continue
		}
		if filter.Status != nil && rec.Status != *filter.Status {
			continue
		}
		if filter.Type != nil && rec.Type != *filter.Type {
			continue
		}
		out = append(out, r.join(rec))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		if out[i].EmployeeName != out[j].EmployeeName {
			return out[i].EmployeeName < out[j].EmployeeName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ========================================
// SCHEDULE
// ========================================

type ScheduleRepo struct {
	mu        sync.Mutex
	rows      []schedule.Entry
	seq       int
	employees *EmployeeRepo
}

func NewScheduleRepo(employees *EmployeeRepo, rows ...schedule.Entry) *ScheduleRepo {
	return &ScheduleRepo{employees: employees, rows: rows}
}

func (r *ScheduleRepo) All() []schedule.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]schedule.Entry(nil), r.rows...)
}

func (r *ScheduleRepo) join(e schedule.Entry) schedule.Entry {
	if r.employees != nil {
		e.EmployeeName = r.employees.NameOf(e.EmployeeID)
	}
	return e
}

func (r *ScheduleRepo) GetByID(_ context.Context, id string) (schedule.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.rows {
		if e.ID == id {
			return r.join(e), nil
		}
	}
	return schedule.Entry{}, schedule.ErrScheduleEntryNotFound
}

func (r *ScheduleRepo) Create(_ context.Context, e schedule.Entry) (schedule.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	e.ID = fmt.Sprintf("sched-%d", r.seq)
	r.rows = append(r.rows, e)
	return r.join(e), nil
}

func (r *ScheduleRepo) Update(_ context.Context, e schedule.Entry) (schedule.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == e.ID {
			r.rows[i] = e
			return r.join(e), nil
		}
	}
	return schedule.Entry{}, schedule.ErrScheduleEntryNotFound
}

func (r *ScheduleRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return schedule.ErrScheduleEntryNotFound
}

func (r *ScheduleRepo) List(_ context.Context, filter schedule.ListFilter) ([]schedule.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []schedule.Entry{}
	for _, e := range r.rows {
		if filter.EmployeeIDs != nil && !contains(filter.EmployeeIDs, e.EmployeeID) {
			continue
		}
		if filter.Day != nil && e.Day != *filter.Day {
			continue
		}
		out = append(out, r.join(e))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EmployeeName != out[j].EmployeeName {
			return out[i].EmployeeName < out[j].EmployeeName
		}
		if di, dj := dayIndex(out[i].Day), dayIndex(out[j].Day); di != dj {
			return di < dj
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func dayIndex(d schedule.Day) int {
	for i, v := range schedule.Days {
		if v == d {
			return i
		}
	}
	return len(schedule.Days)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
