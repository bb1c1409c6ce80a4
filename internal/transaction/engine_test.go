// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transaction

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jeranaias/campus-nexus/internal/dataset"
	"github.com/jeranaias/campus-nexus/internal/model"
)

func fixedClock(hour, min int) func() time.Time {
	return func() time.Time {
		return time.Date(2024, 3, 15, hour, min, 0, 0, time.UTC)
	}
}

func newTestEngine(opts ...Option) (*Engine, *dataset.Store) {
	store := dataset.NewStore(model.Dataset{
		Employees: []model.Employee{
			{ID: "e1", NIK: "PEG001", Name: "Agus Wijaya", Position: "Staf Keuangan"},
		},
	})
	opts = append([]Option{WithClock(fixedClock(8, 0))}, opts...)
	return NewEngine(store, nil, opts...), store
}

func employee(nik string) *model.UserSession {
	return &model.UserSession{ID: "sess-1", Role: model.RoleEmployee, Name: "Agus", Identifier: nik}
}

func TestNilCallerRejected(t *testing.T) {
	engine, _ := newTestEngine()

	for _, action := range []Action{ActionClockIn, ActionClockOut, ActionUpdateProfile} {
		res := engine.Execute(action, nil, nil)
		if res.Status != StatusError {
			t.Errorf("%s accepted nil caller", action)
		}
		if !strings.Contains(res.Message, "logged in") {
			t.Errorf("%s message = %q", action, res.Message)
		}
	}
}

func TestStudentCannotClockIn(t *testing.T) {
	engine, _ := newTestEngine()
	student := &model.UserSession{ID: "s", Role: model.RoleStudent, Identifier: "2024001"}

	res := engine.Execute(ActionClockIn, nil, student)
	if res.Status != StatusError || res.Message != "only staff may clock in" {
		t.Errorf("Unexpected result: %+v", res)
	}
}

func TestClockInCreatesRecord(t *testing.T) {
	engine, store := newTestEngine()

	res := engine.Execute(ActionClockIn, nil, employee("PEG001"))
	if res.Status != StatusSuccess {
		t.Fatalf("ClockIn failed: %s", res.Message)
	}
	if res.Data["check_in"] != "08:00" || res.Data["check_out"] != model.TimeSentinel {
		t.Errorf("Record wrong: %v", res.Data)
	}
	if res.Data["status"] != model.AttendancePresent {
		t.Errorf("Status = %v, want %s", res.Data["status"], model.AttendancePresent)
	}

	rec, ok := store.AttendanceFor("PEG001", "2024-03-15")
	if !ok {
		t.Fatal("Record not stored")
	}
	if rec.ID == "" {
		t.Error("Record missing ID")
	}
}

func TestDoubleClockInRejected(t *testing.T) {
	engine, store := newTestEngine()

	if res := engine.Execute(ActionClockIn, nil, employee("PEG001")); res.Status != StatusSuccess {
		t.Fatalf("First ClockIn failed: %s", res.Message)
	}
	res := engine.Execute(ActionClockIn, nil, employee("PEG001"))
	if res.Status != StatusError {
		t.Fatal("Second ClockIn accepted")
	}
	if !strings.Contains(res.Message, "08:00") {
		t.Errorf("Message should reference original check-in: %q", res.Message)
	}
	if store.AttendanceCount() != 1 {
		t.Errorf("Attendance rows = %d, want 1", store.AttendanceCount())
	}
}

func TestConcurrentClockInCreatesOneRecord(t *testing.T) {
	engine, store := newTestEngine()

	var wg sync.WaitGroup
	successes := make(chan Result, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if res := engine.Execute(ActionClockIn, nil, employee("PEG001")); res.Status == StatusSuccess {
				successes <- res
			}
		}()
	}
	wg.Wait()
	close(successes)

	var won int
	for range successes {
		won++
	}
	if won != 1 {
		t.Errorf("Successful clock-ins = %d, want 1", won)
	}
	if store.AttendanceCount() != 1 {
		t.Errorf("Attendance rows = %d, want 1", store.AttendanceCount())
	}
}

func TestClockOutWithoutClockIn(t *testing.T) {
	engine, _ := newTestEngine()

	res := engine.Execute(ActionClockOut, nil, employee("PEG001"))
	if res.Status != StatusError || res.Message != "must clock in first" {
		t.Errorf("Unexpected result: %+v", res)
	}
}

func TestClockOutStampsRecord(t *testing.T) {
	engine, store := newTestEngine()

	engine.Execute(ActionClockIn, nil, employee("PEG001"))
	engine.now = fixedClock(17, 30)

	res := engine.Execute(ActionClockOut, nil, employee("PEG001"))
	if res.Status != StatusSuccess {
		t.Fatalf("ClockOut failed: %s", res.Message)
	}
	if res.Data["check_out"] != "17:30" {
		t.Errorf("check_out = %v, want 17:30", res.Data["check_out"])
	}

	rec, _ := store.AttendanceFor("PEG001", "2024-03-15")
	if rec.CheckOut != "17:30" {
		t.Errorf("Stored check_out = %s", rec.CheckOut)
	}
	if rec.CheckIn != "08:00" {
		t.Errorf("check_in clobbered: %s", rec.CheckIn)
	}
}

func TestDoubleClockOutRejected(t *testing.T) {
	engine, _ := newTestEngine()

	engine.Execute(ActionClockIn, nil, employee("PEG001"))
	engine.now = fixedClock(17, 30)
	engine.Execute(ActionClockOut, nil, employee("PEG001"))

	res := engine.Execute(ActionClockOut, nil, employee("PEG001"))
	if res.Status != StatusError || !strings.Contains(res.Message, "17:30") {
		t.Errorf("Unexpected result: %+v", res)
	}
}

func TestClockInIsPerIdentity(t *testing.T) {
	engine, store := newTestEngine()

	if res := engine.Execute(ActionClockIn, nil, employee("PEG001")); res.Status != StatusSuccess {
		t.Fatalf("PEG001 failed: %s", res.Message)
	}
	if res := engine.Execute(ActionClockIn, nil, employee("PEG002")); res.Status != StatusSuccess {
		t.Fatalf("PEG002 failed: %s", res.Message)
	}
	if store.AttendanceCount() != 2 {
		t.Errorf("Attendance rows = %d, want 2", store.AttendanceCount())
	}
}

func TestUpdateProfileAcknowledged(t *testing.T) {
	engine, store := newTestEngine()

	res := engine.Execute(ActionUpdateProfile, map[string]any{"email": "new@univ.ac.id"}, employee("PEG001"))
	if res.Status != StatusSuccess {
		t.Fatalf("UpdateProfile failed: %s", res.Message)
	}

	// No mutation: the employee record is untouched.
	emp, _ := store.EmployeeByNIK("PEG001")
	if emp.Email != "" {
		t.Errorf("Profile mutated: %+v", emp)
	}
}

func TestUnknownAction(t *testing.T) {
	engine, _ := newTestEngine()

	res := engine.Execute(Action("DELETE_EVERYTHING"), nil, employee("PEG001"))
	if res.Status != StatusError || !strings.Contains(res.Message, "unknown action") {
		t.Errorf("Unexpected result: %+v", res)
	}
}

type recordingJournal struct {
	mu       sync.Mutex
	appended []model.Attendance
	updated  []string
}

func (j *recordingJournal) AppendAttendance(rec model.Attendance) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.appended = append(j.appended, rec)
	return nil
}

func (j *recordingJournal) UpdateCheckOut(nik, date, checkOut string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.updated = append(j.updated, nik+"|"+date+"|"+checkOut)
	return nil
}

func TestJournalReceivesMutations(t *testing.T) {
	journal := &recordingJournal{}
	engine, _ := newTestEngine(WithJournal(journal))

	engine.Execute(ActionClockIn, nil, employee("PEG001"))
	engine.now = fixedClock(17, 0)
	engine.Execute(ActionClockOut, nil, employee("PEG001"))

	if len(journal.appended) != 1 || journal.appended[0].EmployeeNIK != "PEG001" {
		t.Errorf("Journal appends wrong: %+v", journal.appended)
	}
	if len(journal.updated) != 1 || journal.updated[0] != "PEG001|2024-03-15|17:00" {
		t.Errorf("Journal updates wrong: %+v", journal.updated)
	}
}
