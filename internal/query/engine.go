// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"fmt"

	"github.com/jeranaias/campus-nexus/internal/access"
	"github.com/jeranaias/campus-nexus/internal/audit"
	"github.com/jeranaias/campus-nexus/internal/dataset"
	"github.com/jeranaias/campus-nexus/internal/model"
)

// SafetyLimit is the hard cap on rows returned by any query. Results
// beyond it are replaced with a marker row carrying the true count.
// This is a context-size guard, not a paging mechanism, so it is a
// constant rather than configuration.
const SafetyLimit = 100

// =============================================================================
// ENGINE
// =============================================================================

// Engine executes restricted SELECT statements against the dataset
// store, applying table-level access control, row-level security, and
// column masking for the calling session.
type Engine struct {
	store   *dataset.Store
	auditor *audit.Logger
}

// NewEngine creates a query engine over the given store. The audit
// logger may be nil.
func NewEngine(store *dataset.Store, auditor *audit.Logger) *Engine {
	return &Engine{store: store, auditor: auditor}
}

// Execute runs a statement for the caller and returns result rows or a
// structured error. A nil caller is a guest. The pipeline is fixed:
//
//	parse -> table ACL -> scan -> row-level security -> WHERE ->
//	COUNT shortcut -> enrichment -> column masking -> LIMIT -> truncation
//
// Row-level security runs before the WHERE clause, so user conditions
// can only narrow the visible subset, never widen it.
func (e *Engine) Execute(queryText string, caller *model.UserSession) ([]model.Row, *QueryError) {
	role := model.RoleOf(caller)
	label := callerLabel(role, caller)

	q, qerr := Parse(queryText)
	if qerr != nil {
		eventType := audit.EventQueryMalformed
		if qerr.Code == CodeUnknownTable {
			eventType = audit.EventQueryDenied
		}
		e.log(eventType, label, queryText, 0, qerr)
		return nil, qerr
	}

	if reason, denied := access.Deny(role, q.Table); denied {
		qerr := accessDenied(reason)
		e.log(audit.EventQueryDenied, label, queryText, 0, qerr)
		return nil, qerr
	}

	rows, err := e.store.Scan(q.Table)
	if err != nil {
		qerr := unknownTable(queryText)
		e.log(audit.EventQueryDenied, label, queryText, 0, qerr)
		return nil, qerr
	}

	if column, ok := access.RLSColumn(role, q.Table); ok {
		rows = filterOwn(rows, column, caller.Identifier)
	}

	if len(q.Predicates) > 0 {
		matched := rows[:0]
		for _, row := range rows {
			if q.Match(row) {
				matched = append(matched, row)
			}
		}
		rows = matched
	}

	if q.CountOnly {
		e.log(audit.EventQueryExecuted, label, queryText, 1, nil)
		return []model.Row{{"total_rows": len(rows)}}, nil
	}

	e.enrich(q.Table, role, rows)

	for i, row := range rows {
		rows[i] = access.Mask(role, q.Table, row)
	}

	if q.Limit > 0 && q.Limit < len(rows) {
		rows = rows[:q.Limit]
	}

	rows = truncate(rows)
	e.log(audit.EventQueryExecuted, label, queryText, len(rows), nil)
	return rows, nil
}

// filterOwn keeps only rows whose scope column matches the caller's
// identifier. Rows without the column are dropped.
func filterOwn(rows []model.Row, column, identifier string) []model.Row {
	own := rows[:0]
	for _, row := range rows {
		if val, ok := row[column]; ok && fmt.Sprint(val) == identifier {
			own = append(own, row)
		}
	}
	return own
}

// enrich adds human-readable context columns by resolving foreign keys.
// Rows are already private copies, so in-place mutation is safe.
func (e *Engine) enrich(table string, role model.Role, rows []model.Row) {
	switch table {
	case model.TableSalaries:
		for _, row := range rows {
			nik, _ := row["employee_nik"].(string)
			if emp, ok := e.store.EmployeeByNIK(nik); ok {
				row["employee_name"] = emp.Name
				row["employee_position"] = emp.Position
			}
		}
	case model.TableAttendance:
		for _, row := range rows {
			nik, _ := row["employee_nik"].(string)
			if emp, ok := e.store.EmployeeByNIK(nik); ok {
				row["employee_name"] = emp.Name
			}
		}
	case model.TableGrades:
		for _, row := range rows {
			code, _ := row["course_code"].(string)
			if course, ok := e.store.CourseByCode(code); ok {
				row["course_name"] = course.Name
			}
			// Students already know who they are; staff reviewing
			// grade lists need the name resolved.
			if role != model.RoleStudent {
				nim, _ := row["student_nim"].(string)
				if st, ok := e.store.StudentByNIM(nim); ok {
					row["student_name"] = st.Name
				}
			}
		}
	}
}

// truncate caps oversized result sets at SafetyLimit rows, prepending
// a marker row that carries the true match count.
func truncate(rows []model.Row) []model.Row {
	if len(rows) <= SafetyLimit {
		return rows
	}
	marker := model.Row{
		"_system_note": fmt.Sprintf(
			"DATA TRUNCATED: %d rows matched, returning the first %d. Narrow the query or use COUNT(*) for totals.",
			len(rows), SafetyLimit),
		"total_rows": len(rows),
	}
	out := make([]model.Row, 0, SafetyLimit+1)
	out = append(out, marker)
	return append(out, rows[:SafetyLimit]...)
}

func (e *Engine) log(eventType, caller, queryText string, rowCount int, qerr *QueryError) {
	event := audit.Event{
		EventType: eventType,
		Caller:    caller,
		Query:     queryText,
		Rows:      rowCount,
		Success:   qerr == nil,
	}
	if qerr != nil {
		event.Error = qerr.Message
	}
	_ = e.auditor.Log(event)
}

func callerLabel(role model.Role, caller *model.UserSession) string {
	if caller == nil {
		return string(role)
	}
	return audit.CallerLabel(string(role), caller.Identifier)
}
