// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package access defines the authorization policy for the query engine:
// table-level allow/deny by role, row-level security columns, and
// per-table column visibility for masking.
//
// The policy is a set of static tables, fully enumerable, with
// fail-closed lookups: a table or column the policy does not know is
// treated as restricted, never as open.
package access

import (
	"fmt"

	"github.com/jeranaias/campus-nexus/internal/model"
)

// RedactionToken replaces any column value a caller is not allowed to
// see. Fixed so callers can distinguish redaction from real data.
const RedactionToken = "***RAHASIA***"

// =============================================================================
// TABLE CLASSIFICATION
// =============================================================================

// publicTables may be read by any caller, including guests.
var publicTables = map[string]bool{
	model.TableCourses:       true,
	model.TableFacilities:    true,
	model.TableAdmissions:    true,
	model.TableScholarships:  true,
	model.TableOrganizations: true,
}

// hrTables hold staff payroll and attendance data; students are denied
// outright in addition to the guest rule.
var hrTables = map[string]bool{
	model.TableEmployees:  true,
	model.TableSalaries:   true,
	model.TableAttendance: true,
}

// Public reports whether the table is readable without authentication.
func Public(table string) bool {
	return publicTables[table]
}

// Sensitive reports whether the table requires authentication. Any
// table the policy does not classify as public is sensitive.
func Sensitive(table string) bool {
	return !publicTables[table]
}

// =============================================================================
// TABLE-LEVEL ACCESS CONTROL
// =============================================================================

// Deny returns a denial reason when the role may not read the table at
// all. An empty reason means table-level access is granted; row-level
// security and masking still apply afterwards.
func Deny(role model.Role, table string) (string, bool) {
	if role == model.RoleGuest && Sensitive(table) {
		return fmt.Sprintf("guest cannot access '%s', please log in", table), true
	}
	if role == model.RoleStudent && hrTables[table] {
		return "students cannot access HR data", true
	}
	return "", false
}

// =============================================================================
// ROW-LEVEL SECURITY
// =============================================================================

// RLSColumn returns the column that must equal the caller's identifier
// for the role/table pair. Applied before any caller-supplied WHERE
// clause, composing with it as an implicit AND, so no predicate can
// widen the visible row set.
func RLSColumn(role model.Role, table string) (string, bool) {
	switch role {
	case model.RoleStudent:
		if table == model.TableGrades || table == model.TableTuitionPayments {
			return "student_nim", true
		}
	case model.RoleEmployee, model.RoleLecturer:
		if table == model.TableSalaries || table == model.TableAttendance {
			return "employee_nik", true
		}
	}
	return "", false
}

// =============================================================================
// COLUMN VISIBILITY (MASKING)
// =============================================================================

// visibleColumns is the per-table allow-list of columns a non-admin
// caller may see, including columns added by enrichment. A column
// absent from the list is redacted, so adding a new sensitive column
// to an entity cannot leak it by omission.
var visibleColumns = map[string][]string{
	model.TableStudents:        {"id", "nim", "name", "major", "semester", "gpa", "email", "origin"},
	model.TableLecturers:       {"id", "nip", "name", "department", "email"},
	model.TableEmployees:       {"id", "nik", "name", "position", "email"},
	model.TableCourses:         {"id", "code", "name", "lecturer_nip", "day", "time", "room", "sks"},
	model.TableGrades:          {"id", "student_nim", "course_code", "grade", "semester", "course_name", "student_name"},
	model.TableTuitionPayments: {"id", "student_nim", "semester", "amount", "status", "due_date", "paid_date"},
	model.TableAdmissions:      {"id", "batch_name", "start_date", "end_date", "description", "requirements", "status"},
	model.TableSalaries:        {"id", "employee_nik", "month", "basic_salary", "allowance", "deduction", "total", "status", "employee_name", "employee_position"},
	model.TableAttendance:      {"id", "employee_nik", "date", "check_in", "check_out", "status", "employee_name"},
	model.TableFacilities:      {"id", "code", "name", "type", "location_desc", "capacity"},
	model.TableScholarships:    {"id", "name", "provider", "amount", "min_gpa", "status", "quota"},
	model.TableOrganizations:   {"id", "name", "category", "chairman", "description"},
}

// Mask redacts every column of the row that the role may not see.
// Admins see rows unmasked. The row is modified in place and returned;
// callers pass cloned rows.
func Mask(role model.Role, table string, row model.Row) model.Row {
	if role == model.RoleAdmin {
		return row
	}
	allowed := make(map[string]bool, len(visibleColumns[table]))
	for _, col := range visibleColumns[table] {
		allowed[col] = true
	}
	for col := range row {
		if !allowed[col] {
			row[col] = RedactionToken
		}
	}
	return row
}
