// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dataset holds the process-wide campus dataset behind an
// explicit store handle. The store owns all mutation: readers get row
// copies in insertion order, and writers run under the store's write
// lock so check-then-act sequences (the clock-in uniqueness check)
// cannot interleave.
package dataset

import (
	"errors"
	"sync"

	"github.com/jeranaias/campus-nexus/internal/model"
)

// ErrUnknownTable is returned by Scan for a table name outside the
// fixed vocabulary.
var ErrUnknownTable = errors.New("dataset: unknown table")

// =============================================================================
// STORE
// =============================================================================

// Store wraps a Dataset with lifecycle and locking. Created once at
// startup, passed by handle into both engines; no hidden singletons.
type Store struct {
	mu   sync.RWMutex
	data model.Dataset
}

// NewStore creates a store owning the given dataset.
func NewStore(data model.Dataset) *Store {
	return &Store{data: data}
}

// =============================================================================
// READ PATH
// =============================================================================

// Scan returns every row of the named table as column maps, in
// insertion order. Rows are fresh copies; callers may mutate them.
func (s *Store) Scan(table string) ([]model.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch table {
	case model.TableStudents:
		return rowsOf(s.data.Students), nil
	case model.TableLecturers:
		return rowsOf(s.data.Lecturers), nil
	case model.TableEmployees:
		return rowsOf(s.data.Employees), nil
	case model.TableCourses:
		return rowsOf(s.data.Courses), nil
	case model.TableGrades:
		return rowsOf(s.data.Grades), nil
	case model.TableTuitionPayments:
		return rowsOf(s.data.TuitionPayments), nil
	case model.TableAdmissions:
		return rowsOf(s.data.Admissions), nil
	case model.TableSalaries:
		return rowsOf(s.data.Salaries), nil
	case model.TableAttendance:
		return rowsOf(s.data.Attendance), nil
	case model.TableFacilities:
		return rowsOf(s.data.Facilities), nil
	case model.TableScholarships:
		return rowsOf(s.data.Scholarships), nil
	case model.TableOrganizations:
		return rowsOf(s.data.Organizations), nil
	}
	return nil, ErrUnknownTable
}

// rower is any record that converts itself to a column map.
type rower interface{ Row() model.Row }

func rowsOf[T rower](records []T) []model.Row {
	rows := make([]model.Row, len(records))
	for i, rec := range records {
		rows[i] = rec.Row()
	}
	return rows
}

// EmployeeByNIK returns the employee with the given NIK.
func (s *Store) EmployeeByNIK(nik string) (model.Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.data.Employees {
		if e.NIK == nik {
			return e, true
		}
	}
	return model.Employee{}, false
}

// LecturerByNIP returns the lecturer with the given NIP.
func (s *Store) LecturerByNIP(nip string) (model.Lecturer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.data.Lecturers {
		if l.NIP == nip {
			return l, true
		}
	}
	return model.Lecturer{}, false
}

// StudentByNIM returns the student with the given NIM.
func (s *Store) StudentByNIM(nim string) (model.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.data.Students {
		if st.NIM == nim {
			return st, true
		}
	}
	return model.Student{}, false
}

// AdminByUsername returns the admin account with the given username.
func (s *Store) AdminByUsername(username string) (model.Admin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.data.Admins {
		if a.Username == username {
			return a, true
		}
	}
	return model.Admin{}, false
}

// CourseByCode returns the course with the given code.
func (s *Store) CourseByCode(code string) (model.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.data.Courses {
		if c.Code == code {
			return c, true
		}
	}
	return model.Course{}, false
}

// AttendanceFor returns the attendance record for the given employee
// and date, if one exists.
func (s *Store) AttendanceFor(nik, date string) (model.Attendance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.data.Attendance {
		if a.EmployeeNIK == nik && a.Date == date {
			return a, true
		}
	}
	return model.Attendance{}, false
}

// AttendanceCount returns the number of attendance records.
func (s *Store) AttendanceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.Attendance)
}

// =============================================================================
// WRITE PATH
// =============================================================================

// Update runs fn with exclusive access to the dataset. The write
// engine performs its check-then-insert sequences inside fn so two
// concurrent clock-ins for the same identity and day cannot both pass
// the uniqueness check.
func (s *Store) Update(fn func(d *model.Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data)
}
