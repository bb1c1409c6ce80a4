// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// TABLE NAMES
// =============================================================================

// Table name constants. TableVocabulary lists them in resolution order:
// the query engine scans the query text for the first recognized name.
const (
	TableStudents        = "students"
	TableLecturers       = "lecturers"
	TableEmployees       = "employees"
	TableCourses         = "courses"
	TableGrades          = "grades"
	TableTuitionPayments = "tuition_payments"
	TableAdmissions      = "admissions"
	TableSalaries        = "salaries"
	TableAttendance      = "attendance"
	TableFacilities      = "facilities"
	TableScholarships    = "scholarships"
	TableOrganizations   = "organizations"
)

// TableVocabulary is the fixed, fully enumerable set of queryable tables
// in resolution order. The admins table is deliberately absent: it is
// not reachable through the query engine.
var TableVocabulary = []string{
	TableStudents,
	TableLecturers,
	TableEmployees,
	TableCourses,
	TableGrades,
	TableTuitionPayments,
	TableAdmissions,
	TableSalaries,
	TableAttendance,
	TableFacilities,
	TableScholarships,
	TableOrganizations,
}

// =============================================================================
// ATTENDANCE & PAYMENT STATUS VALUES
// =============================================================================

// Attendance status values.
const (
	AttendancePresent = "HADIR"
	AttendanceExcused = "IZIN"
	AttendanceSick    = "SAKIT"
	AttendanceAbsent  = "ALPHA"
)

// TimeSentinel marks an attendance time field that has not been set yet.
const TimeSentinel = "-"

// Tuition payment status values.
const (
	TuitionPaid    = "LUNAS"
	TuitionUnpaid  = "BELUM LUNAS"
	TuitionPending = "MENUNGGU KONFIRMASI"
)

// =============================================================================
// ENTITIES
// =============================================================================

// Student is one row of the students table, keyed by NIM.
type Student struct {
	ID       string
	NIM      string
	Name     string
	Password string
	Major    string
	Semester int
	GPA      float64
	Email    string
	Origin   string
}

// Row converts the record to its column map.
func (s Student) Row() Row {
	return Row{
		"id":       s.ID,
		"nim":      s.NIM,
		"name":     s.Name,
		"password": s.Password,
		"major":    s.Major,
		"semester": s.Semester,
		"gpa":      s.GPA,
		"email":    s.Email,
		"origin":   s.Origin,
	}
}

// Lecturer is one row of the lecturers table, keyed by NIP.
type Lecturer struct {
	ID         string
	NIP        string
	Name       string
	Password   string
	Department string
	Email      string
}

// Row converts the record to its column map.
func (l Lecturer) Row() Row {
	return Row{
		"id":         l.ID,
		"nip":        l.NIP,
		"name":       l.Name,
		"password":   l.Password,
		"department": l.Department,
		"email":      l.Email,
	}
}

// Employee is one row of the employees table, keyed by NIK.
type Employee struct {
	ID       string
	NIK      string
	Name     string
	Password string
	Position string
	Email    string
}

// Row converts the record to its column map.
func (e Employee) Row() Row {
	return Row{
		"id":       e.ID,
		"nik":      e.NIK,
		"name":     e.Name,
		"password": e.Password,
		"position": e.Position,
		"email":    e.Email,
	}
}

// Admin is an administrator account. Admins are not exposed as a
// queryable table; the struct exists for session resolution and seeding.
type Admin struct {
	ID       string
	Username string
	Name     string
	Password string
}

// Course is one row of the courses table, keyed by code.
type Course struct {
	ID          string
	Code        string
	Name        string
	LecturerNIP string
	Day         string
	Time        string
	Room        string
	SKS         int
}

// Row converts the record to its column map.
func (c Course) Row() Row {
	return Row{
		"id":           c.ID,
		"code":         c.Code,
		"name":         c.Name,
		"lecturer_nip": c.LecturerNIP,
		"day":          c.Day,
		"time":         c.Time,
		"room":         c.Room,
		"sks":          c.SKS,
	}
}

// Grade links a student to a course result.
type Grade struct {
	ID         string
	StudentNIM string
	CourseCode string
	Grade      string
	Semester   int
}

// Row converts the record to its column map.
func (g Grade) Row() Row {
	return Row{
		"id":          g.ID,
		"student_nim": g.StudentNIM,
		"course_code": g.CourseCode,
		"grade":       g.Grade,
		"semester":    g.Semester,
	}
}

// TuitionPayment is one semester tuition bill for a student.
type TuitionPayment struct {
	ID         string
	StudentNIM string
	Semester   int
	Amount     int
	Status     string
	DueDate    string
	PaidDate   string
}

// Row converts the record to its column map. PaidDate is omitted when
// the bill has not been settled.
func (t TuitionPayment) Row() Row {
	r := Row{
		"id":          t.ID,
		"student_nim": t.StudentNIM,
		"semester":    t.Semester,
		"amount":      t.Amount,
		"status":      t.Status,
		"due_date":    t.DueDate,
	}
	if t.PaidDate != "" {
		r["paid_date"] = t.PaidDate
	}
	return r
}

// AdmissionInfo is one admission batch announcement.
type AdmissionInfo struct {
	ID           string
	BatchName    string
	StartDate    string
	EndDate      string
	Description  string
	Requirements string
	Status       string
}

// Row converts the record to its column map.
func (a AdmissionInfo) Row() Row {
	return Row{
		"id":           a.ID,
		"batch_name":   a.BatchName,
		"start_date":   a.StartDate,
		"end_date":     a.EndDate,
		"description":  a.Description,
		"requirements": a.Requirements,
		"status":       a.Status,
	}
}

// Salary is one monthly payslip for an employee.
// Total must equal BasicSalary + Allowance - Deduction.
type Salary struct {
	ID          string
	EmployeeNIK string
	Month       string
	BasicSalary int
	Allowance   int
	Deduction   int
	Total       int
	Status      string
}

// Row converts the record to its column map.
func (s Salary) Row() Row {
	return Row{
		"id":           s.ID,
		"employee_nik": s.EmployeeNIK,
		"month":        s.Month,
		"basic_salary": s.BasicSalary,
		"allowance":    s.Allowance,
		"deduction":    s.Deduction,
		"total":        s.Total,
		"status":       s.Status,
	}
}

// Attendance is one clock-in record. At most one record may exist per
// (EmployeeNIK, Date) pair; the transaction engine enforces this.
type Attendance struct {
	ID          string
	EmployeeNIK string
	Date        string // YYYY-MM-DD
	CheckIn     string // HH:MM or TimeSentinel
	CheckOut    string // HH:MM or TimeSentinel
	Status      string
}

// Row converts the record to its column map.
func (a Attendance) Row() Row {
	return Row{
		"id":           a.ID,
		"employee_nik": a.EmployeeNIK,
		"date":         a.Date,
		"check_in":     a.CheckIn,
		"check_out":    a.CheckOut,
		"status":       a.Status,
	}
}

// Facility is one campus building, room, or public facility.
type Facility struct {
	ID           string
	Code         string
	Name         string
	Type         string
	LocationDesc string
	Capacity     int
}

// Row converts the record to its column map.
func (f Facility) Row() Row {
	return Row{
		"id":            f.ID,
		"code":          f.Code,
		"name":          f.Name,
		"type":          f.Type,
		"location_desc": f.LocationDesc,
		"capacity":      f.Capacity,
	}
}

// Scholarship is one scholarship program announcement.
type Scholarship struct {
	ID       string
	Name     string
	Provider string
	Amount   int
	MinGPA   float64
	Status   string
	Quota    int
}

// Row converts the record to its column map.
func (s Scholarship) Row() Row {
	return Row{
		"id":       s.ID,
		"name":     s.Name,
		"provider": s.Provider,
		"amount":   s.Amount,
		"min_gpa":  s.MinGPA,
		"status":   s.Status,
		"quota":    s.Quota,
	}
}

// Organization is one student organization.
type Organization struct {
	ID          string
	Name        string
	Category    string
	Chairman    string
	Description string
}

// Row converts the record to its column map.
func (o Organization) Row() Row {
	return Row{
		"id":          o.ID,
		"name":        o.Name,
		"category":    o.Category,
		"chairman":    o.Chairman,
		"description": o.Description,
	}
}

// =============================================================================
// DATASET
// =============================================================================

// Dataset is the full in-memory database: one ordered slice per table.
// It is populated once at startup by the seed generator (or restored
// from a snapshot) and mutated only through the dataset store.
type Dataset struct {
	Students        []Student
	Lecturers       []Lecturer
	Admins          []Admin
	Employees       []Employee
	Courses         []Course
	Grades          []Grade
	TuitionPayments []TuitionPayment
	Admissions      []AdmissionInfo
	Salaries        []Salary
	Attendance      []Attendance
	Facilities      []Facility
	Scholarships    []Scholarship
	Organizations   []Organization
}
