// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package seed builds the demo campus dataset. Generation is
// deterministic for a given seed so tests and demos see identical data
// across runs.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/jeranaias/campus-nexus/internal/model"
)

// =============================================================================
// VOCABULARIES
// =============================================================================

var majors = []string{"Teknik Informatika", "Sistem Informasi", "Ilmu Komputer", "Teknik Elektro", "Manajemen Bisnis"}

var firstNames = []string{
	"Budi", "Siti", "Rizky", "Dewi", "Andi", "Rina", "Bayu", "Putri", "Dimas",
	"Eka", "Fajar", "Gita", "Hendra", "Indah", "Joko", "Mega", "Sari", "Tono",
}

var lastNames = []string{
	"Santoso", "Aminah", "Pratama", "Lestari", "Kusuma", "Wahyuni", "Saputra",
	"Wijaya", "Nugroho", "Hidayat", "Utami", "Siregar", "Subagyo", "Winata", "Halim",
}

var cities = []string{
	"Jakarta", "Bandung", "Surabaya", "Medan", "Makassar", "Yogyakarta", "Semarang",
	"Denpasar", "Palembang", "Malang", "Bekasi", "Depok", "Bogor", "Tangerang", "Solo",
}

var courseNames = []string{
	"Pemrograman Web", "Basis Data", "Kecerdasan Buatan", "Algoritma", "Struktur Data",
	"Jaringan Komputer", "Sistem Operasi", "Matematika Diskrit", "Statistika", "Etika Profesi",
	"Pengembangan Mobile", "Cloud Computing", "Keamanan Siber", "Internet of Things",
	"Manajemen Proyek", "Kewirausahaan", "Data Mining", "Machine Learning",
}

var employeePositions = []string{
	"Staff Keuangan", "Staff Admin Prodi", "Teknisi Lab", "Satpam", "Petugas Perpustakaan", "Office Boy",
}

var weekdays = []string{"Senin", "Selasa", "Rabu", "Kamis", "Jumat"}

var gradeLetters = []string{"A", "A-", "B+", "B", "B-", "C+", "C", "D", "E"}

var salaryMonths = []string{"Januari", "Februari", "Maret"}

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls dataset size and determinism.
type Options struct {
	Seed         int64
	StudentCount int
	GradesEach   int
}

// DefaultOptions returns the standard demo sizes.
func DefaultOptions() Options {
	return Options{Seed: 1, StudentCount: 300, GradesEach: 5}
}

// =============================================================================
// GENERATOR
// =============================================================================

// Generate builds a full dataset from the options. Attendance starts
// empty; it is populated only through the transaction engine.
func Generate(opts Options) model.Dataset {
	if opts.StudentCount <= 0 {
		opts.StudentCount = 300
	}
	if opts.GradesEach <= 0 {
		opts.GradesEach = 5
	}
	g := &generator{rng: rand.New(rand.NewSource(opts.Seed))}

	var d model.Dataset
	d.Admins = []model.Admin{{ID: "A1", Username: "admin", Name: "Administrator Pusat", Password: "admin123"}}
	d.Admissions = admissionBatches()
	d.Facilities = campusFacilities()
	d.Scholarships = scholarshipPrograms()
	d.Organizations = studentOrganizations()
	g.lecturers(&d)
	g.employees(&d)
	g.courses(&d)
	g.students(&d, opts.StudentCount, opts.GradesEach)
	return d
}

type generator struct {
	rng *rand.Rand
}

func (g *generator) pick(items []string) string {
	return items[g.rng.Intn(len(items))]
}

func (g *generator) between(min, max int) int {
	return g.rng.Intn(max-min+1) + min
}

func (g *generator) lecturers(d *model.Dataset) {
	for i := 1; i <= 20; i++ {
		name := fmt.Sprintf("Dr. %s %s, M.Kom", g.pick(firstNames), g.pick(lastNames))
		d.Lecturers = append(d.Lecturers, model.Lecturer{
			ID:         fmt.Sprintf("L%d", i),
			NIP:        fmt.Sprintf("1980%04d", g.between(1000, 9999)),
			Name:       name,
			Password:   "dosen",
			Department: g.pick(majors),
			Email:      emailLocal(name) + "@univ.ac.id",
		})
	}
}

func (g *generator) employees(d *model.Dataset) {
	for i := 1; i <= 15; i++ {
		name := g.pick(firstNames) + " " + g.pick(lastNames)
		nik := fmt.Sprintf("PEG%03d", i)
		d.Employees = append(d.Employees, model.Employee{
			ID:       fmt.Sprintf("E%d", i),
			NIK:      nik,
			Name:     name,
			Password: "123",
			Position: g.pick(employeePositions),
			Email:    strings.ToLower(strings.Fields(name)[0]) + "@staff.univ.ac.id",
		})

		for idx, month := range salaryMonths {
			basic := g.between(3000000, 6000000)
			allowance := g.between(500000, 2000000)
			const deduction = 150000
			d.Salaries = append(d.Salaries, model.Salary{
				ID:          fmt.Sprintf("SAL%d-%d", i, idx),
				EmployeeNIK: nik,
				Month:       month + " 2024",
				BasicSalary: basic,
				Allowance:   allowance,
				Deduction:   deduction,
				Total:       basic + allowance - deduction,
				Status:      "DIBAYARKAN",
			})
		}
	}
}

func (g *generator) courses(d *model.Dataset) {
	var rooms []model.Facility
	for _, f := range d.Facilities {
		if f.Type == "RUANG KELAS" || f.Type == "LAB" {
			rooms = append(rooms, f)
		}
	}
	for i, name := range courseNames {
		lecturer := d.Lecturers[g.rng.Intn(len(d.Lecturers))]
		room := rooms[g.rng.Intn(len(rooms))]
		d.Courses = append(d.Courses, model.Course{
			ID:          fmt.Sprintf("C%d", i+1),
			Code:        fmt.Sprintf("TI%d", 100+i),
			Name:        name,
			LecturerNIP: lecturer.NIP,
			Day:         g.pick(weekdays),
			Time:        fmt.Sprintf("%d:00", g.between(7, 16)),
			Room:        room.Code + " - " + room.LocationDesc,
			SKS:         []int{2, 3, 4}[g.rng.Intn(3)],
		})
	}
}

func (g *generator) students(d *model.Dataset, count, gradesEach int) {
	for i := 1; i <= count; i++ {
		first := g.pick(firstNames)
		nim := fmt.Sprintf("2024%03d", i)
		semester := g.between(1, 8)
		major := g.pick(majors)
		gpa := float64(g.between(200, 400)) / 100

		d.Students = append(d.Students, model.Student{
			ID:       fmt.Sprintf("S%d", i),
			NIM:      nim,
			Name:     first + " " + g.pick(lastNames),
			Password: "123",
			Major:    major,
			Semester: semester,
			GPA:      gpa,
			Email:    fmt.Sprintf("%s.%s@student.univ.ac.id", strings.ToLower(first), nim),
			Origin:   g.pick(cities),
		})

		for _, course := range g.sampleCourses(d.Courses, gradesEach) {
			d.Grades = append(d.Grades, model.Grade{
				ID:         fmt.Sprintf("G%d", len(d.Grades)+1),
				StudentNIM: nim,
				CourseCode: course.Code,
				Grade:      g.pick(gradeLetters),
				Semester:   g.between(1, semester),
			})
		}

		for s := 1; s <= semester; s++ {
			status := model.TuitionPaid
			if s == semester {
				status = g.pick([]string{model.TuitionPaid, model.TuitionUnpaid, model.TuitionPending})
			}
			payment := model.TuitionPayment{
				ID:         fmt.Sprintf("T%d", len(d.TuitionPayments)+1),
				StudentNIM: nim,
				Semester:   s,
				Amount:     tuitionFor(major),
				Status:     status,
				DueDate:    billingDate(s, 10),
			}
			if status == model.TuitionPaid {
				payment.PaidDate = billingDate(s, 5)
			}
			d.TuitionPayments = append(d.TuitionPayments, payment)
		}
	}
}

// sampleCourses picks n distinct courses.
func (g *generator) sampleCourses(courses []model.Course, n int) []model.Course {
	if n > len(courses) {
		n = len(courses)
	}
	idx := g.rng.Perm(len(courses))[:n]
	picked := make([]model.Course, n)
	for i, j := range idx {
		picked[i] = courses[j]
	}
	return picked
}

// tuitionFor returns the per-semester fee for a major.
func tuitionFor(major string) int {
	switch {
	case strings.Contains(major, "Teknik"):
		return 5000000
	case strings.Contains(major, "Sistem"):
		return 4500000
	default:
		return 4000000
	}
}

// billingDate maps a semester number onto a 2024 calendar date.
func billingDate(semester, day int) string {
	month := time.Month((semester*6)%12 + 1)
	return time.Date(2024, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// emailLocal lowercases a name and strips everything but letters.
func emailLocal(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// =============================================================================
// FIXED RECORDS
// =============================================================================

func admissionBatches() []model.AdmissionInfo {
	return []model.AdmissionInfo{
		{
			ID: "PMB1", BatchName: "Gelombang 1 - Jalur Prestasi",
			StartDate: "2024-01-01", EndDate: "2024-03-31",
			Description:  "Penerimaan mahasiswa baru jalur rapor.",
			Requirements: "Rapor Semester 1-5, Sertifikat Juara",
			Status:       "CLOSED",
		},
		{
			ID: "PMB2", BatchName: "Gelombang 2 - Jalur Reguler",
			StartDate: "2024-04-01", EndDate: "2024-06-30",
			Description:  "Penerimaan mahasiswa baru jalur tes tulis.",
			Requirements: "Ijazah, Biaya Pendaftaran",
			Status:       "OPEN",
		},
	}
}

func campusFacilities() []model.Facility {
	return []model.Facility{
		{ID: "F1", Code: "G-A", Name: "Gedung A (Rektorat)", Type: "GEDUNG", LocationDesc: "Gerbang Utama, Selatan Masjid", Capacity: 500},
		{ID: "F2", Code: "G-B", Name: "Gedung B (Fakultas Teknik)", Type: "GEDUNG", LocationDesc: "Sebelah Perpustakaan", Capacity: 1000},
		{ID: "F3", Code: "LAB-KOM", Name: "Lab Komputer Dasar", Type: "LAB", LocationDesc: "Gedung B Lantai 3", Capacity: 40},
		{ID: "F4", Code: "PERPUS", Name: "Perpustakaan Pusat", Type: "FASILITAS UMUM", LocationDesc: "Tengah Kampus", Capacity: 200},
		{ID: "F5", Code: "KANTIN", Name: "Kantin Robotik", Type: "FASILITAS UMUM", LocationDesc: "Belakang Gedung B", Capacity: 150},
		{ID: "F6", Code: "AUDIT", Name: "Auditorium Utama", Type: "RUANG KELAS", LocationDesc: "Gedung A Lantai 1", Capacity: 300},
		{ID: "F7", Code: "SC", Name: "Student Center", Type: "FASILITAS UMUM", LocationDesc: "Sebelah Kantin", Capacity: 200},
		{ID: "F8", Code: "KLINIK", Name: "Klinik Kampus", Type: "FASILITAS UMUM", LocationDesc: "Gedung A Lantai Dasar", Capacity: 10},
	}
}

func scholarshipPrograms() []model.Scholarship {
	return []model.Scholarship{
		{ID: "SCH1", Name: "Beasiswa Unggulan", Provider: "Kemdikbud", Amount: 5000000, MinGPA: 3.5, Status: "OPEN", Quota: 50},
		{ID: "SCH2", Name: "Beasiswa Djarum Plus", Provider: "Djarum Foundation", Amount: 3000000, MinGPA: 3.25, Status: "CLOSED", Quota: 20},
		{ID: "SCH3", Name: "Beasiswa Alumni", Provider: "Yayasan Alumni UTMD", Amount: 2000000, MinGPA: 3.0, Status: "OPEN", Quota: 100},
		{ID: "SCH4", Name: "Beasiswa Kurang Mampu", Provider: "Kampus", Amount: 4000000, MinGPA: 2.75, Status: "OPEN", Quota: 200},
	}
}

func studentOrganizations() []model.Organization {
	return []model.Organization{
		{ID: "ORG1", Name: "BEM Universitas", Category: "Akademik", Chairman: "Budi Santoso", Description: "Badan Eksekutif Mahasiswa Tingkat Universitas"},
		{ID: "ORG2", Name: "UKM Robotik", Category: "Akademik", Chairman: "Rizky Pratama", Description: "Komunitas pecinta robotika dan AI"},
		{ID: "ORG3", Name: "UKM Futsal", Category: "Olahraga", Chairman: "Dimas Anggara", Description: "Tim Futsal kebanggaan kampus"},
		{ID: "ORG4", Name: "Paduan Suara", Category: "Seni", Chairman: "Siti Aminah", Description: "Kelompok paduan suara mahasiswa"},
		{ID: "ORG5", Name: "Mapala (Pecinta Alam)", Category: "Sosial", Chairman: "Bayu Skak", Description: "Kegiatan outdoor dan pelestarian alam"},
	}
}
