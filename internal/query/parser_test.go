// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"testing"

	"github.com/jeranaias/campus-nexus/internal/model"
)

func TestParseResolvesTable(t *testing.T) {
	cases := []struct {
		query string
		table string
	}{
		{"SELECT * FROM students", model.TableStudents},
		{"select name from lecturers where department = 'Informatika'", model.TableLecturers},
		{"show me all the scholarships please", model.TableScholarships},
		{"SELECT * FROM tuition_payments;", model.TableTuitionPayments},
		{"SELECT count(*) FROM attendance", model.TableAttendance},
	}
	for _, tc := range cases {
		q, qerr := Parse(tc.query)
		if qerr != nil {
			t.Fatalf("Parse(%q) failed: %v", tc.query, qerr)
		}
		if q.Table != tc.table {
			t.Errorf("Parse(%q) table = %s, want %s", tc.query, q.Table, tc.table)
		}
	}
}

func TestParseResolutionOrder(t *testing.T) {
	// Both names present: the first vocabulary entry wins.
	q, qerr := Parse("SELECT * FROM students WHERE name LIKE '%courses%'")
	if qerr != nil {
		t.Fatalf("Parse failed: %v", qerr)
	}
	if q.Table != model.TableStudents {
		t.Errorf("Table = %s, want students", q.Table)
	}
}

func TestParseUnknownTable(t *testing.T) {
	_, qerr := Parse("SELECT * FROM passwords")
	if qerr == nil || qerr.Code != CodeUnknownTable {
		t.Fatalf("Expected UNKNOWN_TABLE, got %v", qerr)
	}
}

func TestParseConditions(t *testing.T) {
	q, qerr := Parse("SELECT * FROM students WHERE major = 'Teknik Informatika' AND gpa > 3.5 AND name LIKE '%budi%' AND semester < 6")
	if qerr != nil {
		t.Fatalf("Parse failed: %v", qerr)
	}
	if len(q.Predicates) != 4 {
		t.Fatalf("Predicates = %d, want 4", len(q.Predicates))
	}
	want := []Predicate{
		{Column: "major", Op: OpEq, Value: "teknik informatika"},
		{Column: "gpa", Op: OpGt, Value: "3.5"},
		{Column: "name", Op: OpLike, Value: "budi"},
		{Column: "semester", Op: OpLt, Value: "6"},
	}
	for i, p := range q.Predicates {
		if p != want[i] {
			t.Errorf("Predicate %d = %+v, want %+v", i, p, want[i])
		}
	}
}

func TestParseCountAndLimit(t *testing.T) {
	q, qerr := Parse("SELECT count(*) FROM students")
	if qerr != nil {
		t.Fatalf("Parse failed: %v", qerr)
	}
	if !q.CountOnly {
		t.Error("CountOnly not detected")
	}

	q, qerr = Parse("SELECT * FROM students LIMIT 10")
	if qerr != nil {
		t.Fatalf("Parse failed: %v", qerr)
	}
	if q.Limit != 10 {
		t.Errorf("Limit = %d, want 10", q.Limit)
	}

	q, qerr = Parse("SELECT * FROM students WHERE gpa > 3 LIMIT 5")
	if qerr != nil {
		t.Fatalf("Parse failed: %v", qerr)
	}
	if len(q.Predicates) != 1 || q.Limit != 5 {
		t.Errorf("Got predicates=%d limit=%d, want 1 and 5", len(q.Predicates), q.Limit)
	}
}

func TestParseMalformedConditionsFailClosed(t *testing.T) {
	malformed := []string{
		"SELECT * FROM students WHERE",
		"SELECT * FROM students WHERE major",
		"SELECT * FROM students WHERE gpa > high",
		"SELECT * FROM students WHERE semester < 'two'",
		"SELECT * FROM students WHERE a = b = c",
		"SELECT * FROM students WHERE = 'x'",
		"SELECT * FROM students LIMIT many",
		"SELECT * FROM students LIMIT 0",
	}
	for _, query := range malformed {
		if _, qerr := Parse(query); qerr == nil || qerr.Code != CodeMalformedCondition {
			t.Errorf("Parse(%q) = %v, want MALFORMED_CONDITION", query, qerr)
		}
	}
}

func TestPredicateMatch(t *testing.T) {
	row := model.Row{"name": "Budi Santoso", "gpa": 3.75, "semester": 4}

	cases := []struct {
		pred Predicate
		want bool
	}{
		{Predicate{"name", OpEq, "budi santoso"}, true},
		{Predicate{"name", OpEq, "budi"}, false},
		{Predicate{"name", OpLike, "santoso"}, true},
		{Predicate{"gpa", OpGt, "3.5"}, true},
		{Predicate{"gpa", OpLt, "3.5"}, false},
		{Predicate{"semester", OpLt, "6"}, true},
		{Predicate{"missing", OpEq, "x"}, false},
	}
	for _, tc := range cases {
		if got := tc.pred.Match(row); got != tc.want {
			t.Errorf("Match(%+v) = %v, want %v", tc.pred, got, tc.want)
		}
	}
}
