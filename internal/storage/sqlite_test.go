// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"path/filepath"
	"testing"

	"github.com/jeranaias/campus-nexus/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func record(id, nik, date string) model.Attendance {
	return model.Attendance{
		ID: id, EmployeeNIK: nik, Date: date,
		CheckIn: "08:00", CheckOut: model.TimeSentinel,
		Status: model.AttendancePresent,
	}
}

func TestAppendAndLoad(t *testing.T) {
	db := openTestDB(t)

	if err := db.AppendAttendance(record("a1", "PEG001", "2024-03-15")); err != nil {
		t.Fatalf("AppendAttendance failed: %v", err)
	}
	if err := db.AppendAttendance(record("a2", "PEG002", "2024-03-15")); err != nil {
		t.Fatalf("AppendAttendance failed: %v", err)
	}

	records, err := db.LoadAttendance()
	if err != nil {
		t.Fatalf("LoadAttendance failed: %v", err)
	}
	if len(records) != 2 || records[0].ID != "a1" || records[1].ID != "a2" {
		t.Errorf("Loaded records wrong: %+v", records)
	}
}

func TestDuplicateDayRejected(t *testing.T) {
	db := openTestDB(t)

	if err := db.AppendAttendance(record("a1", "PEG001", "2024-03-15")); err != nil {
		t.Fatalf("First append failed: %v", err)
	}
	if err := db.AppendAttendance(record("a2", "PEG001", "2024-03-15")); err == nil {
		t.Error("Duplicate (employee, date) accepted")
	}
}

func TestUpdateCheckOut(t *testing.T) {
	db := openTestDB(t)

	db.AppendAttendance(record("a1", "PEG001", "2024-03-15"))
	if err := db.UpdateCheckOut("PEG001", "2024-03-15", "17:30"); err != nil {
		t.Fatalf("UpdateCheckOut failed: %v", err)
	}

	records, _ := db.LoadAttendance()
	if records[0].CheckOut != "17:30" {
		t.Errorf("check_out = %s, want 17:30", records[0].CheckOut)
	}

	if err := db.UpdateCheckOut("PEG009", "2024-03-15", "17:30"); err == nil {
		t.Error("UpdateCheckOut on missing record succeeded")
	}
}

func TestSaveSnapshotReplaces(t *testing.T) {
	db := openTestDB(t)

	db.AppendAttendance(record("old", "PEG001", "2024-03-14"))
	err := db.SaveSnapshot([]model.Attendance{
		record("n1", "PEG001", "2024-03-15"),
		record("n2", "PEG002", "2024-03-15"),
	})
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	records, _ := db.LoadAttendance()
	if len(records) != 2 || records[0].ID != "n1" {
		t.Errorf("Snapshot contents wrong: %+v", records)
	}
}
