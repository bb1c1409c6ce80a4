// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists the mutable part of the dataset to sqlite.
// The in-memory store stays the source of truth; attendance records
// written through the transaction engine are journaled here and
// restored on startup, so clock-ins survive a restart. Seeded tables
// are regenerated deterministically and are not persisted.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/jeranaias/campus-nexus/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS attendance (
	id           TEXT PRIMARY KEY,
	employee_nik TEXT NOT NULL,
	date         TEXT NOT NULL,
	check_in     TEXT NOT NULL,
	check_out    TEXT NOT NULL,
	status       TEXT NOT NULL,
	UNIQUE(employee_nik, date)
);
`

// =============================================================================
// DB
// =============================================================================

// DB is the sqlite-backed attendance journal. Implements the
// transaction engine's Journal interface.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Journal writes are serialized through the store's write lock;
	// one connection avoids SQLITE_BUSY under concurrent tests.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// =============================================================================
// ATTENDANCE JOURNAL
// =============================================================================

// AppendAttendance journals one accepted clock-in.
func (d *DB) AppendAttendance(rec model.Attendance) error {
	_, err := d.db.Exec(
		`INSERT INTO attendance (id, employee_nik, date, check_in, check_out, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.EmployeeNIK, rec.Date, rec.CheckIn, rec.CheckOut, rec.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to journal attendance: %w", err)
	}
	return nil
}

// UpdateCheckOut stamps the check-out time on a journaled record.
func (d *DB) UpdateCheckOut(employeeNIK, date, checkOut string) error {
	res, err := d.db.Exec(
		`UPDATE attendance SET check_out = ? WHERE employee_nik = ? AND date = ?`,
		checkOut, employeeNIK, date,
	)
	if err != nil {
		return fmt.Errorf("failed to update check-out: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no journaled attendance for %s on %s", employeeNIK, date)
	}
	return nil
}

// LoadAttendance returns every journaled record in insertion order,
// for restoring the in-memory dataset at startup.
func (d *DB) LoadAttendance() ([]model.Attendance, error) {
	rows, err := d.db.Query(
		`SELECT id, employee_nik, date, check_in, check_out, status
		 FROM attendance ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	defer rows.Close()

	var out []model.Attendance
	for rows.Next() {
		var rec model.Attendance
		if err := rows.Scan(&rec.ID, &rec.EmployeeNIK, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.Status); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SaveSnapshot replaces the journal contents with the given records in
// one transaction. Used at shutdown to reconcile journal and memory.
func (d *DB) SaveSnapshot(records []model.Attendance) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM attendance`); err != nil {
		return fmt.Errorf("failed to clear journal: %w", err)
	}
	for _, rec := range records {
		if _, err := tx.Exec(
			`INSERT INTO attendance (id, employee_nik, date, check_in, check_out, status)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.EmployeeNIK, rec.Date, rec.CheckIn, rec.CheckOut, rec.Status,
		); err != nil {
			return fmt.Errorf("failed to snapshot attendance: %w", err)
		}
	}
	return tx.Commit()
}
