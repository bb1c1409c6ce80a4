// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package audit provides an append-only audit log for authorization
// decisions and write actions. Every denied query, malformed
// condition, and transaction outcome is recorded so access patterns
// can be reviewed after the fact.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// MaxQueryLength is the maximum length of query text to log before
// truncation.
const MaxQueryLength = 200

// DefaultMaxFileSize is the default max log size before rotation (10MB).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Event types recorded by the engines.
const (
	EventQueryExecuted     = "QUERY_EXECUTED"
	EventQueryDenied       = "QUERY_DENIED"
	EventQueryMalformed    = "QUERY_MALFORMED"
	EventTransactionOK     = "TRANSACTION_OK"
	EventTransactionFailed = "TRANSACTION_FAILED"
)

// =============================================================================
// AUDIT EVENT
// =============================================================================

// Event is a single audit log entry.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType string            `json:"event_type"`
	Caller    string            `json:"caller"` // role:identifier, "guest" when unauthenticated
	Query     string            `json:"query,omitempty"`
	Rows      int               `json:"rows,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// ToLogLine formats the event as a single pipe-delimited log line.
func (e *Event) ToLogLine() string {
	status := "SUCCESS"
	if !e.Success {
		if e.Error != "" {
			status = fmt.Sprintf("ERROR: %s", e.Error)
		} else {
			status = "FAILURE"
		}
	}

	query := ""
	if e.Query != "" {
		query = fmt.Sprintf("%q", e.Query)
	}

	return fmt.Sprintf("%s | %s | %s | %s | %d | %s",
		e.Timestamp.Format("2006-01-02 15:04:05"),
		e.EventType,
		e.Caller,
		query,
		e.Rows,
		status,
	)
}

// ToJSON formats the event as JSON.
func (e *Event) ToJSON() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// =============================================================================
// LOGGER
// =============================================================================

// Logger appends events to a log file with size-based rotation.
// A nil Logger is safe to use and records nothing.
type Logger struct {
	mu          sync.Mutex
	path        string
	maxFileSize int64
	enabled     bool
}

// Option configures a Logger.
type Option func(*Logger)

// WithMaxFileSize sets the rotation threshold in bytes.
func WithMaxFileSize(size int64) Option {
	return func(l *Logger) {
		if size > 0 {
			l.maxFileSize = size
		}
	}
}

// NewLogger creates an audit logger writing to path. The parent
// directory is created on first write.
func NewLogger(path string, opts ...Option) *Logger {
	l := &Logger{
		path:        path,
		maxFileSize: DefaultMaxFileSize,
		enabled:     true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsEnabled reports whether the logger records events.
func (l *Logger) IsEnabled() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// SetEnabled turns recording on or off.
func (l *Logger) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// Log appends an event. Query text is truncated to MaxQueryLength
// before writing. Failures are returned, never fatal: callers degrade
// to stderr and keep serving the request.
func (l *Logger) Log(event Event) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled {
		return nil
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if len(event.Query) > MaxQueryLength {
		event.Query = event.Query[:MaxQueryLength] + "..."
	}

	if err := l.rotateIfNeeded(); err != nil {
		return err
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(event.ToLogLine() + "\n"); err != nil {
		return fmt.Errorf("failed to append audit event: %w", err)
	}
	return f.Sync()
}

// rotateIfNeeded renames the log aside once it exceeds the size cap.
// Caller must hold l.mu.
func (l *Logger) rotateIfNeeded() error {
	info, err := os.Stat(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() < l.maxFileSize {
		return nil
	}

	rotated := l.path + "." + time.Now().Format("20060102_150405")
	if err := os.Rename(l.path, rotated); err != nil {
		return fmt.Errorf("failed to rotate audit log: %w", err)
	}
	return nil
}

// CallerLabel formats a caller for the audit trail.
func CallerLabel(role, identifier string) string {
	if identifier == "" {
		return role
	}
	return role + ":" + identifier
}
