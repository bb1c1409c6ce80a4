// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks authenticated caller sessions with idle
// timeout. The engines take the resolved *model.UserSession directly;
// this manager owns the lifecycle around it: issuing IDs, recording
// activity, and expiring idle logins back to guest.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/campus-nexus/internal/model"
)

// DefaultTimeout is the idle timeout applied when none is configured.
const DefaultTimeout = 15 * time.Minute

// =============================================================================
// SESSION MANAGER
// =============================================================================

// entry is one live login.
type entry struct {
	user         *model.UserSession
	startTime    time.Time
	lastActivity time.Time
}

// Manager issues and expires login sessions. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	timeout  time.Duration
	sessions map[string]*entry
	now      func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithTimeout sets the idle timeout.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithClock overrides the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a session manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		timeout:  DefaultTimeout,
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login registers an authenticated caller and returns the session ID.
// The returned user carries the same ID for audit correlation.
func (m *Manager) Login(role model.Role, name, identifier string) *model.UserSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	user := &model.UserSession{
		ID:         uuid.NewString(),
		Role:       role,
		Name:       name,
		Identifier: identifier,
	}
	now := m.now()
	m.sessions[user.ID] = &entry{user: user, startTime: now, lastActivity: now}
	return user
}

// User resolves a session ID to its caller. Expired or unknown
// sessions resolve to nil, which the engines treat as guest.
func (m *Manager) User(sessionID string) *model.UserSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}
	if m.now().Sub(e.lastActivity) > m.timeout {
		delete(m.sessions, sessionID)
		return nil
	}
	return e.user
}

// RecordActivity refreshes the idle timer. Called on every tool call.
func (m *Manager) RecordActivity(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[sessionID]; ok {
		e.lastActivity = m.now()
	}
}

// IdleTime returns how long the session has been idle.
func (m *Manager) IdleTime(sessionID string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[sessionID]; ok {
		return m.now().Sub(e.lastActivity)
	}
	return 0
}

// Logout removes the session.
func (m *Manager) Logout(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Active returns the number of live sessions, expiring idle ones.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, e := range m.sessions {
		if now.Sub(e.lastActivity) > m.timeout {
			delete(m.sessions, id)
		}
	}
	return len(m.sessions)
}
