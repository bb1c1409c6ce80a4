// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/campus-nexus/internal/dataset"
	"github.com/jeranaias/campus-nexus/internal/model"
	"github.com/jeranaias/campus-nexus/internal/query"
	"github.com/jeranaias/campus-nexus/internal/transaction"
)

func newTestExecutor(t *testing.T) *Executor {
	t.Helper()
	store := dataset.NewStore(model.Dataset{
		Students: []model.Student{
			{ID: "s1", NIM: "2024001", Name: "Budi Santoso", Password: "123", Major: "Teknik Informatika", Semester: 4, GPA: 3.75},
		},
		Employees: []model.Employee{
			{ID: "e1", NIK: "PEG001", Name: "Agus Wijaya", Position: "Staf Keuangan"},
		},
		Facilities: []model.Facility{
			{ID: "f1", Code: "G-A", Name: "Gedung A", Type: "GEDUNG", Capacity: 500},
		},
	})
	writes := transaction.NewEngine(store, nil, transaction.WithClock(func() time.Time {
		return time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	}))
	return NewExecutor(DefaultRegistry(), query.NewEngine(store, nil), writes)
}

func TestDefaultRegistryDeclaresFullSurface(t *testing.T) {
	r := DefaultRegistry()
	for _, name := range []string{ToolExecuteSQLQuery, ToolManageData, ToolRenderChart, ToolCreateFile} {
		require.NotNil(t, r.Get(name), "missing tool %s", name)
	}
	assert.Len(t, r.All(), 4)

	sql := r.Get(ToolExecuteSQLQuery)
	assert.Equal(t, []string{"query"}, sql.Schema.Required)
	assert.Contains(t, r.Get(ToolManageData).Schema.Properties["action"].Enum, "CLOCK_IN")
}

func TestExecuteQueryAsGuest(t *testing.T) {
	e := newTestExecutor(t)

	res := e.Execute(context.Background(), ToolCall{
		Name:   ToolExecuteSQLQuery,
		Params: map[string]any{"query": "SELECT * FROM facilities"},
	})
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Gedung A", res.Rows[0]["name"])

	// Sensitive table: the denial comes back as data, not a panic.
	res = e.Execute(context.Background(), ToolCall{
		Name:   ToolExecuteSQLQuery,
		Params: map[string]any{"query": "SELECT * FROM students"},
	})
	assert.False(t, res.Success)
	require.Len(t, res.Rows, 1)
	assert.Contains(t, res.Rows[0]["error"], query.CodeAccessDenied)
}

func TestBoundCallerIsUsed(t *testing.T) {
	e := newTestExecutor(t)
	e.BindCaller(&model.UserSession{ID: "s", Role: model.RoleAdmin, Identifier: "admin"})

	res := e.Execute(context.Background(), ToolCall{
		Name:   ToolExecuteSQLQuery,
		Params: map[string]any{"query": "SELECT * FROM students"},
	})
	require.True(t, res.Success, res.Error)
	assert.Len(t, res.Rows, 1)
}

func TestCallerCannotBeInjectedViaParams(t *testing.T) {
	e := newTestExecutor(t)

	// A "role" parameter from the model must not grant access.
	res := e.Execute(context.Background(), ToolCall{
		Name:   ToolExecuteSQLQuery,
		Params: map[string]any{"query": "SELECT * FROM students", "role": "admin"},
	})
	assert.False(t, res.Success)
}

func TestManageDataDispatch(t *testing.T) {
	e := newTestExecutor(t)
	e.BindCaller(&model.UserSession{ID: "s", Role: model.RoleEmployee, Name: "Agus", Identifier: "PEG001"})

	res := e.Execute(context.Background(), ToolCall{
		Name:   ToolManageData,
		Params: map[string]any{"action": "CLOCK_IN"},
	})
	require.True(t, res.Success, res.Error)
	txRes, ok := res.Data.(transaction.Result)
	require.True(t, ok)
	assert.Equal(t, "08:00", txRes.Data["check_in"])

	// Second clock-in the same day fails through the same surface.
	res = e.Execute(context.Background(), ToolCall{
		Name:   ToolManageData,
		Params: map[string]any{"action": "CLOCK_IN"},
	})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "already clocked in")
}

func TestValidation(t *testing.T) {
	e := newTestExecutor(t)

	res := e.Execute(context.Background(), ToolCall{Name: ToolExecuteSQLQuery, Params: map[string]any{}})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "missing required parameter")

	res = e.Execute(context.Background(), ToolCall{
		Name:   ToolManageData,
		Params: map[string]any{"action": "DROP_TABLES"},
	})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "must be one of")

	res = e.Execute(context.Background(), ToolCall{Name: "teleport", Params: map[string]any{}})
	assert.Contains(t, res.Error, "unknown tool")
}

func TestPassThroughTools(t *testing.T) {
	e := newTestExecutor(t)

	res := e.Execute(context.Background(), ToolCall{
		Name: ToolRenderChart,
		Params: map[string]any{
			"title":  "GPA by major",
			"type":   "bar",
			"labels": []any{"TI", "SI"},
			"values": []any{3.4, 3.2},
		},
	})
	require.True(t, res.Success, res.Error)
	data, ok := res.Data.(model.Row)
	require.True(t, ok)
	assert.Equal(t, "acknowledged", data["status"])

	res = e.Execute(context.Background(), ToolCall{
		Name: ToolCreateFile,
		Params: map[string]any{
			"filename": "report.csv",
			"content":  "nim,name\n",
			"mimeType": "text/csv",
		},
	})
	assert.True(t, res.Success, res.Error)
}

func TestHistoryIsRecorded(t *testing.T) {
	e := newTestExecutor(t)

	e.Execute(context.Background(), ToolCall{
		Name:   ToolExecuteSQLQuery,
		Params: map[string]any{"query": "SELECT * FROM facilities"},
	})

	history := e.History()
	require.Len(t, history, 1)
	assert.Equal(t, ToolExecuteSQLQuery, history[0].Call.Name)
	assert.Equal(t, "guest", history[0].Caller)
	assert.True(t, history[0].Result.Success)
}

func TestRateLimit(t *testing.T) {
	e := NewExecutor(DefaultRegistry(), nil, nil, WithRateLimit(1, 1))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ok := e.Execute(ctx, ToolCall{Name: ToolRenderChart, Params: map[string]any{
		"title": "t", "type": "bar", "labels": []any{}, "values": []any{},
	}})
	assert.True(t, ok.Success, ok.Error)

	// Burst exhausted: the second call times out waiting for a token.
	blocked := e.Execute(ctx, ToolCall{Name: ToolRenderChart, Params: map[string]any{
		"title": "t", "type": "bar", "labels": []any{}, "values": []any{},
	}})
	assert.False(t, blocked.Success)
	assert.Contains(t, blocked.Error, "rate limit")
}
