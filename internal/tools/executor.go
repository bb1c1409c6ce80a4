// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/campus-nexus/internal/model"
	"github.com/jeranaias/campus-nexus/internal/query"
	"github.com/jeranaias/campus-nexus/internal/transaction"
)

// maxHistory caps the retained execution records.
const maxHistory = 100

// =============================================================================
// CALLS & RESULTS
// =============================================================================

// ToolCall is one parsed function call from the model.
type ToolCall struct {
	Name   string
	Params map[string]any
}

// Result is the outcome of a tool execution, returned to the
// orchestrator as data. Engine errors appear in Rows or Data with
// Success=false; Go errors never cross this boundary.
type Result struct {
	ToolName string
	Success  bool
	Rows     []model.Row
	Data     any
	Error    string
	Duration time.Duration
}

// ExecutionRecord tracks one execution for audit and debugging.
type ExecutionRecord struct {
	Call      ToolCall
	Caller    string
	Result    Result
	Timestamp time.Time
}

// =============================================================================
// EXECUTOR
// =============================================================================

// Executor validates and dispatches tool calls. The caller session is
// bound out-of-band at construction or via BindCaller, never read from
// model-controlled parameters.
type Executor struct {
	mu       sync.Mutex
	registry *Registry
	queries  *query.Engine
	writes   *transaction.Engine
	caller   *model.UserSession
	limiter  *rate.Limiter
	history  []ExecutionRecord
}

// Option configures an Executor.
type Option func(*Executor)

// WithRateLimit caps executions per second with the given burst.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(e *Executor) {
		e.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewExecutor creates an executor over the engines. The default rate
// limit is 10 calls/sec with a burst of 20.
func NewExecutor(registry *Registry, queries *query.Engine, writes *transaction.Engine, opts ...Option) *Executor {
	e := &Executor{
		registry: registry,
		queries:  queries,
		writes:   writes,
		limiter:  rate.NewLimiter(10, 20),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BindCaller sets the session all subsequent calls execute as. A nil
// caller is a guest.
func (e *Executor) BindCaller(caller *model.UserSession) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.caller = caller
}

// Execute runs one tool call. The context bounds rate-limiter waits.
func (e *Executor) Execute(ctx context.Context, call ToolCall) Result {
	start := time.Now()

	e.mu.Lock()
	caller := e.caller
	limiter := e.limiter
	e.mu.Unlock()

	res := e.dispatch(ctx, limiter, call, caller)
	res.ToolName = call.Name
	res.Duration = time.Since(start)

	e.record(call, caller, res)
	return res
}

func (e *Executor) dispatch(ctx context.Context, limiter *rate.Limiter, call ToolCall, caller *model.UserSession) Result {
	if err := limiter.Wait(ctx); err != nil {
		return Result{Error: fmt.Sprintf("rate limit: %v", err)}
	}

	tool := e.registry.Get(call.Name)
	if tool == nil {
		return Result{Error: fmt.Sprintf("unknown tool: %s", call.Name)}
	}
	if err := validateParams(tool, call.Params); err != nil {
		return Result{Error: err.Error()}
	}

	switch call.Name {
	case ToolExecuteSQLQuery:
		queryText, _ := call.Params["query"].(string)
		rows, qerr := e.queries.Execute(queryText, caller)
		if qerr != nil {
			return Result{Rows: []model.Row{qerr.AsRow()}, Error: qerr.Error()}
		}
		return Result{Success: true, Rows: rows}

	case ToolManageData:
		action, _ := call.Params["action"].(string)
		params, _ := call.Params["params"].(map[string]any)
		res := e.writes.Execute(transaction.Action(action), params, caller)
		if res.Status != transaction.StatusSuccess {
			return Result{Data: res, Error: res.Message}
		}
		return Result{Success: true, Data: res}

	case ToolRenderChart, ToolCreateFile:
		// Pass-through: the host application owns rendering and file
		// delivery. Echo the parameters back as the acknowledgment.
		return Result{Success: true, Data: model.Row{
			"status":    "acknowledged",
			"tool":      call.Name,
			"arguments": call.Params,
		}}
	}
	return Result{Error: fmt.Sprintf("tool %s has no handler", call.Name)}
}

// validateParams checks required parameters and enum membership.
func validateParams(tool *Tool, params map[string]any) error {
	for _, name := range tool.Schema.Required {
		val, ok := params[name]
		if !ok || val == nil {
			return fmt.Errorf("%s: missing required parameter %q", tool.Name, name)
		}
		if s, isString := val.(string); isString && s == "" {
			return fmt.Errorf("%s: parameter %q is empty", tool.Name, name)
		}
	}
	for name, decl := range tool.Schema.Properties {
		val, ok := params[name]
		if !ok || len(decl.Enum) == 0 {
			continue
		}
		s, _ := val.(string)
		if !contains(decl.Enum, s) {
			return fmt.Errorf("%s: parameter %q must be one of %v", tool.Name, name, decl.Enum)
		}
	}
	return nil
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}

// =============================================================================
// HISTORY
// =============================================================================

func (e *Executor) record(call ToolCall, caller *model.UserSession, res Result) {
	label := string(model.RoleOf(caller))
	if caller != nil {
		label = fmt.Sprintf("%s:%s", caller.Role, caller.Identifier)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = append(e.history, ExecutionRecord{
		Call:      call,
		Caller:    label,
		Result:    res,
		Timestamp: time.Now(),
	})
	if len(e.history) > maxHistory {
		e.history = e.history[len(e.history)-maxHistory:]
	}
}

// History returns a copy of the retained execution records.
func (e *Executor) History() []ExecutionRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]ExecutionRecord, len(e.history))
	copy(out, e.history)
	return out
}
