// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools is the boundary between the LLM orchestrator and the
// engines: tool declarations the model can call, and an executor that
// validates, rate-limits, and dispatches the calls.
package tools

import "sync"

// Tool names the orchestrator may call.
const (
	ToolExecuteSQLQuery = "execute_sql_query"
	ToolManageData      = "manage_data"
	ToolRenderChart     = "render_chart"
	ToolCreateFile      = "create_file"
)

// =============================================================================
// DECLARATIONS
// =============================================================================

// Parameter describes one tool parameter for the model's function
// calling schema.
type Parameter struct {
	// Type is the parameter type ("string", "number", "boolean", "array", "object")
	Type string

	// Description tells the model what to put here
	Description string

	// Enum restricts string parameters to fixed values (optional)
	Enum []string

	// Items is the element type for array parameters (optional)
	Items string
}

// Schema is a tool's parameter schema.
type Schema struct {
	Type       string
	Properties map[string]Parameter
	Required   []string
}

// Tool is one callable tool declaration.
type Tool struct {
	Name        string
	Description string
	Schema      Schema
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds the tool declarations.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// DefaultRegistry returns a registry with the full tool surface.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(executeSQLQueryTool)
	r.Register(manageDataTool)
	r.Register(renderChartTool)
	r.Register(createFileTool)
	return r
}

// Register adds or replaces a tool.
func (r *Registry) Register(tool *Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name] = tool
}

// Get returns a tool by name, or nil.
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// All returns every registered tool.
func (r *Registry) All() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	return out
}

// =============================================================================
// BUILT-IN TOOLS
// =============================================================================

var executeSQLQueryTool = &Tool{
	Name: ToolExecuteSQLQuery,
	Description: `Run a read-only SQL query against the campus database.

Tables: students, lecturers, employees, courses, grades, tuition_payments,
admissions, salaries, attendance, facilities, scholarships, organizations.

Supported: SELECT with WHERE (=, LIKE, >, <, AND), COUNT(*), LIMIT.
Not supported: OR, JOIN, subqueries, writes. Use manage_data for writes.`,
	Schema: Schema{
		Type: "object",
		Properties: map[string]Parameter{
			"query": {
				Type:        "string",
				Description: "The SQL query to execute. Example: SELECT * FROM students WHERE gpa > 3.5",
			},
		},
		Required: []string{"query"},
	},
}

var manageDataTool = &Tool{
	Name: ToolManageData,
	Description: `Perform a write action for the logged-in user.

CLOCK_IN records today's attendance, CLOCK_OUT stamps the check-out
time, UPDATE_PROFILE submits a profile change for review.`,
	Schema: Schema{
		Type: "object",
		Properties: map[string]Parameter{
			"action": {
				Type:        "string",
				Description: "The write action to perform",
				Enum:        []string{"CLOCK_IN", "CLOCK_OUT", "UPDATE_PROFILE"},
			},
			"params": {
				Type:        "object",
				Description: "Action-specific fields, e.g. profile fields for UPDATE_PROFILE",
			},
		},
		Required: []string{"action"},
	},
}

var renderChartTool = &Tool{
	Name: ToolRenderChart,
	Description: `Request a chart visualization of query results. The host
application renders it; this tool returns an acknowledgment.`,
	Schema: Schema{
		Type: "object",
		Properties: map[string]Parameter{
			"title":  {Type: "string", Description: "Chart title"},
			"type":   {Type: "string", Description: "Chart type", Enum: []string{"bar", "line", "pie"}},
			"labels": {Type: "array", Description: "Category labels", Items: "string"},
			"values": {Type: "array", Description: "Numeric values, one per label", Items: "number"},
			"steps":  {Type: "string", Description: "Optional reasoning steps to display"},
		},
		Required: []string{"title", "type", "labels", "values"},
	},
}

var createFileTool = &Tool{
	Name: ToolCreateFile,
	Description: `Offer a generated file (report, export) for download. The host
application handles delivery; this tool returns an acknowledgment.`,
	Schema: Schema{
		Type: "object",
		Properties: map[string]Parameter{
			"filename": {Type: "string", Description: "Suggested file name"},
			"content":  {Type: "string", Description: "File content"},
			"mimeType": {Type: "string", Description: "MIME type, e.g. text/csv"},
		},
		Required: []string{"filename", "content", "mimeType"},
	},
}
