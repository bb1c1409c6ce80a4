// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/campus-nexus/internal/model"
)

// =============================================================================
// OPERATORS
// =============================================================================

// Operator is a WHERE comparison operator.
type Operator string

const (
	OpEq   Operator = "="
	OpLike Operator = "like"
	OpGt   Operator = ">"
	OpLt   Operator = "<"
)

// =============================================================================
// PREDICATE
// =============================================================================

// Predicate is one parsed WHERE condition. Conditions combine with AND
// only; there is no OR, grouping, or negation.
type Predicate struct {
	Column string
	Op     Operator
	Value  string
}

// Match evaluates the predicate against a row. A missing column never
// matches. Equality and LIKE are case-insensitive string comparisons;
// > and < compare numerically.
func (p Predicate) Match(row model.Row) bool {
	val, ok := row[p.Column]
	if !ok {
		return false
	}

	switch p.Op {
	case OpEq:
		return strings.EqualFold(stringify(val), p.Value)
	case OpLike:
		return strings.Contains(strings.ToLower(stringify(val)), strings.ToLower(p.Value))
	case OpGt:
		n, ok := toFloat(val)
		if !ok {
			return false
		}
		want, err := strconv.ParseFloat(p.Value, 64)
		return err == nil && n > want
	case OpLt:
		n, ok := toFloat(val)
		if !ok {
			return false
		}
		want, err := strconv.ParseFloat(p.Value, 64)
		return err == nil && n < want
	}
	return false
}

// stringify renders a cell value for string comparison.
func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// toFloat extracts a numeric value from a cell for ordered comparison.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case string:
		n, err := strconv.ParseFloat(x, 64)
		return n, err == nil
	}
	return 0, false
}

// =============================================================================
// QUERY
// =============================================================================

// Query is a parsed statement.
type Query struct {
	Table      string
	Predicates []Predicate
	Limit      int // 0 means no explicit LIMIT
	CountOnly  bool
}

// Match reports whether a row satisfies every predicate.
func (q *Query) Match(row model.Row) bool {
	for _, p := range q.Predicates {
		if !p.Match(row) {
			return false
		}
	}
	return true
}
