// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"fmt"

	"github.com/jeranaias/campus-nexus/internal/model"
)

// =============================================================================
// ERROR CODES
// =============================================================================

// Error codes returned by the engine. The orchestrator branches on
// these to decide whether to retry, rephrase, or surface the message.
const (
	CodeUnknownTable       = "UNKNOWN_TABLE"
	CodeAccessDenied       = "ACCESS_DENIED"
	CodeMalformedCondition = "MALFORMED_CONDITION"
)

// =============================================================================
// QUERY ERROR
// =============================================================================

// QueryError is a structured query failure. It crosses the tool
// boundary as data; nothing in this package panics on bad input.
type QueryError struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return e.Code + ": " + e.Message
}

// AsRow converts the error to the single-row form the external
// interface returns for failures.
func (e *QueryError) AsRow() model.Row {
	return model.Row{"error": e.Error()}
}

func unknownTable(queryText string) *QueryError {
	return &QueryError{
		Code:    CodeUnknownTable,
		Message: fmt.Sprintf("no recognized table in query: %s", queryText),
	}
}

func accessDenied(reason string) *QueryError {
	return &QueryError{Code: CodeAccessDenied, Message: reason}
}

func malformedCondition(cond string) *QueryError {
	return &QueryError{
		Code:    CodeMalformedCondition,
		Message: fmt.Sprintf("cannot parse WHERE condition: %s", cond),
	}
}
