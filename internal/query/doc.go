// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package query implements the restricted SELECT-subset engine.
//
// The accepted grammar is deliberately small and fully enumerable:
//
//	SELECT <cols> FROM <table> [WHERE <cond> [AND <cond>]...] [LIMIT n]
//
// with conditions limited to =, LIKE '%v%', >, and < joined by AND.
// The safety argument of the whole system depends on this grammar
// staying small; OR, joins, and subqueries must not be added.
//
// Execution is a fixed pipeline: resolve table, table-level access
// control, row-level security, WHERE evaluation, COUNT shortcut,
// enrichment, column masking, truncation. A condition the parser does
// not recognize fails closed with MALFORMED_CONDITION instead of
// degrading to match-all.
//
// # Key Types
//
//   - Query: parsed statement (table, predicates, limit, count flag)
//   - Engine: executes a statement for a caller session
//   - QueryError: structured failure (UNKNOWN_TABLE, ACCESS_DENIED,
//     MALFORMED_CONDITION) returned as data, never panicked
package query
