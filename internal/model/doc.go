// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the campus data model and caller identity types.
//
// # Key Types
//
//   - Dataset: the full set of named tables held in memory
//   - Row: a flat column->value record as returned by the query engine
//   - Role: caller role with an explicit Guest case
//   - UserSession: the authenticated caller identity
//
// Every entity maps to one named table; insertion order within a table
// is the table scan order. Entities are plain data with no behavior
// beyond Row conversion.
package model
