// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// ROW
// =============================================================================

// Row is a flat column->value record as produced by table scans and
// returned by the query engine. Values are strings, ints, or float64s.
type Row map[string]any

// Clone returns a shallow copy of the row. Engines clone before
// enrichment or masking so stored records are never mutated.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
