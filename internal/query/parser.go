// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"strconv"
	"strings"

	"github.com/jeranaias/campus-nexus/internal/model"
)

// =============================================================================
// PARSER
// =============================================================================

// Parse turns raw query text into a Query. Parsing is lexical, not
// grammatical: the table is the first vocabulary name found anywhere in
// the text, so natural-language phrasings like "show me all students"
// resolve the same way a well-formed SELECT does.
//
// Any WHERE condition that does not decompose into <column> <op> <value>
// is a MALFORMED_CONDITION error. An unparseable condition must never
// silently widen the result set.
func Parse(queryText string) (*Query, *QueryError) {
	normalized := strings.ToLower(strings.TrimSpace(queryText))
	normalized = strings.TrimRight(normalized, "; \t")

	q := &Query{CountOnly: strings.Contains(normalized, "count(*)")}

	for _, table := range model.TableVocabulary {
		if strings.Contains(normalized, table) {
			q.Table = table
			break
		}
	}
	if q.Table == "" {
		return nil, unknownTable(queryText)
	}

	clause := normalized
	if idx := strings.Index(clause, " limit "); idx >= 0 {
		limitPart := strings.TrimSpace(clause[idx+len(" limit "):])
		clause = clause[:idx]
		fields := strings.Fields(limitPart)
		if len(fields) == 0 {
			return nil, malformedCondition("limit (empty)")
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil || n < 1 {
			return nil, malformedCondition("limit " + limitPart)
		}
		q.Limit = n
	}

	if strings.HasSuffix(clause, " where") {
		return nil, malformedCondition("(empty)")
	}
	idx := strings.Index(clause, " where ")
	if idx < 0 {
		return q, nil
	}
	wherePart := strings.TrimSpace(clause[idx+len(" where "):])
	if wherePart == "" {
		return nil, malformedCondition("(empty)")
	}

	for _, cond := range strings.Split(wherePart, " and ") {
		pred, qerr := parseCondition(cond)
		if qerr != nil {
			return nil, qerr
		}
		q.Predicates = append(q.Predicates, pred)
	}
	return q, nil
}

// parseCondition decomposes a single condition. LIKE is checked before
// "=" so quoted patterns containing "=" do not mis-split.
func parseCondition(cond string) (Predicate, *QueryError) {
	cond = strings.TrimSpace(cond)

	if col, val, ok := strings.Cut(cond, " like "); ok {
		return buildPredicate(col, OpLike, val, cond)
	}
	if col, val, ok := strings.Cut(cond, ">"); ok {
		return buildNumericPredicate(col, OpGt, val, cond)
	}
	if col, val, ok := strings.Cut(cond, "<"); ok {
		return buildNumericPredicate(col, OpLt, val, cond)
	}
	if col, val, ok := strings.Cut(cond, "="); ok {
		if strings.Contains(val, "=") {
			return Predicate{}, malformedCondition(cond)
		}
		return buildPredicate(col, OpEq, val, cond)
	}
	return Predicate{}, malformedCondition(cond)
}

func buildPredicate(col string, op Operator, val, cond string) (Predicate, *QueryError) {
	column := strings.TrimSpace(col)
	value := cleanValue(val)
	if column == "" || value == "" {
		return Predicate{}, malformedCondition(cond)
	}
	return Predicate{Column: column, Op: op, Value: value}, nil
}

func buildNumericPredicate(col string, op Operator, val, cond string) (Predicate, *QueryError) {
	pred, qerr := buildPredicate(col, op, val, cond)
	if qerr != nil {
		return Predicate{}, qerr
	}
	if _, err := strconv.ParseFloat(pred.Value, 64); err != nil {
		return Predicate{}, malformedCondition(cond)
	}
	return pred, nil
}

// cleanValue strips quoting and LIKE wildcards from a literal.
func cleanValue(val string) string {
	val = strings.TrimSpace(val)
	val = strings.Trim(val, "'\"")
	return strings.Trim(val, "%")
}
