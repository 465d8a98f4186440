package repo

import (
	"fmt"
	"strings"
)

// FieldType gates which operators a field accepts.
type FieldType string

const (
	TextField    FieldType = "text"
	DateField    FieldType = "date"
	BooleanField FieldType = "boolean"
)

// Operator is the fixed comparison vocabulary exposed to query consumers.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not equals"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not contains"
	OpStartsWith  Operator = "starts with"
	OpEndsWith    Operator = "ends with"
	OpIsEmpty     Operator = "is empty"
	OpIsNotEmpty  Operator = "is not empty"
	OpBefore      Operator = "before"
	OpAfter       Operator = "after"
)

var operatorsByType = map[FieldType][]Operator{
	TextField: {
		OpEquals, OpNotEquals, OpContains, OpNotContains,
		OpStartsWith, OpEndsWith, OpIsEmpty, OpIsNotEmpty,
	},
	DateField:    {OpEquals, OpNotEquals, OpIsEmpty, OpIsNotEmpty, OpBefore, OpAfter},
	BooleanField: {OpEquals, OpNotEquals},
}

// ParseOperator resolves user input case-insensitively.
func ParseOperator(s string) (Operator, bool) {
	op := Operator(strings.ToLower(strings.TrimSpace(s)))
	for _, candidates := range operatorsByType {
		for _, candidate := range candidates {
			if candidate == op {
				return op, true
			}
		}
	}
	return "", false
}

func (o Operator) AppliesTo(t FieldType) bool {
	for _, candidate := range operatorsByType[t] {
		if candidate == o {
			return true
		}
	}
	return false
}

// NeedsValue reports whether the operator takes a comparison value.
func (o Operator) NeedsValue() bool {
	return o != OpIsEmpty && o != OpIsNotEmpty
}

// Filter is one rendered condition against a single column.
type Filter struct {
	Op    Operator
	Value any
}

// String renders the condition for column with the argument placed at
// position argIdx. Operators without a value render self-contained SQL.
func (f Filter) String(column string, argIdx int) string {
	switch f.Op {
	case OpEquals:
		return fmt.Sprintf("%s = $%d", column, argIdx)
	case OpNotEquals:
		return fmt.Sprintf("%s <> $%d", column, argIdx)
	case OpContains:
		return fmt.Sprintf("%s ILIKE '%%' || $%d || '%%'", column, argIdx)
	case OpNotContains:
		return fmt.Sprintf("%s NOT ILIKE '%%' || $%d || '%%'", column, argIdx)
	case OpStartsWith:
		return fmt.Sprintf("%s ILIKE $%d || '%%'", column, argIdx)
	case OpEndsWith:
		return fmt.Sprintf("%s ILIKE '%%' || $%d", column, argIdx)
	case OpIsEmpty:
		return fmt.Sprintf("(%s IS NULL OR %s::text = '')", column, column)
	case OpIsNotEmpty:
		return fmt.Sprintf("(%s IS NOT NULL AND %s::text <> '')", column, column)
	case OpBefore:
		return fmt.Sprintf("%s < $%d", column, argIdx)
	case OpAfter:
		return fmt.Sprintf("%s > $%d", column, argIdx)
	}
	panic(fmt.Sprintf("repo: unknown operator %q", f.Op))
}

// Args returns the query arguments the rendered condition consumes.
func (f Filter) Args() []any {
	if !f.Op.NeedsValue() {
		return nil
	}
	return []any{f.Value}
}
