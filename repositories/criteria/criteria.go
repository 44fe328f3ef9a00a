// Package criteria holds small helpers to compose squirrel conditions: conjunctions,
// string matching with search modes, ordering and id column lookup.
package criteria

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dhis2/approval-backend/models"
)

// Orders returns a function building an ascending order clause on field for a table alias.
func Orders(field string) func(table string) string {
	return func(table string) string {
		if table == "" {
			return fmt.Sprintf("%s ASC", field)
		}
		return fmt.Sprintf("%s.%s ASC", table, field)
	}
}

// AndPredicate returns nil when there is nothing to combine, the predicate itself when there is only one.
func AndPredicate(predicates ...squirrel.Sqlizer) squirrel.Sqlizer {
	nonNil := make([]squirrel.Sqlizer, 0, len(predicates))
	for _, predicate := range predicates {
		if predicate != nil {
			nonNil = append(nonNil, predicate)
		}
	}

	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return squirrel.And(nonNil)
	}
}

// StringPredicate compares column to value according to the search mode.
// When caseSensitive is false, both sides are lower cased, the value with the case rules of lang.
func StringPredicate(
	column string,
	value string,
	mode models.StringSearchMode,
	caseSensitive bool,
	lang language.Tag,
) (squirrel.Sqlizer, error) {
	if !caseSensitive {
		column = fmt.Sprintf("lower(%s)", column)
		value = cases.Lower(lang).String(value)
	}

	switch mode {
	case models.StringSearchEquals:
		return squirrel.Eq{column: value}, nil
	case models.StringSearchEndingLike:
		return squirrel.Like{column: "%" + value}, nil
	case models.StringSearchStartingLike:
		return squirrel.Like{column: value + "%"}, nil
	case models.StringSearchAnywhere:
		return squirrel.Like{column: "%" + value + "%"}, nil
	case models.StringSearchLike:
		// the caller provides the wildcards
		return squirrel.Like{column: value}, nil
	default:
		return nil, errors.Wrapf(models.BadParameterError, "expecting a search mode, got %d", mode)
	}
}

// EntityModel describes the identifying columns of a table.
type EntityModel struct {
	Table     string
	IdColumns []string
}

// IdColumn returns the qualified id column named attributeName, if the entity has one.
func IdColumn(entity EntityModel, attributeName string) (string, bool) {
	for _, column := range entity.IdColumns {
		if column == attributeName {
			return fmt.Sprintf("%s.%s", entity.Table, column), true
		}
	}
	return "", false
}
