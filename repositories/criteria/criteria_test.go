package criteria

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dhis2/approval-backend/models"
)

func TestOrders(t *testing.T) {
	order := Orders("name")
	assert.Equal(t, "r.name ASC", order("r"))
	assert.Equal(t, "name ASC", order(""))
}

func TestAndPredicate(t *testing.T) {
	t.Run("no predicates", func(t *testing.T) {
		assert.Nil(t, AndPredicate())
		assert.Nil(t, AndPredicate(nil, nil))
	})

	t.Run("single predicate is returned as is", func(t *testing.T) {
		predicate := squirrel.Eq{"name": "a"}
		assert.Equal(t, predicate, AndPredicate(nil, predicate))
	})

	t.Run("several predicates", func(t *testing.T) {
		predicate := AndPredicate(squirrel.Eq{"name": "a"}, squirrel.Eq{"code": "b"})
		sql, args, err := predicate.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "(name = ? AND code = ?)", sql)
		assert.Equal(t, []any{"a", "b"}, args)
	})
}

func TestStringPredicate(t *testing.T) {
	tests := []struct {
		name          string
		mode          models.StringSearchMode
		caseSensitive bool
		value         string
		wantSql       string
		wantArg       string
	}{
		{"equals", models.StringSearchEquals, true, "ANC", "r.name = ?", "ANC"},
		{"equals case insensitive", models.StringSearchEquals, false, "ANC", "lower(r.name) = ?", "anc"},
		{"ending like", models.StringSearchEndingLike, true, "visit", "r.name LIKE ?", "%visit"},
		{"starting like", models.StringSearchStartingLike, true, "ANC", "r.name LIKE ?", "ANC%"},
		{"anywhere", models.StringSearchAnywhere, false, "Visit", "lower(r.name) LIKE ?", "%visit%"},
		{"like keeps the wildcards", models.StringSearchLike, true, "A_C%", "r.name LIKE ?", "A_C%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predicate, err := StringPredicate("r.name", tt.value, tt.mode, tt.caseSensitive, language.English)
			require.NoError(t, err)

			sql, args, err := predicate.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSql, sql)
			assert.Equal(t, []any{tt.wantArg}, args)
		})
	}

	t.Run("locale aware lower case", func(t *testing.T) {
		predicate, err := StringPredicate("r.name", "KIRIKKALE", models.StringSearchEquals, false, language.Turkish)
		require.NoError(t, err)
		_, args, err := predicate.ToSql()
		require.NoError(t, err)
		assert.Equal(t, []any{"kırıkkale"}, args)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := StringPredicate("r.name", "a", models.StringSearchMode(42), true, language.English)
		assert.ErrorIs(t, err, models.BadParameterError)
	})
}

func TestStringSearchModeFromCode(t *testing.T) {
	assert.Equal(t, models.StringSearchAnywhere, models.StringSearchModeFromCode("any"))
	assert.Equal(t, models.StringSearchEndingLike, models.StringSearchModeFromCode("el"))
	assert.Equal(t, models.StringSearchStartingLike, models.StringSearchModeFromCode("sl"))
	assert.Equal(t, models.StringSearchLike, models.StringSearchModeFromCode("li"))
	assert.Equal(t, models.StringSearchEquals, models.StringSearchModeFromCode("unknown"))
}

func TestIdColumn(t *testing.T) {
	entity := EntityModel{Table: "approvalvalidationrule", IdColumns: []string{"approvalvalidationruleid", "uid"}}

	column, ok := IdColumn(entity, "uid")
	assert.True(t, ok)
	assert.Equal(t, "approvalvalidationrule.uid", column)

	_, ok = IdColumn(entity, "name")
	assert.False(t, ok)
}
