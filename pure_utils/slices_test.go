package pure_utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsSameElements(t *testing.T) {
	tests := []struct {
		name string
		a, b []int64
		want bool
	}{
		{"same elements", []int64{1, 2, 3}, []int64{3, 2, 1}, true},
		{"different lengths", []int64{1, 2}, []int64{1, 2, 3}, false},
		{"different elements", []int64{1, 2, 3}, []int64{1, 2, 4}, false},
		{"empty slices", []int64{}, []int64{}, true},
		{"one empty slice", []int64{1}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsSameElements(tt.a, tt.b))
		})
	}
}

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"7", "9"}, Map([]int64{7, 9}, func(id int64) string { return strconv.FormatInt(id, 10) }))
	assert.Equal(t, []string{}, Map(nil, func(id int64) string { return "" }))
}

func TestDistinct(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, Distinct([]int64{3, 1, 3, 2, 1}))
	assert.Equal(t, []int64{}, Distinct([]int64{}))
}

func TestSubList(t *testing.T) {
	input := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "b"}, SubList(input, 0, 2))
	assert.Equal(t, []string{"a", "b", "c"}, SubList(input, 0, 256))
	assert.Equal(t, []string{}, SubList(input, 3, 256))
}

func TestAtIndexes(t *testing.T) {
	input := []any{"a", nil, "c", 4}
	assert.Equal(t, []any{"a", "c"}, AtIndexes(input, []int{0, 2}))
	assert.Equal(t, []any{nil, 4}, AtIndexes(input, []int{1, 3, 7}))
}

func TestTrimBom(t *testing.T) {
	assert.Equal(t, "<table>", TrimBom("\uFEFF<table>"))
	assert.Equal(t, "<table>", TrimBom("<table>"))
}
