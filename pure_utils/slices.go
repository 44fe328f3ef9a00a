package pure_utils

import (
	"github.com/hashicorp/go-set/v2"
)

func ContainsSameElements[T comparable](a, b []T) bool {
	return set.From(a).Equal(set.From(b))
}

// Distinct keeps the first occurrence of every element, in order.
func Distinct[T comparable](input []T) []T {
	seen := set.New[T](len(input))
	output := make([]T, 0, len(input))
	for _, item := range input {
		if seen.Insert(item) {
			output = append(output, item)
		}
	}
	return output
}

func Map[T, U any](input []T, f func(T) U) []U {
	output := make([]U, len(input))
	for idx, value := range input {
		output[idx] = f(value)
	}
	return output
}

// SubList returns input[start:end], with end clamped to the length of the slice.
func SubList[T any](input []T, start, end int) []T {
	if end > len(input) {
		end = len(input)
	}
	if start >= end {
		return []T{}
	}
	return input[start:end]
}

// AtIndexes returns the elements found at the given indexes, out of range indexes are skipped.
func AtIndexes[T any](input []T, indexes []int) []T {
	output := make([]T, 0, len(indexes))
	for _, index := range indexes {
		if index >= 0 && index < len(input) {
			output = append(output, input[index])
		}
	}
	return output
}
