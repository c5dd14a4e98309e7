package report

import (
	"cmp"

	"github.com/Additional-Code/stockflow/pkg/errorbank"
)

// BestBy returns the element with the greatest key. On ties the element met
// first wins. An empty input is a caller error reported as EmptyCollection.
func BestBy[T any, K cmp.Ordered](items []T, key func(T) K) (T, error) {
	return BestByFunc(items, func(a, b T) int { return cmp.Compare(key(a), key(b)) })
}

// LowestBy returns the element with the smallest key, first wins on ties.
func LowestBy[T any, K cmp.Ordered](items []T, key func(T) K) (T, error) {
	return LowestByFunc(items, func(a, b T) int { return cmp.Compare(key(a), key(b)) })
}

// BestByFunc is BestBy for keys that are not ordered types, such as decimal
// amounts. compare follows the cmp.Compare contract.
func BestByFunc[T any](items []T, compare func(a, b T) int) (T, error) {
	return selectBy(items, func(candidate, best T) bool { return compare(candidate, best) > 0 })
}

// LowestByFunc is LowestBy with an explicit comparison.
func LowestByFunc[T any](items []T, compare func(a, b T) int) (T, error) {
	return selectBy(items, func(candidate, best T) bool { return compare(candidate, best) < 0 })
}

func selectBy[T any](items []T, beats func(candidate, best T) bool) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, errorbank.EmptyCollection("cannot select from an empty collection")
	}
	best := items[0]
	for _, item := range items[1:] {
		if beats(item, best) {
			best = item
		}
	}
	return best, nil
}
