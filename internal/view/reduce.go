package view

// ApplyPatch returns the list with patch applied to the item whose key
// matches id. The input slice is not modified. The boolean reports whether
// a matching item was found.
func ApplyPatch[T any](items []T, id uint, idOf func(T) uint, patch func(*T)) ([]T, bool) {
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		if idOf(out[i]) == id {
			patch(&out[i])
			return out, true
		}
	}
	return out, false
}

// RemoveByID returns the list without the item whose key matches id. A
// missing id returns the list unchanged and false.
func RemoveByID[T any](items []T, id uint, idOf func(T) uint) ([]T, bool) {
	for i := range items {
		if idOf(items[i]) == id {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			out = append(out, items[i+1:]...)
			return out, true
		}
	}
	return items, false
}

// MapItems returns the list with fn applied to every item. The input slice
// is not modified.
func MapItems[T any](items []T, fn func(*T)) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		fn(&out[i])
	}
	return out
}
