package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Changes reports whether ptr is set to something other than current under eq.
// An absent field never counts as a change.
func Changes[T any](ptr *T, current T, eq func(a, b T) bool) bool {
	return ptr != nil && !eq(*ptr, current)
}

func Equal[T comparable](a, b T) bool { return a == b }
