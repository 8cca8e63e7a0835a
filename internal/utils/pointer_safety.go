package utils

// Value dereferences v, giving the zero value for nil. Backend payloads use
// pointers for fields that may be null.
func Value[T any](v *T) T {
	var zero T
	return ValueOr(v, zero)
}

// ValueOr dereferences v, giving fallback for nil
func ValueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

func Ptr[T any](v T) *T {
	return &v
}
