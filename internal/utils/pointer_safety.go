package utils

// Ptr returns a pointer to v, useful for building partial updates.
func Ptr[T any](v T) *T {
	return &v
}
