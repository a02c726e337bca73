package storage

// Flatten2D takes a 2D slice and returns a 1D slice containing all the
// elements, in order. The result is never nil.
func Flatten2D[T any](data [][]T) []T {
	size := 0

	for _, outer := range data {
		size += len(outer)
	}

	result := make([]T, 0, size)

	for _, outer := range data {
		result = append(result, outer...)
	}

	return result
}
