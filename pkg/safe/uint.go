// Package safe provides helpers for safe numeric conversions with range checks.
package safe

import "fmt"

// Uint64 converts signed integers to uint64 while guarding against negatives.
func Uint64[T ~int | ~int32 | ~int64](v T) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return uint64(v), nil
}

// Uint32 converts signed or wider unsigned integers to uint32 with range
// validation.
func Uint32[T ~int | ~int64 | ~uint64](v T) (uint32, error) {
	if v < 0 || uint64(v) > 1<<32-1 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(v), nil
}
