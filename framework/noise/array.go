package noise

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Array is a dense, row-major numeric array of arbitrary rank, used as the
// input and output type of the noise generators. Arrays are immutable from
// the caller's point of view: every operation returns a new Array.
type Array struct {
	data  []float64
	shape []int
}

// New creates an Array from a flat buffer and a shape. The data is copied.
// With no shape given, the array is one-dimensional. New panics if the shape
// does not fit the number of elements; that is a programmer error in the
// test fixture, not a runtime condition.
func New(data []float64, shape ...int) *Array {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	if sizeOf(shape) != len(data) {
		panic(fmt.Sprintf("noise: shape %v does not fit %d elements", shape, len(data)))
	}
	return &Array{
		data:  append([]float64(nil), data...),
		shape: append([]int(nil), shape...),
	}
}

// Zeros creates an all-zero Array of the given shape.
func Zeros(shape ...int) *Array {
	return &Array{
		data:  make([]float64, sizeOf(shape)),
		shape: append([]int(nil), shape...),
	}
}

func sizeOf(shape []int) int {
	size := 1
	for _, dim := range shape {
		if dim < 0 {
			panic(fmt.Sprintf("noise: negative dimension in shape %v", shape))
		}
		size *= dim
	}
	return size
}

// Shape returns a copy of the array's dimensions.
func (a *Array) Shape() []int {
	return append([]int(nil), a.shape...)
}

// Size returns the total number of elements.
func (a *Array) Size() int {
	return len(a.data)
}

// Data returns a copy of the elements in row-major order.
func (a *Array) Data() []float64 {
	return append([]float64(nil), a.data...)
}

// At returns the element at the given multi-dimensional index.
func (a *Array) At(indices ...int) float64 {
	if len(indices) != len(a.shape) {
		panic(fmt.Sprintf("noise: %d indices for rank-%d array", len(indices), len(a.shape)))
	}
	offset := 0
	for dim, idx := range indices {
		if idx < 0 || idx >= a.shape[dim] {
			panic(fmt.Sprintf("noise: index %d out of range for dimension %d of shape %v", idx, dim, a.shape))
		}
		offset = offset*a.shape[dim] + idx
	}
	return a.data[offset]
}

// SameShape reports whether two arrays have identical dimensions.
func (a *Array) SameShape(b *Array) bool {
	return slices.Equal(a.shape, b.shape)
}

// reshaped wraps a flat noise buffer in the shape of the source array, the
// equivalent of coercing the noise dimensions to match the input before
// combination. The buffer is not copied.
func (a *Array) reshaped(buffer []float64) *Array {
	return &Array{data: buffer, shape: a.Shape()}
}
