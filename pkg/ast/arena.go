package ast

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// Arena owns the nodes of one kind. IDs are 1-based; 0 is never allocated.
type Arena[T any] struct {
	data []T
}

// NewArena creates an arena with room for capHint values.
func NewArena[T any](capHint int) *Arena[T] {
	return &Arena[T]{data: make([]T, 0, capHint)}
}

// Alloc appends value and returns its 1-based index.
func (a *Arena[T]) Alloc(value T) uint32 {
	a.data = append(a.data, value)
	idx, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Sprintf("ast: arena of %T overflowed: %v", value, err))
	}
	return idx
}

// Get returns a deep copy of the value at index.
func (a *Arena[T]) Get(index uint32) (T, bool) {
	var zero T
	if index == 0 || int(index) > len(a.data) {
		return zero, false
	}
	return cloneValue(a.data[index-1]), true
}

func (a *Arena[T]) set(index uint32, value T) {
	a.data[index-1] = value
}

// Len returns the number of allocated values.
func (a *Arena[T]) Len() int {
	return len(a.data)
}

// All returns a deep copy of every value in allocation order.
func (a *Arena[T]) All() []T {
	out := make([]T, len(a.data))
	for i, v := range a.data {
		out[i] = cloneValue(v)
	}
	return out
}

func (a Arena[T]) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(a.data)
}

func (a *Arena[T]) DecodeMsgpack(dec *msgpack.Decoder) error {
	return dec.Decode(&a.data)
}
