package ast

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Option is an explicit present/absent wrapper for optional children.
// The zero value is absent. A present zero value stays distinguishable
// from an absent one.
type Option[T any] struct {
	value   T
	present bool
}

// Some returns a present Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, present: true}
}

// None returns an absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}

func (o Option[T]) IsSome() bool { return o.present }
func (o Option[T]) IsNone() bool { return !o.present }

// OrElse returns the value if present, def otherwise.
func (o Option[T]) OrElse(def T) T {
	if o.present {
		return o.value
	}
	return def
}

// MustGet returns the value and panics if it is absent.
func (o Option[T]) MustGet() T {
	if !o.present {
		panic(fmt.Sprintf("ast: MustGet on absent %T", o))
	}
	return o.value
}

func (o Option[T]) String() string {
	if !o.present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// EncodeMsgpack writes the option as a zero- or one-element array.
func (o Option[T]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if !o.present {
		return enc.EncodeArrayLen(0)
	}
	if err := enc.EncodeArrayLen(1); err != nil {
		return err
	}
	return enc.Encode(o.value)
}

// DecodeMsgpack reads an option written by EncodeMsgpack.
func (o *Option[T]) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	switch n {
	case -1, 0:
		*o = None[T]()
		return nil
	case 1:
		var v T
		if err := dec.Decode(&v); err != nil {
			return err
		}
		*o = Some(v)
		return nil
	default:
		return fmt.Errorf("ast: option encoded with %d elements", n)
	}
}
