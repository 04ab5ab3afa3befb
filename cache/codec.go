package cache

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec converts in-memory values to and from the payload format stored in
// the cache backend. Encode and Decode must form an exact round trip for
// every value the source-of-record store produces.
type Codec interface {
	Encode(value any) ([]byte, error)
	Decode(payload []byte, dest any) error
}

// SerializationError reports a value that could not be encoded or a stored
// payload that could not be decoded. It is always propagated to the
// caller: a corrupted cache entry indicates a logic bug, not a transient
// condition, and masking it risks returning wrong data.
type SerializationError struct {
	Op  string // "encode" or "decode"
	Err error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("cache: %s failed: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying msgpack error.
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// msgpackCodec implements Codec using msgpack. Timestamps survive the
// round trip as time values via the msgpack time extension.
type msgpackCodec struct{}

// NewMsgpackCodec creates the default msgpack-backed codec.
func NewMsgpackCodec() Codec {
	return &msgpackCodec{}
}

func (c *msgpackCodec) Encode(value any) ([]byte, error) {
	payload, err := msgpack.Marshal(value)
	if err != nil {
		return nil, &SerializationError{Op: "encode", Err: err}
	}
	return payload, nil
}

func (c *msgpackCodec) Decode(payload []byte, dest any) error {
	if err := msgpack.Unmarshal(payload, dest); err != nil {
		return &SerializationError{Op: "decode", Err: err}
	}
	return nil
}
