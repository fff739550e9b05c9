package skipkv

import (
	"encoding"
	"fmt"
	"strconv"
)

// Codec converts keys and values to and from the text stored in a
// persisted record.
type Codec[K, V any] interface {
	EncodeKey(K) (string, error)
	DecodeKey(string) (K, error)
	EncodeValue(V) (string, error)
	DecodeValue(string) (V, error)
}

// defaultCodec handles strings, booleans, the builtin numeric types and
// anything implementing encoding.TextMarshaler/TextUnmarshaler.
type defaultCodec[K, V any] struct{}

func newDefaultCodec[K, V any]() (Codec[K, V], error) {
	if !textSupported[K]() || !textSupported[V]() {
		return nil, ErrNoCodec
	}
	return defaultCodec[K, V]{}, nil
}

func (defaultCodec[K, V]) EncodeKey(k K) (string, error) { return formatText(k) }
func (defaultCodec[K, V]) DecodeKey(s string) (K, error) { return parseText[K](s) }
func (defaultCodec[K, V]) EncodeValue(v V) (string, error) { return formatText(v) }
func (defaultCodec[K, V]) DecodeValue(s string) (V, error) { return parseText[V](s) }

func textSupported[T any]() bool {
	var zero T
	switch any(zero).(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	_, m := any(zero).(encoding.TextMarshaler)
	_, u := any(&zero).(encoding.TextUnmarshaler)
	return m && u
}

func formatText[T any](v T) (string, error) {
	switch v := any(v).(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case encoding.TextMarshaler:
		b, err := v.MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrNoCodec, v)
	}
}

func parseText[T any](s string) (T, error) {
	var zero T
	var out any
	var err error

	switch any(zero).(type) {
	case string:
		out = s
	case bool:
		out, err = strconv.ParseBool(s)
	case int:
		var x int64
		x, err = strconv.ParseInt(s, 10, strconv.IntSize)
		out = int(x)
	case int8:
		var x int64
		x, err = strconv.ParseInt(s, 10, 8)
		out = int8(x)
	case int16:
		var x int64
		x, err = strconv.ParseInt(s, 10, 16)
		out = int16(x)
	case int32:
		var x int64
		x, err = strconv.ParseInt(s, 10, 32)
		out = int32(x)
	case int64:
		out, err = strconv.ParseInt(s, 10, 64)
	case uint:
		var x uint64
		x, err = strconv.ParseUint(s, 10, strconv.IntSize)
		out = uint(x)
	case uint8:
		var x uint64
		x, err = strconv.ParseUint(s, 10, 8)
		out = uint8(x)
	case uint16:
		var x uint64
		x, err = strconv.ParseUint(s, 10, 16)
		out = uint16(x)
	case uint32:
		var x uint64
		x, err = strconv.ParseUint(s, 10, 32)
		out = uint32(x)
	case uint64:
		out, err = strconv.ParseUint(s, 10, 64)
	case float32:
		var x float64
		x, err = strconv.ParseFloat(s, 32)
		out = float32(x)
	case float64:
		out, err = strconv.ParseFloat(s, 64)
	default:
		u, ok := any(&zero).(encoding.TextUnmarshaler)
		if !ok {
			return zero, fmt.Errorf("%w: %T", ErrNoCodec, zero)
		}
		if err := u.UnmarshalText([]byte(s)); err != nil {
			return zero, err
		}
		return zero, nil
	}

	if err != nil {
		return zero, err
	}
	return out.(T), nil
}
