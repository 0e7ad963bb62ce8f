package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"

	"github.com/ValentinKolb/pmkv/lib/db"
)

// NewJSONCodec creates a new codec using json encoding
func NewJSONCodec() ICodec {
	return &jsonCodecImpl{}
}

// jsonCodecImpl implements the ICodec interface using json encoding.
// Tables are written by hand since encoding/json has no ordered objects.
type jsonCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (j jsonCodecImpl) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := j.write(&buf, v, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (j jsonCodecImpl) Decode(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid json: trailing data after value")
	}
	return j.convert(raw, 0)
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (j jsonCodecImpl) write(buf *bytes.Buffer, v any, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("value nested deeper than %d levels", maxDepth)
	}

	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case int64:
		buf.WriteString(strconv.FormatInt(t, 10))
	case string:
		j.writeString(buf, t)
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := j.write(buf, e, depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case db.Record:
		buf.WriteByte('{')
		for i, k := range t.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			j.writeString(buf, k)
			buf.WriteByte(':')
			if err := j.write(buf, t[k], depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case *db.Table:
		if t == nil {
			return fmt.Errorf("cannot encode nil table")
		}
		buf.WriteByte('{')
		first := true
		for k, e := range t.All() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			j.writeString(buf, k)
			buf.WriteByte(':')
			if err := j.write(buf, e, depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: cannot encode %T", db.ErrInvalidValue, v)
	}
	return nil
}

func (j jsonCodecImpl) writeString(buf *bytes.Buffer, s string) {
	// marshalling a string cannot fail
	b, _ := json.Marshal(s)
	buf.Write(b)
}

// convert maps the generic json representation onto the store's value domain
func (j jsonCodecImpl) convert(v any, depth int) (any, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("value nested deeper than %d levels", maxDepth)
	}

	switch t := v.(type) {
	case nil, bool, string:
		return t, nil
	case json.Number:
		return parseInteger(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			c, err := j.convert(e, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case map[string]any:
		out := make(db.Record, len(t))
		for k, e := range t {
			c, err := j.convert(e, depth+1)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			out[k] = c
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unexpected json value %T", db.ErrInvalidValue, v)
	}
}

// parseInteger accepts any json number with an exact int64 value, so 2.0 and
// 1e3 are integers while 1.5 and 1e19 are not
func parseInteger(num json.Number) (int64, error) {
	if n, err := num.Int64(); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(num.String(), 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1e19 {
		return 0, fmt.Errorf("%w: %s is not an integer", db.ErrInvalidValue, num)
	}
	// the float may have rounded away a fraction or the range limit
	r, ok := new(big.Rat).SetString(num.String())
	if !ok || !r.IsInt() || !r.Num().IsInt64() {
		return 0, fmt.Errorf("%w: %s is not an integer", db.ErrInvalidValue, num)
	}
	return r.Num().Int64(), nil
}
