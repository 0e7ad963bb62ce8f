package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/ValentinKolb/pmkv/lib/db"
)

// NewBinaryCodec creates a new codec using the self-describing binary format
func NewBinaryCodec() ICodec {
	return &binaryCodecImpl{}
}

// binaryCodecImpl implements ICodec using a tagged, length-prefixed binary format
type binaryCodecImpl struct {
}

// Type tags, one byte in front of every value
const (
	tagNil    byte = 0
	tagFalse  byte = 1
	tagTrue   byte = 2
	tagInt    byte = 3
	tagString byte = 4
	tagList   byte = 5
	tagRecord byte = 6
	tagTable  byte = 7
)

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (b binaryCodecImpl) Encode(v any) ([]byte, error) {
	// Calculate total size needed
	size, err := b.sizeBytes(v, 0)
	if err != nil {
		return nil, err
	}
	result := make([]byte, size)

	if pos := b.write(result, 0, v); pos != size {
		return nil, fmt.Errorf("encoded %d bytes, expected %d", pos, size)
	}
	return result, nil
}

func (b binaryCodecImpl) Decode(data []byte) (any, error) {
	r := &binaryReader{data: data}
	v, err := r.value(0)
	if err != nil {
		return nil, err
	}
	if r.pos != len(data) {
		return nil, fmt.Errorf("%d trailing bytes after value", len(data)-r.pos)
	}
	return v, nil
}

// --------------------------------------------------------------------------
// Encoding
// --------------------------------------------------------------------------

// sizeBytes calculates the total size needed to encode v and validates the value
func (b binaryCodecImpl) sizeBytes(v any, depth int) (int, error) {
	if depth > maxDepth {
		return 0, fmt.Errorf("value nested deeper than %d levels", maxDepth)
	}

	switch t := v.(type) {
	case nil, bool:
		return 1, nil
	case int64:
		return 1 + 8, nil
	case string:
		return 1 + 4 + len(t), nil
	case []any:
		size := 1 + 4
		for _, e := range t {
			n, err := b.sizeBytes(e, depth+1)
			if err != nil {
				return 0, err
			}
			size += n
		}
		return size, nil
	case db.Record:
		size := 1 + 4
		for k, e := range t {
			n, err := b.sizeBytes(e, depth+1)
			if err != nil {
				return 0, fmt.Errorf("field %q: %w", k, err)
			}
			size += 4 + len(k) + n
		}
		return size, nil
	case *db.Table:
		if t == nil {
			return 0, fmt.Errorf("cannot encode nil table")
		}
		size := 1 + 4
		var err error
		t.ForEach(func(k string, e any) bool {
			var n int
			if n, err = b.sizeBytes(e, depth+1); err != nil {
				err = fmt.Errorf("key %q: %w", k, err)
				return false
			}
			size += 4 + len(k) + n
			return true
		})
		return size, err
	default:
		return 0, fmt.Errorf("%w: cannot encode %T", db.ErrInvalidValue, v)
	}
}

// write encodes v into result at pos and returns the next position.
// result must be sized with sizeBytes.
func (b binaryCodecImpl) write(result []byte, pos int, v any) int {
	switch t := v.(type) {
	case nil:
		result[pos] = tagNil
		return pos + 1
	case bool:
		if t {
			result[pos] = tagTrue
		} else {
			result[pos] = tagFalse
		}
		return pos + 1
	case int64:
		result[pos] = tagInt
		binary.BigEndian.PutUint64(result[pos+1:pos+9], uint64(t))
		return pos + 9
	case string:
		result[pos] = tagString
		return writeString(result, pos+1, t)
	case []any:
		result[pos] = tagList
		binary.BigEndian.PutUint32(result[pos+1:pos+5], uint32(len(t)))
		pos += 5
		for _, e := range t {
			pos = b.write(result, pos, e)
		}
		return pos
	case db.Record:
		result[pos] = tagRecord
		binary.BigEndian.PutUint32(result[pos+1:pos+5], uint32(len(t)))
		pos += 5
		for _, k := range t.Keys() {
			pos = writeString(result, pos, k)
			pos = b.write(result, pos, t[k])
		}
		return pos
	case *db.Table:
		result[pos] = tagTable
		binary.BigEndian.PutUint32(result[pos+1:pos+5], uint32(t.Len()))
		pos += 5
		for k, e := range t.All() {
			pos = writeString(result, pos, k)
			pos = b.write(result, pos, e)
		}
		return pos
	}
	return pos
}

// writeString writes a length-prefixed string without tag
func writeString(result []byte, pos int, s string) int {
	binary.BigEndian.PutUint32(result[pos:pos+4], uint32(len(s)))
	pos += 4
	copy(result[pos:pos+len(s)], s)
	return pos + len(s)
}

// --------------------------------------------------------------------------
// Decoding
// --------------------------------------------------------------------------

// binaryReader tracks the read position in the input
type binaryReader struct {
	data []byte
	pos  int
}

func (r *binaryReader) value(depth int) (any, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("value nested deeper than %d levels", maxDepth)
	}
	if r.pos+1 > len(r.data) {
		return nil, fmt.Errorf("data too short for type tag")
	}
	tag := r.data[r.pos]
	r.pos++

	switch tag {
	case tagNil:
		return nil, nil
	case tagFalse:
		return false, nil
	case tagTrue:
		return true, nil
	case tagInt:
		if r.pos+8 > len(r.data) {
			return nil, fmt.Errorf("data too short for integer")
		}
		n := int64(binary.BigEndian.Uint64(r.data[r.pos : r.pos+8]))
		r.pos += 8
		return n, nil
	case tagString:
		return r.readString("string")
	case tagList:
		count, err := r.readCount("list")
		if err != nil {
			return nil, err
		}
		list := make([]any, 0, count)
		for i := 0; i < count; i++ {
			e, err := r.value(depth + 1)
			if err != nil {
				return nil, err
			}
			list = append(list, e)
		}
		return list, nil
	case tagRecord:
		count, err := r.readCount("record")
		if err != nil {
			return nil, err
		}
		rec := make(db.Record, count)
		for i := 0; i < count; i++ {
			k, err := r.readString("record key")
			if err != nil {
				return nil, err
			}
			e, err := r.value(depth + 1)
			if err != nil {
				return nil, err
			}
			rec[k] = e
		}
		return rec, nil
	case tagTable:
		count, err := r.readCount("table")
		if err != nil {
			return nil, err
		}
		t := db.NewTable()
		for i := 0; i < count; i++ {
			k, err := r.readString("table key")
			if err != nil {
				return nil, err
			}
			e, err := r.value(depth + 1)
			if err != nil {
				return nil, err
			}
			if err := t.Put(k, e); err != nil {
				return nil, err
			}
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unknown type tag %d at offset %d", tag, r.pos-1)
	}
}

// readString reads a length-prefixed string
func (r *binaryReader) readString(what string) (string, error) {
	if r.pos+4 > len(r.data) {
		return "", fmt.Errorf("data too short for %s length", what)
	}
	n := int(binary.BigEndian.Uint32(r.data[r.pos : r.pos+4]))
	r.pos += 4

	if n > len(r.data)-r.pos {
		return "", fmt.Errorf("data too short for %s data", what)
	}
	s := string(r.data[r.pos : r.pos+n])
	r.pos += n
	return s, nil
}

// readCount reads an element count. Every element needs at least one byte,
// so counts larger than the remaining input are rejected before allocating.
func (r *binaryReader) readCount(what string) (int, error) {
	if r.pos+4 > len(r.data) {
		return 0, fmt.Errorf("data too short for %s length", what)
	}
	n := int(binary.BigEndian.Uint32(r.data[r.pos : r.pos+4]))
	r.pos += 4

	if n > len(r.data)-r.pos {
		return 0, fmt.Errorf("data too short for %s with %d elements", what, n)
	}
	return n, nil
}
