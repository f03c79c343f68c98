// Package nbt implements a streaming, visitor-driven NBT decoder.
//
// This is deliberately not a full materializing decoder: callers need
// per-tag callbacks with a "skip subtree" signal so a chunk-format visitor
// can bail out of a section it doesn't care about without paying to parse
// it, which github.com/sandertv/gophertunnel's minecraft/nbt package (used
// elsewhere in this module for whole-value decode) does not expose. Both
// packages are kept, each for the concern it fits.
package nbt

import (
	"errors"
	"fmt"
	"math"
)

// Tag identifies an NBT tag's payload type.
type Tag byte

const (
	TagEnd Tag = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

// Endianness selects the byte order of a stream: big for Java/Alpha/Beta,
// little for Bedrock.
type Endianness int

const (
	BigEndian Endianness = iota
	LittleEndian
)

// ErrTruncated is returned when the stream ends inside a tag.
var ErrTruncated = errors.New("nbt: truncated stream")

// ErrUnknownTag is returned when a type byte does not match any Tag.
var ErrUnknownTag = errors.New("nbt: unknown tag type")

// ErrBounds is returned when a length-prefixed fragment declares a size
// that runs past the end of the buffer.
var ErrBounds = errors.New("nbt: fragment declares past-end bounds")

// OnTagFunc is invoked once per named tag inside a Compound. Returning true
// ("skip subtree") causes the reader to drain the tag's content without
// recursing into it or reporting its children.
type OnTagFunc func(name string, tag Tag, scalar any) (skip bool)

// OnValueFunc is invoked once per unnamed value inside a List. Returning
// true skips the remainder of that single element (meaningful only for
// List/Compound elements; primitive list elements are always fully
// consumed since there is nothing further to skip within one scalar).
type OnValueFunc func(tag Tag, scalar any) (skip bool)

// Visitor bundles the two streaming callbacks the reader drives.
type Visitor struct {
	OnTag   OnTagFunc
	OnValue OnValueFunc
}

// Walk decodes data as a single root Compound, invoking v's callbacks for
// every tag/value encountered. It returns the number of bytes consumed or a
// negative cursor and a non-nil error if the stream is malformed.
//
// The decoder recurses through List/Compound structure using Go's call
// stack as the explicit {list_element_type, list_remaining-or-compound}
// stack the format visitors reason about; the effect — one frame per open
// container — is identical to a hand-maintained stack.
func Walk(data []byte, end Endianness, v Visitor) (int, error) {
	r := &reader{data: data, end: end, v: v}
	tag, name, err := r.readTagHeader()
	if err != nil {
		return -1, err
	}
	if tag != TagCompound {
		return -1, fmt.Errorf("nbt: root tag must be Compound, got %d", tag)
	}
	if err := r.readCompoundBody(name); err != nil {
		return -1, err
	}
	return r.pos, nil
}

type reader struct {
	data []byte
	pos  int
	end  Endianness
	v    Visitor
}

func (r *reader) remaining() int { return len(r.data) - r.pos }

func (r *reader) need(n int) error {
	if r.remaining() < n {
		return ErrTruncated
	}
	return nil
}

func (r *reader) u8() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) u16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	b := r.data[r.pos : r.pos+2]
	r.pos += 2
	if r.end == BigEndian {
		return uint16(b[0])<<8 | uint16(b[1]), nil
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

func (r *reader) i32() (int32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	b := r.data[r.pos : r.pos+4]
	r.pos += 4
	if r.end == BigEndian {
		return int32(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])), nil
	}
	return int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24), nil
}

func (r *reader) i64() (int64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	b := r.data[r.pos : r.pos+8]
	r.pos += 8
	var u uint64
	if r.end == BigEndian {
		for i := 0; i < 8; i++ {
			u = u<<8 | uint64(b[i])
		}
	} else {
		for i := 7; i >= 0; i-- {
			u = u<<8 | uint64(b[i])
		}
	}
	return int64(u), nil
}

func (r *reader) f32() (float32, error) {
	v, err := r.i32()
	return math.Float32frombits(uint32(v)), err
}

func (r *reader) f64() (float64, error) {
	v, err := r.i64()
	return math.Float64frombits(uint64(v)), err
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrBounds
	}
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) str() (string, error) {
	n, err := r.u16()
	if err != nil {
		return "", err
	}
	b, err := r.bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readTagHeader reads a type byte followed by a length-prefixed name,
// matching an (unnamed End aside) tag's on-disk header.
func (r *reader) readTagHeader() (Tag, string, error) {
	t, err := r.u8()
	if err != nil {
		return 0, "", err
	}
	tag := Tag(t)
	if tag == TagEnd {
		return tag, "", nil
	}
	if tag > TagLongArray {
		return 0, "", ErrUnknownTag
	}
	name, err := r.str()
	if err != nil {
		return 0, "", err
	}
	return tag, name, nil
}

// readCompoundBody reads tags until End, invoking OnTag per entry.
func (r *reader) readCompoundBody(_ string) error {
	for {
		tag, name, err := r.readTagHeader()
		if err != nil {
			return err
		}
		if tag == TagEnd {
			return nil
		}
		if err := r.dispatchTag(name, tag); err != nil {
			return err
		}
	}
}

// dispatchTag reads one named tag's payload, calling OnTag with a scalar
// value for primitives or nil for containers, honoring the skip signal.
func (r *reader) dispatchTag(name string, tag Tag) error {
	switch tag {
	case TagByte:
		v, err := r.u8()
		if err != nil {
			return err
		}
		r.v.OnTag(name, tag, int8(v))
		return nil
	case TagShort:
		v, err := r.u16()
		if err != nil {
			return err
		}
		r.v.OnTag(name, tag, int16(v))
		return nil
	case TagInt:
		v, err := r.i32()
		if err != nil {
			return err
		}
		r.v.OnTag(name, tag, v)
		return nil
	case TagLong:
		v, err := r.i64()
		if err != nil {
			return err
		}
		r.v.OnTag(name, tag, v)
		return nil
	case TagFloat:
		v, err := r.f32()
		if err != nil {
			return err
		}
		r.v.OnTag(name, tag, v)
		return nil
	case TagDouble:
		v, err := r.f64()
		if err != nil {
			return err
		}
		r.v.OnTag(name, tag, v)
		return nil
	case TagString:
		v, err := r.str()
		if err != nil {
			return err
		}
		r.v.OnTag(name, tag, v)
		return nil
	case TagByteArray:
		n, err := r.i32()
		if err != nil {
			return err
		}
		b, err := r.bytes(int(n))
		if err != nil {
			return err
		}
		r.v.OnTag(name, tag, b)
		return nil
	case TagIntArray:
		n, err := r.i32()
		if err != nil {
			return err
		}
		arr, err := r.intArray(int(n))
		if err != nil {
			return err
		}
		r.v.OnTag(name, tag, arr)
		return nil
	case TagLongArray:
		n, err := r.i32()
		if err != nil {
			return err
		}
		arr, err := r.longArray(int(n))
		if err != nil {
			return err
		}
		r.v.OnTag(name, tag, arr)
		return nil
	case TagCompound:
		skip := r.v.OnTag(name, tag, nil)
		if skip {
			return r.skipCompound()
		}
		return r.readCompoundBody(name)
	case TagList:
		elemT, err := r.u8()
		if err != nil {
			return err
		}
		count, err := r.i32()
		if err != nil {
			return err
		}
		skip := r.v.OnTag(name, tag, nil)
		if skip {
			return r.skipList(Tag(elemT), int(count))
		}
		return r.readListBody(Tag(elemT), int(count))
	default:
		return ErrUnknownTag
	}
}

func (r *reader) intArray(n int) ([]int32, error) {
	out := make([]int32, n)
	for i := range out {
		v, err := r.i32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (r *reader) longArray(n int) ([]int64, error) {
	out := make([]int64, n)
	for i := range out {
		v, err := r.i64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// readListBody reads count elements of elemT, invoking OnValue per element.
func (r *reader) readListBody(elemT Tag, count int) error {
	for i := 0; i < count; i++ {
		if err := r.dispatchValue(elemT); err != nil {
			return err
		}
	}
	return nil
}

// dispatchValue reads one unnamed list element, calling OnValue.
func (r *reader) dispatchValue(tag Tag) error {
	switch tag {
	case TagByte:
		v, err := r.u8()
		if err != nil {
			return err
		}
		r.v.OnValue(tag, int8(v))
		return nil
	case TagShort:
		v, err := r.u16()
		if err != nil {
			return err
		}
		r.v.OnValue(tag, int16(v))
		return nil
	case TagInt:
		v, err := r.i32()
		if err != nil {
			return err
		}
		r.v.OnValue(tag, v)
		return nil
	case TagLong:
		v, err := r.i64()
		if err != nil {
			return err
		}
		r.v.OnValue(tag, v)
		return nil
	case TagFloat:
		v, err := r.f32()
		if err != nil {
			return err
		}
		r.v.OnValue(tag, v)
		return nil
	case TagDouble:
		v, err := r.f64()
		if err != nil {
			return err
		}
		r.v.OnValue(tag, v)
		return nil
	case TagString:
		v, err := r.str()
		if err != nil {
			return err
		}
		r.v.OnValue(tag, v)
		return nil
	case TagByteArray:
		n, err := r.i32()
		if err != nil {
			return err
		}
		b, err := r.bytes(int(n))
		if err != nil {
			return err
		}
		r.v.OnValue(tag, b)
		return nil
	case TagIntArray:
		n, err := r.i32()
		if err != nil {
			return err
		}
		arr, err := r.intArray(int(n))
		if err != nil {
			return err
		}
		r.v.OnValue(tag, arr)
		return nil
	case TagLongArray:
		n, err := r.i32()
		if err != nil {
			return err
		}
		arr, err := r.longArray(int(n))
		if err != nil {
			return err
		}
		r.v.OnValue(tag, arr)
		return nil
	case TagCompound:
		skip := r.v.OnValue(tag, nil)
		if skip {
			return r.skipCompound()
		}
		return r.readCompoundBody("")
	case TagList:
		elemT, err := r.u8()
		if err != nil {
			return err
		}
		count, err := r.i32()
		if err != nil {
			return err
		}
		skip := r.v.OnValue(tag, nil)
		if skip {
			return r.skipList(Tag(elemT), int(count))
		}
		return r.readListBody(Tag(elemT), int(count))
	case TagEnd:
		// A TAG_List of TAG_End with count 0 is valid (empty list marker).
		return nil
	default:
		return ErrUnknownTag
	}
}

// skipCompound drains a compound's contents without reporting its children,
// the "fast skip path" for containers.
func (r *reader) skipCompound() error {
	for {
		tag, _, err := r.readTagHeader()
		if err != nil {
			return err
		}
		if tag == TagEnd {
			return nil
		}
		if err := r.skipTagPayload(tag); err != nil {
			return err
		}
	}
}

// skipList drains count elements of elemT without reporting them. For
// primitive element types this is a byte-advance-only fast path.
func (r *reader) skipList(elemT Tag, count int) error {
	for i := 0; i < count; i++ {
		if err := r.skipTagPayload(elemT); err != nil {
			return err
		}
	}
	return nil
}

// skipTagPayload advances the cursor past one payload of the given type
// without materializing it (beyond what's needed to know its length).
func (r *reader) skipTagPayload(tag Tag) error {
	switch tag {
	case TagEnd:
		return nil
	case TagByte:
		_, err := r.u8()
		return err
	case TagShort:
		_, err := r.u16()
		return err
	case TagInt, TagFloat:
		_, err := r.i32()
		return err
	case TagLong, TagDouble:
		_, err := r.i64()
		return err
	case TagString:
		_, err := r.str()
		return err
	case TagByteArray:
		n, err := r.i32()
		if err != nil {
			return err
		}
		_, err = r.bytes(int(n))
		return err
	case TagIntArray:
		n, err := r.i32()
		if err != nil {
			return err
		}
		_, err = r.bytes(int(n) * 4)
		return err
	case TagLongArray:
		n, err := r.i32()
		if err != nil {
			return err
		}
		_, err = r.bytes(int(n) * 8)
		return err
	case TagCompound:
		return r.skipCompound()
	case TagList:
		elemT, err := r.u8()
		if err != nil {
			return err
		}
		count, err := r.i32()
		if err != nil {
			return err
		}
		return r.skipList(Tag(elemT), int(count))
	default:
		return ErrUnknownTag
	}
}
