package nbt

// Decode materializes data's root Compound into a nested Go value tree
// (map[string]any for compounds, []any for lists, and the scalar/array
// types dispatchTag/dispatchValue already produce for leaves). Format
// visitors that need to reason about several sibling fields of one nested
// compound at once (a palette entry's Name next to its Properties, a
// section's Y next to its BlockStates) use this rather than hand-rolling a
// stack on top of Walk's flat callback stream — Walk's skip-subtree
// streaming API serves single-pass scans (PreParseDataVersion, and sizing
// one Bedrock palette entry in the sub-chunk decoder).
func Decode(data []byte, end Endianness) (map[string]any, error) {
	r := &reader{data: data, end: end}
	tag, _, err := r.readTagHeader()
	if err != nil {
		return nil, err
	}
	if tag != TagCompound {
		return nil, ErrUnknownTag
	}
	m, err := r.decodeCompound()
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *reader) decodeCompound() (map[string]any, error) {
	m := make(map[string]any)
	for {
		tag, name, err := r.readTagHeader()
		if err != nil {
			return nil, err
		}
		if tag == TagEnd {
			return m, nil
		}
		v, err := r.decodeValue(tag)
		if err != nil {
			return nil, err
		}
		m[name] = v
	}
}

func (r *reader) decodeList() ([]any, error) {
	elemT, err := r.u8()
	if err != nil {
		return nil, err
	}
	count, err := r.i32()
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, count)
	for i := int32(0); i < count; i++ {
		v, err := r.decodeValue(Tag(elemT))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *reader) decodeValue(tag Tag) (any, error) {
	switch tag {
	case TagEnd:
		return nil, nil
	case TagByte:
		v, err := r.u8()
		return int8(v), err
	case TagShort:
		v, err := r.u16()
		return int16(v), err
	case TagInt:
		return r.i32()
	case TagLong:
		return r.i64()
	case TagFloat:
		return r.f32()
	case TagDouble:
		return r.f64()
	case TagString:
		return r.str()
	case TagByteArray:
		n, err := r.i32()
		if err != nil {
			return nil, err
		}
		return r.bytes(int(n))
	case TagIntArray:
		n, err := r.i32()
		if err != nil {
			return nil, err
		}
		return r.intArray(int(n))
	case TagLongArray:
		n, err := r.i32()
		if err != nil {
			return nil, err
		}
		return r.longArray(int(n))
	case TagCompound:
		return r.decodeCompound()
	case TagList:
		return r.decodeList()
	default:
		return nil, ErrUnknownTag
	}
}
