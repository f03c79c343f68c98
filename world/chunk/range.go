package chunk

// Range is the inclusive [Min, Max] vertical extent of a dimension, in
// world-space block Y: the min/max bound every format visitor and block
// pass clamps against.
type Range [2]int

// Min is the lowest valid block Y in the range.
func (r Range) Min() int { return r[0] }

// Max is the highest valid block Y in the range.
func (r Range) Max() int { return r[1] }

// Height returns the number of blocks spanned by the range.
func (r Range) Height() int { return r[1] - r[0] + 1 }
