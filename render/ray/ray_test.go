package ray

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracerStraightDown(t *testing.T) {
	tr := New(Vec3{X: 10, Y: 9, Z: 8}, Vec3{X: 0, Y: -1, Z: 0})

	assert.Equal(t, Vec3{X: 10, Y: 8, Z: 8}, tr.Next())
	assert.Equal(t, Vec3{X: 10, Y: 7, Z: 8}, tr.Next())
}

func TestTracerDiagonalTieBreak(t *testing.T) {
	tr := New(Vec3{X: 10, Y: 9, Z: 8}, Vec3{X: -1, Y: -1, Z: -1})

	tr.Next()
	tr.Next()
	got := tr.Next()

	assert.Equal(t, Vec3{X: 9, Y: 8, Z: 7}, got)
}

func TestProjClamps(t *testing.T) {
	assert.Equal(t, 0, Proj(-10, 0, 100, 0, 255))
	assert.Equal(t, 255, Proj(200, 0, 100, 0, 255))
	assert.Equal(t, 127, Proj(50, 0, 100, 0, 255))
}
