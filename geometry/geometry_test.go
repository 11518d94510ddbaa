package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShrinkIn(t *testing.T) {
	r := New(0, 0, 1920, 1080)
	g := r.ShrinkIn(10)
	assert.Equal(t, Rect{X: 10, Y: 10, Width: 1900, Height: 1060}, g)
}

func TestShrinkInFloorsAtZero(t *testing.T) {
	r := New(0, 0, 10, 10)
	g := r.ShrinkIn(20)
	assert.EqualValues(t, 0, g.Width)
	assert.EqualValues(t, 0, g.Height)
}

func TestSplitVerticalSumsToOriginal(t *testing.T) {
	r := New(0, 0, 1921, 1080)
	left, right := r.SplitVertical(0.6)
	assert.Equal(t, r.Width, left.Width+right.Width)
	assert.Equal(t, left.X+int32(left.Width), right.X)
}

func TestSplitColumnsSumsToOriginal(t *testing.T) {
	r := New(0, 0, 100, 50)
	cols := r.SplitColumns(3)
	var total uint32
	for _, c := range cols {
		total += c.Width
	}
	assert.Equal(t, r.Width, total)
	assert.Equal(t, r.Height, cols[0].Height)
}

func TestSubdivideGrid(t *testing.T) {
	r := New(0, 0, 100, 100)
	cells := r.Subdivide(5)
	assert.Len(t, cells, 5)
	for _, c := range cells {
		assert.True(t, r.ContainsRect(c))
	}
}

func TestContainsPoint(t *testing.T) {
	r := New(10, 10, 100, 100)
	assert.True(t, r.ContainsPoint(Point{X: 10, Y: 10}))
	assert.False(t, r.ContainsPoint(Point{X: 110, Y: 10}))
	assert.False(t, r.ContainsPoint(Point{X: 9, Y: 10}))
}

func TestScaleAndNormalizeRoundTrip(t *testing.T) {
	screen := New(0, 0, 1920, 1080)
	want := New(100, 100, 400, 300)
	frac := screen.Normalize(want)
	got := screen.Scale(frac)
	assert.Equal(t, want, got)
}

func TestMidpoint(t *testing.T) {
	r := New(0, 0, 100, 50)
	assert.Equal(t, Point{X: 50, Y: 25}, r.Midpoint())
}
