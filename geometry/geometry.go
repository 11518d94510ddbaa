// Package geometry implements integer-pixel rectangles and points used
// throughout the core to describe screens, windows and layout regions.
package geometry

import "math"

// Point is a single pixel coordinate.
type Point struct {
	X, Y int32
}

// Rect is an axis-aligned integer-pixel rectangle. X/Y may be negative
// (a screen to the left of or above the primary origin); W/H are never
// negative.
type Rect struct {
	X, Y          int32
	Width, Height uint32
}

// New builds a Rect from its position and (unsigned) size, unchanged.
func New(x, y int32, w, h uint32) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Midpoint returns the rectangle's center point, truncated to integer
// pixels.
func (r Rect) Midpoint() Point {
	return Point{
		X: r.X + int32(r.Width/2),
		Y: r.Y + int32(r.Height/2),
	}
}

// ContainsPoint reports whether p lies within r (inclusive of the
// top/left edge, exclusive of the bottom/right edge).
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X < r.X+int32(r.Width) &&
		p.Y >= r.Y && p.Y < r.Y+int32(r.Height)
}

// ContainsRect reports whether o lies entirely within r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+int32(o.Width) <= r.X+int32(r.Width) &&
		o.Y+int32(o.Height) <= r.Y+int32(r.Height)
}

// ShrinkIn insets the rectangle by px pixels on every side (a "gap").
// Width/height are floored at zero rather than going negative.
func (r Rect) ShrinkIn(px uint32) Rect {
	w := int64(r.Width) - 2*int64(px)
	h := int64(r.Height) - 2*int64(px)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{
		X:      r.X + int32(px),
		Y:      r.Y + int32(px),
		Width:  uint32(w),
		Height: uint32(h),
	}
}

// SplitVertical splits r into a left and right rectangle at the given
// ratio (0,1) of the total width. The left side absorbs the floor of the
// product, the right side takes the remainder so the two always sum to
// the original width exactly.
func (r Rect) SplitVertical(ratio float64) (left, right Rect) {
	ratio = clamp01(ratio)
	leftW := uint32(math.Floor(float64(r.Width) * ratio))
	left = Rect{X: r.X, Y: r.Y, Width: leftW, Height: r.Height}
	right = Rect{X: r.X + int32(leftW), Y: r.Y, Width: r.Width - leftW, Height: r.Height}
	return
}

// SplitHorizontal splits r into a top and bottom rectangle at the given
// ratio (0,1) of the total height, following the same floor/remainder
// rule as SplitVertical.
func (r Rect) SplitHorizontal(ratio float64) (top, bottom Rect) {
	ratio = clamp01(ratio)
	topH := uint32(math.Floor(float64(r.Height) * ratio))
	top = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: topH}
	bottom = Rect{X: r.X, Y: r.Y + int32(topH), Width: r.Width, Height: r.Height - topH}
	return
}

// SplitFractionsVertical splits r into len(fracs) columns whose widths
// are proportional to fracs (which need not sum to exactly 1; they are
// normalized). The last column absorbs any rounding remainder.
func (r Rect) SplitFractionsVertical(fracs []float64) []Rect {
	if len(fracs) == 0 {
		return nil
	}
	total := 0.0
	for _, f := range fracs {
		total += f
	}
	out := make([]Rect, len(fracs))
	x := r.X
	var used uint32
	for i, f := range fracs {
		var w uint32
		if i == len(fracs)-1 {
			w = r.Width - used
		} else if total > 0 {
			w = uint32(math.Floor(float64(r.Width) * f / total))
		}
		out[i] = Rect{X: x, Y: r.Y, Width: w, Height: r.Height}
		x += int32(w)
		used += w
	}
	return out
}

// SplitColumns subdivides r into n equal-width columns, left to right.
// Each column's width is truncated; the last column absorbs whatever
// pixels remain so the columns always tile r exactly (Open Question 3).
func (r Rect) SplitColumns(n int) []Rect {
	if n <= 0 {
		return nil
	}
	cols := make([]Rect, n)
	colW := r.Width / uint32(n)
	x := r.X
	for i := 0; i < n; i++ {
		w := colW
		if i == n-1 {
			w = r.Width - colW*uint32(n-1)
		}
		cols[i] = Rect{X: x, Y: r.Y, Width: w, Height: r.Height}
		x += int32(colW)
	}
	return cols
}

// SplitRows subdivides r into n equal-height rows, top to bottom, with
// the same last-row-absorbs-remainder rule as SplitColumns.
func (r Rect) SplitRows(n int) []Rect {
	if n <= 0 {
		return nil
	}
	rows := make([]Rect, n)
	rowH := r.Height / uint32(n)
	y := r.Y
	for i := 0; i < n; i++ {
		h := rowH
		if i == n-1 {
			h = r.Height - rowH*uint32(n-1)
		}
		rows[i] = Rect{X: r.X, Y: y, Width: r.Width, Height: h}
		y += int32(rowH)
	}
	return rows
}

// Subdivide lays out n rectangles in a cols x rows grid covering r, where
// cols = rows = ceil(sqrt(n)), reading left-to-right then top-to-bottom,
// dropping any grid cells beyond the n-th.
func (r Rect) Subdivide(n int) []Rect {
	if n <= 0 {
		return nil
	}
	side := int(math.Ceil(math.Sqrt(float64(n))))
	rows := r.SplitRows(side)
	out := make([]Rect, 0, n)
	for _, row := range rows {
		cols := row.SplitColumns(side)
		for _, c := range cols {
			out = append(out, c)
			if len(out) == n {
				return out
			}
		}
	}
	return out
}

// FracRect is a fractional rectangle with every component in [0,1],
// relative to some owning screen's geometry. Used for StackSet floating
// overrides (§3: "floating mapping<T, Rect>... values have components in
// [0,1]").
type FracRect struct {
	X, Y, Width, Height float64
}

// Clamp pins every component of f to [0,1].
func (f FracRect) Clamp() FracRect {
	c := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return FracRect{X: c(f.X), Y: c(f.Y), Width: c(f.Width), Height: c(f.Height)}
}

// Scale resolves a fractional rectangle against this rectangle's pixel
// dimensions, truncating to integer pixels (Open Question 3: truncate,
// never round half-up).
func (r Rect) Scale(frac FracRect) Rect {
	return Rect{
		X:      r.X + int32(math.Floor(float64(r.Width)*frac.X)),
		Y:      r.Y + int32(math.Floor(float64(r.Height)*frac.Y)),
		Width:  uint32(math.Floor(float64(r.Width) * frac.Width)),
		Height: uint32(math.Floor(float64(r.Height) * frac.Height)),
	}
}

// Normalize computes the fractional rectangle that Scale would need to
// reproduce o against this rectangle; the inverse of Scale, used when
// recording a floating override from a user-dragged pixel rect.
func (r Rect) Normalize(o Rect) FracRect {
	if r.Width == 0 || r.Height == 0 {
		return FracRect{}
	}
	return FracRect{
		X:      float64(o.X-r.X) / float64(r.Width),
		Y:      float64(o.Y-r.Y) / float64(r.Height),
		Width:  float64(o.Width) / float64(r.Width),
		Height: float64(o.Height) / float64(r.Height),
	}.Clamp()
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
