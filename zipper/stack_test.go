package zipper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromListAndIter(t *testing.T) {
	s := FromList([]int{1, 2, 3})
	assert.Equal(t, []int{1, 2, 3}, s.Iter())
	assert.Equal(t, 1, s.Focus)
}

func TestFocusUpDownWrap(t *testing.T) {
	s := FromList([]int{1, 2, 3})
	up := s.FocusUp()
	assert.Equal(t, 3, up.Focus, "focus up from head wraps to tail")
	assert.Equal(t, []int{1, 2, 3}, up.Iter())

	down := s.FocusDown()
	assert.Equal(t, 2, down.Focus)
	assert.Equal(t, []int{1, 2, 3}, down.Iter())
}

func TestFocusUpThenDownIsIdentity(t *testing.T) {
	s := FromList([]int{1, 2, 3, 4})
	for i := 0; i < s.Len(); i++ {
		roundTrip := s.FocusUp().FocusDown()
		assert.Equal(t, s, roundTrip)
		s = s.FocusDown()
	}
}

func TestSwapUpDown(t *testing.T) {
	s := FromList([]int{1, 2, 3}).FocusDown() // focus=2, up=[1], down=[3]
	swappedUp := s.SwapUp()
	assert.Equal(t, 2, swappedUp.Focus)
	assert.Equal(t, []int{2, 1, 3}, swappedUp.Iter())

	swappedDown := s.SwapDown()
	assert.Equal(t, 2, swappedDown.Focus)
	assert.Equal(t, []int{1, 3, 2}, swappedDown.Iter())
}

func TestSwapFocusToHead(t *testing.T) {
	s := FromList([]int{1, 2, 3}).FocusDown().FocusDown() // focus=3
	h := s.SwapFocusToHead()
	assert.Equal(t, 3, h.Focus)
	assert.Equal(t, []int{3, 1, 2}, h.Iter())
}

func TestInsertHeadAfterFocusTail(t *testing.T) {
	s := FromList([]int{1, 2})

	h := Insert(s, 99, InsertHead)
	assert.Equal(t, 99, h.Focus)
	assert.Equal(t, []int{99, 1, 2}, h.Iter())

	a := Insert(s, 99, InsertAfterFocus)
	assert.Equal(t, 99, a.Focus)
	assert.Equal(t, []int{1, 99, 2}, a.Iter())

	ta := Insert(s, 99, InsertTail)
	assert.Equal(t, 1, ta.Focus)
	assert.Equal(t, []int{1, 2, 99}, ta.Iter())
}

func TestRemoveFocusedPrefersBelow(t *testing.T) {
	s := FromList([]int{1, 2, 3})
	r, ok := s.RemoveFocused()
	assert.True(t, ok)
	assert.Equal(t, 2, r.Focus)
	assert.Equal(t, []int{2, 3}, r.Iter())
}

func TestRemoveFocusedFallsBackToAbove(t *testing.T) {
	s := FromList([]int{1, 2, 3}).FocusDown().FocusDown() // focus=3, no down
	r, ok := s.RemoveFocused()
	assert.True(t, ok)
	assert.Equal(t, 2, r.Focus)
}

func TestRemoveFocusedSingleton(t *testing.T) {
	s := New(1)
	_, ok := s.RemoveFocused()
	assert.False(t, ok)
}

func TestFilterKeepsFocusWhenSurvives(t *testing.T) {
	s := FromList([]int{1, 2, 3, 4}).FocusDown() // focus=2
	f, ok := Filter(s, func(v int) bool { return v%2 == 0 })
	assert.True(t, ok)
	assert.Equal(t, 2, f.Focus)
	assert.Equal(t, []int{2, 4}, f.Iter())
}

func TestFilterPromotesBelowWhenFocusRemoved(t *testing.T) {
	s := FromList([]int{1, 2, 3, 4}).FocusDown() // focus=2
	f, ok := Filter(s, func(v int) bool { return v != 2 })
	assert.True(t, ok)
	assert.Equal(t, 3, f.Focus)
	assert.Equal(t, []int{1, 3, 4}, f.Iter())
}

func TestFilterEmptyResult(t *testing.T) {
	s := FromList([]int{1, 2})
	_, ok := Filter(s, func(v int) bool { return false })
	assert.False(t, ok)
}

func TestMapPreservesFocusPosition(t *testing.T) {
	s := FromList([]int{1, 2, 3}).FocusDown()
	m := Map(s, func(v int) string {
		if v == 1 {
			return "a"
		} else if v == 2 {
			return "b"
		}
		return "c"
	})
	assert.Equal(t, "b", m.Focus)
	assert.Equal(t, []string{"a", "b", "c"}, m.Iter())
}

func TestContains(t *testing.T) {
	s := FromList([]int{1, 2, 3})
	assert.True(t, Contains(s, 3))
	assert.False(t, Contains(s, 4))
}
