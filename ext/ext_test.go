package ext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type dragStateExt struct{ Active bool }
type counterExt struct{ N int }

func TestAddGetRoundTrip(t *testing.T) {
	b := NewBag()
	Add(b, &dragStateExt{Active: true})

	got, ok := Get[*dragStateExt](b)
	assert.True(t, ok)
	assert.True(t, got.Active)
}

func TestGetAbsentReturnsZeroFalse(t *testing.T) {
	b := NewBag()
	got, ok := Get[*counterExt](b)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestAddReplacesExistingValueOfSameType(t *testing.T) {
	b := NewBag()
	Add(b, &counterExt{N: 1})
	Add(b, &counterExt{N: 2})

	got, ok := Get[*counterExt](b)
	assert.True(t, ok)
	assert.Equal(t, 2, got.N)
}

func TestDistinctConcreteTypesDoNotCollide(t *testing.T) {
	b := NewBag()
	Add(b, &dragStateExt{Active: true})
	Add(b, &counterExt{N: 5})

	d, ok := Get[*dragStateExt](b)
	assert.True(t, ok)
	assert.True(t, d.Active)

	c, ok := Get[*counterExt](b)
	assert.True(t, ok)
	assert.Equal(t, 5, c.N)
}

func TestMustGetPanicsWhenAbsent(t *testing.T) {
	b := NewBag()
	assert.Panics(t, func() { MustGet[*counterExt](b) })
}

func TestRemoveDeletesAndReturnsValue(t *testing.T) {
	b := NewBag()
	Add(b, &counterExt{N: 7})

	removed, ok := Remove[*counterExt](b)
	assert.True(t, ok)
	assert.Equal(t, 7, removed.N)
	assert.False(t, Has[*counterExt](b))
}
