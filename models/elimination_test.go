package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEliminator(t *testing.T) {
	by := ByPlayer("p2")
	id, ok := by.PlayerID()
	assert.True(t, ok)
	assert.Equal(t, "p2", id)
	assert.False(t, by.IsNone())

	none := NoEliminator()
	_, ok = none.PlayerID()
	assert.False(t, ok)
	assert.True(t, none.IsNone())
	assert.Nil(t, none.Column())

	// Round-trips through the nullable column representation.
	assert.Equal(t, by, EliminatorFromColumn(by.Column()))
	assert.Equal(t, none, EliminatorFromColumn(nil))
}
