package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTableOffsetsAreMonotonicAndNeverReused(t *testing.T) {
	s := NewSymbolTable()

	off, isNew := s.Declare("a")
	assert.Equal(t, 1, off)
	assert.True(t, isNew)

	off, isNew = s.Declare("b")
	assert.Equal(t, 2, off)
	assert.True(t, isNew)

	off, isNew = s.Declare("a")
	assert.Equal(t, 1, off)
	assert.False(t, isNew)

	assert.Equal(t, 2, s.Slots())
}

func TestSymbolTableLookupUnknown(t *testing.T) {
	s := NewSymbolTable()
	_, ok := s.Lookup("missing")
	assert.False(t, ok)
}
