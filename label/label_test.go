package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextMintsUniqueIncreasingLabels(t *testing.T) {
	s := New()

	assert.Equal(t, ".Lif0", s.Next("if"))
	assert.Equal(t, ".Lif1", s.Next("if"))
	assert.Equal(t, ".Lelse2", s.Next("else"))
}
