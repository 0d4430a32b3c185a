package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test looking up values succeeds, then falls back to IDENT.
func TestLookup(t *testing.T) {

	for key, val := range keywords {
		assert.Equal(t, val, LookupIdentifier(key), "keyword %q should resolve", key)
	}

	assert.Equal(t, Type(IDENT), LookupIdentifier("counter"))
	assert.Equal(t, Type(IDENT), LookupIdentifier("_tmp"))
	assert.Equal(t, Type(IDENT), LookupIdentifier("integer"))
}
