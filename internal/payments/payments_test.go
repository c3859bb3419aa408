package payments

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReference(t *testing.T) {
	ref := NewReference()

	assert.True(t, strings.HasPrefix(ref, "PAY-"))
	assert.Len(t, ref, 22)
	assert.Equal(t, strings.ToUpper(ref), ref)

	assert.NotEqual(t, ref, NewReference())
}
