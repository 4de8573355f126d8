package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_ReturnsTitleOnly(t *testing.T) {
	err := Error("something broke", "a longer explanation", []string{"try this"})
	require.Error(t, err)
	assert.Equal(t, "something broke", err.Error())
}

func TestError_NoSuggestions(t *testing.T) {
	err := Error("plain failure", "", nil)
	require.Error(t, err)
	assert.Equal(t, "plain failure", err.Error())
}
