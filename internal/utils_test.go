package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringContains(t *testing.T) {
	slice := []string{"-n", "16", "--generate-bash-completion"}
	assert.True(t, StringContains(slice, "--generate-bash-completion"))
	assert.False(t, StringContains(slice, "-v"))
	assert.False(t, StringContains(nil, "-n"))
}
