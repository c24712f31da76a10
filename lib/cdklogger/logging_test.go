package cdklogger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixed(t *testing.T) {
	assert.Equal(t, "msg", prefixed("Stack/Website", "", "msg"))
	assert.Equal(t, "msg", prefixed("Stack/Website", "Website", "msg"))
	assert.Equal(t, "msg", prefixed("Stack", "Stack", "msg"))
	assert.Equal(t, "[Cert] msg", prefixed("Stack/Website", "Cert", "msg"))
}
