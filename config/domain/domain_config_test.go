package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProd_Defaults(t *testing.T) {
	got := Spec{Stage: StageProd, DomainName: "blog.example.com"}.FQDN()
	assert.Equal(t, "blog.example.com", *got)
}

func TestProd_RejectsPrefix(t *testing.T) {
	assert.Panics(t, func() { _ = Spec{Stage: StageProd, DomainName: "example.com", DevPrefix: "x"}.FQDN() })
}

func TestDev_MustPrefix(t *testing.T) {
	// Panic if no DevPrefix for dev
	assert.Panics(t, func() { _ = Spec{Stage: StageDev, DomainName: "example.com"}.FQDN() })
	// OK when DevPrefix provided
	got := Spec{Stage: StageDev, DomainName: "blog.example.com", DevPrefix: "dev1"}.FQDN()
	assert.Equal(t, "dev1.blog.example.com", *got)
}

func TestParseStage(t *testing.T) {
	s, err := ParseStage("PROD")
	require.NoError(t, err)
	assert.Equal(t, StageProd, s)

	s, err = ParseStage("dev")
	require.NoError(t, err)
	assert.Equal(t, StageDev, s)

	_, err = ParseStage("staging")
	require.ErrorContains(t, err, "invalid stage")
}
