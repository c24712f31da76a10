//go:generate go test -run . -update
package renderer_test

import (
	"testing"

	"github.com/ryojerryyu/blog-infra/lib/edge"
	"github.com/ryojerryyu/blog-infra/scripts/renderer"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonicalHost = "blog.example.com"

func TestViewerRequest_Golden(t *testing.T) {
	g := goldie.New(t)

	got, err := renderer.RenderEdgeHandler("viewer-request", edge.ViewerRequestRules(canonicalHost))
	require.NoError(t, err)

	g.Assert(t, "viewer_request", []byte(got))
}

func TestOriginRequest_Golden(t *testing.T) {
	g := goldie.New(t)

	for name, style := range map[string]edge.CleanURLStyle{
		"origin_request_index": edge.StyleIndex,
		"origin_request_html":  edge.StyleHTML,
	} {
		got, err := renderer.RenderEdgeHandler("origin-request", edge.OriginRequestRules(canonicalHost, style))
		require.NoError(t, err)
		g.Assert(t, name, []byte(got))
	}
}

func TestEdgeHandler_QuotesHost(t *testing.T) {
	got, err := renderer.RenderEdgeHandler("viewer-request", edge.ViewerRequestRules(`evil".example.com`))
	require.NoError(t, err)
	assert.Contains(t, got, `const canonicalHost = "evil\".example.com";`)
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := renderer.Render("missing.tmpl", nil)
	require.ErrorContains(t, err, "parsing template")
}
