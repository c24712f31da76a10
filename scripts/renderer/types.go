package renderer

import "github.com/ryojerryyu/blog-infra/lib/edge"

// TemplateName represents a known template filename.
type TemplateName string

// Constants for known template filenames.
const (
	TplEdgeHandler TemplateName = "edge_handler.js.tmpl"
)

// EdgeHandlerData holds the data required by the TplEdgeHandler template.
type EdgeHandlerData struct {
	// Phase is the CloudFront event type the handler is bound to, e.g. "viewer-request".
	Phase string
	Rules edge.Rules
}
