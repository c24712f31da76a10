// Package renderer loads embedded templates under scripts/renderer/templates/
// and renders them with sprig functions.
//
// Lambda@Edge only runs Node.js and Python, so the edge functions ship as
// JavaScript rendered from the same edge.Rules the Go implementation in
// lib/edge evaluates. The templates stay readable as files instead of Go
// string literals.
//
// Example:
//
//	src, err := renderer.Render(renderer.TplEdgeHandler, renderer.EdgeHandlerData{
//	    Phase: "viewer-request",
//	    Rules: edge.ViewerRequestRules("blog.example.com"),
//	})
package renderer
