package edge

import (
	"fmt"
	"net/http"
	"path"
	"strings"
)

// CleanURLStyle selects how extensionless URIs map to objects in the bucket.
type CleanURLStyle string

const (
	// StyleIndex maps "/about" to "/about/index.html".
	StyleIndex CleanURLStyle = "index"
	// StyleHTML maps "/about" to "/about.html".
	StyleHTML CleanURLStyle = "html"
)

// ParseCleanURLStyle converts a raw string into a CleanURLStyle.
func ParseCleanURLStyle(s string) (CleanURLStyle, error) {
	switch CleanURLStyle(s) {
	case StyleIndex, StyleHTML:
		return CleanURLStyle(s), nil
	default:
		return "", fmt.Errorf("invalid clean URL style %q", s)
	}
}

const wwwMarker = "www"

// Rules configures one edge function. Enabled rules run in a fixed order:
// host canonicalization, trailing-slash redirect, clean-URL rewrite.
type Rules struct {
	// CanonicalHost is the host redirects point at.
	CanonicalHost         string
	RedirectWWW           bool
	RedirectTrailingSlash bool
	RewriteCleanURLs      bool
	CleanURLStyle         CleanURLStyle
}

// ViewerRequestRules runs before the cache: www and trailing-slash redirects.
func ViewerRequestRules(canonicalHost string) Rules {
	return Rules{
		CanonicalHost:         canonicalHost,
		RedirectWWW:           true,
		RedirectTrailingSlash: true,
	}
}

// OriginRequestRules runs on cache misses: trailing-slash redirect and clean-URL rewrite.
func OriginRequestRules(canonicalHost string, style CleanURLStyle) Rules {
	return Rules{
		CanonicalHost:         canonicalHost,
		RedirectTrailingSlash: true,
		RewriteCleanURLs:      true,
		CleanURLStyle:         style,
	}
}

// Apply evaluates the rules against req. req is not modified; a rewrite
// returns a copy with the new URI.
func (r Rules) Apply(req Request) Result {
	if r.RedirectWWW && r.isNonCanonicalWWW(req.Host()) {
		return Result{Response: r.redirect(req.URI, req.QueryString)}
	}
	if r.RedirectTrailingSlash && req.URI != "/" && strings.HasSuffix(req.URI, "/") {
		return Result{Response: r.redirect(strings.TrimSuffix(req.URI, "/"), req.QueryString)}
	}
	if r.RewriteCleanURLs && ext(req.URI) == "" {
		req.URI = r.rewriteClean(req.URI)
	}
	return Result{Request: &req}
}

func (r Rules) isNonCanonicalWWW(host string) bool {
	host = strings.ToLower(host)
	if host == "" || host == strings.ToLower(r.CanonicalHost) {
		return false
	}
	return strings.Contains(host, wwwMarker)
}

// ext returns the extension of the last path segment with the semantics of
// Node's path.extname, which the deployed handler uses: trailing slashes are
// ignored, and a leading dot (".well-known") or ".." is not an extension.
func ext(uri string) string {
	base := path.Base(strings.TrimRight(uri, "/"))
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || base == ".." {
		return ""
	}
	return base[i:]
}

func (r Rules) rewriteClean(uri string) string {
	if r.CleanURLStyle == StyleHTML {
		if uri == "/" || uri == "" {
			return "/index.html"
		}
		return strings.TrimSuffix(uri, "/") + ".html"
	}
	return strings.TrimSuffix(uri, "/") + "/index.html"
}

// RedirectURL is the absolute https URL on the canonical host.
func (r Rules) RedirectURL(uri, query string) string {
	u := "https://" + r.CanonicalHost + uri
	if query != "" {
		u += "?" + query
	}
	return u
}

func (r Rules) redirect(uri, query string) *Response {
	return &Response{
		Status:            fmt.Sprint(http.StatusMovedPermanently),
		StatusDescription: "Moved Permanently",
		Headers: Headers{
			"location": {{Key: "Location", Value: r.RedirectURL(uri, query)}},
		},
	}
}
