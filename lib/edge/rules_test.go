package edge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const host = "blog.example.com"

func TestTrailingSlash_Redirects(t *testing.T) {
	res := ViewerRequestRules(host).Apply(NewRequest(host, "/foo/", ""))
	require.True(t, res.IsRedirect())
	assert.Equal(t, "301", res.Response.Status)
	assert.Equal(t, "Moved Permanently", res.Response.StatusDescription)
	assert.Equal(t, "https://blog.example.com/foo", res.Location())
	assert.Equal(t, "Location", res.Response.Headers["location"][0].Key)
}

func TestTrailingSlash_RootPassesThrough(t *testing.T) {
	req := NewRequest(host, "/", "")
	res := ViewerRequestRules(host).Apply(req)
	require.False(t, res.IsRedirect())
	assert.Equal(t, req, *res.Request)
}

func TestTrailingSlash_KeepsQuery(t *testing.T) {
	res := OriginRequestRules(host, StyleIndex).Apply(NewRequest(host, "/posts/", "page=2"))
	assert.Equal(t, "https://blog.example.com/posts?page=2", res.Location())
}

func TestCleanURL_IndexStyle(t *testing.T) {
	rules := OriginRequestRules(host, StyleIndex)
	for uri, want := range map[string]string{
		"/about":           "/about/index.html",
		"/":                "/index.html",
		"/posts/hello":     "/posts/hello/index.html",
		"/style.css":       "/style.css",
		"/posts/hello.png": "/posts/hello.png",
	} {
		res := rules.Apply(NewRequest(host, uri, ""))
		require.False(t, res.IsRedirect(), "uri: %s", uri)
		assert.Equal(t, want, res.Request.URI, "uri: %s", uri)
	}
}

func TestCleanURL_HTMLStyle(t *testing.T) {
	rules := OriginRequestRules(host, StyleHTML)
	for uri, want := range map[string]string{
		"/about": "/about.html",
		"/":      "/index.html",
		"/a.txt": "/a.txt",
	} {
		res := rules.Apply(NewRequest(host, uri, ""))
		assert.Equal(t, want, res.Request.URI, "uri: %s", uri)
	}
}

func TestCleanURL_DoesNotMutateInput(t *testing.T) {
	req := NewRequest(host, "/about", "")
	_ = OriginRequestRules(host, StyleIndex).Apply(req)
	assert.Equal(t, "/about", req.URI)
}

func TestWWW_RedirectsToCanonicalHost(t *testing.T) {
	res := ViewerRequestRules(host).Apply(NewRequest("www.blog.example.com", "/posts/hello", ""))
	require.True(t, res.IsRedirect())
	assert.Equal(t, "https://blog.example.com/posts/hello", res.Location())
}

func TestWWW_RunsBeforeTrailingSlash(t *testing.T) {
	res := ViewerRequestRules(host).Apply(NewRequest("www.blog.example.com", "/posts/", ""))
	assert.Equal(t, "https://blog.example.com/posts/", res.Location())
}

func TestWWW_CanonicalHostIsNotRedirected(t *testing.T) {
	rules := ViewerRequestRules("www.example.com")
	res := rules.Apply(NewRequest("WWW.example.com", "/", ""))
	assert.False(t, res.IsRedirect())
}

func TestWWW_AnyHostContainingWWW(t *testing.T) {
	rules := ViewerRequestRules(host)
	for h, want := range map[string]bool{
		"www.blog.example.com":  true,
		"WWW.BLOG.EXAMPLE.COM":  true,
		"www2.blog.example.com": true,
		"blog.www.example.com":  true,
		"awwwards.example.com":  true,
		"blog.example.com":      false,
		"BLOG.example.com":      false,
		"":                      false,
	} {
		res := rules.Apply(NewRequest(h, "/x", ""))
		assert.Equal(t, want, res.IsRedirect(), "host: %q", h)
		if want {
			assert.Equal(t, "https://blog.example.com/x", res.Location(), "host: %q", h)
		}
	}
}

func TestExt(t *testing.T) {
	for uri, want := range map[string]string{
		"/":            "",
		"":             "",
		"/about":       "",
		"/.well-known": "",
		"/x/.htaccess": "",
		"/..":          "",
		"/...":         ".",
		"/..a":         ".a",
		"/.a.b":        ".b",
		"/a.b/":        ".b",
		"/file.":       ".",
		"/a.b/c":       "",
		"/app.js":      ".js",
	} {
		assert.Equal(t, want, ext(uri), "uri: %q", uri)
	}
}

// Expected URIs are what the rendered handler returns for the same input.
func TestCleanURL_MatchesDeployedHandler(t *testing.T) {
	tests := []struct {
		uri, index, html string
	}{
		{"/", "/index.html", "/index.html"},
		{"/about", "/about/index.html", "/about.html"},
		{"/about/index.html", "/about/index.html", "/about/index.html"},
		{"/.well-known", "/.well-known/index.html", "/.well-known.html"},
		{"/x/.htaccess", "/x/.htaccess/index.html", "/x/.htaccess.html"},
		{"/docs/v1.2", "/docs/v1.2", "/docs/v1.2"},
		{"/file.", "/file.", "/file."},
		{"/..a", "/..a", "/..a"},
		{"/assets/app.js", "/assets/app.js", "/assets/app.js"},
		{"/blog/post-1", "/blog/post-1/index.html", "/blog/post-1.html"},
	}
	index := OriginRequestRules(host, StyleIndex)
	html := OriginRequestRules(host, StyleHTML)
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			res := index.Apply(NewRequest(host, tt.uri, ""))
			require.False(t, res.IsRedirect())
			assert.Equal(t, tt.index, res.Request.URI)

			res = html.Apply(NewRequest(host, tt.uri, ""))
			require.False(t, res.IsRedirect())
			assert.Equal(t, tt.html, res.Request.URI)
		})
	}
}

func TestViewerRequest_DoesNotRewrite(t *testing.T) {
	res := ViewerRequestRules(host).Apply(NewRequest(host, "/about", ""))
	require.False(t, res.IsRedirect())
	assert.Equal(t, "/about", res.Request.URI)
}

func TestParseCleanURLStyle(t *testing.T) {
	s, err := ParseCleanURLStyle("html")
	require.NoError(t, err)
	assert.Equal(t, StyleHTML, s)

	_, err = ParseCleanURLStyle("php")
	require.ErrorContains(t, err, "invalid clean URL style")
}
