package publish

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
)

// DefaultCacheControl applies to keys no rule matches.
const DefaultCacheControl = "public, max-age=3600"

// CacheRule sets Cache-Control for keys matching Pattern.
type CacheRule struct {
	// Pattern is a doublestar glob over slash-separated object keys, e.g. "assets/**/*.js".
	Pattern      string `toml:"pattern"`
	CacheControl string `toml:"cache_control"`
}

// Rules is the publish.toml document:
//
//	default = "public, max-age=3600"
//
//	[[rule]]
//	pattern = "**/*.html"
//	cache_control = "public, max-age=0, must-revalidate"
type Rules struct {
	Default string      `toml:"default"`
	Rules   []CacheRule `toml:"rule"`
}

// LoadRules reads rules from a TOML file. An empty path yields the defaults.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return Rules{Default: DefaultCacheControl}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading cache rules %s: %w", path, err)
	}
	return ParseRules(string(raw))
}

// ParseRules decodes and validates a TOML rules document.
func ParseRules(doc string) (Rules, error) {
	var r Rules
	if _, err := toml.Decode(doc, &r); err != nil {
		return Rules{}, fmt.Errorf("decoding cache rules: %w", err)
	}
	if r.Default == "" {
		r.Default = DefaultCacheControl
	}
	for i, rule := range r.Rules {
		if rule.CacheControl == "" {
			return Rules{}, fmt.Errorf("cache rule %d (%q): cache_control is required", i, rule.Pattern)
		}
		if !doublestar.ValidatePattern(rule.Pattern) {
			return Rules{}, fmt.Errorf("cache rule %d: invalid pattern %q", i, rule.Pattern)
		}
	}
	return r, nil
}

// CacheControlFor returns the Cache-Control of the first rule matching key.
func (r Rules) CacheControlFor(key string) string {
	for _, rule := range r.Rules {
		if ok, _ := doublestar.Match(rule.Pattern, key); ok {
			return rule.CacheControl
		}
	}
	if r.Default == "" {
		return DefaultCacheControl
	}
	return r.Default
}
