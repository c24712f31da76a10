package alternativedomains

// AlternativeMapping holds per-alias options.
type AlternativeMapping struct {
	// RequiresTlsSan specifies if a TLS SAN entry is needed. Defaults to true.
	// Use pointer to distinguish between explicitly false and not set.
	RequiresTlsSan *bool `yaml:"requiresTlsSan,omitempty"`
}

// RequiresTlsSanOrDefault returns the value of RequiresTlsSan, defaulting to true if not set.
func (m AlternativeMapping) RequiresTlsSanOrDefault() bool {
	if m.RequiresTlsSan == nil {
		return true
	}
	return *m.RequiresTlsSan
}

// StackConfig holds the alternative domains of one app stack name.
type StackConfig struct {
	// AlternativeHostedZoneDomain, when set, is the zone every alias record is
	// created in. Otherwise each alias uses the zone derived from its own name.
	AlternativeHostedZoneDomain string `yaml:"alternativeHostedZoneDomain"`
	// Alternatives maps the alias FQDN to its options.
	Alternatives map[string]AlternativeMapping `yaml:"alternatives"`
}

// AlternativeDomainConfig is the root structure for the configuration file.
// It maps app stack names (the stackName context value) to their configuration.
type AlternativeDomainConfig map[string]StackConfig

// Alternative is a resolved alias of the website.
type Alternative struct {
	FQDN           string
	ZoneName       string
	RequiresTlsSan bool
}
