package alternativedomains

import (
	"fmt"
	"os"
	"sort"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/ryojerryyu/blog-infra/config"
	"github.com/ryojerryyu/blog-infra/config/domain"
)

// LoadConfig reads the alternative domains configuration from the specified YAML file.
// A missing file yields a nil config and no error.
func LoadConfig(filePath string) (AlternativeDomainConfig, error) {
	yamlFile, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading alternative domains config file %s: %w", filePath, err)
	}

	var cfg AlternativeDomainConfig
	if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling alternative domains config from %s: %w", filePath, err)
	}
	return cfg, nil
}

// ForStack returns the configuration registered under stackName, or nil.
func (c AlternativeDomainConfig) ForStack(stackName string) *StackConfig {
	if c == nil {
		return nil
	}
	if sc, ok := c[stackName]; ok {
		return &sc
	}
	return nil
}

// Resolve expands the configuration into aliases sorted by name, each with
// the zone its record belongs to.
func (sc *StackConfig) Resolve() ([]Alternative, error) {
	if sc == nil {
		return nil, nil
	}
	names := lo.Keys(sc.Alternatives)
	sort.Strings(names)

	out := make([]Alternative, 0, len(names))
	for _, fqdn := range names {
		zone := sc.AlternativeHostedZoneDomain
		if zone == "" {
			z, err := domain.ZoneFromDomain(fqdn)
			if err != nil {
				return nil, fmt.Errorf("alternative %q: %w", fqdn, err)
			}
			zone = z
		}
		out = append(out, Alternative{
			FQDN:           fqdn,
			ZoneName:       zone,
			RequiresTlsSan: sc.Alternatives[fqdn].RequiresTlsSanOrDefault(),
		})
	}
	return out, nil
}

// TlsSans returns the alias names that must be on the site certificate.
func TlsSans(alts []Alternative) []string {
	return lo.FilterMap(alts, func(a Alternative, _ int) (string, bool) {
		return a.FQDN, a.RequiresTlsSan
	})
}

// GetAlternativesForStack loads the file named by the alternativeDomainsConfigPath
// context and resolves the entry of the current app stack name.
// Read or parse failures stop synthesis.
func GetAlternativesForStack(scope constructs.Construct) []Alternative {
	path := config.AlternativeDomainsConfigPath(scope)
	cfg, err := LoadConfig(path)
	if err != nil {
		panic(err)
	}
	alts, err := cfg.ForStack(config.StackName(scope)).Resolve()
	if err != nil {
		panic(err)
	}
	return alts
}
