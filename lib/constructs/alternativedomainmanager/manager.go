package alternativedomainmanager

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"

	altcfg "github.com/ryojerryyu/blog-infra/config/alternativedomains"
	"github.com/ryojerryyu/blog-infra/config/domain"
	"github.com/ryojerryyu/blog-infra/lib/cdklogger"
)

// AlternativeRecordConstructID generates a unique and valid CDK construct ID for an alternative A record.
// Example: "blog.example.org" -> "AltARecord-blog-example-org"
func AlternativeRecordConstructID(altFqdn string) string {
	return fmt.Sprintf("AltARecord-%s", strings.ReplaceAll(altFqdn, ".", "-"))
}

// zoneLookupConstructID names the lookup of one alternative zone.
func zoneLookupConstructID(zoneName string) string {
	return fmt.Sprintf("AltZone-%s", strings.ReplaceAll(zoneName, ".", "-"))
}

type AlternativeDomainManagerProps struct {
	Alternatives []altcfg.Alternative
}

// AlternativeDomainManager provisions the extra names a site answers on:
// it resolves their zones, reports the certificate SANs they need and
// creates their A records once the target exists.
type AlternativeDomainManager struct {
	constructs.Construct
	alternatives []altcfg.Alternative
	zones        map[string]awsroute53.IHostedZone
}

// NewAlternativeDomainManager looks up every distinct alternative zone once.
func NewAlternativeDomainManager(scope constructs.Construct, id string, props *AlternativeDomainManagerProps) *AlternativeDomainManager {
	c := constructs.NewConstruct(scope, jsii.String(id))
	m := &AlternativeDomainManager{
		Construct:    c,
		alternatives: props.Alternatives,
		zones:        map[string]awsroute53.IHostedZone{},
	}

	for _, alt := range m.alternatives {
		if _, ok := m.zones[alt.ZoneName]; ok {
			continue
		}
		m.zones[alt.ZoneName] = domain.LookupZone(c, zoneLookupConstructID(alt.ZoneName), alt.ZoneName)
	}
	if len(m.alternatives) > 0 {
		cdklogger.LogInfo(c, "", "%d alternative domain(s) across %d zone(s)", len(m.alternatives), len(m.zones))
	}
	return m
}

// Names returns every alternative FQDN in configuration order.
func (m *AlternativeDomainManager) Names() []string {
	return lo.Map(m.alternatives, func(a altcfg.Alternative, _ int) string { return a.FQDN })
}

// CertificateRequirements returns the sorted SANs the site certificate must
// carry and the zone that validates each of them.
func (m *AlternativeDomainManager) CertificateRequirements() ([]string, map[string]awsroute53.IHostedZone) {
	sans := lo.Uniq(altcfg.TlsSans(m.alternatives))
	sort.Strings(sans)

	zones := map[string]awsroute53.IHostedZone{}
	for _, alt := range m.alternatives {
		if alt.RequiresTlsSan {
			zones[alt.FQDN] = m.zones[alt.ZoneName]
		}
	}
	return sans, zones
}

// ProvisionAlternativeDomains points every alternative name at target and
// returns the number of records created.
func (m *AlternativeDomainManager) ProvisionAlternativeDomains(target awsroute53.RecordTarget) int {
	for _, alt := range m.alternatives {
		domain.AddAliasRecord(m.Construct, AlternativeRecordConstructID(alt.FQDN), m.zones[alt.ZoneName], alt.FQDN, target)
		cdklogger.LogInfo(m.Construct, "", "created alternative A record %s in zone %s (tls san: %t)", alt.FQDN, alt.ZoneName, alt.RequiresTlsSan)
	}
	return len(m.alternatives)
}
