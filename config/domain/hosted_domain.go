package domain

import (
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	jsii "github.com/aws/jsii-runtime-go"
	"github.com/ryojerryyu/blog-infra/lib/cdklogger"
	"github.com/ryojerryyu/blog-infra/lib/cert/provider"
)

// HostedDomainProps holds inputs for creating a HostedDomain construct.
type HostedDomainProps struct {
	// FQDN is the fully-qualified site domain; its zone is derived with ZoneFromDomain.
	FQDN string
	// ZoneName overrides the derived zone when the records live elsewhere.
	ZoneName        string
	EdgeCertificate bool     // if true, issues the certificate in us-east-1
	AdditionalNames []string // extra SANs for the certificate
	// AdditionalZones validates AdditionalNames that live outside the site zone.
	AdditionalZones map[string]awsroute53.IHostedZone
	// CertProvider defaults to provider.New().
	CertProvider provider.CertProvider
}

// HostedDomain looks up the Route53 hosted zone of an FQDN and provisions a
// DNS-validated ACM certificate for it, including the "*.<fqdn>" wildcard.
type HostedDomain struct {
	constructs.Construct
	Zone       awsroute53.IHostedZone
	Cert       awscertificatemanager.ICertificate
	FQDN       string  // fully-qualified domain name
	DomainName *string // DomainName token for callsites needing a *string
}

// NewHostedDomain creates a HostedDomain under scope.
func NewHostedDomain(scope constructs.Construct, id string, props *HostedDomainProps) *HostedDomain {
	hdConstruct := constructs.NewConstruct(scope, jsii.String(id))
	hd := &HostedDomain{Construct: hdConstruct}

	hd.FQDN = props.FQDN
	hd.DomainName = jsii.String(hd.FQDN)

	zoneName := props.ZoneName
	if zoneName == "" {
		zoneName = MustZoneFromDomain(hd.FQDN)
	}
	hd.Zone = LookupZone(hdConstruct, "Zone", zoneName)

	cdklogger.LogInfo(hdConstruct, "", "Setting up hosted domain. FQDN: %s, Zone: %s, EdgeCertificate: %t", hd.FQDN, zoneName, props.EdgeCertificate)

	certProvider := props.CertProvider
	if certProvider == nil {
		certProvider = provider.New()
	}
	certScope := provider.ScopeRegion
	if props.EdgeCertificate {
		certScope = provider.ScopeEdge
	}
	hd.Cert = certProvider.Get(hdConstruct, "Cert", certScope, provider.Request{
		Zone:           hd.Zone,
		FQDN:           hd.FQDN,
		Wildcard:       true,
		AdditionalSANs: props.AdditionalNames,
		SANZones:       props.AdditionalZones,
	})

	awscdk.NewCfnOutput(hd.Construct, jsii.String("Domain"), &awscdk.CfnOutputProps{Value: jsii.String(hd.FQDN)})
	awscdk.NewCfnOutput(hd.Construct, jsii.String("HostedZoneId"), &awscdk.CfnOutputProps{Value: hd.Zone.HostedZoneId()})
	awscdk.NewCfnOutput(hd.Construct, jsii.String("CertificateArn"), &awscdk.CfnOutputProps{Value: hd.Cert.CertificateArn()})

	return hd
}

// LookupZone resolves an existing public hosted zone by name at synth time.
func LookupZone(scope constructs.Construct, id string, zoneName string) awsroute53.IHostedZone {
	return awsroute53.HostedZone_FromLookup(scope, jsii.String(id), &awsroute53.HostedZoneProviderProps{
		DomainName: jsii.String(zoneName),
	})
}

// AddAliasRecord creates an A alias record for fqdn (an empty fqdn targets the site domain).
func (h *HostedDomain) AddAliasRecord(id string, fqdn string, target awsroute53.RecordTarget) awsroute53.ARecord {
	return AddAliasRecord(h.Construct, id, h.Zone, h.recordName(fqdn), target)
}

// AddAliasRecord creates an A alias record for recordName in zone.
func AddAliasRecord(scope constructs.Construct, id string, zone awsroute53.IHostedZone, recordName string, target awsroute53.RecordTarget) awsroute53.ARecord {
	return awsroute53.NewARecord(scope, jsii.String(id), &awsroute53.ARecordProps{
		Zone:       zone,
		RecordName: jsii.String(recordName),
		Target:     target,
	})
}

func (h *HostedDomain) recordName(fqdn string) string {
	if fqdn == "" {
		return h.FQDN
	}
	return strings.TrimSuffix(fqdn, ".")
}
