package provider

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"
)

// defaultProvider is the standard implementation of CertProvider.
type defaultProvider struct{}

// New returns a CertProvider that issues certificates for edge or regional scopes.
func New() CertProvider {
	return &defaultProvider{}
}

// SubjectAlternativeNames returns the deduplicated SAN list for req, wildcard first.
func SubjectAlternativeNames(req Request) []string {
	var names []string
	if req.Wildcard {
		names = append(names, "*."+req.FQDN)
	}
	names = append(names, req.AdditionalSANs...)
	names = lo.Filter(names, func(n string, _ int) bool { return n != "" && n != req.FQDN })
	return lo.Uniq(names)
}

func (p *defaultProvider) Get(scope constructs.Construct, id string, sScope CertScope, req Request) awscertificatemanager.ICertificate {
	var certScope constructs.Construct = scope
	if sScope == ScopeEdge && !inEdgeRegion(scope) {
		// CloudFront only reads certificates from us-east-1
		certScope = awscdk.NewStack(scope, jsii.String(id+"EdgeCertStack"), &awscdk.StackProps{
			Env: &awscdk.Environment{
				Account: awscdk.Stack_Of(scope).Account(),
				Region:  jsii.String(EdgeRegion),
			},
			CrossRegionReferences: jsii.Bool(true),
		})
	}

	certProps := &awscertificatemanager.CertificateProps{
		DomainName:      jsii.String(req.FQDN),
		CertificateName: jsii.String(req.FQDN + "-cert"),
		Validation:      validation(req),
	}
	if sans := SubjectAlternativeNames(req); len(sans) > 0 {
		certProps.SubjectAlternativeNames = jsii.Strings(sans...)
	}

	return awscertificatemanager.NewCertificate(certScope, jsii.String(id), certProps)
}

// ValidationZones returns the zone that validates each name on the certificate.
func ValidationZones(req Request) map[string]awsroute53.IHostedZone {
	zones := map[string]awsroute53.IHostedZone{req.FQDN: req.Zone}
	for _, name := range SubjectAlternativeNames(req) {
		if z, ok := req.SANZones[name]; ok {
			zones[name] = z
		} else {
			zones[name] = req.Zone
		}
	}
	return zones
}

func validation(req Request) awscertificatemanager.CertificateValidation {
	if len(req.SANZones) == 0 {
		return awscertificatemanager.CertificateValidation_FromDns(req.Zone)
	}
	zones := ValidationZones(req)
	return awscertificatemanager.CertificateValidation_FromDnsMultiZone(&zones)
}

// inEdgeRegion reports whether scope's stack is already pinned to us-east-1.
func inEdgeRegion(scope constructs.Construct) bool {
	region := awscdk.Stack_Of(scope).Region()
	return region != nil && !*awscdk.Token_IsUnresolved(region) && *region == EdgeRegion
}
