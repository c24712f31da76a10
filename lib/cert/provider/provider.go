package provider

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
)

// CertScope indicates certificate issuance scope: edge or region.
type CertScope string

const (
	// ScopeEdge issues a certificate in us-east-1 for edge services (e.g. CloudFront).
	ScopeEdge CertScope = "edge"
	// ScopeRegion issues a certificate in the same region as the calling stack.
	ScopeRegion CertScope = "region"
)

// EdgeRegion is the only region CloudFront accepts certificates and edge functions from.
const EdgeRegion = "us-east-1"

// Request describes one certificate.
type Request struct {
	Zone awsroute53.IHostedZone
	FQDN string
	// Wildcard adds "*.<FQDN>" to the subject alternative names.
	Wildcard bool
	// AdditionalSANs are appended after the wildcard name; duplicates are dropped.
	AdditionalSANs []string
	// SANZones maps subject alternative names outside Zone to the zone that
	// validates them.
	SANZones map[string]awsroute53.IHostedZone
}

// CertProvider defines how to obtain an ACM certificate for a domain.
type CertProvider interface {
	// Get returns a DNS-validated ACM certificate issued under the given scope.
	Get(scope constructs.Construct, id string, s CertScope, req Request) awscertificatemanager.ICertificate
}
