package provider

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectAlternativeNames(t *testing.T) {
	got := SubjectAlternativeNames(Request{
		FQDN:           "blog.example.com",
		Wildcard:       true,
		AdditionalSANs: []string{"blog.example.org", "*.blog.example.com", "", "blog.example.com"},
	})
	assert.Equal(t, []string{"*.blog.example.com", "blog.example.org"}, got)
}

func TestSubjectAlternativeNames_Empty(t *testing.T) {
	assert.Empty(t, SubjectAlternativeNames(Request{FQDN: "example.com"}))
}

func TestValidationZones(t *testing.T) {
	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("Zones"), nil)
	site := awsroute53.HostedZone_FromHostedZoneAttributes(stack, jsii.String("Site"), &awsroute53.HostedZoneAttributes{
		HostedZoneId: jsii.String("Z1"), ZoneName: jsii.String("example.com"),
	})
	alt := awsroute53.HostedZone_FromHostedZoneAttributes(stack, jsii.String("Alt"), &awsroute53.HostedZoneAttributes{
		HostedZoneId: jsii.String("Z2"), ZoneName: jsii.String("example.org"),
	})

	zones := ValidationZones(Request{
		Zone:           site,
		FQDN:           "blog.example.com",
		Wildcard:       true,
		AdditionalSANs: []string{"blog.example.org"},
		SANZones:       map[string]awsroute53.IHostedZone{"blog.example.org": alt},
	})
	require.Len(t, zones, 3)
	assert.Equal(t, "Z1", *zones["blog.example.com"].HostedZoneId())
	assert.Equal(t, "Z1", *zones["*.blog.example.com"].HostedZoneId())
	assert.Equal(t, "Z2", *zones["blog.example.org"].HostedZoneId())
}

func TestGetEdgeCertificateFromRegionalStack(t *testing.T) {
	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("Site"), &awscdk.StackProps{
		Env: &awscdk.Environment{
			Account: jsii.String("123456789012"),
			Region:  jsii.String("ap-northeast-1"),
		},
		CrossRegionReferences: jsii.Bool(true),
	})
	zone := awsroute53.HostedZone_FromHostedZoneAttributes(stack, jsii.String("Zone"), &awsroute53.HostedZoneAttributes{
		HostedZoneId: jsii.String("Z1"), ZoneName: jsii.String("example.com"),
	})

	cert := New().Get(stack, "Cert", ScopeEdge, Request{Zone: zone, FQDN: "blog.example.com", Wildcard: true})
	assert.Equal(t, EdgeRegion, *awscdk.Stack_Of(cert).Region())

	template := assertions.Template_FromStack(awscdk.Stack_Of(cert), nil)
	template.HasResourceProperties(jsii.String("AWS::CertificateManager::Certificate"), map[string]interface{}{
		"DomainName":              "blog.example.com",
		"SubjectAlternativeNames": []interface{}{"*.blog.example.com"},
		"ValidationMethod":        "DNS",
	})
}
