// Package providers binds stacks to the two regions this app deploys into:
// the storage region (deploy region) and the fixed CloudFront edge region.
package providers

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/ryojerryyu/blog-infra/lib/cert/provider"
	"github.com/ryojerryyu/blog-infra/lib/utils"
)

// Binding is a region-scoped deployment target.
type Binding struct {
	// Name is the provider label written into the provider tag, e.g. "tokyo".
	Name string
	Env  *awscdk.Environment
}

const (
	StorageBindingName = "storage"
	EdgeBindingName    = "cloudFront"
)

// StorageBinding targets the configured deploy account and region.
func StorageBinding() Binding {
	return Binding{Name: StorageBindingName, Env: utils.CdkEnv()}
}

// EdgeBinding targets the deploy account in us-east-1, where CloudFront
// requires certificates and Lambda@Edge functions to live.
func EdgeBinding() Binding {
	env := utils.CdkEnv()
	env.Region = jsii.String(provider.EdgeRegion)
	return Binding{Name: EdgeBindingName, Env: env}
}

// DefaultTags returns the tags every resource of a bound stack carries.
func DefaultTags(b Binding, tagPrefix, project, stackName string) map[string]string {
	return map[string]string{
		"Provider": tagPrefix + "/" + b.Name,
		"Project":  project,
		"Stack":    stackName,
	}
}

// ApplyDefaultTags tags every taggable resource in stack.
func ApplyDefaultTags(stack awscdk.Stack, tags map[string]string) {
	t := awscdk.Tags_Of(stack)
	for k, v := range tags {
		t.Add(jsii.String(k), jsii.String(v), nil)
	}
}
