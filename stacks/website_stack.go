package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/ryojerryyu/blog-infra/config"
	"github.com/ryojerryyu/blog-infra/config/alternativedomains"
	"github.com/ryojerryyu/blog-infra/lib/cdklogger"
	"github.com/ryojerryyu/blog-infra/lib/constructs/cdn"
	"github.com/ryojerryyu/blog-infra/lib/constructs/website"
	"github.com/ryojerryyu/blog-infra/lib/providers"
)

type WebsiteStackProps struct {
	awscdk.StackProps
	Binding providers.Binding
	Common  CommonStackExports
	Edge    EdgeStackExports
}

// WebsiteStack wires the site to the shared log bucket, the backend cache
// policy and the edge functions of the other stacks.
func WebsiteStack(scope constructs.Construct, id string, props *WebsiteStackProps) awscdk.Stack {
	stack := newBoundStack(scope, id, props.StackProps, props.Binding)

	params := config.NewCDKParams(stack)
	site := config.GetSiteConfig(stack)
	alts := alternativedomains.GetAlternativesForStack(stack)
	cdklogger.LogInfo(stack, "", "website %s with %d alternative domain(s)", site.FQDN, len(alts))

	var apiCachePolicy awscloudfront.ICachePolicy
	if site.ElbCachePolicyId == config.SharedElbCachePolicy {
		apiCachePolicy = props.Common.ElbCachePolicy
	} else {
		apiCachePolicy = cdn.ElbCachePolicyOrDisabled(stack, "ApiCachePolicy", site.ElbCachePolicyId)
	}

	// imported by name: log delivery grants live on the bucket's own policy
	logBucket := awss3.Bucket_FromBucketAttributes(stack, jsii.String("LogBucket"), &awss3.BucketAttributes{
		BucketName: props.Common.LogBucket.BucketName(),
		Region:     stack.Region(),
	})

	website.NewWebsite(stack, "Website", &website.WebsiteProps{
		Site:             site,
		CorsAllowOrigins: params.CorsAllowOrigins.ValueAsList(),
		LogBucket:        logBucket,
		ApiCachePolicy:   apiCachePolicy,
		ViewerRequest: awslambda.Version_FromVersionArn(stack, jsii.String("ViewerRequestVersion"),
			props.Edge.ViewerRequestQualifiedArn),
		OriginRequest: awslambda.Version_FromVersionArn(stack, jsii.String("OriginRequestVersion"),
			props.Edge.OriginRequestQualifiedArn),
		Alternatives: alts,
	})

	return stack
}
