package cdn

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

const (
	ElbCacheTTLSeconds = 60

	ContentMinTTLSeconds     = 600
	ContentDefaultTTLSeconds = 86400
	ContentMaxTTLSeconds     = 2592000
)

// NewElbCachePolicy keeps backend responses for a minute and keys on nothing
// but the path.
func NewElbCachePolicy(scope constructs.Construct, id string) awscloudfront.CachePolicy {
	ttl := awscdk.Duration_Seconds(jsii.Number(ElbCacheTTLSeconds))
	return awscloudfront.NewCachePolicy(scope, jsii.String(id), &awscloudfront.CachePolicyProps{
		Comment:             jsii.String("ELB Cache Policy"),
		MinTtl:              ttl,
		DefaultTtl:          ttl,
		MaxTtl:              ttl,
		HeaderBehavior:      awscloudfront.CacheHeaderBehavior_None(),
		CookieBehavior:      awscloudfront.CacheCookieBehavior_None(),
		QueryStringBehavior: awscloudfront.CacheQueryStringBehavior_None(),
	})
}

// NewContentCachePolicy caches static site content, varying on Origin so CORS
// responses stay correct.
func NewContentCachePolicy(scope constructs.Construct, id string) awscloudfront.CachePolicy {
	return awscloudfront.NewCachePolicy(scope, jsii.String(id), &awscloudfront.CachePolicyProps{
		Comment:                    jsii.String("Static content cache policy"),
		MinTtl:                     awscdk.Duration_Seconds(jsii.Number(ContentMinTTLSeconds)),
		DefaultTtl:                 awscdk.Duration_Seconds(jsii.Number(ContentDefaultTTLSeconds)),
		MaxTtl:                     awscdk.Duration_Seconds(jsii.Number(ContentMaxTTLSeconds)),
		HeaderBehavior:             awscloudfront.CacheHeaderBehavior_AllowList(jsii.String("Origin")),
		CookieBehavior:             awscloudfront.CacheCookieBehavior_None(),
		QueryStringBehavior:        awscloudfront.CacheQueryStringBehavior_None(),
		EnableAcceptEncodingGzip:   jsii.Bool(true),
		EnableAcceptEncodingBrotli: jsii.Bool(true),
	})
}

// ElbCachePolicyOrDisabled resolves the API behavior cache policy: the policy
// with the given id, or the managed CachingDisabled policy when id is empty.
func ElbCachePolicyOrDisabled(scope constructs.Construct, id string, policyId string) awscloudfront.ICachePolicy {
	if policyId == "" {
		return awscloudfront.CachePolicy_CACHING_DISABLED()
	}
	return awscloudfront.CachePolicy_FromCachePolicyId(scope, jsii.String(id), jsii.String(policyId))
}
