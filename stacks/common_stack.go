package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/ryojerryyu/blog-infra/config"
	"github.com/ryojerryyu/blog-infra/lib/constructs/cdn"
	"github.com/ryojerryyu/blog-infra/lib/constructs/logbucket"
	"github.com/ryojerryyu/blog-infra/lib/providers"
)

type CommonStackProps struct {
	awscdk.StackProps
	Binding providers.Binding
}

// CommonStackExports are the shared resources other stacks consume.
type CommonStackExports struct {
	Stack          awscdk.Stack
	LogBucket      awss3.IBucket
	ElbCachePolicy awscloudfront.ICachePolicy
}

// CommonStack holds the log bucket and the backend cache policy shared by
// every site of the account.
func CommonStack(scope constructs.Construct, id string, props *CommonStackProps) CommonStackExports {
	stack := newBoundStack(scope, id, props.StackProps, props.Binding)

	logs := logbucket.NewLogBucket(stack, "LogBucket", &logbucket.LogBucketProps{
		BucketNamePrefix: config.BucketNamePrefix(stack),
	})
	policy := cdn.NewElbCachePolicy(stack, "ElbCachePolicy")

	awscdk.NewCfnOutput(stack, jsii.String("ElbCachePolicyId"), &awscdk.CfnOutputProps{
		Value: policy.CachePolicyId(),
	})

	return CommonStackExports{
		Stack:          stack,
		LogBucket:      logs.Bucket,
		ElbCachePolicy: policy,
	}
}

// newBoundStack creates a stack in the binding's environment and applies the
// default tags of the binding.
func newBoundStack(scope constructs.Construct, id string, sprops awscdk.StackProps, b providers.Binding) awscdk.Stack {
	if sprops.Env == nil {
		sprops.Env = b.Env
	}
	sprops.CrossRegionReferences = jsii.Bool(true)
	stack := awscdk.NewStack(scope, jsii.String(id), &sprops)

	tags := providers.DefaultTags(b, config.TagPrefix(stack), config.StackName(stack), id)
	providers.ApplyDefaultTags(stack, tags)
	return stack
}
