package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"

	"github.com/ryojerryyu/blog-infra/config"
	"github.com/ryojerryyu/blog-infra/lib/constructs/edgefunctions"
	"github.com/ryojerryyu/blog-infra/lib/edge"
	"github.com/ryojerryyu/blog-infra/lib/providers"
)

type EdgeStackProps struct {
	awscdk.StackProps
}

// EdgeStackExports carries the qualified ARNs of the published function versions.
type EdgeStackExports struct {
	Stack                     awscdk.Stack
	ViewerRequestQualifiedArn *string
	OriginRequestQualifiedArn *string
}

// EdgeStack declares the Lambda@Edge functions, always in us-east-1.
func EdgeStack(scope constructs.Construct, id string, props *EdgeStackProps) EdgeStackExports {
	var sprops awscdk.StackProps
	if props != nil {
		sprops = props.StackProps
	}
	sprops.Env = nil
	stack := newBoundStack(scope, id, sprops, providers.EdgeBinding())

	site := config.GetSiteConfig(stack)
	style, err := edge.ParseCleanURLStyle(site.CleanUrlStyle)
	if err != nil {
		panic(err)
	}

	fns := edgefunctions.NewEdgeFunctions(stack, "EdgeFunctions", &edgefunctions.EdgeFunctionsProps{
		CanonicalHost: site.FQDN,
		CleanURLStyle: style,
	})

	return EdgeStackExports{
		Stack:                     stack,
		ViewerRequestQualifiedArn: fns.ViewerRequestVersion.FunctionArn(),
		OriginRequestQualifiedArn: fns.OriginRequestVersion.FunctionArn(),
	}
}
