package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/ryojerryyu/blog-infra/config"
	"github.com/ryojerryyu/blog-infra/lib/providers"
	"github.com/ryojerryyu/blog-infra/stacks"
)

func main() {
	app := awscdk.NewApp(nil)
	storage := providers.StorageBinding()

	common := stacks.CommonStack(app, config.WithStackSuffix(app, "Common"), &stacks.CommonStackProps{
		StackProps: awscdk.StackProps{
			Description: jsii.String("Shared log bucket and backend cache policy"),
		},
		Binding: storage,
	})

	stacks.ClusterStack(app, config.WithStackSuffix(app, "Cluster"), &stacks.ClusterStackProps{
		StackProps: awscdk.StackProps{
			Description: jsii.String("Cluster network and EKS control plane"),
		},
		Binding: storage,
	})

	edgeExports := stacks.EdgeStack(app, config.WithStackSuffix(app, "Edge"), &stacks.EdgeStackProps{
		StackProps: awscdk.StackProps{
			Description: jsii.String("Lambda@Edge request rewriting functions, always in us-east-1"),
		},
	})

	stacks.WebsiteStack(app, config.WithStackSuffix(app, "Website"), &stacks.WebsiteStackProps{
		StackProps: awscdk.StackProps{
			Description: jsii.String("Static site bucket, CloudFront distribution and DNS records"),
		},
		Binding: storage,
		Common:  common,
		Edge:    edgeExports,
	})

	app.Synth(nil)
}
