package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/ryojerryyu/blog-infra/config"
	"github.com/ryojerryyu/blog-infra/config/domain"
	"github.com/ryojerryyu/blog-infra/lib/cdklogger"
	"github.com/ryojerryyu/blog-infra/lib/constructs/cluster"
	"github.com/ryojerryyu/blog-infra/lib/constructs/network"
	"github.com/ryojerryyu/blog-infra/lib/providers"
)

type ClusterStackProps struct {
	awscdk.StackProps
	Binding providers.Binding
}

type ClusterStackExports struct {
	Stack   awscdk.Stack
	Network *network.Network
	Cluster *cluster.Cluster
}

// ClusterStack declares the cluster network and the EKS control plane that
// serves the site backend.
func ClusterStack(scope constructs.Construct, id string, props *ClusterStackProps) ClusterStackExports {
	stack := newBoundStack(scope, id, props.StackProps, props.Binding)

	stackName := config.StackName(stack)
	clusterName := config.WithStackSuffix(stack, "eks")

	n := network.NewNetwork(stack, "Network", &network.NetworkProps{
		ClusterName: clusterName,
		StackName:   stackName,
	})
	cl := cluster.NewCluster(stack, "Cluster", &cluster.ClusterProps{
		Network:           n,
		ClusterName:       clusterName,
		Version:           config.ClusterVersion(stack),
		AdminPrincipalArn: config.ClusterAdminRoleArn(stack),
		NodeGroup: &cluster.NodeGroupProps{
			DesiredSize:  config.NodeGroupDesiredSize(stack),
			InstanceType: config.NodeGroupInstanceType(stack),
		},
	})

	// backend records are managed from inside the cluster; expose the zone they go to
	if zoneName := config.HostedZone(stack); zoneName != "" {
		zone := domain.LookupZone(stack, "HostedZone", zoneName)
		awscdk.NewCfnOutput(stack, jsii.String("HostedZoneId"), &awscdk.CfnOutputProps{Value: zone.HostedZoneId()})
	} else {
		cdklogger.LogInfo(stack, "", "no %s configured, skipping hosted zone lookup", config.CtxHostedZone)
	}

	return ClusterStackExports{Stack: stack, Network: n, Cluster: cl}
}
