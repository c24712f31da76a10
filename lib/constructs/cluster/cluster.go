package cluster

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awseks"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"

	"github.com/ryojerryyu/blog-infra/lib/cdklogger"
	"github.com/ryojerryyu/blog-infra/lib/constructs/network"
)

const (
	AuthenticationMode = "API_AND_CONFIG_MAP"
	ClusterAdminPolicy = "arn:aws:eks::aws:cluster-access-policy/AmazonEKSClusterAdminPolicy"
)

var (
	clusterManagedPolicies = []string{"AmazonEKSClusterPolicy"}
	nodeManagedPolicies    = []string{
		"AmazonEKSWorkerNodePolicy",
		"AmazonEKS_CNI_Policy",
		"AmazonEC2ContainerRegistryReadOnly",
	}
)

// NodeGroupProps sizes the optional managed node group.
type NodeGroupProps struct {
	DesiredSize  int
	InstanceType string
}

type ClusterProps struct {
	Network     *network.Network
	ClusterName string
	Version     string
	// AdminPrincipalArn, when set, is granted cluster-admin through an access entry.
	AdminPrincipalArn string
	// NodeGroup nil or with DesiredSize 0 declares no node group.
	NodeGroup *NodeGroupProps
}

// Cluster is an EKS control plane on the public subnets of a Network.
type Cluster struct {
	constructs.Construct
	Cluster     awseks.CfnCluster
	ServiceRole awsiam.Role
	NodeRole    awsiam.Role
	NodeGroup   awseks.CfnNodegroup
}

func managedPolicies(names []string) *[]awsiam.IManagedPolicy {
	policies := lo.Map(names, func(name string, _ int) awsiam.IManagedPolicy {
		return awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String(name))
	})
	return &policies
}

func NewCluster(scope constructs.Construct, id string, props *ClusterProps) *Cluster {
	if props.Network == nil {
		panic("ClusterProps.Network is required")
	}
	if props.ClusterName == "" {
		panic("ClusterProps.ClusterName is required")
	}

	c := constructs.NewConstruct(scope, jsii.String(id))
	cl := &Cluster{Construct: c}

	cl.ServiceRole = awsiam.NewRole(c, jsii.String("ServiceRole"), &awsiam.RoleProps{
		AssumedBy:       awsiam.NewServicePrincipal(jsii.String("eks.amazonaws.com"), nil),
		ManagedPolicies: managedPolicies(clusterManagedPolicies),
	})

	subnetIds := props.Network.PublicSubnetIds()
	cl.Cluster = awseks.NewCfnCluster(c, jsii.String("Cluster"), &awseks.CfnClusterProps{
		Name:    jsii.String(props.ClusterName),
		Version: jsii.String(props.Version),
		RoleArn: cl.ServiceRole.RoleArn(),
		ResourcesVpcConfig: &awseks.CfnCluster_ResourcesVpcConfigProperty{
			SubnetIds:             subnetIds,
			EndpointPublicAccess:  jsii.Bool(true),
			EndpointPrivateAccess: jsii.Bool(false),
		},
		AccessConfig: &awseks.CfnCluster_AccessConfigProperty{
			AuthenticationMode:                      jsii.String(AuthenticationMode),
			BootstrapClusterCreatorAdminPermissions: jsii.Bool(true),
		},
	})

	if props.AdminPrincipalArn != "" {
		awseks.NewCfnAccessEntry(c, jsii.String("AdminAccess"), &awseks.CfnAccessEntryProps{
			ClusterName:  cl.Cluster.Ref(),
			PrincipalArn: jsii.String(props.AdminPrincipalArn),
			AccessPolicies: &[]interface{}{
				&awseks.CfnAccessEntry_AccessPolicyProperty{
					PolicyArn: jsii.String(ClusterAdminPolicy),
					AccessScope: &awseks.CfnAccessEntry_AccessScopeProperty{
						Type: jsii.String("cluster"),
					},
				},
			},
		})
	} else {
		cdklogger.LogInfo(c, "", "no cluster admin principal configured, only the creator has access")
	}

	if ng := props.NodeGroup; ng != nil && ng.DesiredSize > 0 {
		cl.NodeRole = awsiam.NewRole(c, jsii.String("NodeRole"), &awsiam.RoleProps{
			AssumedBy:       awsiam.NewServicePrincipal(jsii.String("ec2.amazonaws.com"), nil),
			ManagedPolicies: managedPolicies(nodeManagedPolicies),
		})
		size := jsii.Number(float64(ng.DesiredSize))
		cl.NodeGroup = awseks.NewCfnNodegroup(c, jsii.String("NodeGroup"), &awseks.CfnNodegroupProps{
			ClusterName:   cl.Cluster.Ref(),
			NodegroupName: jsii.String(fmt.Sprintf("%s-nodes", props.ClusterName)),
			NodeRole:      cl.NodeRole.RoleArn(),
			Subnets:       subnetIds,
			InstanceTypes: jsii.Strings(ng.InstanceType),
			ScalingConfig: &awseks.CfnNodegroup_ScalingConfigProperty{
				DesiredSize: size,
				MinSize:     size,
				MaxSize:     size,
			},
		})
	}

	output := func(id string, value *string) {
		awscdk.NewCfnOutput(c, jsii.String(id), &awscdk.CfnOutputProps{Value: value})
	}
	output("ClusterName", cl.Cluster.Ref())
	output("ClusterArn", cl.Cluster.AttrArn())
	output("ClusterEndpoint", cl.Cluster.AttrEndpoint())
	output("Region", awscdk.Stack_Of(c).Region())

	return cl
}
