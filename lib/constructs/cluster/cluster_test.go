package cluster_test

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"

	"github.com/ryojerryyu/blog-infra/lib/constructs/cluster"
	"github.com/ryojerryyu/blog-infra/lib/constructs/network"
	"github.com/ryojerryyu/blog-infra/tests/testutil"
)

func newStack(t *testing.T) (awscdk.Stack, *network.Network) {
	t.Helper()
	app := testutil.NewApp(nil)
	stack := testutil.NewStack(app, "ClusterStack", "")
	n := network.NewNetwork(stack, "Network", &network.NetworkProps{ClusterName: "blog-eks", StackName: "blog"})
	return stack, n
}

func TestClusterSynth(t *testing.T) {
	stack, n := newStack(t)

	cluster.NewCluster(stack, "Cluster", &cluster.ClusterProps{
		Network:           n,
		ClusterName:       "blog-eks",
		Version:           "1.31",
		AdminPrincipalArn: "arn:aws:iam::123456789012:role/admin",
		NodeGroup:         &cluster.NodeGroupProps{DesiredSize: 2, InstanceType: "t3.medium"},
	})

	template := assertions.Template_FromStack(stack, nil)
	template.ResourceCountIs(jsii.String("AWS::EKS::Cluster"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::EKS::AccessEntry"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::EKS::Nodegroup"), jsii.Number(1))

	template.HasResourceProperties(jsii.String("AWS::EKS::Cluster"), map[string]interface{}{
		"Name":    "blog-eks",
		"Version": "1.31",
		"AccessConfig": map[string]interface{}{
			"AuthenticationMode": "API_AND_CONFIG_MAP",
		},
		"ResourcesVpcConfig": map[string]interface{}{
			"EndpointPublicAccess": true,
		},
	})
	template.HasResourceProperties(jsii.String("AWS::IAM::Role"), map[string]interface{}{
		"AssumeRolePolicyDocument": assertions.Match_ObjectLike(&map[string]interface{}{
			"Statement": assertions.Match_ArrayWith(&[]interface{}{
				assertions.Match_ObjectLike(&map[string]interface{}{
					"Principal": map[string]interface{}{"Service": "eks.amazonaws.com"},
				}),
			}),
		}),
	})
	template.HasResourceProperties(jsii.String("AWS::EKS::AccessEntry"), map[string]interface{}{
		"PrincipalArn": "arn:aws:iam::123456789012:role/admin",
		"AccessPolicies": []interface{}{
			map[string]interface{}{
				"PolicyArn":   cluster.ClusterAdminPolicy,
				"AccessScope": map[string]interface{}{"Type": "cluster"},
			},
		},
	})
	template.HasResourceProperties(jsii.String("AWS::EKS::Nodegroup"), map[string]interface{}{
		"InstanceTypes": []interface{}{"t3.medium"},
		"ScalingConfig": map[string]interface{}{"DesiredSize": 2, "MinSize": 2, "MaxSize": 2},
	})
}

func TestClusterWithoutOptionalParts(t *testing.T) {
	stack, n := newStack(t)

	cl := cluster.NewCluster(stack, "Cluster", &cluster.ClusterProps{
		Network:     n,
		ClusterName: "blog-eks",
		Version:     "1.31",
		NodeGroup:   &cluster.NodeGroupProps{DesiredSize: 0, InstanceType: "t3.medium"},
	})
	assert.Nil(t, cl.NodeGroup)

	template := assertions.Template_FromStack(stack, nil)
	template.ResourceCountIs(jsii.String("AWS::EKS::AccessEntry"), jsii.Number(0))
	template.ResourceCountIs(jsii.String("AWS::EKS::Nodegroup"), jsii.Number(0))
	template.ResourceCountIs(jsii.String("AWS::IAM::Role"), jsii.Number(1))
}

func TestClusterRequiresNetwork(t *testing.T) {
	stack, _ := newStack(t)
	assert.Panics(t, func() {
		cluster.NewCluster(stack, "Cluster", &cluster.ClusterProps{ClusterName: "blog-eks"})
	})
}
