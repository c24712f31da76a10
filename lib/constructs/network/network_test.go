package network_test

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryojerryyu/blog-infra/lib/constructs/network"
	"github.com/ryojerryyu/blog-infra/tests/testutil"
)

func TestPublicSubnetCidr(t *testing.T) {
	cidr, err := network.PublicSubnetCidr(0)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/24", cidr)

	cidr, err = network.PublicSubnetCidr(2)
	require.NoError(t, err)
	assert.Equal(t, "10.0.2.0/24", cidr)

	_, err = network.PublicSubnetCidr(256)
	assert.Error(t, err)
	_, err = network.PublicSubnetCidr(-1)
	assert.Error(t, err)
}

func TestPublicSubnetTags(t *testing.T) {
	tags := network.PublicSubnetTags("blog-eks", "blog", "ap-northeast-1a")
	assert.Equal(t, map[string]string{
		"Name":                           "blog-eks-publicSubnet-ap-northeast-1a",
		"Stack":                          "blog",
		"kubernetes.io/role/elb":         "1",
		"kubernetes.io/cluster/blog-eks": "owned",
	}, tags)
}

func TestNetworkSynth(t *testing.T) {
	app := testutil.NewApp(nil)
	stack := testutil.NewStack(app, "NetworkStack", "")

	n := network.NewNetwork(stack, "Network", &network.NetworkProps{
		ClusterName: "blog-eks",
		StackName:   "blog",
		MaxAzs:      2,
	})
	require.Len(t, n.PublicSubnets, 2)
	for i, subnet := range n.PublicSubnets {
		want, err := network.PublicSubnetCidr(i)
		require.NoError(t, err)
		assert.Equal(t, want, *subnet.Ipv4CidrBlock())
	}

	template := assertions.Template_FromStack(stack, nil)
	template.ResourceCountIs(jsii.String("AWS::EC2::VPC"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::EC2::Subnet"), jsii.Number(2))
	template.ResourceCountIs(jsii.String("AWS::EC2::InternetGateway"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::EC2::NatGateway"), jsii.Number(0))

	template.HasResourceProperties(jsii.String("AWS::EC2::VPC"), map[string]interface{}{
		"CidrBlock":          "10.0.0.0/16",
		"EnableDnsHostnames": true,
		"EnableDnsSupport":   true,
	})
	template.HasResourceProperties(jsii.String("AWS::EC2::Subnet"), map[string]interface{}{
		"CidrBlock":           "10.0.0.0/24",
		"MapPublicIpOnLaunch": true,
		"Tags": assertions.Match_ArrayWith(&[]interface{}{
			map[string]interface{}{"Key": "kubernetes.io/role/elb", "Value": "1"},
		}),
	})
	template.HasResourceProperties(jsii.String("AWS::EC2::Subnet"), map[string]interface{}{
		"CidrBlock": "10.0.1.0/24",
	})
	template.HasResourceProperties(jsii.String("AWS::EC2::Route"), map[string]interface{}{
		"DestinationCidrBlock": "0.0.0.0/0",
	})
	template.HasResourceProperties(jsii.String("AWS::EC2::InternetGateway"), map[string]interface{}{
		"Tags": assertions.Match_ArrayWith(&[]interface{}{
			map[string]interface{}{"Key": "Name", "Value": "blog-eks-igw"},
		}),
	})
	template.HasOutput(jsii.String("*"), map[string]interface{}{
		"Value": map[string]interface{}{"Ref": assertions.Match_AnyValue()},
	})
}

func TestNetworkRequiresClusterName(t *testing.T) {
	app := testutil.NewApp(nil)
	stack := testutil.NewStack(app, "NetworkStack", "")
	assert.Panics(t, func() {
		network.NewNetwork(stack, "Network", &network.NetworkProps{})
	})
}
