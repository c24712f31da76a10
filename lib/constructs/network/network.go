package network

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"
)

const (
	// VpcCidr is the address space of the cluster network.
	VpcCidr = "10.0.0.0/16"
	// publicSubnetMask gives every availability zone one 10.0.<i>.0/24 subnet.
	publicSubnetMask = 24
	// DefaultMaxAzs bounds the number of public subnets.
	DefaultMaxAzs = 3
)

// NetworkProps configures the cluster network.
type NetworkProps struct {
	ClusterName string
	StackName   string
	// MaxAzs defaults to DefaultMaxAzs.
	MaxAzs int
}

// Network is a VPC with an internet gateway, a public route table and one
// public subnet per availability zone.
type Network struct {
	constructs.Construct
	Vpc           awsec2.Vpc
	PublicSubnets []awsec2.ISubnet
}

// PublicSubnetCidr returns the CIDR of the i-th public subnet.
func PublicSubnetCidr(i int) (string, error) {
	if i < 0 || i > 255 {
		return "", fmt.Errorf("subnet index %d out of range [0,255]", i)
	}
	return fmt.Sprintf("10.0.%d.0/%d", i, publicSubnetMask), nil
}

// PublicSubnetTags are the tags the AWS load balancer controller and EKS use
// to discover public subnets of a cluster.
func PublicSubnetTags(clusterName, stackName, az string) map[string]string {
	return map[string]string{
		"Name":                   fmt.Sprintf("%s-publicSubnet-%s", clusterName, az),
		"Stack":                  stackName,
		"kubernetes.io/role/elb": "1",
		fmt.Sprintf("kubernetes.io/cluster/%s", clusterName): "owned",
	}
}

// NewNetwork declares the cluster network.
func NewNetwork(scope constructs.Construct, id string, props *NetworkProps) *Network {
	if props.ClusterName == "" {
		panic("NetworkProps.ClusterName is required")
	}
	maxAzs := props.MaxAzs
	if maxAzs == 0 {
		maxAzs = DefaultMaxAzs
	}

	c := constructs.NewConstruct(scope, jsii.String(id))
	n := &Network{Construct: c}

	// public-only: no NAT gateways, subnets get 10.0.0.0/24, 10.0.1.0/24, ...
	n.Vpc = awsec2.NewVpc(c, jsii.String("Vpc"), &awsec2.VpcProps{
		IpAddresses:        awsec2.IpAddresses_Cidr(jsii.String(VpcCidr)),
		MaxAzs:             jsii.Number(float64(maxAzs)),
		NatGateways:        jsii.Number(0),
		EnableDnsHostnames: jsii.Bool(true),
		EnableDnsSupport:   jsii.Bool(true),
		SubnetConfiguration: &[]*awsec2.SubnetConfiguration{
			{
				Name:                jsii.String("public"),
				SubnetType:          awsec2.SubnetType_PUBLIC,
				CidrMask:            jsii.Number(publicSubnetMask),
				MapPublicIpOnLaunch: jsii.Bool(true),
			},
		},
	})
	awscdk.Tags_Of(n.Vpc).Add(jsii.String("Name"), jsii.String(props.ClusterName+"-vpc"), nil)
	awscdk.Tags_Of(n.Vpc).Add(jsii.String("Stack"), jsii.String(props.StackName), nil)

	n.PublicSubnets = *n.Vpc.PublicSubnets()
	for i, subnet := range n.PublicSubnets {
		cidr, err := PublicSubnetCidr(i)
		if err != nil {
			panic(err)
		}
		if got := *subnet.Ipv4CidrBlock(); got != cidr {
			panic(fmt.Sprintf("public subnet %d allocated %s, want %s", i, got, cidr))
		}
		for k, v := range PublicSubnetTags(props.ClusterName, props.StackName, *subnet.AvailabilityZone()) {
			awscdk.Tags_Of(subnet).Add(jsii.String(k), jsii.String(v), nil)
		}
	}

	if igw := n.Vpc.Node().TryFindChild(jsii.String("IGW")); igw != nil {
		awscdk.Tags_Of(igw).Add(jsii.String("Name"), jsii.String(props.ClusterName+"-igw"), nil)
	}

	awscdk.NewCfnOutput(c, jsii.String("VpcId"), &awscdk.CfnOutputProps{Value: n.Vpc.VpcId()})
	awscdk.NewCfnOutput(c, jsii.String("PublicSubnetIds"), &awscdk.CfnOutputProps{
		Value: awscdk.Fn_Join(jsii.String(","), n.PublicSubnetIds()),
	})

	return n
}

// PublicSubnetIds returns the subnet id tokens in availability-zone order.
func (n *Network) PublicSubnetIds() *[]*string {
	ids := lo.Map(n.PublicSubnets, func(s awsec2.ISubnet, _ int) *string { return s.SubnetId() })
	return &ids
}
