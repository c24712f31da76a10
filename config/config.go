package config

import (
	"fmt"
	"strconv"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/ryojerryyu/blog-infra/config/domain"
)

// Context keys read from cdk.json or `--context key=value`.
const (
	CtxStackName                    = "stackName"
	CtxStage                        = "stage"
	CtxDevPrefix                    = "devPrefix"
	CtxHostedZone                   = "hostedZone"
	CtxBucketNamePrefix             = "bucketNamePrefix"
	CtxDomainName                   = "domainName"
	CtxServerDomainName             = "serverDomainName"
	CtxServerPort                   = "serverPort"
	CtxApiPathPattern               = "apiPathPattern"
	CtxCleanUrlStyle                = "cleanUrlStyle"
	CtxElbCachePolicyId             = "elbCachePolicyId"
	CtxClusterAdminRoleArn          = "clusterAdminRoleArn"
	CtxClusterVersion               = "clusterVersion"
	CtxNodeGroupDesiredSize         = "nodeGroupDesiredSize"
	CtxNodeGroupInstanceType        = "nodeGroupInstanceType"
	CtxAlternativeDomainsConfigPath = "alternativeDomainsConfigPath"
)

const (
	DefaultStackName      = "blog"
	DefaultServerPort     = 1996
	DefaultApiPathPattern = "/caculate/*"
	DefaultClusterVersion = "1.31"
	DefaultNodeGroupType  = "t3.medium"
	DefaultAltDomainsPath = "alternative-domains.yaml"
	DefaultCleanUrlStyle  = "index"
)

// SharedElbCachePolicy as elbCachePolicyId selects the policy of the common stack.
// Empty selects the managed CachingDisabled policy; anything else is a policy id.
const SharedElbCachePolicy = "shared"

// contextString returns the string context value for key, or def when unset.
// A non-string value is a configuration error and stops synthesis.
func contextString(scope constructs.Construct, key string, def string) string {
	raw := scope.Node().TryGetContext(jsii.String(key))
	if raw == nil {
		return def
	}
	v, ok := raw.(string)
	if !ok {
		panic(fmt.Sprintf("context %q must be a string, got %T", key, raw))
	}
	return v
}

// requireContextString is contextString without a default.
func requireContextString(scope constructs.Construct, key string) string {
	v := contextString(scope, key, "")
	if v == "" {
		panic(fmt.Sprintf("context %q is required (set it in cdk.json or pass --context %s=...)", key, key))
	}
	return v
}

// contextInt accepts both JSON numbers (cdk.json) and strings (--context k=v).
func contextInt(scope constructs.Construct, key string, def int) int {
	raw := scope.Node().TryGetContext(jsii.String(key))
	switch v := raw.(type) {
	case nil:
		return def
	case float64:
		return int(v)
	case string:
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Sprintf("context %q must be an integer, got %q", key, v))
		}
		return n
	default:
		panic(fmt.Sprintf("context %q must be an integer, got %T", key, raw))
	}
}

// StackName is the prefix shared by every stack of this app.
func StackName(scope constructs.Construct) string {
	return contextString(scope, CtxStackName, DefaultStackName)
}

// WithStackSuffix joins the app stack name and a component name, e.g. "blog-Website".
func WithStackSuffix(scope constructs.Construct, component string) string {
	return StackName(scope) + "-" + component
}

// GetStage reads the deployment stage. Absence means prod.
func GetStage(scope constructs.Construct) domain.StageType {
	raw := contextString(scope, CtxStage, string(domain.StageProd))
	stage, err := domain.ParseStage(raw)
	if err != nil {
		panic(fmt.Errorf("invalid %s=%q – allowed: prod | dev", CtxStage, raw))
	}
	return stage
}

// GetDevPrefix reads the label prepended to site domains on dev stages.
func GetDevPrefix(scope constructs.Construct) string {
	return contextString(scope, CtxDevPrefix, "")
}

// HostedZone is the optional zone name used for cluster-side records.
func HostedZone(scope constructs.Construct) string {
	return contextString(scope, CtxHostedZone, "")
}

func BucketNamePrefix(scope constructs.Construct) string {
	return requireContextString(scope, CtxBucketNamePrefix)
}

func ClusterAdminRoleArn(scope constructs.Construct) string {
	return contextString(scope, CtxClusterAdminRoleArn, "")
}

func ClusterVersion(scope constructs.Construct) string {
	return contextString(scope, CtxClusterVersion, DefaultClusterVersion)
}

// NodeGroupDesiredSize of 0 disables the managed node group.
func NodeGroupDesiredSize(scope constructs.Construct) int {
	n := contextInt(scope, CtxNodeGroupDesiredSize, 0)
	if n < 0 {
		panic(fmt.Sprintf("context %q must not be negative, got %d", CtxNodeGroupDesiredSize, n))
	}
	return n
}

func NodeGroupInstanceType(scope constructs.Construct) string {
	return contextString(scope, CtxNodeGroupInstanceType, DefaultNodeGroupType)
}

func AlternativeDomainsConfigPath(scope constructs.Construct) string {
	return contextString(scope, CtxAlternativeDomainsConfigPath, DefaultAltDomainsPath)
}
