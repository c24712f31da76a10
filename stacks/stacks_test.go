package stacks_test

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"

	"github.com/ryojerryyu/blog-infra/lib/providers"
	"github.com/ryojerryyu/blog-infra/stacks"
	"github.com/ryojerryyu/blog-infra/tests/testutil"
)

func setDeployEnv(t *testing.T) {
	t.Setenv("CDK_DEPLOY_ACCOUNT", testutil.TestAccount)
	t.Setenv("CDK_DEPLOY_REGION", testutil.TestRegion)
	t.Setenv("BLOG_TAG_PREFIX", "example.com/blog")
}

func TestAppStacks(t *testing.T) {
	setDeployEnv(t)
	app := testutil.NewApp(testutil.SiteContext())
	storage := providers.StorageBinding()

	common := stacks.CommonStack(app, "blog-Common", &stacks.CommonStackProps{Binding: storage})
	cluster := stacks.ClusterStack(app, "blog-Cluster", &stacks.ClusterStackProps{Binding: storage})
	edgeExports := stacks.EdgeStack(app, "blog-Edge", nil)
	site := stacks.WebsiteStack(app, "blog-Website", &stacks.WebsiteStackProps{
		Binding: storage,
		Common:  common,
		Edge:    edgeExports,
	})

	assert.Equal(t, testutil.TestRegion, *common.Stack.Region())
	assert.Equal(t, "us-east-1", *edgeExports.Stack.Region())

	commonTpl := assertions.Template_FromStack(common.Stack, nil)
	commonTpl.ResourceCountIs(jsii.String("AWS::S3::Bucket"), jsii.Number(1))
	commonTpl.ResourceCountIs(jsii.String("AWS::CloudFront::CachePolicy"), jsii.Number(1))
	commonTpl.HasResourceProperties(jsii.String("AWS::S3::Bucket"), map[string]interface{}{
		"BucketName": "blog-logs-ap-northeast-1",
		"Tags": assertions.Match_ArrayWith(&[]interface{}{
			map[string]interface{}{"Key": "Provider", "Value": "example.com/blog/storage"},
		}),
	})

	clusterTpl := assertions.Template_FromStack(cluster.Stack, nil)
	clusterTpl.ResourceCountIs(jsii.String("AWS::EKS::Cluster"), jsii.Number(1))
	clusterTpl.ResourceCountIs(jsii.String("AWS::EKS::Nodegroup"), jsii.Number(0))
	clusterTpl.HasResourceProperties(jsii.String("AWS::EKS::Cluster"), map[string]interface{}{
		"Name":    "blog-eks",
		"Version": "1.31",
	})

	edgeTpl := assertions.Template_FromStack(edgeExports.Stack, nil)
	edgeTpl.HasResourceProperties(jsii.String("AWS::Lambda::Function"), map[string]interface{}{
		"Code": map[string]interface{}{
			"ZipFile": assertions.Match_StringLikeRegexp(jsii.String(`blog\.example\.com`)),
		},
	})

	siteTpl := assertions.Template_FromStack(site, nil)
	siteTpl.ResourceCountIs(jsii.String("AWS::CloudFront::Distribution"), jsii.Number(1))
	siteTpl.HasParameter(jsii.String("corsAllowOrigins"), map[string]interface{}{
		"Type":    "CommaDelimitedList",
		"Default": "*",
	})
	siteTpl.HasResourceProperties(jsii.String("AWS::CloudFront::Distribution"), map[string]interface{}{
		"DistributionConfig": assertions.Match_ObjectLike(&map[string]interface{}{
			"CacheBehaviors": []interface{}{
				assertions.Match_ObjectLike(&map[string]interface{}{
					"CachePolicyId": "4135ea2d-6df8-44a3-9df3-4b5a84be39ad",
				}),
			},
		}),
	})
}

func TestWebsiteStackSharedCachePolicy(t *testing.T) {
	setDeployEnv(t)
	ctx := testutil.SiteContext()
	ctx["elbCachePolicyId"] = "shared"
	ctx["stage"] = "dev"
	ctx["devPrefix"] = "preview"
	app := testutil.NewApp(ctx)
	storage := providers.StorageBinding()

	common := stacks.CommonStack(app, "blog-Common", &stacks.CommonStackProps{Binding: storage})
	edgeExports := stacks.EdgeStack(app, "blog-Edge", nil)
	site := stacks.WebsiteStack(app, "blog-Website", &stacks.WebsiteStackProps{
		Binding: storage,
		Common:  common,
		Edge:    edgeExports,
	})

	siteTpl := assertions.Template_FromStack(site, nil)
	siteTpl.HasResourceProperties(jsii.String("AWS::CloudFront::Distribution"), map[string]interface{}{
		"DistributionConfig": assertions.Match_ObjectLike(&map[string]interface{}{
			"Aliases": []interface{}{"preview.blog.example.com"},
			"CacheBehaviors": []interface{}{
				assertions.Match_ObjectLike(&map[string]interface{}{
					"CachePolicyId": map[string]interface{}{"Fn::ImportValue": assertions.Match_AnyValue()},
				}),
			},
		}),
	})
}
