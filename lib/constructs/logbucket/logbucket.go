package logbucket

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/regioninfo"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/ryojerryyu/blog-infra/lib/cdklogger"
)

// ElbLogDeliveryService is the principal that writes load balancer access logs
// in regions without a legacy ELB account.
const ElbLogDeliveryService = "logdelivery.elasticloadbalancing.amazonaws.com"

type LogBucketProps struct {
	BucketNamePrefix string
}

// LogBucket receives load balancer, S3 server access and CloudFront standard logs.
type LogBucket struct {
	constructs.Construct
	Bucket awss3.Bucket
}

// BucketName returns "<prefix>-<region>".
func BucketName(prefix string, region string) string {
	return fmt.Sprintf("%s-%s", prefix, region)
}

// ElbPrincipal returns the principal allowed to deliver ELB access logs to a
// bucket in region. Unresolved regions fall back to the log delivery service.
func ElbPrincipal(region *string) awsiam.IPrincipal {
	if region != nil && !*awscdk.Token_IsUnresolved(region) {
		if account := regioninfo.RegionInfo_Get(region).Elbv2Account(); account != nil {
			return awsiam.NewAccountPrincipal(account)
		}
	}
	return awsiam.NewServicePrincipal(jsii.String(ElbLogDeliveryService), nil)
}

func NewLogBucket(scope constructs.Construct, id string, props *LogBucketProps) *LogBucket {
	if props.BucketNamePrefix == "" {
		panic("LogBucketProps.BucketNamePrefix is required")
	}

	c := constructs.NewConstruct(scope, jsii.String(id))
	region := awscdk.Stack_Of(c).Region()
	name := BucketName(props.BucketNamePrefix, *region)

	bucket := awss3.NewBucket(c, jsii.String("Bucket"), &awss3.BucketProps{
		BucketName:      jsii.String(name),
		ObjectOwnership: awss3.ObjectOwnership_BUCKET_OWNER_PREFERRED,
		BlockPublicAccess: awss3.NewBlockPublicAccess(&awss3.BlockPublicAccessOptions{
			BlockPublicAcls:       jsii.Bool(true),
			IgnorePublicAcls:      jsii.Bool(true),
			RestrictPublicBuckets: jsii.Bool(true),
			BlockPublicPolicy:     jsii.Bool(false),
		}),
		RemovalPolicy: awscdk.RemovalPolicy_RETAIN,
	})

	objects := jsii.String(fmt.Sprintf("%s/*", *bucket.BucketArn()))

	if *awscdk.Token_IsUnresolved(region) {
		cdklogger.LogWarning(c, "", "region is not known at synth time, ELB logs use the %s principal", ElbLogDeliveryService)
	}

	bucket.AddToResourcePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Sid:        jsii.String("AWSELBLogs"),
		Effect:     awsiam.Effect_ALLOW,
		Principals: &[]awsiam.IPrincipal{ElbPrincipal(region)},
		Actions:    jsii.Strings("s3:PutObject"),
		Resources:  &[]*string{objects},
	}))
	bucket.AddToResourcePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Sid:        jsii.String("AWSLogDeliveryWrite"),
		Effect:     awsiam.Effect_ALLOW,
		Principals: &[]awsiam.IPrincipal{awsiam.NewServicePrincipal(jsii.String("delivery.logs.amazonaws.com"), nil)},
		Actions:    jsii.Strings("s3:PutObject"),
		Resources:  &[]*string{objects},
		Conditions: &map[string]interface{}{
			"StringEquals": map[string]interface{}{
				"s3:x-amz-acl": "bucket-owner-full-control",
			},
		},
	}))
	bucket.AddToResourcePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Sid:        jsii.String("AWSLogDeliveryAclCheck"),
		Effect:     awsiam.Effect_ALLOW,
		Principals: &[]awsiam.IPrincipal{awsiam.NewServicePrincipal(jsii.String("delivery.logs.amazonaws.com"), nil)},
		Actions:    jsii.Strings("s3:GetBucketAcl"),
		Resources:  &[]*string{bucket.BucketArn()},
	}))
	bucket.AddToResourcePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Sid:        jsii.String("S3ServerAccessLogsPolicy"),
		Effect:     awsiam.Effect_ALLOW,
		Principals: &[]awsiam.IPrincipal{awsiam.NewServicePrincipal(jsii.String("logging.s3.amazonaws.com"), nil)},
		Actions:    jsii.Strings("s3:PutObject"),
		Resources:  &[]*string{objects},
	}))

	awscdk.NewCfnOutput(c, jsii.String("LogBucketName"), &awscdk.CfnOutputProps{Value: bucket.BucketName()})
	awscdk.NewCfnOutput(c, jsii.String("LogBucketDomainName"), &awscdk.CfnOutputProps{Value: bucket.BucketDomainName()})

	return &LogBucket{Construct: c, Bucket: bucket}
}
