package utils

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
)

// CdkEnv determines the AWS environment (account+region) in which our stacks are to
// be deployed. For more information see: https://docs.aws.amazon.com/cdk/latest/guide/environments.html
func CdkEnv() *awscdk.Environment {
	account := os.Getenv("CDK_DEPLOY_ACCOUNT")
	region := os.Getenv("CDK_DEPLOY_REGION")

	if len(account) == 0 || len(region) == 0 {
		account = os.Getenv("CDK_DEFAULT_ACCOUNT")
		region = os.Getenv("CDK_DEFAULT_REGION")
	}

	return &awscdk.Environment{
		Account: optional(account),
		Region:  optional(region),
	}
}

// optional keeps empty values nil so CDK treats the stack as environment-agnostic.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return jsii.String(s)
}
