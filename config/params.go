package config

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// Constants for CDK parameter names
const (
	CorsParamName = "corsAllowOrigins"
)

type CDKParams struct {
	CorsAllowOrigins awscdk.CfnParameter
}

// NewCDKParams declares the deploy-time parameters of the website stack.
func NewCDKParams(scope constructs.Construct) CDKParams {
	corsAllowOrigins := awscdk.NewCfnParameter(scope, jsii.String(CorsParamName), &awscdk.CfnParameterProps{
		Type:        jsii.String("CommaDelimitedList"),
		Description: jsii.String("Origins allowed by the content bucket CORS rule"),
		Default:     jsii.String("*"),
	})

	return CDKParams{
		CorsAllowOrigins: corsAllowOrigins,
	}
}
