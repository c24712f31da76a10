package edgefunctions

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/ryojerryyu/blog-infra/lib/edge"
	"github.com/ryojerryyu/blog-infra/scripts/renderer"
)

const (
	RoleName          = "lambda-role"
	LogGroupName      = "/aws/lambda"
	LogPolicyName     = "lambdaLog"
	HandlerEntrypoint = "index.handler"

	memorySizeMB   = 128
	timeoutSeconds = 5
)

type EdgeFunctionsProps struct {
	// CanonicalHost is the site FQDN redirects point at.
	CanonicalHost string
	CleanURLStyle edge.CleanURLStyle
}

// EdgeFunctions holds the viewer-request and origin-request functions and
// their published versions. It must live in us-east-1.
type EdgeFunctions struct {
	constructs.Construct
	Role                 awsiam.Role
	LogGroup             awslogs.LogGroup
	ViewerRequest        awslambda.Function
	OriginRequest        awslambda.Function
	ViewerRequestVersion awslambda.IVersion
	OriginRequestVersion awslambda.IVersion
}

func NewEdgeFunctions(scope constructs.Construct, id string, props *EdgeFunctionsProps) *EdgeFunctions {
	if props.CanonicalHost == "" {
		panic("EdgeFunctionsProps.CanonicalHost is required")
	}
	style := props.CleanURLStyle
	if style == "" {
		style = edge.StyleIndex
	}

	c := constructs.NewConstruct(scope, jsii.String(id))
	e := &EdgeFunctions{Construct: c}
	stack := awscdk.Stack_Of(c)

	e.Role = awsiam.NewRole(c, jsii.String("Role"), &awsiam.RoleProps{
		RoleName: jsii.String(RoleName),
		AssumedBy: awsiam.NewCompositePrincipal(
			awsiam.NewServicePrincipal(jsii.String("lambda.amazonaws.com"), nil),
			awsiam.NewServicePrincipal(jsii.String("edgelambda.amazonaws.com"), nil),
		),
	})

	e.LogGroup = awslogs.NewLogGroup(c, jsii.String("LogGroup"), &awslogs.LogGroupProps{
		LogGroupName:  jsii.String(LogGroupName),
		Retention:     awslogs.RetentionDays_ONE_MONTH,
		RemovalPolicy: awscdk.RemovalPolicy_RETAIN,
	})

	awsiam.NewManagedPolicy(c, jsii.String("LogPolicy"), &awsiam.ManagedPolicyProps{
		ManagedPolicyName: jsii.String(LogPolicyName),
		Description:       jsii.String("Allow lambda to write logs to CloudWatch"),
		Statements: &[]awsiam.PolicyStatement{
			awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
				Effect:  awsiam.Effect_ALLOW,
				Actions: jsii.Strings("logs:CreateLogGroup"),
				Resources: jsii.Strings(fmt.Sprintf("arn:%s:logs:%s:%s:*",
					*stack.Partition(), *stack.Region(), *stack.Account())),
			}),
			awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
				Effect:    awsiam.Effect_ALLOW,
				Actions:   jsii.Strings("logs:CreateLogStream", "logs:PutLogEvents"),
				Resources: &[]*string{e.LogGroup.LogGroupArn()},
			}),
		},
		Roles: &[]awsiam.IRole{e.Role},
	})

	e.ViewerRequest = e.newFunction("ViewerRequest", "viewerRequest",
		edge.PhaseViewerRequest, edge.ViewerRequestRules(props.CanonicalHost))
	e.OriginRequest = e.newFunction("OriginRequest", "originRequest",
		edge.PhaseOriginRequest, edge.OriginRequestRules(props.CanonicalHost, style))
	e.ViewerRequestVersion = e.ViewerRequest.CurrentVersion()
	e.OriginRequestVersion = e.OriginRequest.CurrentVersion()

	output := func(id string, value *string) {
		awscdk.NewCfnOutput(c, jsii.String(id), &awscdk.CfnOutputProps{Value: value})
	}
	output("ViewerRequestArn", e.ViewerRequest.FunctionArn())
	output("ViewerRequestQualifiedArn", e.ViewerRequestVersion.FunctionArn())
	output("OriginRequestArn", e.OriginRequest.FunctionArn())
	output("OriginRequestQualifiedArn", e.OriginRequestVersion.FunctionArn())

	return e
}

// newFunction declares one Node.js function whose inline source is rendered
// from rules.
func (e *EdgeFunctions) newFunction(id, description, phase string, rules edge.Rules) awslambda.Function {
	code, err := renderer.RenderEdgeHandler(phase, rules)
	if err != nil {
		panic(fmt.Errorf("rendering %s handler: %w", phase, err))
	}

	return awslambda.NewFunction(e.Construct, jsii.String(id), &awslambda.FunctionProps{
		Description: jsii.String(description),
		Runtime:     awslambda.Runtime_NODEJS_20_X(),
		Handler:     jsii.String(HandlerEntrypoint),
		Code:        awslambda.Code_FromInline(jsii.String(code)),
		MemorySize:  jsii.Number(memorySizeMB),
		Timeout:     awscdk.Duration_Seconds(jsii.Number(timeoutSeconds)),
		Role:        e.Role,
	})
}
