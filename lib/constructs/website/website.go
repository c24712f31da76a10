package website

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfrontorigins"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53targets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"

	"github.com/ryojerryyu/blog-infra/config"
	"github.com/ryojerryyu/blog-infra/config/alternativedomains"
	"github.com/ryojerryyu/blog-infra/config/domain"
	"github.com/ryojerryyu/blog-infra/lib/cdklogger"
	"github.com/ryojerryyu/blog-infra/lib/cert/provider"
	altmgr "github.com/ryojerryyu/blog-infra/lib/constructs/alternativedomainmanager"
	"github.com/ryojerryyu/blog-infra/lib/constructs/cdn"
)

const (
	IndexDocument   = "index.html"
	ErrorDocument   = "error.html"
	serverHTTPSPort = 443
)

var corsMethods = []awss3.HttpMethods{
	awss3.HttpMethods_GET,
	awss3.HttpMethods_PUT,
	awss3.HttpMethods_POST,
	awss3.HttpMethods_DELETE,
	awss3.HttpMethods_HEAD,
}

type WebsiteProps struct {
	Site config.SiteConfig
	// CorsAllowOrigins feeds the content bucket CORS rule, usually a parameter list token.
	CorsAllowOrigins *[]*string
	// LogBucket receives S3 access logs and CloudFront standard logs.
	LogBucket awss3.IBucket
	// ApiCachePolicy applies to the backend behavior.
	ApiCachePolicy awscloudfront.ICachePolicy
	// ViewerRequest and OriginRequest are published edge function versions in us-east-1.
	ViewerRequest awslambda.IVersion
	OriginRequest awslambda.IVersion
	Alternatives  []alternativedomains.Alternative
	// CertProvider defaults to provider.New().
	CertProvider provider.CertProvider
}

// Website is the static site: content bucket, distribution, certificate and DNS.
type Website struct {
	constructs.Construct
	Domain        *domain.HostedDomain
	ContentBucket awss3.Bucket
	Distribution  awscloudfront.Distribution
}

// ContentBucketUri returns the s3:// URI of a bucket name.
func ContentBucketUri(bucketName string) string {
	return "s3://" + bucketName
}

// S3LogPrefix and CloudFrontLogPrefix namespace the logs of one site in the log bucket.
func S3LogPrefix(fqdn string) string         { return fmt.Sprintf("s3-%s/", fqdn) }
func CloudFrontLogPrefix(fqdn string) string { return fmt.Sprintf("cloudFront-%s/", fqdn) }

func NewWebsite(scope constructs.Construct, id string, props *WebsiteProps) *Website {
	if err := props.Site.Validate(); err != nil {
		panic(err)
	}
	if props.LogBucket == nil || props.ApiCachePolicy == nil {
		panic("WebsiteProps.LogBucket and WebsiteProps.ApiCachePolicy are required")
	}
	if props.ViewerRequest == nil || props.OriginRequest == nil {
		panic("WebsiteProps.ViewerRequest and WebsiteProps.OriginRequest are required")
	}

	c := constructs.NewConstruct(scope, jsii.String(id))
	w := &Website{Construct: c}
	site := props.Site
	fqdn := site.FQDN

	altDomains := altmgr.NewAlternativeDomainManager(c, "AlternativeDomains", &altmgr.AlternativeDomainManagerProps{
		Alternatives: props.Alternatives,
	})
	sanNames, sanZones := altDomains.CertificateRequirements()

	w.Domain = domain.NewHostedDomain(c, "Domain", &domain.HostedDomainProps{
		FQDN:            fqdn,
		EdgeCertificate: true,
		AdditionalNames: sanNames,
		AdditionalZones: sanZones,
		CertProvider:    props.CertProvider,
	})

	corsOrigins := props.CorsAllowOrigins
	if corsOrigins == nil {
		corsOrigins = jsii.Strings("*")
	}

	w.ContentBucket = awss3.NewBucket(c, jsii.String("ContentBucket"), &awss3.BucketProps{
		BucketName:           jsii.String(fqdn),
		WebsiteIndexDocument: jsii.String(IndexDocument),
		WebsiteErrorDocument: jsii.String(ErrorDocument),
		Versioned:            jsii.Bool(false),
		Cors: &[]*awss3.CorsRule{
			{
				AllowedHeaders: jsii.Strings("*"),
				AllowedMethods: &corsMethods,
				AllowedOrigins: corsOrigins,
			},
		},
		ServerAccessLogsBucket: props.LogBucket,
		ServerAccessLogsPrefix: jsii.String(S3LogPrefix(fqdn)),
		BlockPublicAccess: awss3.NewBlockPublicAccess(&awss3.BlockPublicAccessOptions{
			BlockPublicAcls:       jsii.Bool(false),
			BlockPublicPolicy:     jsii.Bool(false),
			IgnorePublicAcls:      jsii.Bool(false),
			RestrictPublicBuckets: jsii.Bool(false),
		}),
		RemovalPolicy: awscdk.RemovalPolicy_RETAIN,
	})
	w.ContentBucket.AddToResourcePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Effect:     awsiam.Effect_ALLOW,
		Principals: &[]awsiam.IPrincipal{awsiam.NewAnyPrincipal()},
		Actions:    jsii.Strings("s3:GetObject"),
		Resources:  jsii.Strings(fmt.Sprintf("%s/*", *w.ContentBucket.BucketArn())),
	}))

	contentOrigin := awscloudfrontorigins.NewS3StaticWebsiteOrigin(w.ContentBucket, &awscloudfrontorigins.S3StaticWebsiteOriginProps{
		ProtocolPolicy:     awscloudfront.OriginProtocolPolicy_HTTP_ONLY,
		HttpPort:           jsii.Number(80),
		HttpsPort:          jsii.Number(serverHTTPSPort),
		OriginSslProtocols: &[]awscloudfront.OriginSslPolicy{awscloudfront.OriginSslPolicy_TLS_V1_2},
	})
	serverOrigin := awscloudfrontorigins.NewHttpOrigin(jsii.String(site.ServerDomainName), &awscloudfrontorigins.HttpOriginProps{
		ProtocolPolicy: awscloudfront.OriginProtocolPolicy_HTTP_ONLY,
		HttpPort:       jsii.Number(float64(site.ServerPort)),
		HttpsPort:      jsii.Number(serverHTTPSPort),
		OriginSslProtocols: &[]awscloudfront.OriginSslPolicy{
			awscloudfront.OriginSslPolicy_TLS_V1,
			awscloudfront.OriginSslPolicy_TLS_V1_1,
			awscloudfront.OriginSslPolicy_TLS_V1_2,
		},
	})

	aliases := append([]string{fqdn}, altDomains.Names()...)
	// the site record already owns fqdn; a second alias record would conflict
	if lo.Contains(altDomains.Names(), fqdn) {
		cdklogger.LogError(c, "AlternativeDomains", "alternative domain %s duplicates the site domain", fqdn)
	}

	w.Distribution = awscloudfront.NewDistribution(c, jsii.String("Distribution"), &awscloudfront.DistributionProps{
		Comment:            jsii.String(fqdn),
		DomainNames:        jsii.Strings(lo.Uniq(aliases)...),
		Certificate:        w.Domain.Cert,
		SslSupportMethod:   awscloudfront.SSLMethod_SNI,
		DefaultRootObject:  jsii.String(IndexDocument),
		PriceClass:         awscloudfront.PriceClass_PRICE_CLASS_200,
		EnableLogging:      jsii.Bool(true),
		LogBucket:          props.LogBucket,
		LogFilePrefix:      jsii.String(CloudFrontLogPrefix(fqdn)),
		LogIncludesCookies: jsii.Bool(false),
		DefaultBehavior: &awscloudfront.BehaviorOptions{
			Origin:               contentOrigin,
			ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
			AllowedMethods:       awscloudfront.AllowedMethods_ALLOW_GET_HEAD_OPTIONS(),
			CachedMethods:        awscloudfront.CachedMethods_CACHE_GET_HEAD_OPTIONS(),
			CachePolicy:          cdn.NewContentCachePolicy(c, "ContentCachePolicy"),
			EdgeLambdas: &[]*awscloudfront.EdgeLambda{
				{
					EventType:       awscloudfront.LambdaEdgeEventType_VIEWER_REQUEST,
					FunctionVersion: props.ViewerRequest,
					IncludeBody:     jsii.Bool(false),
				},
				{
					EventType:       awscloudfront.LambdaEdgeEventType_ORIGIN_REQUEST,
					FunctionVersion: props.OriginRequest,
					IncludeBody:     jsii.Bool(false),
				},
			},
		},
		AdditionalBehaviors: &map[string]*awscloudfront.BehaviorOptions{
			site.ApiPathPattern: {
				Origin:               serverOrigin,
				ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
				AllowedMethods:       awscloudfront.AllowedMethods_ALLOW_GET_HEAD_OPTIONS(),
				CachedMethods:        awscloudfront.CachedMethods_CACHE_GET_HEAD_OPTIONS(),
				CachePolicy:          props.ApiCachePolicy,
				OriginRequestPolicy:  awscloudfront.OriginRequestPolicy_ALL_VIEWER(),
			},
		},
	})

	target := awsroute53.RecordTarget_FromAlias(awsroute53targets.NewCloudFrontTarget(w.Distribution))
	w.Domain.AddAliasRecord("AliasRecord", "", target)
	altDomains.ProvisionAlternativeDomains(target)

	output := func(id string, value *string) {
		awscdk.NewCfnOutput(c, jsii.String(id), &awscdk.CfnOutputProps{Value: value})
	}
	output("ContentBucketUri", jsii.String(ContentBucketUri(*w.ContentBucket.BucketName())))
	output("DomainName", w.Distribution.DistributionDomainName())
	output("BucketDomainName", w.ContentBucket.BucketDomainName())
	output("BucketEndpoint", w.ContentBucket.BucketWebsiteDomainName())
	output("DistributionId", w.Distribution.DistributionId())

	return w
}
