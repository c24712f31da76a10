package config

import (
	"fmt"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/go-playground/validator/v10"
	"github.com/ryojerryyu/blog-infra/config/domain"
)

// SiteConfig is the resolved "web" configuration of the website stack.
type SiteConfig struct {
	// DomainName is the configured site domain before stage prefixing.
	DomainName string `validate:"required,fqdn"`
	// FQDN is the deployed site domain (DomainName, or devPrefix.DomainName on dev).
	FQDN             string `validate:"required,fqdn"`
	ServerDomainName string `validate:"required,hostname"`
	ServerPort       int    `validate:"min=1,max=65535"`
	ApiPathPattern   string `validate:"required,startswith=/"`
	CleanUrlStyle    string `validate:"oneof=index html"`
	// ElbCachePolicyId overrides the managed CachingDisabled policy on the API behavior.
	ElbCachePolicyId string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks SiteConfig field constraints.
func (c SiteConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid site config: %w", err)
	}
	return nil
}

// GetSiteConfig resolves the website configuration from CDK context.
// Invalid configuration stops synthesis.
func GetSiteConfig(scope constructs.Construct) SiteConfig {
	domainName := requireContextString(scope, CtxDomainName)
	spec := domain.Spec{
		Stage:      GetStage(scope),
		DomainName: domainName,
		DevPrefix:  GetDevPrefix(scope),
	}

	cfg := SiteConfig{
		DomainName:       domainName,
		FQDN:             *spec.FQDN(),
		ServerDomainName: requireContextString(scope, CtxServerDomainName),
		ServerPort:       contextInt(scope, CtxServerPort, DefaultServerPort),
		ApiPathPattern:   contextString(scope, CtxApiPathPattern, DefaultApiPathPattern),
		CleanUrlStyle:    contextString(scope, CtxCleanUrlStyle, DefaultCleanUrlStyle),
		ElbCachePolicyId: contextString(scope, CtxElbCachePolicyId, ""),
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}
