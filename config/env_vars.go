package config

import (
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/caarlos0/env/v11"
)

// DefaultTagPrefix namespaces the default tags put on every resource.
const DefaultTagPrefix = "ryoJerryYu.github.com/aws-blog-infra"

type MainEnvironmentVariables struct {
	// TagPrefix namespaces the provider tag, e.g. "<prefix>/cloudFront"
	TagPrefix string `env:"BLOG_TAG_PREFIX" envDefault:"ryoJerryYu.github.com/aws-blog-infra"`
}

// GetEnvironmentVariables parses T from the process environment while the
// scope's stack is synthesizing. Otherwise it returns the zero value.
func GetEnvironmentVariables[T any](scope constructs.Construct) T {
	var envObj T

	// only run if we are synthesizing the stack
	if !IsStackInSynthesis(scope) {
		return envObj
	}

	err := env.Parse(&envObj)
	if err != nil {
		panic(err)
	}

	return envObj
}

// TagPrefix returns the configured tag prefix, falling back to DefaultTagPrefix
// when the stack is not synthesizing.
func TagPrefix(scope constructs.Construct) string {
	vars := GetEnvironmentVariables[MainEnvironmentVariables](scope)
	if vars.TagPrefix == "" {
		return DefaultTagPrefix
	}
	return vars.TagPrefix
}
