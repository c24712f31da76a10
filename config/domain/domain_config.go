package domain

import (
	"fmt"
	"strings"

	jsii "github.com/aws/jsii-runtime-go"
)

// StageType defines allowed deployment stages.
type StageType string

const (
	// StageProd is the production stage
	StageProd StageType = "prod"
	// StageDev is the development stage
	StageDev StageType = "dev"
)

// ParseStage converts a raw context value into a StageType.
func ParseStage(s string) (StageType, error) {
	switch StageType(strings.ToLower(s)) {
	case StageProd:
		return StageProd, nil
	case StageDev:
		return StageDev, nil
	default:
		return "", fmt.Errorf("invalid stage %q", s)
	}
}

// Spec encapsulates the stage, the configured site domain, and (for dev) the
// mandatory DevPrefix. Dev deployments live one label below the configured
// domain so they never collide with production records.
type Spec struct {
	Stage      StageType
	DomainName string // configured site domain, e.g. "blog.example.com"
	DevPrefix  string // required when Stage==StageDev
}

// fqdnParts returns labels in order: DevPrefix (dev only), DomainName
func (s Spec) fqdnParts() []string {
	if s.DomainName == "" {
		panic("Spec.DomainName must be set")
	}
	if s.Stage == StageProd && s.DevPrefix != "" {
		panic("DevPrefix must be empty for prod stages")
	}
	parts := []string{}
	if s.Stage == StageDev {
		if s.DevPrefix == "" {
			panic("dev deployments must set Spec.DevPrefix")
		}
		parts = append(parts, s.DevPrefix)
	}
	return append(parts, s.DomainName)
}

// FQDN returns the fully-qualified site domain.
func (s Spec) FQDN() *string {
	return jsii.String(strings.Join(s.fqdnParts(), "."))
}
