package cdklogger

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type level int

const (
	levelInfo level = iota
	levelWarning
	levelError
)

// LogInfo adds an INFO level message to the construct's metadata.
// These messages are printed by `cdk synth`.
func LogInfo(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	annotate(scope, levelInfo, constructID, format, args...)
}

// LogWarning adds a WARNING level message to the construct's metadata.
// Warnings fail `cdk synth --strict`.
func LogWarning(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	annotate(scope, levelWarning, constructID, format, args...)
}

// LogError adds an ERROR level message; synthesis fails after the tree is built.
func LogError(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	annotate(scope, levelError, constructID, format, args...)
}

func annotate(scope constructs.Construct, lvl level, constructID string, format string, args ...interface{}) {
	msg := jsii.String(prefixed(*scope.Node().Path(), constructID, fmt.Sprintf(format, args...)))
	a := awscdk.Annotations_Of(scope)
	switch lvl {
	case levelWarning:
		a.AddWarning(msg)
	case levelError:
		a.AddError(msg)
	default:
		a.AddInfo(msg)
	}
}

// prefixed tags message with "[constructID]" unless the construct path already ends with it.
func prefixed(cdkPath, constructID, message string) string {
	if constructID == "" {
		return message
	}
	if strings.HasSuffix(cdkPath, "/"+constructID) || cdkPath == constructID {
		return message
	}
	return fmt.Sprintf("[%s] %s", constructID, message)
}
