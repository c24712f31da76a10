package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
)

const (
	TestAccount = "123456789012"
	TestRegion  = "ap-northeast-1"
)

//---------------------------------------------------------------------
// 1. Filesystem helpers
//---------------------------------------------------------------------

// TmpFile creates a temp file with given content and returns its path.
func TmpFile(t *testing.T, content []byte) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "fixture-*")
	if err != nil {
		t.Fatalf("tmp-file: %v", err)
	}
	if _, err := f.Write(content); err != nil {
		t.Fatalf("tmp-file-write: %v", err)
	}
	f.Close()
	return f.Name()
}

// WriteTree materializes files (slash-separated relative path → content) under
// a fresh temp directory and returns that directory.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

//---------------------------------------------------------------------
// 2. CDK fixtures
//---------------------------------------------------------------------

// NewApp returns an app whose context carries the given values.
func NewApp(context map[string]interface{}) awscdk.App {
	return awscdk.NewApp(&awscdk.AppProps{Context: &context})
}

// NewStack returns a stack with a concrete account and region so lookups
// and region facts resolve during synthesis. Cross-region references are on,
// as on every stack of the app.
func NewStack(app awscdk.App, id string, region string) awscdk.Stack {
	if region == "" {
		region = TestRegion
	}
	return awscdk.NewStack(app, jsii.String(id), &awscdk.StackProps{
		Env: &awscdk.Environment{
			Account: jsii.String(TestAccount),
			Region:  jsii.String(region),
		},
		CrossRegionReferences: jsii.Bool(true),
	})
}

// SiteContext is a complete context for the website stacks.
func SiteContext() map[string]interface{} {
	return map[string]interface{}{
		"stackName":        "blog",
		"domainName":       "blog.example.com",
		"serverDomainName": "api.example.com",
		"bucketNamePrefix": "blog-logs",
		"hostedZone":       "example.com",
	}
}
