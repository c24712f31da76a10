package main

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ryojerryyu/blog-infra/lib/publish"
)

var publishConfig struct {
	dir            string
	bucket         string
	distributionID string
	rulesPath      string
	region         string
	concurrency    int
	dryRun         bool
}

func newPublishCmd() *cobra.Command {
	publishCmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload a built site to its content bucket and invalidate the distribution",
		Args:  cobra.NoArgs,
		RunE:  runPublish,
	}
	flags := publishCmd.Flags()
	flags.StringVar(&publishConfig.dir, "dir", "", "Built site directory")
	flags.StringVar(&publishConfig.bucket, "bucket", "", "Content bucket name (the site domain)")
	flags.StringVar(&publishConfig.distributionID, "distribution-id", "", "Distribution to invalidate after upload")
	flags.StringVar(&publishConfig.rulesPath, "rules", "", "TOML cache-control rules, e.g. publish.toml")
	flags.StringVar(&publishConfig.region, "region", "", "Bucket region (defaults to the shared AWS config)")
	flags.IntVar(&publishConfig.concurrency, "concurrency", 8, "Parallel uploads")
	flags.BoolVarP(&publishConfig.dryRun, "dry-run", "n", false, "List planned uploads without calling AWS")
	_ = publishCmd.MarkFlagRequired("dir")
	_ = publishCmd.MarkFlagRequired("bucket")
	return publishCmd
}

func runPublish(cmd *cobra.Command, args []string) error {
	rules, err := publish.LoadRules(publishConfig.rulesPath)
	if err != nil {
		return err
	}

	var p *publish.Publisher
	if publishConfig.dryRun {
		p = publish.NewWithClients(nil, nil, zap.L())
	} else {
		sess, err := session.NewSessionWithOptions(session.Options{
			Config:            aws.Config{Region: nilIfEmpty(publishConfig.region)},
			SharedConfigState: session.SharedConfigEnable,
		})
		if err != nil {
			return fmt.Errorf("creating AWS session: %w", err)
		}
		p = publish.New(sess, zap.L())
	}

	res, err := p.Publish(cmd.Context(), publishConfig.dir, rules, publish.Options{
		Bucket:         publishConfig.bucket,
		DistributionID: publishConfig.distributionID,
		DryRun:         publishConfig.dryRun,
		Concurrency:    publishConfig.concurrency,
	})
	if err != nil {
		return err
	}

	for _, u := range res.Uploads {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", u.Key, u.ContentType, u.CacheControl)
	}
	if res.InvalidationID != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "invalidation %s\n", res.InvalidationID)
	}
	return nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}
