package publish

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudfront"
	"github.com/aws/aws-sdk-go/service/cloudfront/cloudfrontiface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// InvalidationPath covers every object of the distribution.
const InvalidationPath = "/*"

const defaultConcurrency = 8

type Options struct {
	Bucket string
	// DistributionID, when set, is invalidated after a successful upload.
	DistributionID string
	// DryRun plans and logs without calling AWS.
	DryRun      bool
	Concurrency int
}

type Result struct {
	Uploads        []Upload
	InvalidationID string
}

// Publisher uploads a built site to its content bucket.
type Publisher struct {
	uploader s3manageriface.UploaderAPI
	cdn      cloudfrontiface.CloudFrontAPI
	logger   *zap.Logger
	now      func() time.Time
}

// New returns a Publisher using clients built from sess.
func New(sess *session.Session, logger *zap.Logger) *Publisher {
	return NewWithClients(s3manager.NewUploader(sess), cloudfront.New(sess), logger)
}

func NewWithClients(uploader s3manageriface.UploaderAPI, cdn cloudfrontiface.CloudFrontAPI, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{uploader: uploader, cdn: cdn, logger: logger, now: time.Now}
}

// Publish uploads every file under dir and optionally invalidates the distribution.
func (p *Publisher) Publish(ctx context.Context, dir string, rules Rules, opts Options) (Result, error) {
	if opts.Bucket == "" {
		return Result{}, fmt.Errorf("bucket is required")
	}
	uploads, err := Plan(dir, rules)
	if err != nil {
		return Result{}, err
	}
	res := Result{Uploads: uploads}

	if opts.DryRun {
		for _, u := range uploads {
			p.logger.Info("would upload",
				zap.String("key", u.Key),
				zap.String("contentType", u.ContentType),
				zap.String("cacheControl", u.CacheControl),
				zap.Int64("size", u.Size))
		}
		if opts.DistributionID != "" {
			p.logger.Info("would invalidate", zap.String("distributionId", opts.DistributionID), zap.String("path", InvalidationPath))
		}
		return res, nil
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, u := range uploads {
		u := u
		g.Go(func() error {
			return p.upload(gctx, opts.Bucket, u)
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	p.logger.Info("uploaded site", zap.String("bucket", opts.Bucket), zap.Int("objects", len(uploads)))

	if opts.DistributionID != "" {
		id, err := p.invalidate(ctx, opts.DistributionID)
		if err != nil {
			return res, err
		}
		res.InvalidationID = id
	}
	return res, nil
}

func (p *Publisher) upload(ctx context.Context, bucket string, u Upload) error {
	f, err := os.Open(u.Path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", u.Path, err)
	}
	defer f.Close()

	_, err = p.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(u.Key),
		Body:         f,
		ContentType:  aws.String(u.ContentType),
		CacheControl: aws.String(u.CacheControl),
	})
	if err != nil {
		return fmt.Errorf("uploading s3://%s/%s: %w", bucket, u.Key, err)
	}
	p.logger.Debug("uploaded", zap.String("key", u.Key))
	return nil
}

func (p *Publisher) invalidate(ctx context.Context, distributionID string) (string, error) {
	out, err := p.cdn.CreateInvalidationWithContext(ctx, &cloudfront.CreateInvalidationInput{
		DistributionId: aws.String(distributionID),
		InvalidationBatch: &cloudfront.InvalidationBatch{
			CallerReference: aws.String(fmt.Sprintf("publish-%d", p.now().UnixNano())),
			Paths: &cloudfront.Paths{
				Quantity: aws.Int64(1),
				Items:    aws.StringSlice([]string{InvalidationPath}),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("invalidating distribution %s: %w", distributionID, err)
	}
	id := aws.StringValue(out.Invalidation.Id)
	p.logger.Info("created invalidation", zap.String("distributionId", distributionID), zap.String("invalidationId", id))
	return id, nil
}
