package storage

import (
	"context"
	"fmt"

	"hello_slackbot/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// New returns the archive selected by cfg: S3 when a bucket is configured,
// otherwise a NopArchive.
func New(ctx context.Context, cfg *config.Config) (EventArchive, error) {
	if cfg.EventArchiveBucket == "" {
		return NopArchive{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRetryMode(aws.RetryModeStandard),
		awsconfig.WithRetryMaxAttempts(3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewS3EventArchive(s3.NewFromConfig(awsCfg), cfg.EventArchiveBucket, cfg.EventArchivePrefix), nil
}
