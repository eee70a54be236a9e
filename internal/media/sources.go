package media

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cliplens/cliplens/internal/config"
)

// BuildSources assembles the fallback chain from configuration: HTTP archive
// bases first, in the order listed, then S3 buckets. The AWS SDK is only
// touched when an S3 source is configured.
func BuildSources(ctx context.Context, cfg config.MediaConfig) ([]Source, error) {
	sources := make([]Source, 0, len(cfg.HTTPBases)+len(cfg.S3Sources))
	for _, base := range cfg.HTTPBases {
		sources = append(sources, &HTTPSource{Base: base})
	}
	for _, sc := range cfg.S3Sources {
		var awsCfg aws.Config
		var err error
		if sc.Region != "" {
			awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(sc.Region))
		} else {
			awsCfg, err = awsconfig.LoadDefaultConfig(ctx)
		}
		if err != nil {
			return nil, fmt.Errorf("load AWS config for bucket %s: %w", sc.Bucket, err)
		}
		sources = append(sources, &S3Source{
			Client: s3.NewFromConfig(awsCfg),
			Bucket: sc.Bucket,
			Prefix: sc.Prefix,
		})
	}
	return sources, nil
}
