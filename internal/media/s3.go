package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// S3API is the subset of the S3 client the source needs.
type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source looks a video id up under an S3 bucket prefix: it probes
// {prefix}/{id}.mp4 with HeadObject and streams GetObject into a temp file.
type S3Source struct {
	Client S3API
	Bucket string
	Prefix string
}

func (s *S3Source) Name() string {
	return "s3://" + path.Join(s.Bucket, s.Prefix)
}

func (s *S3Source) Fetch(ctx context.Context, mediaID string) (string, func(), error) {
	key := mediaID + ".mp4"
	if s.Prefix != "" {
		key = path.Join(s.Prefix, key)
	}

	if _, err := s.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}); err != nil {
		return "", nil, fmt.Errorf("S3 HeadObject: %w", err)
	}

	result, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", nil, fmt.Errorf("S3 GetObject: %w", err)
	}
	defer result.Body.Close()

	tmpFile, err := os.CreateTemp("", "cliplens-*"+path.Ext(key))
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}

	n, err := io.Copy(tmpFile, result.Body)
	if err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	tmpFile.Close()

	log.Debug().
		Str("bucket", s.Bucket).
		Str("key", key).
		Int64("bytes", n).
		Msg("Downloaded media from S3 to temp file")

	cleanup := func() { os.Remove(tmpFile.Name()) }
	return tmpFile.Name(), cleanup, nil
}
