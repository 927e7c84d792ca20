// Package export writes rendered HTML exports of notes to disk or to an S3
// compatible bucket.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/Paintersrp/noteplan/internal/config"
	"github.com/Paintersrp/noteplan/internal/note"
	"github.com/Paintersrp/noteplan/internal/render"
)

const contentType = "text/html; charset=utf-8"

// Build renders notes into a standalone HTML page.
func Build(title string, notes []note.Note) ([]byte, error) {
	doc, err := render.Document(title, notes)
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

// WriteFile stores an export at path, creating parent directories.
func WriteFile(p string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// FileName returns the default export name for a moment in time.
func FileName(at time.Time) string {
	return fmt.Sprintf("noteplan-%s.html", at.Format("20060102-150405"))
}

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Options configure the S3 target. Static keys are optional; without them
// the default AWS credential chain applies.
type Options struct {
	Bucket          string
	Region          string
	Endpoint        string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
}

// OptionsFromConfig reads the S3 section and the NOTEPLAN_S3_ACCESS_KEY_ID
// and NOTEPLAN_S3_SECRET_ACCESS_KEY variables.
func OptionsFromConfig(c config.S3Config) Options {
	return Options{
		Bucket:          c.Bucket,
		Region:          c.Region,
		Endpoint:        c.Endpoint,
		Prefix:          c.Prefix,
		AccessKeyID:     os.Getenv("NOTEPLAN_S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("NOTEPLAN_S3_SECRET_ACCESS_KEY"),
	}
}

// S3 uploads exports to a bucket.
type S3 struct {
	bucket   string
	prefix   string
	uploader uploader
	log      zerolog.Logger
}

func NewS3(ctx context.Context, opts Options, log zerolog.Logger) (*S3, error) {
	if opts.Bucket == "" {
		return nil, errors.New("export.s3.bucket is not configured")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3{
		bucket:   opts.Bucket,
		prefix:   opts.Prefix,
		uploader: manager.NewUploader(client),
		log:      log,
	}, nil
}

// Key returns the object key for name under the configured prefix.
func (s *S3) Key(name string) string {
	prefix := strings.Trim(s.prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Upload stores data as name and returns the object location.
func (s *S3) Upload(ctx context.Context, name string, data []byte) (string, error) {
	key := s.Key(name)
	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.log.Info().Str("bucket", s.bucket).Str("key", key).Int("bytes", len(data)).Msg("export uploaded")
	if out.Location != "" {
		return out.Location, nil
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
