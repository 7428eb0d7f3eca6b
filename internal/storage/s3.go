package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Store lands objects in a fixed S3 bucket. Credentials and region come from
// the environment / shared AWS config.
type S3Store struct {
	bucket   string
	uploader *s3manager.Uploader
}

// NewS3Store creates an S3-backed ObjectStore for the given bucket.
func NewS3Store(bucket string) (*S3Store, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	return &S3Store{
		bucket:   bucket,
		uploader: s3manager.NewUploader(sess),
	}, nil
}

// Put streams body to s3://{bucket}/{key}. S3 PutObject semantics replace the
// whole object, so re-runs for the same key overwrite rather than duplicate.
func (s *S3Store) Put(ctx context.Context, key string, body io.Reader) error {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}
