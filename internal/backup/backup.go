// Package backup uploads JSON snapshots of the owner's dataset to
// S3-compatible object storage (AWS S3 or MinIO).
package backup

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/mkazhan/teamkeeper/internal/logging"
)

// seams for tests
var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
)

// ObjectPutter is the slice of the S3 API the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ClientConfig carries the object-storage connection settings.
type ClientConfig struct {
	Region       string
	BaseEndpoint string // empty for real AWS; set for MinIO
	AccessKey    string
	SecretKey    string
}

// NewClient builds an S3 client. With a BaseEndpoint it targets a
// MinIO-style deployment using path-style addressing.
func NewClient(ctx context.Context, c ClientConfig) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AccessKey, c.SecretKey, "",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return client, nil
}

// Uploader writes snapshots to one bucket.
type Uploader struct {
	client ObjectPutter
	bucket string
	log    logging.Logger

	now   func() time.Time
	newID func() string
}

func NewUploader(client ObjectPutter, bucket string, log logging.Logger) *Uploader {
	return &Uploader{
		client: client,
		bucket: bucket,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// storageKey builds a date-partitioned object key so snapshots never collide
// and browse chronologically.
func (u *Uploader) storageKey(ownerID string) string {
	d := u.now()
	return fmt.Sprintf("snapshots/%s/%d/%02d/%02d/%s.json", ownerID, d.Year(), d.Month(), d.Day(), u.newID())
}

// Upload stores one snapshot and returns the object key.
func (u *Uploader) Upload(ctx context.Context, ownerID string, snapshot []byte) (string, error) {
	key := u.storageKey(ownerID)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(snapshot),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}

	u.log.Info(ctx, "snapshot uploaded", "bucket", u.bucket, "key", key, "bytes", len(snapshot))
	return key, nil
}
