package storage

import (
	"DentaBill/config"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Upload size limits for clinic assets (logo and signature images).
const (
	MinAssetSize = 100 * 1024
	MaxAssetSize = 5 * 1024 * 1024
)

// Client wraps the AWS S3 client used for clinic branding assets. A nil
// *Client (storage disabled) no-ops on IsEnabled and fails uploads with a
// clear error.
type Client struct {
	s3        *s3.Client
	bucket    string
	publicURL string
	enabled   bool
}

// NewFromConfig creates the storage client, or a disabled one when the S3
// block is not configured.
func NewFromConfig(cfg config.S3Config) (*Client, error) {
	if !cfg.Enabled() {
		return &Client{enabled: false}, nil
	}

	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...any) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.Endpoint,
				SigningRegion:     cfg.Region,
				HostnameImmutable: true,
			}, nil
		},
	)

	awsCfg, err := awscfg.LoadDefaultConfig(context.Background(),
		awscfg.WithRegion(cfg.Region),
		awscfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		awscfg.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	cli := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &Client{
		s3:        cli,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket,
		enabled:   true,
	}, nil
}

// AssetKey builds the object key for a clinic asset:
// dentists/{dentistID}/{assetType}/{filename}.
func AssetKey(dentistID, assetType, filename string) string {
	return fmt.Sprintf("dentists/%s/%s/%s", dentistID, assetType, filename)
}

// DocumentKey builds the object key for a patient document:
// dentists/{dentistID}/patients/{patientID}/documents/{filename}.
func DocumentKey(dentistID, patientID, filename string) string {
	return fmt.Sprintf("dentists/%s/patients/%s/documents/%s", dentistID, patientID, filename)
}

// KeyFromURL recovers the object key from a stored asset URL. Returns false
// when the URL does not contain a dentists/ key segment.
func KeyFromURL(url string) (string, bool) {
	idx := strings.Index(url, "/dentists/")
	if idx < 0 {
		return "", false
	}
	return url[idx+1:], true
}

// ValidateAssetSize enforces the 100KB-5MB window for uploaded images.
func ValidateAssetSize(size int64) error {
	if size < MinAssetSize {
		return fmt.Errorf("file too small: minimum size is 100KB")
	}
	if size > MaxAssetSize {
		return fmt.Errorf("file too large: maximum size is 5MB")
	}
	return nil
}

// ValidateDocumentSize caps patient document uploads at 5MB. Unlike clinic
// assets there is no minimum.
func ValidateDocumentSize(size int64) error {
	if size <= 0 {
		return fmt.Errorf("file is empty")
	}
	if size > MaxAssetSize {
		return fmt.Errorf("file too large: maximum size is 5MB")
	}
	return nil
}

// UploadAsset puts a clinic asset into the bucket and returns its public
// URL for persisting on the clinic profile.
func (c *Client) UploadAsset(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("asset storage is not configured")
	}

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %q: %w", key, err)
	}
	return c.publicURL + "/" + key, nil
}

// DeleteAsset removes an object from the bucket.
func (c *Client) DeleteAsset(ctx context.Context, key string) error {
	if !c.enabled {
		return fmt.Errorf("asset storage is not configured")
	}

	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %q: %w", key, err)
	}
	return nil
}

// IsEnabled returns whether asset storage is configured.
func (c *Client) IsEnabled() bool {
	return c.enabled
}
