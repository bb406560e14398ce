// Package s3 implements the artifact sink on top of Amazon S3.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/services"
)

// defaultPresignExpiry is how long URLs minted by Put remain valid.
const defaultPresignExpiry = time.Hour

// Config holds the S3 connection settings.
type Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// Client is an ArtifactSink backed by one S3 bucket.
type Client struct {
	bucket  string
	client  *s3.Client
	presign *s3.PresignClient
}

// NewClient builds an S3-backed sink. When AccessKey is empty the default
// credential chain (environment, shared config, instance role) applies.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket name is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &Client{
		bucket:  cfg.Bucket,
		client:  client,
		presign: s3.NewPresignClient(client),
	}, nil
}

// Put stores the object and returns a pre-signed retrieval URL.
func (c *Client) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store %s: %w", key, err)
	}
	return c.PresignGet(ctx, key, defaultPresignExpiry)
}

// Get retrieves the object bytes.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve %s: %w", key, err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// PresignGet mints a time-limited URL for an existing object.
func (c *Client) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for %s: %w", key, err)
	}
	return req.URL, nil
}

// List returns the objects under the given key prefix, each with a
// pre-signed URL.
func (c *Client) List(ctx context.Context, prefix string) ([]models.Artifact, error) {
	var artifacts []models.Artifact

	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			// Skip the folder placeholder objects some tools create.
			if key == "" || key[len(key)-1] == '/' {
				continue
			}
			url, err := c.PresignGet(ctx, key, defaultPresignExpiry)
			if err != nil {
				return nil, err
			}
			artifacts = append(artifacts, models.Artifact{
				Filename:     path.Base(key),
				URL:          url,
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}
	return artifacts, nil
}

// ListFolders returns the immediate sub-prefixes under the given prefix.
func (c *Client) ListFolders(ctx context.Context, prefix string) ([]string, error) {
	var folders []string

	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(c.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list folders under %s: %w", prefix, err)
		}
		for _, cp := range page.CommonPrefixes {
			folders = append(folders, aws.ToString(cp.Prefix))
		}
	}
	return folders, nil
}

var _ services.ArtifactSink = (*Client)(nil)
