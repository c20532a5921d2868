// Package storage uploads item pictures before a listing is created.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var ErrNotImage = errors.New("file is not an image")

// Image is a picture selected for upload. Index is its position in the
// listing, starting at 0.
type Image struct {
	Index int
	Name  string
	Data  []byte
}

// ImageUploader stores an image and returns the URL the API should record.
type ImageUploader interface {
	Upload(ctx context.Context, img Image) (string, error)
}

// DetectImage returns the MIME type of data, or ErrNotImage.
func DetectImage(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mt.String())
	}
	return mt.String(), nil
}

// S3Options configure an S3-compatible bucket.
type S3Options struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
	AccessKey     string
	SecretKey     string
}

// S3Uploader puts images into a bucket under items/<uuid><ext>.
type S3Uploader struct {
	uploader *manager.Uploader
	bucket   string
	baseURL  string
}

func NewS3Uploader(ctx context.Context, opts S3Options) (*S3Uploader, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("s3 uploader: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = true
	})

	baseURL := strings.TrimSuffix(opts.PublicBaseURL, "/")
	if baseURL == "" && opts.Endpoint != "" {
		baseURL = strings.TrimSuffix(opts.Endpoint, "/") + "/" + opts.Bucket
	}

	return &S3Uploader{
		uploader: manager.NewUploader(client),
		bucket:   opts.Bucket,
		baseURL:  baseURL,
	}, nil
}

func (s *S3Uploader) Upload(ctx context.Context, img Image) (string, error) {
	contentType, err := DetectImage(img.Data)
	if err != nil {
		return "", err
	}

	key := "items/" + uuid.NewString() + strings.ToLower(path.Ext(img.Name))

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.Data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s: %w", key, err)
	}

	if s.baseURL == "" {
		return key, nil
	}
	return s.baseURL + "/" + key, nil
}

// PlaceholderURL is the image recorded when no bucket is configured.
const PlaceholderURL = "https://via.placeholder.com/400x600/20B2AA/FFFFFF"

// PlaceholderUploader does not store anything. It returns a numbered
// placeholder picture so listings can be created without object storage.
type PlaceholderUploader struct{}

func (PlaceholderUploader) Upload(_ context.Context, img Image) (string, error) {
	if _, err := DetectImage(img.Data); err != nil {
		return "", err
	}
	q := url.Values{"text": {fmt.Sprintf("Item Image %d", img.Index+1)}}
	return PlaceholderURL + "?" + q.Encode(), nil
}
