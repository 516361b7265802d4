package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// S3Options conveys upload destination metadata.
type S3Options struct {
	Bucket    string
	KeyPrefix string
	Region    string
	// PublicBaseURL, when set, overrides the default virtual-hosted bucket URL
	// (useful behind a CDN or an S3-compatible endpoint).
	PublicBaseURL string
}

// S3ImageStore uploads images to Amazon S3 (or compatible APIs).
type S3ImageStore struct {
	client   *s3.Client
	uploader *manager.Uploader
	opts     S3Options
}

func NewS3ImageStore(client *s3.Client, opts S3Options) *S3ImageStore {
	return &S3ImageStore{
		client:   client,
		uploader: manager.NewUploader(client),
		opts:     opts,
	}
}

func (s *S3ImageStore) UploadImage(ctx context.Context, data []byte, folder string) (string, error) {
	if s.opts.Bucket == "" {
		return "", fmt.Errorf("storage bucket is required")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("image data is empty")
	}

	contentType := http.DetectContentType(data)
	key := s.objectKey(folder, contentType)

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return s.objectURL(key), nil
}

func (s *S3ImageStore) objectKey(folder, contentType string) string {
	parts := make([]string, 0, 3)
	if prefix := strings.Trim(s.opts.KeyPrefix, "/"); prefix != "" {
		parts = append(parts, prefix)
	}
	if folder = strings.Trim(folder, "/"); folder != "" {
		parts = append(parts, folder)
	}
	parts = append(parts, uuid.NewString()+imageExt(contentType))
	return strings.Join(parts, "/")
}

func (s *S3ImageStore) objectURL(key string) string {
	if base := strings.TrimRight(s.opts.PublicBaseURL, "/"); base != "" {
		escaped := url.PathEscape(key)
		// keep path separators readable
		escaped = strings.ReplaceAll(escaped, "%2F", "/")
		return base + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.opts.Bucket, s.opts.Region, key)
}

func imageExt(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

var _ ImageStore = (*S3ImageStore)(nil)
