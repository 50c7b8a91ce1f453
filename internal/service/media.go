package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"skillswap_22520060/internal/config"
	"skillswap_22520060/internal/model"
)

// PhotoStore persists profile photos. The concrete store is Cloudflare R2;
// the interface keeps the user service testable without object storage.
type PhotoStore interface {
	UploadProfilePhoto(ctx context.Context, dataURI string) (*model.UploadResult, error)
	DeleteObject(ctx context.Context, key string) error
}

// MediaService handles profile photo uploads to Cloudflare R2.
type MediaService struct {
	s3Client  *s3.Client
	bucket    string
	publicURL string
}

// NewMediaService constructs an S3-compatible client for Cloudflare R2.
func NewMediaService(ctx context.Context, cfg *config.Config) (*MediaService, error) {
	if !cfg.HasObjectStorage() {
		return nil, fmt.Errorf("missing Cloudflare R2 configuration")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for R2: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &MediaService{
		s3Client:  s3Client,
		bucket:    cfg.R2BucketName,
		publicURL: strings.TrimSuffix(cfg.R2PublicURL, "/"),
	}, nil
}

// UploadProfilePhoto decodes an image data URI, normalizes it to a square
// JPEG, and uploads it to R2.
func (s *MediaService) UploadProfilePhoto(ctx context.Context, dataURI string) (*model.UploadResult, error) {
	data, err := decodeImageDataURI(dataURI, model.MaxProfilePhotoSizeBytes)
	if err != nil {
		return nil, err
	}

	jpegBytes, err := resizeToJPEG(data, model.ProfilePhotoWidth, model.ProfilePhotoHeight, 85)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s%s", model.ProfilePhotoFolder, uuid.NewString(), model.ProfilePhotoExt)

	if err := s.putObject(ctx, key, jpegBytes, model.ContentTypeJPEG, model.ProfilePhotoCacheControl); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s", s.publicURL, key)
	return &model.UploadResult{URL: url, Key: key}, nil
}

// decodeImageDataURI validates a "data:image/...;base64," URI and returns the
// decoded bytes with size and type checks.
func decodeImageDataURI(uri string, maxSize int64) ([]byte, error) {
	const scheme = "data:"
	const marker = ";base64,"

	if !strings.HasPrefix(uri, scheme) {
		return nil, model.ErrInvalidPhoto
	}
	idx := strings.Index(uri, marker)
	if idx < 0 {
		return nil, model.ErrInvalidPhoto
	}
	contentType := uri[len(scheme):idx]
	if !model.IsAllowedImageType(contentType) {
		return nil, model.ErrInvalidPhoto
	}

	payload := uri[idx+len(marker):]
	// Base64 expands by 4/3, so a quick length check rejects oversized
	// payloads before decoding.
	if int64(len(payload)) > maxSize*4/3+4 {
		return nil, model.ErrPhotoTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, model.ErrInvalidPhoto
	}
	if int64(len(data)) > maxSize {
		return nil, model.ErrPhotoTooLarge
	}
	return data, nil
}

// resizeToJPEG centers/crops to target size and encodes as JPEG.
func resizeToJPEG(data []byte, width, height, quality int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, model.ErrInvalidPhoto
	}

	resized := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	return buf.Bytes(), nil
}

// putObject uploads bytes to R2 with metadata.
func (s *MediaService) putObject(ctx context.Context, key string, body []byte, contentType, cacheControl string) error {
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to r2: %w", err)
	}
	return nil
}

// DeleteObject removes an object by key.
func (s *MediaService) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from r2: %w", err)
	}
	return nil
}
