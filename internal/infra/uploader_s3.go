package infra

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/saywith/saywith-server/internal/config"
	"github.com/saywith/saywith-server/internal/ports"
)

// S3Uploader is the managed object-store mode: objects live under
// <message id>/<slot>.<ext> and the returned URL points at the public base.
type S3Uploader struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

func NewS3Uploader(cfg config.S3Config) (*S3Uploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}

	base := cfg.PublicBase
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + cfg.Endpoint
	}

	return &S3Uploader{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: strings.TrimRight(base, "/"),
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, data []byte, id string, slot ports.Slot, filename, contentType string) (string, error) {
	object := id + "/" + objectName(slot, filename)

	_, err := u.client.PutObject(ctx, u.bucket, object,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", &ports.UploadError{Message: err.Error()}
	}

	return u.publicBase + "/" + u.bucket + "/" + object, nil
}
