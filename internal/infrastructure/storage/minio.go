package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/meeting-reporter/pkg/config"
)

// ReportArchive stores rendered reports in an object store bucket so they
// survive the temp-file cleanup that follows every response.
type ReportArchive struct {
	client *minio.Client
	bucket string
}

// NewReportArchive creates the archive client and ensures its bucket exists
func NewReportArchive(cfg *config.StorageConfig) (*ReportArchive, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	archive := &ReportArchive{
		client: minioClient,
		bucket: cfg.BucketName,
	}

	if err := archive.ensureBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return archive, nil
}

// ensureBucket creates the bucket if it does not exist. Reports stay
// private, so no read policy is attached.
func (a *ReportArchive) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// ArchiveReport uploads a rendered report, keyed by generation date and
// filename
func (a *ReportArchive) ArchiveReport(ctx context.Context, localPath string) error {
	objectName := fmt.Sprintf("reports/%s/%s", time.Now().Format("2006-01-02"), filepath.Base(localPath))

	contentType := "application/pdf"
	if filepath.Ext(localPath) == ".md" {
		contentType = "text/markdown"
	}

	_, err := a.client.FPutObject(ctx, a.bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to archive report: %w", err)
	}

	return nil
}

// PresignedReportURL returns a temporary download link for an archived report
func (a *ReportArchive) PresignedReportURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := a.client.PresignedGetObject(ctx, a.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}
