package reportstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	pkgLog "adherence-srv/pkg/log"
)

// IReportStore archives weekly digest run reports to object storage so a
// dispatch cycle can be audited after the fact.
type IReportStore interface {
	PutDigestReport(ctx context.Context, weekStart time.Time, report any) error
	Health(ctx context.Context) error
}

// Config holds the object storage configuration.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type implReportStore struct {
	l      pkgLog.Logger
	client *minio.Client
	bucket string
}

var _ IReportStore = &implReportStore{}

// New creates the report archive client. Returns nil when no endpoint is
// configured; all methods are nil-safe no-ops in that case.
func New(l pkgLog.Logger, cfg Config) (*implReportStore, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &implReportStore{l: l, client: client, bucket: cfg.Bucket}, nil
}

// PutDigestReport writes the run report as digests/<week>.json.
func (s *implReportStore) PutDigestReport(ctx context.Context, weekStart time.Time, report any) error {
	if s == nil {
		return nil
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal digest report: %w", err)
	}

	objectName := fmt.Sprintf("digests/%s.json", weekStart.Format("2006-01-02"))
	_, err = s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to put digest report: %w", err)
	}

	s.l.Infof(ctx, "pkg.reportstore.PutDigestReport: archived %s", objectName)
	return nil
}

// Health verifies the bucket is reachable.
func (s *implReportStore) Health(ctx context.Context) error {
	if s == nil {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("report store unreachable: %w", err)
	}
	if !exists {
		return fmt.Errorf("report store bucket %q does not exist", s.bucket)
	}
	return nil
}
