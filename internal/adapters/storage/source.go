// internal/adapters/storage/source.go
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// SourceStore moves import files between the operator's machine and the
// worker. Stage puts a local file somewhere the worker can reach and
// returns its source URI; FetchToTemp materializes a source URI as a
// local temp file for parsing; Archive moves a processed source out of
// the staging prefix.
type SourceStore interface {
	Stage(ctx context.Context, fileName string, data io.Reader) (string, error)
	FetchToTemp(ctx context.Context, source string) (string, error)
	Archive(ctx context.Context, source string) error
}

// S3Config holds S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // For MinIO/LocalStack
	UsePathStyle    bool   // For MinIO/LocalStack
	StagingPrefix   string
	ArchivePrefix   string
	TempDir         string
}

// S3Source implements SourceStore against an S3 bucket, so imports
// enqueued on one machine can be processed by a worker on another.
type S3Source struct {
	client        *s3.Client
	uploader      *manager.Uploader
	downloader    *manager.Downloader
	bucket        string
	stagingPrefix string
	archivePrefix string
	tempDir       string
	logger        *slog.Logger
}

var _ SourceStore = (*S3Source)(nil)

// NewS3Source creates an S3-backed source store.
func NewS3Source(ctx context.Context, cfg *S3Config, logger *slog.Logger) (*S3Source, error) {
	awsCfg, err := buildAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	src := &S3Source{
		client:        client,
		uploader:      manager.NewUploader(client),
		downloader:    manager.NewDownloader(client),
		bucket:        cfg.Bucket,
		stagingPrefix: strings.Trim(cfg.StagingPrefix, "/"),
		archivePrefix: strings.Trim(cfg.ArchivePrefix, "/"),
		tempDir:       cfg.TempDir,
		logger:        logger.With(slog.String("storage", "s3")),
	}
	if src.stagingPrefix == "" {
		src.stagingPrefix = "imports/staging"
	}
	if src.archivePrefix == "" {
		src.archivePrefix = "imports/archive"
	}
	if src.tempDir == "" {
		src.tempDir = os.TempDir()
	}

	logger.Info("S3 source store initialized",
		slog.String("bucket", cfg.Bucket),
		slog.String("staging_prefix", src.stagingPrefix))
	return src, nil
}

func buildAWSConfig(ctx context.Context, cfg *S3Config) (aws.Config, error) {
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		return config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretAccessKey,
					"",
				),
			),
		)
	}

	return config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
}

// Stage uploads a local import file under the staging prefix and
// returns its s3:// URI. A fresh id in the key keeps same-named files
// from different counties apart.
func (s *S3Source) Stage(ctx context.Context, fileName string, data io.Reader) (string, error) {
	key := path.Join(s.stagingPrefix, uuid.New().String(), path.Base(fileName))

	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        data,
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"staged-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to stage import file: %w", err)
	}

	source := fmt.Sprintf("s3://%s/%s", s.bucket, key)
	s.logger.InfoContext(ctx, "import file staged",
		slog.String("source", source))
	return source, nil
}

// FetchToTemp downloads an s3:// source to a temp file and returns its
// path. The caller owns the file and removes it when done.
func (s *S3Source) FetchToTemp(ctx context.Context, source string) (string, error) {
	bucket, key, err := splitS3URI(source)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.tempDir, "import-*"+filepath.Ext(key))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tmp.Close()

	n, err := s.downloader.Download(ctx, tmp, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to download %s: %w", source, err)
	}

	s.logger.DebugContext(ctx, "import file fetched",
		slog.String("source", source),
		slog.Int64("size", n))
	return tmp.Name(), nil
}

// Archive moves a processed source from the staging prefix to the
// archive prefix.
func (s *S3Source) Archive(ctx context.Context, source string) error {
	bucket, key, err := splitS3URI(source)
	if err != nil {
		return err
	}

	rest := strings.TrimPrefix(key, s.stagingPrefix+"/")
	destKey := path.Join(s.archivePrefix, rest)

	_, err = s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(bucket),
		CopySource: aws.String(fmt.Sprintf("%s/%s", bucket, key)),
		Key:        aws.String(destKey),
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", source, err)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to remove staged copy of %s: %w", source, err)
	}

	s.logger.InfoContext(ctx, "import file archived",
		slog.String("source", source),
		slog.String("archive_key", destKey))
	return nil
}

func splitS3URI(source string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(source, "s3://")
	if !ok {
		return "", "", fmt.Errorf("source %q is not an s3:// URI", source)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("source %q is missing a bucket or key", source)
	}
	return bucket, key, nil
}

// LocalSource implements SourceStore on the local filesystem, for
// single-machine setups and tests. Sources are plain file paths.
type LocalSource struct {
	baseDir string
	logger  *slog.Logger
}

var _ SourceStore = (*LocalSource)(nil)

// NewLocalSource creates a filesystem-backed source store rooted at
// baseDir.
func NewLocalSource(baseDir string, logger *slog.Logger) (*LocalSource, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, "staging"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(baseDir, "archive"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive dir: %w", err)
	}
	return &LocalSource{
		baseDir: baseDir,
		logger:  logger.With(slog.String("storage", "local")),
	}, nil
}

// Stage copies the file into the staging directory.
func (l *LocalSource) Stage(ctx context.Context, fileName string, data io.Reader) (string, error) {
	dir := filepath.Join(l.baseDir, "staging", uuid.New().String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create staging dir: %w", err)
	}

	dest := filepath.Join(dir, filepath.Base(fileName))
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create staged file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("failed to write staged file: %w", err)
	}

	l.logger.InfoContext(ctx, "import file staged", slog.String("source", dest))
	return dest, nil
}

// FetchToTemp returns the path unchanged after checking it exists; the
// staged file is already local.
func (l *LocalSource) FetchToTemp(ctx context.Context, source string) (string, error) {
	if _, err := os.Stat(source); err != nil {
		return "", fmt.Errorf("source file %s is not readable: %w", source, err)
	}
	return source, nil
}

// Archive moves a processed file into the archive directory and drops
// the per-job staging directory it leaves behind.
func (l *LocalSource) Archive(ctx context.Context, source string) error {
	dest := filepath.Join(l.baseDir, "archive", filepath.Base(source))
	if err := os.Rename(source, dest); err != nil {
		return fmt.Errorf("failed to archive %s: %w", source, err)
	}

	staging := filepath.Join(l.baseDir, "staging")
	if dir := filepath.Dir(source); dir != staging {
		if err := os.Remove(dir); err != nil {
			l.logger.WarnContext(ctx, "failed to remove staging dir",
				slog.String("dir", dir),
				slog.Any("error", err))
		}
	}

	l.logger.InfoContext(ctx, "import file archived", slog.String("source", source))
	return nil
}
