package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Nakaner/mapillary-tools/config"
)

// errNoS3Endpoint is returned for s3:// sources without a configured endpoint.
var errNoS3Endpoint = errors.New("s3 endpoint not configured (s3.endpoint or GEOTAG_S3_ENDPOINT)")

// fetcher reads track files from local paths, http(s) URLs or s3://bucket/key
// objects.
type fetcher struct {
	httpClient *http.Client
	s3cfg      config.S3Config
	s3         *minio.Client
}

func newFetcher(timeout time.Duration, s3cfg config.S3Config) *fetcher {
	return &fetcher{
		httpClient: &http.Client{Timeout: timeout},
		s3cfg:      s3cfg,
	}
}

// fetch returns the raw bytes of one track source.
func (f *fetcher) fetch(ctx context.Context, src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "s3://"):
		return f.fetchS3(ctx, src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return f.fetchHTTP(ctx, src)
	default:
		return os.ReadFile(src)
	}
}

func (f *fetcher) fetchHTTP(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", src, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, src)
	}
	return io.ReadAll(resp.Body)
}

func (f *fetcher) fetchS3(ctx context.Context, src string) ([]byte, error) {
	bucket, key, err := parseS3URL(src)
	if err != nil {
		return nil, err
	}
	client, err := f.s3Client()
	if err != nil {
		return nil, err
	}

	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", src, err)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src, err)
	}
	return data, nil
}

func (f *fetcher) s3Client() (*minio.Client, error) {
	if f.s3 != nil {
		return f.s3, nil
	}
	if f.s3cfg.Endpoint == "" {
		return nil, errNoS3Endpoint
	}
	client, err := minio.New(f.s3cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(f.s3cfg.AccessKey, f.s3cfg.SecretKey, ""),
		Secure: f.s3cfg.UseSSL,
		Region: f.s3cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}
	f.s3 = client
	return client, nil
}

// parseS3URL splits s3://bucket/key.
func parseS3URL(src string) (bucket, key string, err error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid s3 url %q", src)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("s3 url %q has no object key", src)
	}
	return u.Host, key, nil
}
