package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// SourceStore lists and opens knowledge source documents for the
// embedding pipeline. Keys are relative paths (or object keys) ending
// in .json; the segment before the file name carries the medical
// category.
type SourceStore interface {
	// List returns the keys of all JSON source documents
	List(ctx context.Context) ([]string, error)

	// Open retrieves one source document by key
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// StoreType represents the source store backend type
type StoreType string

const (
	StoreTypeLocal StoreType = "local"
	StoreTypeS3    StoreType = "s3"
)

// StoreConfig holds configuration for the source store
type StoreConfig struct {
	Type         StoreType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Prefix     string // For S3 storage
	S3Region     string // For S3 storage
	AWSAccessKey string
	AWSSecretKey string
}

// NewSourceStore creates a new source store instance based on configuration
func NewSourceStore(cfg StoreConfig) (SourceStore, error) {
	switch cfg.Type {
	case StoreTypeLocal:
		return NewLocalSourceStore(cfg.LocalPath)
	case StoreTypeS3:
		return NewS3SourceStore(cfg)
	default:
		return nil, fmt.Errorf("unknown source store type: %s", cfg.Type)
	}
}

// NewSourceStoreFromEnv creates a source store from environment variables
func NewSourceStoreFromEnv() (SourceStore, error) {
	storeType := os.Getenv("KNOWLEDGE_SOURCE_TYPE")
	if storeType == "" {
		storeType = "local" // Default to local for development
	}

	cfg := StoreConfig{
		Type: StoreType(storeType),
	}

	switch StoreType(storeType) {
	case StoreTypeLocal:
		localPath := os.Getenv("KNOWLEDGE_SOURCE_PATH")
		if localPath == "" {
			localPath = "./data/medical" // Default source corpus path
		}
		cfg.LocalPath = localPath
		return NewLocalSourceStore(cfg.LocalPath)

	case StoreTypeS3:
		cfg.S3Bucket = os.Getenv("AWS_S3_BUCKET")
		cfg.S3Prefix = os.Getenv("KNOWLEDGE_SOURCE_PREFIX")
		cfg.S3Region = os.Getenv("AWS_REGION")
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1" // Default region
		}
		cfg.AWSAccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		cfg.AWSSecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 source store")
		}

		return NewS3SourceStore(cfg)

	default:
		return nil, fmt.Errorf("unknown source store type: %s", storeType)
	}
}
