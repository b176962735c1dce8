package config

import (
	"log/slog"

	"github.com/SAP-F-2025/interview-coach/internal/storage"
)

// StorageConfig selects where uploaded résumé files are kept
type StorageConfig struct {
	Driver         string // local or minio
	LocalPath      string
	BaseURL        string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

func (c *StorageConfig) IsLocal() bool {
	return c.Driver != "minio"
}

// CreateObjectStore creates the object store based on configuration
func (c *StorageConfig) CreateObjectStore(logger *slog.Logger) (storage.ObjectStore, error) {
	if c.Driver == "minio" {
		logger.Info("Using MinIO object storage", "endpoint", c.MinioEndpoint, "bucket", c.MinioBucket)
		return storage.NewMinioStore(storage.MinioConfig{
			Endpoint:  c.MinioEndpoint,
			AccessKey: c.MinioAccessKey,
			SecretKey: c.MinioSecretKey,
			Bucket:    c.MinioBucket,
			UseSSL:    c.MinioUseSSL,
			PublicURL: c.BaseURL,
		})
	}

	logger.Info("Using local file storage", "path", c.LocalPath)
	return storage.NewLocalStore(c.LocalPath, c.BaseURL)
}
