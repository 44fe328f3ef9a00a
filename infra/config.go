package infra

import (
	"fmt"
)

type PgConfig struct {
	ConnectionString   string
	Database           string
	Hostname           string
	Password           string
	Port               string
	User               string
	MaxPoolConnections int
	SslMode            string
}

func (config PgConfig) GetConnectionString() string {
	if config.ConnectionString != "" {
		return config.ConnectionString
	}

	if config.SslMode == "" {
		config.SslMode = "prefer"
	}

	return fmt.Sprintf("host=%s user=%s password=%s database=%s sslmode=%s port=%s",
		config.Hostname, config.User, config.Password, config.Database, config.SslMode, config.Port)
}

// ReportConfig configures where exported reports are uploaded.
// The bucket url follows the gocloud.dev conventions: mem://, file:///path, s3://bucket, gs://bucket.
type ReportConfig struct {
	BucketUrl          string
	SignatureLineCount int
	Language           string
}
