package cmd

import (
	"github.com/cockroachdb/errors"

	"github.com/dhis2/approval-backend/infra"
	"github.com/dhis2/approval-backend/utils"
)

type CompiledConfig struct {
	Version string
}

type ServerConfig struct {
	loggingFormat string
	sentryDsn     string
	report        infra.ReportConfig
}

func (config ServerConfig) Validate() error {
	if config.report.SignatureLineCount < 0 {
		return errors.New("REPORT_SIGNATURE_LINE_COUNT must not be negative")
	}
	return nil
}

func pgConfigFromEnv() infra.PgConfig {
	return infra.PgConfig{
		ConnectionString:   utils.GetEnv("PG_CONNECTION_STRING", ""),
		Database:           utils.GetEnv("PG_DATABASE", "dhis2"),
		Hostname:           utils.GetEnv("PG_HOSTNAME", ""),
		Password:           utils.GetEnv("PG_PASSWORD", ""),
		Port:               utils.GetEnv("PG_PORT", "5432"),
		User:               utils.GetEnv("PG_USER", ""),
		MaxPoolConnections: utils.GetEnv("PG_MAX_POOL_SIZE", infra.DEFAULT_MAX_CONNECTIONS),
		SslMode:            utils.GetEnv("PG_SSL_MODE", "prefer"),
	}
}
