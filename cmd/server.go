package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"golang.org/x/text/language"

	"github.com/dhis2/approval-backend/api"
	"github.com/dhis2/approval-backend/infra"
	"github.com/dhis2/approval-backend/repositories"
	"github.com/dhis2/approval-backend/usecases"
	"github.com/dhis2/approval-backend/utils"
)

func RunServer(config CompiledConfig) error {
	apiConfig := api.Configuration{
		Env:                 utils.GetEnv("ENV", "development"),
		AppName:             "approval-backend",
		AppVersion:          config.Version,
		Port:                utils.GetRequiredEnv[string]("PORT"),
		AppUrl:              utils.GetEnv("APP_URL", ""),
		RequestLoggingLevel: utils.GetEnv("REQUEST_LOGGING_LEVEL", "all"),
		DefaultTimeout:      time.Duration(utils.GetEnv("DEFAULT_TIMEOUT_SECOND", 5)) * time.Second,
		ExportTimeout:       time.Duration(utils.GetEnv("EXPORT_TIMEOUT_SECOND", 55)) * time.Second,
		EnablePrometheus:    utils.GetEnv("ENABLE_PROMETHEUS", false),
	}
	pgConfig := pgConfigFromEnv()
	serverConfig := ServerConfig{
		loggingFormat: utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:     utils.GetEnv("SENTRY_DSN", ""),
		report: infra.ReportConfig{
			BucketUrl:          utils.GetEnv("REPORT_BUCKET_URL", ""),
			SignatureLineCount: utils.GetEnv("REPORT_SIGNATURE_LINE_COUNT", usecases.DefaultSignatureLineCount),
			Language:           utils.GetEnv("SEARCH_LANGUAGE", "en"),
		},
	}

	logger := utils.NewLogger(serverConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	if err := serverConfig.Validate(); err != nil {
		logger.ErrorContext(ctx, "invalid server configuration", "error", err.Error())
		return err
	}

	if err := infra.SetupSentry(serverConfig.sentryDsn, apiConfig.Env, apiConfig.AppVersion); err != nil {
		logger.WarnContext(ctx, "sentry is disabled", "error", err.Error())
	}
	defer sentry.Flush(3 * time.Second)

	if err := api.RegisterValidators(); err != nil {
		return err
	}

	searchLanguage, err := language.Parse(serverConfig.report.Language)
	if err != nil {
		logger.WarnContext(ctx, "unknown search language, falling back to english",
			"language", serverConfig.report.Language)
		searchLanguage = language.English
	}

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(), pgConfig.MaxPoolConnections)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	defer pool.Close()

	blobRepository := repositories.NewBlobRepository()
	defer blobRepository.Close()

	repos := repositories.NewRepositories(pool, blobRepository, repositories.WithLanguage(searchLanguage))
	uc := usecases.NewUsecases(repos,
		usecases.WithApiVersion(apiConfig.AppVersion),
		usecases.WithReportBucketUrl(serverConfig.report.BucketUrl),
		usecases.WithSignatureLineCount(serverConfig.report.SignatureLineCount),
	)

	router := api.InitRouterMiddlewares(ctx, apiConfig)
	server := api.NewServer(router, apiConfig, uc)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server", slog.String("port", apiConfig.Port))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while serving the app"))
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while shutting down the server"))
		return err
	}
	return nil
}
