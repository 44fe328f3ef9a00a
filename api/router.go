package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/dhis2/approval-backend/api/middleware"
	"github.com/dhis2/approval-backend/utils"
)

func corsOption(ctx context.Context, conf Configuration) cors.Config {
	logger := utils.LoggerFromContext(ctx)
	allowedOrigins := []string{}

	if conf.AppUrl != "" {
		parsedUrl, err := url.Parse(conf.AppUrl)
		switch {
		case err != nil:
			logger.Error("Failed to parse the app url for CORS. Requests made from the browser from this url to the API will be rejected.",
				"url", conf.AppUrl)
		case !slices.Contains([]string{"http", "https"}, parsedUrl.Scheme):
			logger.Error(
				fmt.Sprintf("The url %s does not contain a scheme (http or https), so it cannot be used for CORS.", conf.AppUrl),
				"url", conf.AppUrl)
		default:
			u := url.URL{
				Scheme: parsedUrl.Scheme,
				Host:   parsedUrl.Host,
			}
			allowedOrigins = append(allowedOrigins, u.String())
		}
	}

	if conf.Env == "development" {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://localhost:8080")
	}

	return cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{
			http.MethodOptions, http.MethodHead, http.MethodGet,
			http.MethodPost, http.MethodDelete, http.MethodPatch,
		},
		AllowHeaders:     []string{"Authorization", "Content-Type", "baggage", "sentry-trace"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}

func InitRouterMiddlewares(ctx context.Context, conf Configuration) *gin.Engine {
	if conf.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := utils.LoggerFromContext(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(cors.New(corsOption(ctx, conf)))
	r.Use(middleware.NewLogging(logger,
		middleware.WithIgnorePath([]string{"/liveness", "/metrics"}),
		middleware.WithRequestLoggingLevel(conf.RequestLoggingLevel),
	))
	r.Use(utils.StoreLoggerInContextMiddleware(logger))
	r.Use(otelgin.Middleware(conf.AppName))

	return r
}
