package routers

import (
	"strings"

	"github.com/Ardenexal/imaging-request/internal/app/config"
	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/controllers"
	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/middlewares"
	"github.com/Ardenexal/imaging-request/internal/app/services/shared/metrics"
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	serviceMetrics *metrics.Metrics,
	sessionController *controllers.SessionController,
	serviceRequestController *controllers.ServiceRequestController,
	healthController *controllers.HealthController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   strings.Split(internalConfig.App.AllowedOrigins, ","),
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, "OPTIONS"},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderXCSRFToken, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{"Link", constvars.HeaderLocation},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.Recoverer)
	router.Use(middlewares.GlobalRateLimit())
	router.Use(middlewares.LimitBody)

	router.Get(constvars.RouteHealthCheck, healthController.HealthCheck)
	if internalConfig.App.MetricsEnabled {
		router.Method(constvars.MethodGet, constvars.RouteMetrics, serviceMetrics.Handler())
	}

	router.Group(func(r chi.Router) {
		r.Use(middlewares.SessionOptional)

		attachSessionRoutes(r, middlewares, sessionController)

		r.Route(constvars.RouteServiceRequestPrefix, func(r chi.Router) {
			attachServiceRequestRoutes(r, middlewares, serviceRequestController)
		})
	})
}
