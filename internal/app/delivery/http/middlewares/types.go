package middlewares

import (
	"github.com/Ardenexal/imaging-request/internal/app/config"
	"github.com/Ardenexal/imaging-request/internal/app/contracts"
	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/handlers"
	"github.com/Ardenexal/imaging-request/internal/app/services/shared/metrics"
	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	SessionService contracts.SessionService
	ErrorHandler   *handlers.ErrorHandler
	Metrics        *metrics.Metrics
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig, sessionService contracts.SessionService, errorHandler *handlers.ErrorHandler, m *metrics.Metrics) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		SessionService: sessionService,
		ErrorHandler:   errorHandler,
		Metrics:        m,
	}
}
