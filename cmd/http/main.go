package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ardenexal/imaging-request/internal/app/config"
	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/controllers"
	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/handlers"
	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/middlewares"
	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/routers"
	"github.com/Ardenexal/imaging-request/internal/app/drivers/database"
	"github.com/Ardenexal/imaging-request/internal/app/drivers/logger"
	"github.com/Ardenexal/imaging-request/internal/app/drivers/views"
	serviceRequests "github.com/Ardenexal/imaging-request/internal/app/services/core/service_requests"
	"github.com/Ardenexal/imaging-request/internal/app/services/core/session"
	"github.com/Ardenexal/imaging-request/internal/app/services/fhir_spark/organizations"
	"github.com/Ardenexal/imaging-request/internal/app/services/fhir_spark/patients"
	practitionerRoles "github.com/Ardenexal/imaging-request/internal/app/services/fhir_spark/practitioner_role"
	"github.com/Ardenexal/imaging-request/internal/app/services/fhir_spark/practitioners"
	serviceRequestsFhir "github.com/Ardenexal/imaging-request/internal/app/services/fhir_spark/service_requests"
	"github.com/Ardenexal/imaging-request/internal/app/services/shared/circuitbreaker"
	"github.com/Ardenexal/imaging-request/internal/app/services/shared/metrics"
	"github.com/Ardenexal/imaging-request/internal/app/services/shared/redis"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.String("timezone", internalConfig.App.Timezone), zap.Error(err))
	}
	time.Local = location

	redisClient := database.NewRedisClient(driverConfig, log)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		Redis:          redisClient,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if err := bootstrapingTheApp(bootstrap); err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server started", zap.String("port", internalConfig.App.Port), zap.String("version", internalConfig.App.Version))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release drivers", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Shared
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	serviceMetrics := metrics.New(nil)

	renderer, err := views.NewTemplateRenderer()
	if err != nil {
		return err
	}
	errorHandler := handlers.NewErrorHandler(log, renderer, internalConfig.App.Env)

	// Every FHIR call goes through the same breaker so one failing server trips it once.
	fhirHTTPClient := &http.Client{
		Timeout: time.Duration(internalConfig.FHIR.ClientTimeoutInSec) * time.Second,
	}
	fhirDoer := circuitbreaker.NewBreakerDoer("fhir_spark", internalConfig.CircuitBreaker, fhirHTTPClient, log, serviceMetrics)

	// FHIR clients
	baseUrl := internalConfig.FHIR.BaseUrl
	patientFhirClient := patients.NewPatientFhirClient(baseUrl, fhirDoer, log)
	practitionerFhirClient := practitioners.NewPractitionerFhirClient(baseUrl, fhirDoer, log)
	practitionerRoleFhirClient := practitionerRoles.NewPractitionerRoleFhirClient(baseUrl, fhirDoer, log)
	organizationFhirClient := organizations.NewOrganizationFhirClient(baseUrl, fhirDoer, log)
	serviceRequestFhirClient := serviceRequestsFhir.NewServiceRequestFhirClient(baseUrl, fhirDoer, log)

	// Session
	sessionService := session.NewSessionService(redisRepository, internalConfig.Session, log)
	sessionController := controllers.NewSessionController(log, sessionService, renderer, errorHandler, internalConfig)

	// Service request
	serviceRequestUsecase := serviceRequests.NewServiceRequestUsecase(
		serviceRequestFhirClient,
		patientFhirClient,
		practitionerFhirClient,
		practitionerRoleFhirClient,
		organizationFhirClient,
		serviceMetrics,
		log,
	)
	serviceRequestController := controllers.NewServiceRequestController(log, serviceRequestUsecase, renderer, errorHandler, internalConfig)

	// Health
	healthController := controllers.NewHealthController(log, redisRepository, internalConfig)

	middlewares := middlewares.NewMiddlewares(log, internalConfig, sessionService, errorHandler, serviceMetrics)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares,
		serviceMetrics,
		sessionController,
		serviceRequestController,
		healthController,
	)
	return nil
}
