package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Ardenexal/imaging-request/internal/app/config"
	"github.com/Ardenexal/imaging-request/internal/app/contracts"
	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/handlers"
	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/middlewares"
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/dto/requests"
	"github.com/Ardenexal/imaging-request/internal/pkg/exceptions"
	"github.com/Ardenexal/imaging-request/internal/pkg/utils"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ServiceRequestController struct {
	Log                   *zap.Logger
	ServiceRequestUsecase contracts.ServiceRequestUsecase
	Renderer              contracts.ViewRenderer
	ErrorHandler          *handlers.ErrorHandler
	InternalConfig        *config.InternalConfig
}

func NewServiceRequestController(
	logger *zap.Logger,
	serviceRequestUsecase contracts.ServiceRequestUsecase,
	renderer contracts.ViewRenderer,
	errorHandler *handlers.ErrorHandler,
	internalConfig *config.InternalConfig,
) *ServiceRequestController {
	return &ServiceRequestController{
		Log:                   logger,
		ServiceRequestUsecase: serviceRequestUsecase,
		Renderer:              renderer,
		ErrorHandler:          errorHandler,
		InternalConfig:        internalConfig,
	}
}

// GetCreateForm sends clients without a selected patient back to the start page.
func (ctrl *ServiceRequestController) GetCreateForm(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	session := middlewares.GetSession(r.Context())
	if !session.HasPatient() {
		ctrl.Log.Info("No patient in session, redirecting to start",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		http.Redirect(w, r, constvars.RouteIndex, constvars.StatusFound)
		return
	}

	ctx, cancel := ctrl.withTimeout(r.Context())
	defer cancel()

	form, err := ctrl.ServiceRequestUsecase.GetCreateForm(ctx, session)
	if err != nil {
		ctrl.Log.Error("Failed to load service request form",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, session.PatientID),
			zap.Error(err),
		)
		ctrl.handleError(w, r, err)
		return
	}

	err = ctrl.Renderer.Render(w, constvars.StatusOK, constvars.ViewServiceRequestCreate, map[string]interface{}{
		"title": constvars.ViewTitleNewRequest,
		"form":  form,
	})
	if err != nil {
		ctrl.handleError(w, r, exceptions.ErrRenderView(err, constvars.ViewServiceRequestCreate))
	}
}

func (ctrl *ServiceRequestController) CreateServiceRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())

	if err := r.ParseForm(); err != nil {
		ctrl.Log.Error("Failed to parse form body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		ctrl.handleError(w, r, exceptions.ErrCannotParseForm(err))
		return
	}

	request := new(requests.CreateServiceRequest)
	if err := utils.DecodeForm(r.PostForm, request); err != nil {
		ctrl.Log.Error("Failed to decode form body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		ctrl.handleError(w, r, exceptions.ErrCannotDecodeForm(err))
		return
	}

	ctx, cancel := ctrl.withTimeout(r.Context())
	defer cancel()

	output, err := ctrl.ServiceRequestUsecase.CreateServiceRequest(ctx, middlewares.GetSession(r.Context()), request)
	if err != nil {
		ctrl.Log.Error("Failed to create service request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		ctrl.handleError(w, r, err)
		return
	}

	location := fmt.Sprintf("%s/%s", constvars.RouteServiceRequestPrefix, output.ID)
	ctrl.Log.Info("Service request created",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceRequestID, output.ID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)

	if utils.WantsJSON(r) {
		w.Header().Set(constvars.HeaderLocation, location)
		utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateServiceRequestSuccessMessage, output)
		return
	}
	http.Redirect(w, r, location, constvars.StatusFound)
}

func (ctrl *ServiceRequestController) GetServiceRequest(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	serviceRequestID := chi.URLParam(r, constvars.URLParamServiceRequestID)

	ctx, cancel := ctrl.withTimeout(r.Context())
	defer cancel()

	detail, err := ctrl.ServiceRequestUsecase.GetServiceRequest(ctx, serviceRequestID)
	if err != nil {
		ctrl.Log.Error("Failed to get service request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceRequestID, serviceRequestID),
			zap.Error(err),
		)
		ctrl.handleError(w, r, err)
		return
	}

	if utils.WantsJSON(r) {
		utils.BuildFHIRResponse(w, constvars.StatusOK, detail.ServiceRequest)
		return
	}

	err = ctrl.Renderer.Render(w, constvars.StatusOK, constvars.ViewServiceRequestView, map[string]interface{}{
		"title":          constvars.ViewTitleServiceRequest,
		"servicerequest": detail,
	})
	if err != nil {
		ctrl.handleError(w, r, exceptions.ErrRenderView(err, constvars.ViewServiceRequestView))
	}
}

func (ctrl *ServiceRequestController) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSecond)*time.Second)
}

func (ctrl *ServiceRequestController) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		err = exceptions.ErrServerDeadlineExceeded(err)
	}
	ctrl.ErrorHandler.Handle(w, r, err)
}
