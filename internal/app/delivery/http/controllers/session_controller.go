package controllers

import (
	"net/http"

	"github.com/Ardenexal/imaging-request/internal/app/config"
	"github.com/Ardenexal/imaging-request/internal/app/contracts"
	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/handlers"
	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/middlewares"
	"github.com/Ardenexal/imaging-request/internal/app/models"
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/dto/requests"
	"github.com/Ardenexal/imaging-request/internal/pkg/exceptions"
	"github.com/Ardenexal/imaging-request/internal/pkg/utils"
	"go.uber.org/zap"
)

type SessionController struct {
	Log            *zap.Logger
	SessionService contracts.SessionService
	Renderer       contracts.ViewRenderer
	ErrorHandler   *handlers.ErrorHandler
	InternalConfig *config.InternalConfig
}

func NewSessionController(
	logger *zap.Logger,
	sessionService contracts.SessionService,
	renderer contracts.ViewRenderer,
	errorHandler *handlers.ErrorHandler,
	internalConfig *config.InternalConfig,
) *SessionController {
	return &SessionController{
		Log:            logger,
		SessionService: sessionService,
		Renderer:       renderer,
		ErrorHandler:   errorHandler,
		InternalConfig: internalConfig,
	}
}

// Index shows the start page, prefilled with the current session if there is one.
func (ctrl *SessionController) Index(w http.ResponseWriter, r *http.Request) {
	session := middlewares.GetSession(r.Context())
	if session == nil {
		session = new(models.Session)
	}

	err := ctrl.Renderer.Render(w, constvars.StatusOK, constvars.ViewIndex, map[string]interface{}{
		"title":   constvars.ViewTitleIndex,
		"session": session,
	})
	if err != nil {
		ctrl.ErrorHandler.Handle(w, r, exceptions.ErrRenderView(err, constvars.ViewIndex))
	}
}

func (ctrl *SessionController) InitializeSession(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	if err := r.ParseForm(); err != nil {
		ctrl.ErrorHandler.Handle(w, r, exceptions.ErrCannotParseForm(err))
		return
	}

	request := new(requests.InitializeSession)
	if err := utils.DecodeForm(r.PostForm, request); err != nil {
		ctrl.ErrorHandler.Handle(w, r, exceptions.ErrCannotDecodeForm(err))
		return
	}

	token, session, err := ctrl.SessionService.InitializeSession(r.Context(), request)
	if err != nil {
		ctrl.Log.Error("Failed to initialize session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		ctrl.ErrorHandler.Handle(w, r, err)
		return
	}

	// a previous session is replaced, not merged
	if previous := middlewares.GetSession(r.Context()); previous != nil {
		if err := ctrl.SessionService.DeleteSession(r.Context(), previous.SessionID); err != nil {
			ctrl.Log.Warn("Failed to delete previous session",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSessionIDKey, previous.SessionID),
				zap.Error(err),
			)
		}
	}

	http.SetCookie(w, middlewares.SessionCookie(ctrl.InternalConfig.Session, token))

	if utils.WantsJSON(r) {
		utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.InitializeSessionSuccessMessage, session)
		return
	}
	http.Redirect(w, r, constvars.RouteServiceRequestCreate, constvars.StatusFound)
}
