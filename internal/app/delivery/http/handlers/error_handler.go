package handlers

import (
	"errors"
	"net/http"

	"github.com/Ardenexal/imaging-request/internal/app/contracts"
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/exceptions"
	"github.com/Ardenexal/imaging-request/internal/pkg/utils"
	"go.uber.org/zap"
)

// ErrorHandler is the single exit for failed requests. Browsers get the error
// page, JSON clients get the error envelope.
type ErrorHandler struct {
	Log      *zap.Logger
	Renderer contracts.ViewRenderer
	AppEnv   string
}

func NewErrorHandler(logger *zap.Logger, renderer contracts.ViewRenderer, appEnv string) *ErrorHandler {
	return &ErrorHandler{
		Log:      logger,
		Renderer: renderer,
		AppEnv:   appEnv,
	}
}

func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	requestID := utils.GetRequestID(r.Context())

	if h.Renderer == nil || utils.WantsJSON(r) {
		utils.BuildErrorResponse(h.Log, w, requestID, h.AppEnv, err)
		return
	}

	code, clientMessage := utils.LogError(h.Log, requestID, err)
	data := map[string]interface{}{
		"title":   constvars.ViewTitleError,
		"message": clientMessage,
	}

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) && h.AppEnv != constvars.AppEnvProduction {
		data["detail"] = customErr.DevMessage
	}

	if renderErr := h.Renderer.Render(w, code, constvars.ViewError, data); renderErr != nil {
		h.Log.Error("ErrorHandler.Handle error rendering error view",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(renderErr),
		)
		http.Error(w, clientMessage, code)
	}
}
