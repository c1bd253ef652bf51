package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/dto/responses"
	"github.com/Ardenexal/imaging-request/internal/pkg/exceptions"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// WantsJSON reports whether the client asked for a JSON or FHIR JSON representation
// instead of an HTML page.
func WantsJSON(r *http.Request) bool {
	accept := r.Header.Get(constvars.HeaderAccept)
	return strings.Contains(accept, constvars.MIMEApplicationJSON) ||
		strings.Contains(accept, constvars.MIMEApplicationFHIRJSON)
}

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

func BuildFHIRResponse(w http.ResponseWriter, code int, resource interface{}) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resource)
}

// LogError writes the developer-facing side of err and returns the status code and
// client message the response should carry.
func LogError(log *zap.Logger, requestID string, err error) (int, string) {
	code := constvars.StatusInternalServerError
	clientMessage := constvars.ErrClientSomethingWrongWithApplication

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		code = customErr.StatusCode
		clientMessage = customErr.ClientMessage
		log.Error(customErr.DevMessage,
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, code),
			zap.Any("location", customErr.Location),
		)
	} else {
		log.Error(err.Error(),
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, code),
		)
	}
	return code, clientMessage
}

func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, requestID string, appEnv string, err error) {
	code, clientMessage := LogError(log, requestID, err)

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	response := exceptions.CustomError{
		StatusCode:    code,
		Success:       false,
		ClientMessage: clientMessage,
	}

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) && appEnv != constvars.AppEnvProduction {
		response.DevMessage = customErr.DevMessage
		response.Location = customErr.Location
	}
	json.NewEncoder(w).Encode(response)
}
