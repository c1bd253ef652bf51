package middlewares

import (
	"net/http"

	"github.com/Ardenexal/imaging-request/internal/pkg/exceptions"
)

// Recoverer turns a panic in any later handler into the regular error response.
func (m *Middlewares) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				m.ErrorHandler.Handle(w, r, exceptions.ErrServerPanicRecovered(rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
