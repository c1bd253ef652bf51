package routers

import (
	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/controllers"
	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/middlewares"
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachSessionRoutes(router chi.Router, middlewares *middlewares.Middlewares, sessionController *controllers.SessionController) {
	router.Get(constvars.RouteIndex, sessionController.Index)
	router.With(middlewares.SubmissionRateLimit()).Post(constvars.RouteIndex, sessionController.InitializeSession)
}
