package routers

import (
	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/controllers"
	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachServiceRequestRoutes(router chi.Router, middlewares *middlewares.Middlewares, serviceRequestController *controllers.ServiceRequestController) {
	router.Get("/", serviceRequestController.GetCreateForm)
	router.With(middlewares.SubmissionRateLimit()).Post("/", serviceRequestController.CreateServiceRequest)
	router.Get("/{id}", serviceRequestController.GetServiceRequest)
}
