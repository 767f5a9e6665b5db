package customer

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelier/infras/otel"
	"hotelier/internal/domains/customer/service"
	"hotelier/shared/constant"
	"hotelier/transport/http/response"
)

type Handler struct {
	service service.Customer
	otel    otel.Otel
}

func New(service service.Customer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/customer-tiers", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTiers)
	})
}

func (handler *Handler) GetTiers(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTiers")
	defer scope.End()

	tiers, err := handler.service.ListTiers(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customer tiers")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, tiers)
}
