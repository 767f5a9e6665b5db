package inspection

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelier/infras/otel"
	"hotelier/internal/domains/inspection/model/dto"
	"hotelier/internal/domains/inspection/service"
	"hotelier/shared/constant"
	"hotelier/shared/validator"
	"hotelier/transport/http/response"
)

type Handler struct {
	service service.Inspection
	otel    otel.Otel
}

func New(service service.Inspection, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/inspections", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateInspection)
		routerGroup.Get("/booking-rooms/{bookingRoomID}", handler.GetByBookingRoom)
		routerGroup.Patch("/{id}/approve", handler.ApproveInspection)
	})
}

func (handler *Handler) CreateInspection(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInspection")
	defer scope.End()

	req := dto.CreateInspectionRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	inspection, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create inspection")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, inspection)
}

func (handler *Handler) GetByBookingRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetByBookingRoom")
	defer scope.End()

	inspection, err := handler.service.GetByBookingRoom(ctx, chi.URLParam(request, "bookingRoomID"))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inspection")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, inspection)
}

func (handler *Handler) ApproveInspection(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveInspection")
	defer scope.End()

	inspection, err := handler.service.Approve(ctx, chi.URLParam(request, "id"))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve inspection")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, inspection)
}
