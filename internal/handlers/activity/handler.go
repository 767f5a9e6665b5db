package activity

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelier/infras/otel"
	"hotelier/internal/domains/activity/model"
	"hotelier/internal/domains/activity/service"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/transport/http/response"
)

type Handler struct {
	service service.Recorder
	otel    otel.Otel
}

func New(service service.Recorder, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/activities", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetActivities)
	})
}

func (handler *Handler) GetActivities(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActivities")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if subjectID := request.URL.Query().Get(model.FieldSubjectID); subjectID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSubjectID,
			Operator: gDto.FilterOperatorEq,
			Value:    subjectID,
			Table:    model.TableName,
		})
	}

	if activityType := request.URL.Query().Get(model.FieldType); activityType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldType,
			Operator: gDto.FilterOperatorEq,
			Value:    activityType,
			Table:    model.TableName,
		})
	}

	if actorID := request.URL.Query().Get(model.FieldActorID); actorID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActorID,
			Operator: gDto.FilterOperatorEq,
			Value:    actorID,
			Table:    model.TableName,
		})
	}

	activities, err := handler.service.List(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get activities")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, activities)
}
