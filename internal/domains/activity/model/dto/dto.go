package dto

import (
	"github.com/google/uuid"

	"hotelier/internal/domains/activity/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	"hotelier/shared/timezone"
)

// Entry describes one auditable event. Actor fields are taken from the
// request context by the recorder, not from the caller.
type Entry struct {
	Type        string
	SubjectType string
	SubjectID   string
	Detail      string
}

func (e *Entry) ToModel(actorID, actorRole string) model.Activity {
	return model.Activity{
		ID:          uuid.NewString(),
		Type:        e.Type,
		ActorID:     actorID,
		ActorRole:   actorRole,
		SubjectType: e.SubjectType,
		SubjectID:   e.SubjectID,
		Detail:      e.Detail,
		CreatedAt:   timezone.Now(),
	}
}

type ActivityResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	ActorID     string `json:"actor_id"`
	ActorRole   string `json:"actor_role"`
	SubjectType string `json:"subject_type"`
	SubjectID   string `json:"subject_id"`
	Detail      string `json:"detail,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func (r *ActivityResponse) FromModel(mod model.Activity) {
	r.ID = mod.ID
	r.Type = mod.Type
	r.ActorID = mod.ActorID
	r.ActorRole = mod.ActorRole
	r.SubjectType = mod.SubjectType
	r.SubjectID = mod.SubjectID
	r.Detail = mod.Detail
	r.CreatedAt = timezone.Format(mod.CreatedAt, constant.DateFormat)
}

type GetActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetActivitiesResponse) FromModels(models []model.Activity, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Activities = make([]ActivityResponse, len(models))
	for i, mod := range models {
		r.Activities[i].FromModel(mod)
	}
}
