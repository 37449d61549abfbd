package triggerlog

import "time"

type ListParams struct {
	Source  string `form:"source" binding:"omitempty,oneof=manual deeplink-url notification-tap quick-action geofence-callback"`
	Outcome string `form:"outcome" binding:"omitempty,max=20"`
}

type TriggerLogResponse struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	SourceKey string    `json:"sourceKey"`
	Action    *string   `json:"action,omitempty"`
	Hour      *string   `json:"hour,omitempty"`
	Outcome   string    `json:"outcome"`
	EventID   *string   `json:"eventId,omitempty"`
	Error     *string   `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(l TriggerLog) TriggerLogResponse {
	return TriggerLogResponse{
		ID:        l.ID.String(),
		Source:    l.Source,
		SourceKey: l.SourceKey,
		Action:    l.Action,
		Hour:      l.Hour,
		Outcome:   l.Outcome,
		EventID:   l.EventID,
		Error:     l.Error,
		CreatedAt: l.CreatedAt,
	}
}
