package events

import (
	"time"

	"github.com/google/uuid"
)

// Entity names used in change notifications.
const (
	EntityRole            = "role"
	EntityStaff           = "staff"
	EntityPatient         = "patient"
	EntityAppointment     = "appointment"
	EntityMedicalRecord   = "medical_record"
	EntityFinancialRecord = "financial_record"
)

// Change operations.
const (
	OpCreated     = "created"
	OpUpdated     = "updated"
	OpDeleted     = "deleted"
	OpDeactivated = "deactivated"
)

const EventTypeEntityChanged = "store.entity_changed"

// EntityChangedEvent is published after every durable write so open page
// sessions can re-fetch the tables they render.
type EntityChangedEvent struct {
	BaseEvent
	Entity   string `json:"entity"`
	EntityID int64  `json:"entity_id"`
	Op       string `json:"op"`
}

func NewEntityChangedEvent(entity string, entityID int64, op string) *EntityChangedEvent {
	return &EntityChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEntityChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"entity":    entity,
				"entity_id": entityID,
				"op":        op,
			},
		},
		Entity:   entity,
		EntityID: entityID,
		Op:       op,
	}
}
