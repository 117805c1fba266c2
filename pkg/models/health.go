package models

import (
	"time"

	"github.com/google/uuid"
)

// HealthRecord is one treatment, diagnosis, or observation for an animal.
// The veterinarian is free text, not a reference; ranches record outside
// vets that never become Veterinarian rows.
type HealthRecord struct {
	SyncMeta

	AnimalID uuid.UUID  `json:"animal_id"`
	Date     *time.Time `json:"date,omitempty"`

	RecordType string `json:"record_type,omitempty"`
	Condition  string `json:"condition,omitempty"`
	Treatment  string `json:"treatment,omitempty"`

	Veterinarian string `json:"veterinarian,omitempty"`
	Medication   string `json:"medication,omitempty"`
	Dosage       string `json:"dosage,omitempty"`

	TreatmentPlanID *uuid.UUID `json:"treatment_plan_id,omitempty"`

	FollowUpDate *time.Time `json:"follow_up_date,omitempty"`
	FollowUpDone bool       `json:"follow_up_done"`
}

// Entity implements Record.
func (h *HealthRecord) Entity() EntityType {
	return EntityHealth
}
