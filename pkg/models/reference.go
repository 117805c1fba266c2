package models

import (
	"github.com/google/uuid"
)

// Breed is a read-mostly reference row.
type Breed struct {
	SyncMeta

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// Entity implements Record.
func (b *Breed) Entity() EntityType { return EntityBreed }

// Medication is a read-mostly reference row.
type Medication struct {
	SyncMeta

	Name           string `json:"name"`
	DefaultDosage  string `json:"default_dosage,omitempty"`
	WithdrawalDays *int   `json:"withdrawal_days,omitempty"`
	Notes          string `json:"notes,omitempty"`
	Active         bool   `json:"active"`
}

// Entity implements Record.
func (m *Medication) Entity() EntityType { return EntityMedication }

// ProductionPath is a read-mostly reference row.
type ProductionPath struct {
	SyncMeta

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// Entity implements Record.
func (p *ProductionPath) Entity() EntityType { return EntityProductionPath }

// CattleStage is a read-mostly reference row.
type CattleStage struct {
	SyncMeta

	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	Active    bool   `json:"active"`
}

// Entity implements Record.
func (s *CattleStage) Entity() EntityType { return EntityCattleStage }

// TreatmentPlanStep is one ordered step of a plan. Steps are owned by the
// plan row and travel with it as a nested collection (cascade on delete).
type TreatmentPlanStep struct {
	ID          uuid.UUID `json:"id"`
	StepNumber  int       `json:"step_number"`
	Description string    `json:"description"`
	DayOffset   *int      `json:"day_offset,omitempty"`
	Medication  string    `json:"medication,omitempty"`
	Dosage      string    `json:"dosage,omitempty"`
}

// TreatmentPlan is a reusable multi-step protocol.
type TreatmentPlan struct {
	SyncMeta

	Name        string              `json:"name"`
	Condition   string              `json:"condition,omitempty"`
	Description string              `json:"description,omitempty"`
	Steps       []TreatmentPlanStep `json:"steps,omitempty"`
	Active      bool                `json:"active"`
}

// Entity implements Record.
func (t *TreatmentPlan) Entity() EntityType { return EntityTreatmentPlan }

// Veterinarian is a read-mostly reference row.
type Veterinarian struct {
	SyncMeta

	Name   string `json:"name"`
	Clinic string `json:"clinic,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
	Active bool   `json:"active"`
}

// Entity implements Record.
func (v *Veterinarian) Entity() EntityType { return EntityVeterinarian }

// Processor is a read-mostly reference row.
type Processor struct {
	SyncMeta

	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Active  bool   `json:"active"`
}

// Entity implements Record.
func (p *Processor) Entity() EntityType { return EntityProcessor }

// HealthConditionType is a read-mostly reference row.
type HealthConditionType struct {
	SyncMeta

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// Entity implements Record.
func (h *HealthConditionType) Entity() EntityType { return EntityHealthCondition }
