package models

import (
	"time"

	"github.com/google/uuid"
)

// Sex values for cattle. Closed vocabulary.
type Sex string

const (
	SexBull    Sex = "Bull"
	SexCow     Sex = "Cow"
	SexHeifer  Sex = "Heifer"
	SexSteer   Sex = "Steer"
	SexUnknown Sex = "Unknown"
)

// IsValid returns true if the sex is a known vocabulary member.
func (s Sex) IsValid() bool {
	switch s {
	case SexBull, SexCow, SexHeifer, SexSteer, SexUnknown:
		return true
	default:
		return false
	}
}

// CattleType values. Absent remote values default to beef.
const (
	CattleTypeBeef  = "Beef"
	CattleTypeDairy = "Dairy"
)

// Cattle is the animal record. Dam and sire are weak references held as
// identifiers; an external sire is free text for animals bred off-ranch and
// is mutually exclusive with SireID.
type Cattle struct {
	SyncMeta

	Tag            string `json:"tag"`
	Name           string `json:"name,omitempty"`
	Sex            Sex    `json:"sex"`
	Stage          string `json:"stage,omitempty"`
	Status         string `json:"status,omitempty"`
	CattleType     string `json:"cattle_type"`
	ProductionPath string `json:"production_path,omitempty"`
	Breed          string `json:"breed,omitempty"`

	CurrentWeight  *float64 `json:"current_weight,omitempty"`
	PurchaseWeight *float64 `json:"purchase_weight,omitempty"`
	WeaningWeight  *float64 `json:"weaning_weight,omitempty"`

	BirthDate      *time.Time `json:"birth_date,omitempty"`
	PurchaseDate   *time.Time `json:"purchase_date,omitempty"`
	WeaningDate    *time.Time `json:"weaning_date,omitempty"`
	ExitDate       *time.Time `json:"exit_date,omitempty"`
	ProcessingDate *time.Time `json:"processing_date,omitempty"`

	DamID                    *uuid.UUID `json:"dam_id,omitempty"`
	SireID                   *uuid.UUID `json:"sire_id,omitempty"`
	ExternalSireName         string     `json:"external_sire_name,omitempty"`
	ExternalSireRegistration string     `json:"external_sire_registration,omitempty"`

	PastureTags []string `json:"pasture_tags,omitempty"`
}

// Entity implements Record.
func (c *Cattle) Entity() EntityType {
	return EntityCattle
}

// HasInternalSire reports whether the animal links to a sire record by ID.
func (c *Cattle) HasInternalSire() bool {
	return c.SireID != nil
}

// ApplySireExclusivity enforces the internal-vs-external sire rule: an
// internal reference clears the free-text fields, and free text is only
// retained when no internal reference exists.
func (c *Cattle) ApplySireExclusivity() {
	if c.SireID != nil {
		c.ExternalSireName = ""
		c.ExternalSireRegistration = ""
	}
}
