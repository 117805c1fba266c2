package models

import (
	"time"

	"github.com/google/uuid"
)

// PregnancyStatus values. Server data has historically carried mixed-case
// forms; translators case-fold before comparing.
type PregnancyStatus string

const (
	PregnancyPending   PregnancyStatus = "pending"
	PregnancyBred      PregnancyStatus = "bred"
	PregnancyExposed   PregnancyStatus = "exposed"
	PregnancyConfirmed PregnancyStatus = "confirmed"
	PregnancyOpen      PregnancyStatus = "open"
	PregnancyCalved    PregnancyStatus = "calved"
	PregnancyLost      PregnancyStatus = "lost"
)

// IsValid returns true if the status is a known vocabulary member.
func (s PregnancyStatus) IsValid() bool {
	switch s {
	case PregnancyPending, PregnancyBred, PregnancyExposed, PregnancyConfirmed,
		PregnancyOpen, PregnancyCalved, PregnancyLost:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status admits no further transitions.
func (s PregnancyStatus) IsTerminal() bool {
	return s == PregnancyCalved || s == PregnancyLost
}

// BreedingMethod values.
type BreedingMethod string

const (
	BreedingNatural        BreedingMethod = "natural"
	BreedingAI             BreedingMethod = "ai"
	BreedingEmbryoTransfer BreedingMethod = "embryo_transfer"
)

// IsValid returns true if the method is a known vocabulary member.
func (m BreedingMethod) IsValid() bool {
	switch m {
	case BreedingNatural, BreedingAI, BreedingEmbryoTransfer:
		return true
	default:
		return false
	}
}

// Provenance distinguishes user-entered records from ones the engine
// synthesized (pregnancy backfill for orphaned calvings). Records decoded
// from the remote always carry a concrete value: translators fold absent or
// unknown markers to ProvenanceUser.
type Provenance string

const (
	ProvenanceUser      Provenance = "user"
	ProvenanceSynthetic Provenance = "synthetic"
)

// GestationDays is the average bovine gestation length used when estimating
// a breeding date from a calving date.
const GestationDays = 283

// PregnancyRecord tracks one breeding through confirmation to calving or
// loss. Exposure windows are recorded as a date range; the legacy single
// breeding date is mirrored from the range start for older readers.
type PregnancyRecord struct {
	SyncMeta

	DamID                    uuid.UUID  `json:"dam_id"`
	SireID                   *uuid.UUID `json:"sire_id,omitempty"`
	ExternalSireName         string     `json:"external_sire_name,omitempty"`
	ExternalSireRegistration string     `json:"external_sire_registration,omitempty"`

	Status PregnancyStatus `json:"status"`

	BreedingDate      *time.Time `json:"breeding_date,omitempty"`
	BreedingStartDate *time.Time `json:"breeding_start_date,omitempty"`
	BreedingEndDate   *time.Time `json:"breeding_end_date,omitempty"`

	ExpectedCalvingDate  *time.Time `json:"expected_calving_date,omitempty"`
	ExpectedCalvingStart *time.Time `json:"expected_calving_start,omitempty"`
	ExpectedCalvingEnd   *time.Time `json:"expected_calving_end,omitempty"`

	ConfirmationDate   *time.Time `json:"confirmation_date,omitempty"`
	ConfirmationMethod string     `json:"confirmation_method,omitempty"`

	Method       BreedingMethod `json:"method"`
	AITechnician string         `json:"ai_technician,omitempty"`
	SemenSource  string         `json:"semen_source,omitempty"`

	Provenance     Provenance `json:"provenance"`
	ProvenanceNote string     `json:"provenance_note,omitempty"`
}

// Entity implements Record.
func (p *PregnancyRecord) Entity() EntityType {
	return EntityPregnancy
}

// InRangeMode reports whether the exposure window is authoritative. When
// true the single breeding date is a mirror of the range start.
func (p *PregnancyRecord) InRangeMode() bool {
	return p.BreedingStartDate != nil && p.BreedingEndDate != nil
}

// GestationDaysElapsed computes days since breeding as of the given time.
// Derived at read time, never pushed to the remote. Returns 0 when no
// breeding date is known.
func (p *PregnancyRecord) GestationDaysElapsed(now time.Time) int {
	start := p.BreedingDate
	if p.BreedingStartDate != nil {
		start = p.BreedingStartDate
	}
	if start == nil {
		return 0
	}
	days := int(now.Sub(*start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ApplySireExclusivity mirrors Cattle.ApplySireExclusivity for the
// pregnancy's sire fields.
func (p *PregnancyRecord) ApplySireExclusivity() {
	if p.SireID != nil {
		p.ExternalSireName = ""
		p.ExternalSireRegistration = ""
	}
}
