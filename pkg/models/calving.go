package models

import (
	"time"

	"github.com/google/uuid"
)

// CalvingEase values. The remote stores these under a `difficulty` column.
type CalvingEase string

const (
	EaseUnassisted CalvingEase = "unassisted"
	EaseEasyPull   CalvingEase = "easy_pull"
	EaseHardPull   CalvingEase = "hard_pull"
	EaseCaesarean  CalvingEase = "caesarean"
	EaseAbnormal   CalvingEase = "abnormal"
)

// IsValid returns true if the ease is a known vocabulary member.
func (e CalvingEase) IsValid() bool {
	switch e {
	case EaseUnassisted, EaseEasyPull, EaseHardPull, EaseCaesarean, EaseAbnormal:
		return true
	default:
		return false
	}
}

// CalvingRecord is one birth event. The sire is denormalized from the
// pregnancy; the calf link is nullable (stillbirths); the pregnancy link is
// nullable and backfilled on demand by the resolver.
type CalvingRecord struct {
	SyncMeta

	DamID       uuid.UUID  `json:"dam_id"`
	SireID      *uuid.UUID `json:"sire_id,omitempty"`
	CalfID      *uuid.UUID `json:"calf_id,omitempty"`
	PregnancyID *uuid.UUID `json:"pregnancy_id,omitempty"`

	CalvingDate *time.Time  `json:"calving_date,omitempty"`
	Ease        CalvingEase `json:"ease,omitempty"`

	CalfSex         Sex      `json:"calf_sex,omitempty"`
	CalfBirthWeight *float64 `json:"calf_birth_weight,omitempty"`
	CalfVigor       string   `json:"calf_vigor,omitempty"`

	Complications string `json:"complications,omitempty"`
	VetCalled     bool   `json:"vet_called"`
}

// Entity implements Record.
func (c *CalvingRecord) Entity() EntityType {
	return EntityCalving
}

// RemoteCalfSex maps the local calf-sex vocabulary onto the remote's
// restricted {Bull, Heifer} set: Steer pushes as Bull, Cow as Heifer, and
// anything unmapped as "". The mapping is lossy and one-directional; the
// original local value cannot be reconstructed from the remote column.
func RemoteCalfSex(s Sex) string {
	switch s {
	case SexBull, SexSteer:
		return string(SexBull)
	case SexHeifer, SexCow:
		return string(SexHeifer)
	default:
		return ""
	}
}
