package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySireExclusivity(t *testing.T) {
	sire := uuid.New()
	c := Cattle{
		SireID:                   &sire,
		ExternalSireName:         "Outside Bull",
		ExternalSireRegistration: "REG-42",
	}
	c.ApplySireExclusivity()
	assert.Equal(t, "", c.ExternalSireName, "an internal sire clears the external fields")
	assert.Equal(t, "", c.ExternalSireRegistration)
	assert.True(t, c.HasInternalSire())

	ext := Cattle{ExternalSireName: "Outside Bull"}
	ext.ApplySireExclusivity()
	assert.Equal(t, "Outside Bull", ext.ExternalSireName)
	assert.False(t, ext.HasInternalSire())
}

func TestRemoteCalfSex(t *testing.T) {
	tests := []struct {
		in   Sex
		want string
	}{
		{SexBull, "Bull"},
		{SexSteer, "Bull"},
		{SexHeifer, "Heifer"},
		{SexCow, "Heifer"},
		{SexUnknown, ""},
		{Sex(""), ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RemoteCalfSex(tt.in), "RemoteCalfSex(%q)", tt.in)
	}
}

func TestPregnancyRangeMode(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)

	p := PregnancyRecord{BreedingStartDate: &start, BreedingEndDate: &end}
	assert.True(t, p.InRangeMode())

	single := PregnancyRecord{BreedingDate: &start}
	assert.False(t, single.InRangeMode())

	halfOpen := PregnancyRecord{BreedingStartDate: &start}
	assert.False(t, halfOpen.InRangeMode(), "a range needs both ends")
}

func TestGestationDaysElapsed(t *testing.T) {
	bred := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	p := PregnancyRecord{BreedingDate: &bred}

	now := bred.AddDate(0, 0, 100)
	assert.Equal(t, 100, p.GestationDaysElapsed(now))

	empty := PregnancyRecord{}
	assert.Equal(t, 0, empty.GestationDaysElapsed(now))
}

func TestPregnancyStatusVocabulary(t *testing.T) {
	require.True(t, PregnancyCalved.IsTerminal())
	require.True(t, PregnancyLost.IsTerminal())
	assert.False(t, PregnancyConfirmed.IsTerminal())
	assert.False(t, PregnancyStatus("maybe").IsValid())
}

func TestContactPrimaryLookups(t *testing.T) {
	c := Contact{
		Phones: []PhoneNumber{
			{Number: "555-0100"},
			{Number: "555-0199", Primary: true},
		},
		Emails: []EmailAddress{
			{Address: "office@example.com"},
		},
	}
	assert.Equal(t, "555-0199", c.PrimaryPhone())
	assert.Equal(t, "office@example.com", c.PrimaryEmail(), "first entry serves when none is flagged primary")

	var empty Contact
	assert.Equal(t, "", empty.PrimaryPhone())
}
