package translate

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/herdline-inc/herd-engine/pkg/apperrors"
	"github.com/herdline-inc/herd-engine/pkg/codec"
	"github.com/herdline-inc/herd-engine/pkg/models"
)

// subEntryID reads a sub-collection entry id, minting one for entries
// written before ids were added to the nested rows.
func subEntryID(d *codec.Decoder) uuid.UUID {
	if id := d.UUID("id"); id != nil {
		return *id
	}
	return uuid.New()
}

// ContactFromPayload decodes one remote contact row, including the
// normalized phone, email, and person sub-collections carried as nested
// JSON. The legacy single phone/email/address columns decode alongside.
func ContactFromPayload(p codec.Payload, logger *zap.Logger) (*models.Contact, error) {
	log := nopLogger(logger)
	d := codec.NewDecoder(string(models.EntityContact), p, log)

	rec := &models.Contact{
		SyncMeta:   decodeMeta(d),
		Name:       d.RequiredString("name"),
		IsBusiness: d.Bool("is_business"),
		Notes:      d.String("notes"),

		Phone:   d.String("phone"),
		Email:   d.String("email"),
		Address: d.String("address"),
	}

	for _, row := range d.ObjectSlice("phone_numbers") {
		sd := codec.NewDecoder(string(models.EntityContact), row, log)
		entry := models.PhoneNumber{
			ID:      subEntryID(sd),
			Label:   sd.String("label"),
			Number:  sd.String("number"),
			Primary: sd.Bool("is_primary"),
		}
		if sd.Err() == nil && entry.Number != "" {
			rec.Phones = append(rec.Phones, entry)
		}
	}

	for _, row := range d.ObjectSlice("email_addresses") {
		sd := codec.NewDecoder(string(models.EntityContact), row, log)
		entry := models.EmailAddress{
			ID:      subEntryID(sd),
			Label:   sd.String("label"),
			Address: sd.String("address"),
			Primary: sd.Bool("is_primary"),
		}
		if sd.Err() == nil && entry.Address != "" {
			rec.Emails = append(rec.Emails, entry)
		}
	}

	for _, row := range d.ObjectSlice("people") {
		sd := codec.NewDecoder(string(models.EntityContact), row, log)
		entry := models.Person{
			ID:      subEntryID(sd),
			Name:    sd.String("name"),
			Role:    sd.String("role"),
			Primary: sd.Bool("is_primary"),
		}
		if sd.Err() == nil && entry.Name != "" {
			rec.People = append(rec.People, entry)
		}
	}

	if err := d.Err(); err != nil {
		return nil, apperrors.NewTranslationError(string(models.EntityContact), "", "decode failed", err)
	}

	return rec, nil
}

// ContactToPayload encodes a local contact, emitting both the legacy single
// columns and the normalized sub-collections.
func ContactToPayload(rec *models.Contact) codec.Payload {
	b := codec.NewBuilder()
	encodeMeta(b, rec.SyncMeta)

	b.String("name", rec.Name).
		Bool("is_business", rec.IsBusiness).
		StringOrNull("notes", rec.Notes).
		StringOrNull("phone", rec.Phone).
		StringOrNull("email", rec.Email).
		StringOrNull("address", rec.Address)

	phones := make([]codec.Payload, len(rec.Phones))
	for i, p := range rec.Phones {
		phones[i] = codec.NewBuilder().
			UUID("id", p.ID).
			StringOrNull("label", p.Label).
			String("number", p.Number).
			Bool("is_primary", p.Primary).
			Payload()
	}
	b.ObjectArray("phone_numbers", phones)

	emails := make([]codec.Payload, len(rec.Emails))
	for i, e := range rec.Emails {
		emails[i] = codec.NewBuilder().
			UUID("id", e.ID).
			StringOrNull("label", e.Label).
			String("address", e.Address).
			Bool("is_primary", e.Primary).
			Payload()
	}
	b.ObjectArray("email_addresses", emails)

	people := make([]codec.Payload, len(rec.People))
	for i, person := range rec.People {
		people[i] = codec.NewBuilder().
			UUID("id", person.ID).
			String("name", person.Name).
			StringOrNull("role", person.Role).
			Bool("is_primary", person.Primary).
			Payload()
	}
	b.ObjectArray("people", people)

	return b.Payload()
}
