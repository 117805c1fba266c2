package models

import "github.com/google/uuid"

// PhoneNumber is one entry in a contact's normalized phone collection.
type PhoneNumber struct {
	ID      uuid.UUID `json:"id"`
	Label   string    `json:"label,omitempty"`
	Number  string    `json:"number"`
	Primary bool      `json:"primary"`
}

// EmailAddress is one entry in a contact's normalized email collection.
type EmailAddress struct {
	ID      uuid.UUID `json:"id"`
	Label   string    `json:"label,omitempty"`
	Address string    `json:"address"`
	Primary bool      `json:"primary"`
}

// Person is one named individual attached to a business contact.
type Person struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Role    string    `json:"role,omitempty"`
	Primary bool      `json:"primary"`
}

// Contact is a vendor, buyer, hauler, or other ranch contact. The legacy
// single phone/email/address columns predate the normalized sub-collections
// and are retained for older readers.
type Contact struct {
	SyncMeta

	Name       string `json:"name"`
	IsBusiness bool   `json:"is_business"`
	Notes      string `json:"notes,omitempty"`

	// Legacy single-value columns, kept alongside the collections.
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`

	Phones []PhoneNumber  `json:"phones,omitempty"`
	Emails []EmailAddress `json:"emails,omitempty"`
	People []Person       `json:"people,omitempty"`
}

// Entity implements Record.
func (c *Contact) Entity() EntityType {
	return EntityContact
}

// PrimaryPhone returns the primary entry from the normalized collection,
// falling back to the legacy single column.
func (c *Contact) PrimaryPhone() string {
	for _, p := range c.Phones {
		if p.Primary {
			return p.Number
		}
	}
	if len(c.Phones) > 0 {
		return c.Phones[0].Number
	}
	return c.Phone
}

// PrimaryEmail returns the primary entry from the normalized collection,
// falling back to the legacy single column.
func (c *Contact) PrimaryEmail() string {
	for _, e := range c.Emails {
		if e.Primary {
			return e.Address
		}
	}
	if len(c.Emails) > 0 {
		return c.Emails[0].Address
	}
	return c.Email
}
