package codec

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/herdline-inc/herd-engine/pkg/apperrors"
	"github.com/herdline-inc/herd-engine/pkg/timeutil"
)

// Decoder extracts typed fields from a payload. It carries a sticky error:
// the first missing-required-field or coercion failure is recorded and every
// later accessor becomes a no-op, so translators read all fields straight
// through and check Err once at the end.
type Decoder struct {
	entity  string
	payload Payload
	logger  *zap.Logger
	err     error
}

// NewDecoder wraps a payload for the named entity. The logger is used only
// for unparseable-timestamp warnings and may be nil in tests.
func NewDecoder(entity string, p Payload, logger *zap.Logger) *Decoder {
	return &Decoder{entity: entity, payload: p, logger: logger}
}

// Err returns the first failure recorded by any accessor, or nil.
func (d *Decoder) Err() error {
	return d.err
}

// Has reports whether any of the candidate keys carries a non-null value.
func (d *Decoder) Has(keys ...string) bool {
	return d.payload.Has(keys...)
}

func (d *Decoder) fail(key, want, got string) {
	if d.err == nil {
		d.err = &apperrors.CoercionError{Entity: d.entity, Key: key, Want: want, Got: got}
	}
}

func (d *Decoder) missing(key string) {
	if d.err == nil {
		d.err = &apperrors.MissingFieldError{Entity: d.entity, Key: key}
	}
}

// String returns the first present candidate coerced to a string, or "" when
// all are absent. Numbers and booleans found in text columns coerce rather
// than fail; older clients wrote both.
func (d *Decoder) String(keys ...string) string {
	if d.err != nil {
		return ""
	}
	v, ok := d.payload.First(keys...)
	if !ok {
		return ""
	}
	return v.CoerceString()
}

// StringPtr is String but distinguishes absent (nil) from empty.
func (d *Decoder) StringPtr(keys ...string) *string {
	if d.err != nil {
		return nil
	}
	v, ok := d.payload.First(keys...)
	if !ok {
		return nil
	}
	s := v.CoerceString()
	return &s
}

// RequiredString records a MissingFieldError when no candidate is present.
func (d *Decoder) RequiredString(keys ...string) string {
	if d.err != nil {
		return ""
	}
	v, ok := d.payload.First(keys...)
	if !ok {
		d.missing(keys[0])
		return ""
	}
	return v.CoerceString()
}

// Float returns a numeric field, accepting numeric strings. A non-numeric
// value records a CoercionError.
func (d *Decoder) Float(keys ...string) *float64 {
	if d.err != nil {
		return nil
	}
	v, ok := d.payload.First(keys...)
	if !ok {
		return nil
	}
	n, ok := v.CoerceNumber()
	if !ok {
		d.fail(keys[0], "number", v.Kind().String())
		return nil
	}
	return &n
}

// Int is Float truncated to an int pointer.
func (d *Decoder) Int(keys ...string) *int {
	f := d.Float(keys...)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// Bool returns a boolean field, defaulting to false when absent.
func (d *Decoder) Bool(keys ...string) bool {
	if d.err != nil {
		return false
	}
	v, ok := d.payload.First(keys...)
	if !ok {
		return false
	}
	b, isBool := v.AsBool()
	if !isBool {
		d.fail(keys[0], "bool", v.Kind().String())
		return false
	}
	return b
}

// Time parses a timestamp field. Unparseable text yields nil with a logged
// warning, never an error; a missing timestamp must not sink the record.
func (d *Decoder) Time(keys ...string) *time.Time {
	if d.err != nil {
		return nil
	}
	v, ok := d.payload.First(keys...)
	if !ok {
		return nil
	}
	s, isStr := v.AsString()
	if !isStr {
		d.fail(keys[0], "timestamp string", v.Kind().String())
		return nil
	}
	return timeutil.Parse(s, d.logger)
}

// UUID parses an identifier field. Malformed UUID text records a
// CoercionError since identifiers are load-bearing for linking.
func (d *Decoder) UUID(keys ...string) *uuid.UUID {
	if d.err != nil {
		return nil
	}
	v, ok := d.payload.First(keys...)
	if !ok {
		return nil
	}
	s, isStr := v.AsString()
	if !isStr {
		d.fail(keys[0], "uuid string", v.Kind().String())
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		d.fail(keys[0], "uuid", "malformed string")
		return nil
	}
	return &id
}

// RequiredUUID records a MissingFieldError when no candidate is present.
func (d *Decoder) RequiredUUID(keys ...string) uuid.UUID {
	ptr := d.UUID(keys...)
	if ptr == nil {
		if d.err == nil {
			d.missing(keys[0])
		}
		return uuid.Nil
	}
	return *ptr
}

// StringSlice decodes a JSON string array, coercing scalar elements.
func (d *Decoder) StringSlice(keys ...string) []string {
	if d.err != nil {
		return nil
	}
	v, ok := d.payload.First(keys...)
	if !ok {
		return nil
	}
	arr, isArr := v.AsArray()
	if !isArr {
		d.fail(keys[0], "array", v.Kind().String())
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		if el.IsNull() {
			continue
		}
		out = append(out, el.CoerceString())
	}
	return out
}

// UUIDSlice decodes a JSON array of identifiers. Individual malformed
// entries are dropped rather than failing the record; a missing link retries
// on the next pass, a sunk record does not.
func (d *Decoder) UUIDSlice(keys ...string) []uuid.UUID {
	if d.err != nil {
		return nil
	}
	v, ok := d.payload.First(keys...)
	if !ok {
		return nil
	}
	arr, isArr := v.AsArray()
	if !isArr {
		d.fail(keys[0], "array", v.Kind().String())
		return nil
	}
	out := make([]uuid.UUID, 0, len(arr))
	for _, el := range arr {
		s, isStr := el.AsString()
		if !isStr {
			continue
		}
		id, err := uuid.Parse(s)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Object returns a nested payload (used for embedded sub-collections).
func (d *Decoder) Object(keys ...string) (Payload, bool) {
	if d.err != nil {
		return nil, false
	}
	v, ok := d.payload.First(keys...)
	if !ok {
		return nil, false
	}
	m, isObj := v.AsObject()
	if !isObj {
		d.fail(keys[0], "object", v.Kind().String())
		return nil, false
	}
	return Payload(m), true
}

// ObjectSlice returns a nested array of payloads.
func (d *Decoder) ObjectSlice(keys ...string) []Payload {
	if d.err != nil {
		return nil
	}
	v, ok := d.payload.First(keys...)
	if !ok {
		return nil
	}
	arr, isArr := v.AsArray()
	if !isArr {
		d.fail(keys[0], "array", v.Kind().String())
		return nil
	}
	out := make([]Payload, 0, len(arr))
	for _, el := range arr {
		m, isObj := el.AsObject()
		if !isObj {
			continue
		}
		out = append(out, Payload(m))
	}
	return out
}
