// Package codec maps remote payload columns to local field values and back.
//
// Decoding is driven by ordered candidate key lists: each field names its
// primary remote column first, followed by any legacy columns it has been
// renamed from, and the first key present wins. Encoding always emits every
// mapped key, writing explicit JSON null for cleared optional values so the
// remote can distinguish "clear this field" from "no change".
package codec

import "github.com/herdline-inc/herd-engine/pkg/jsonutil"

// Payload is one remote row: snake_case column names mapped to JSON values.
type Payload map[string]jsonutil.Value

// First returns the value for the first candidate key present in the payload
// with a non-null value. A key present with JSON null is treated the same as
// an absent key.
func (p Payload) First(keys ...string) (jsonutil.Value, bool) {
	for _, k := range keys {
		v, present := p[k]
		if present && !v.IsNull() {
			return v, true
		}
	}
	return jsonutil.Null(), false
}

// Has reports whether any of the candidate keys carries a non-null value.
func (p Payload) Has(keys ...string) bool {
	_, ok := p.First(keys...)
	return ok
}
