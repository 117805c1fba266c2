package codec

import (
	"time"

	"github.com/google/uuid"

	"github.com/herdline-inc/herd-engine/pkg/jsonutil"
	"github.com/herdline-inc/herd-engine/pkg/timeutil"
)

// Builder assembles an outbound payload. Every mapped column is written,
// with explicit JSON null standing in for cleared optional values.
type Builder struct {
	payload Payload
}

// NewBuilder returns an empty payload builder.
func NewBuilder() *Builder {
	return &Builder{payload: Payload{}}
}

// Payload returns the assembled payload.
func (b *Builder) Payload() Payload {
	return b.payload
}

// Set writes a raw value.
func (b *Builder) Set(key string, v jsonutil.Value) *Builder {
	b.payload[key] = v
	return b
}

// Null writes an explicit null.
func (b *Builder) Null(key string) *Builder {
	b.payload[key] = jsonutil.Null()
	return b
}

// String writes the string as-is, including empty strings. Use for columns
// where "" is a meaningful value rather than a cleared field.
func (b *Builder) String(key, s string) *Builder {
	b.payload[key] = jsonutil.String(s)
	return b
}

// StringOrNull writes null for "", signalling clear-this-field on push.
func (b *Builder) StringOrNull(key, s string) *Builder {
	if s == "" {
		return b.Null(key)
	}
	return b.String(key, s)
}

// StringPtrOrNull writes null for nil pointers.
func (b *Builder) StringPtrOrNull(key string, s *string) *Builder {
	if s == nil {
		return b.Null(key)
	}
	return b.String(key, *s)
}

// Bool writes a boolean.
func (b *Builder) Bool(key string, v bool) *Builder {
	b.payload[key] = jsonutil.Bool(v)
	return b
}

// Float writes a number.
func (b *Builder) Float(key string, n float64) *Builder {
	b.payload[key] = jsonutil.Number(n)
	return b
}

// FloatOrNull writes null for nil pointers.
func (b *Builder) FloatOrNull(key string, n *float64) *Builder {
	if n == nil {
		return b.Null(key)
	}
	return b.Float(key, *n)
}

// Int writes an integer-valued number.
func (b *Builder) Int(key string, n int) *Builder {
	b.payload[key] = jsonutil.Number(float64(n))
	return b
}

// IntOrNull writes null for nil pointers.
func (b *Builder) IntOrNull(key string, n *int) *Builder {
	if n == nil {
		return b.Null(key)
	}
	return b.Int(key, *n)
}

// TimeOrNull writes a canonical fractional-seconds UTC timestamp, or null.
func (b *Builder) TimeOrNull(key string, t *time.Time) *Builder {
	if t == nil {
		return b.Null(key)
	}
	return b.String(key, timeutil.Format(*t))
}

// DateOrNull writes a YYYY-MM-DD date string, or null.
func (b *Builder) DateOrNull(key string, t *time.Time) *Builder {
	if t == nil {
		return b.Null(key)
	}
	return b.String(key, timeutil.DateOnly(*t))
}

// UUIDOrNull writes a canonical UUID string, or null.
func (b *Builder) UUIDOrNull(key string, id *uuid.UUID) *Builder {
	if id == nil {
		return b.Null(key)
	}
	return b.String(key, id.String())
}

// UUID writes a canonical UUID string.
func (b *Builder) UUID(key string, id uuid.UUID) *Builder {
	return b.String(key, id.String())
}

// StringArray writes a JSON string array. nil encodes as an empty array so
// the remote column is reset rather than left unchanged.
func (b *Builder) StringArray(key string, vals []string) *Builder {
	arr := make([]jsonutil.Value, len(vals))
	for i, s := range vals {
		arr[i] = jsonutil.String(s)
	}
	b.payload[key] = jsonutil.Array(arr...)
	return b
}

// UUIDArray writes a JSON array of identifier strings.
func (b *Builder) UUIDArray(key string, ids []uuid.UUID) *Builder {
	arr := make([]jsonutil.Value, len(ids))
	for i, id := range ids {
		arr[i] = jsonutil.String(id.String())
	}
	b.payload[key] = jsonutil.Array(arr...)
	return b
}

// ObjectArray writes a JSON array of nested payloads.
func (b *Builder) ObjectArray(key string, rows []Payload) *Builder {
	arr := make([]jsonutil.Value, len(rows))
	for i, row := range rows {
		arr[i] = jsonutil.Object(map[string]jsonutil.Value(row))
	}
	b.payload[key] = jsonutil.Array(arr...)
	return b
}
