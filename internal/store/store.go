// Package store is the document store adapter: schemaless collections with
// point writes and push subscriptions that always deliver the full current list.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"biowearth/internal/model"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrInvalidFields = errors.New("document fields are not a JSON object")
)

// Reserved field names. The id lives outside the stored body; createdAt is
// stamped by Create.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
)

// Fields is one document body, or a partial body for Update.
type Fields map[string]any

// Clone returns a deep copy: nested maps and slices are copied too.
func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case Fields:
		return map[string]any(t.Clone())
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	default:
		return v
	}
}

// String returns the field as a string, "" when absent or not a string.
func (f Fields) String(key string) string {
	s, _ := f[key].(string)
	return s
}

// Document is one record of a collection as delivered to subscribers.
type Document struct {
	ID     string
	Fields Fields
}

// MarshalJSON flattens the document into its body plus "id".
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Fields)+1)
	for k, v := range d.Fields {
		out[k] = v
	}
	out[FieldID] = d.ID
	return json.Marshal(out)
}

// Decode fills v (a pointer to a typed record) from the document. Type
// mismatches on individual fields leave those fields zero and are reported;
// everything else is still filled in.
func (d Document) Decode(v any) error {
	raw, err := d.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// Listener receives the full list of a collection after every change.
type Listener func(docs []Document)

// Unsubscribe cancels a subscription. Calling it more than once is a no-op.
type Unsubscribe func()

// Adapter is the contract the rest of the application writes through.
type Adapter interface {
	Subscribe(ctx context.Context, coll model.Collection, fn Listener) (Unsubscribe, error)
	Create(ctx context.Context, coll model.Collection, fields Fields) (string, error)
	Update(ctx context.Context, coll model.Collection, id string, fields Fields) error
	Delete(ctx context.Context, coll model.Collection, id string) error
	SetKeyed(ctx context.Context, coll model.Collection, key string, fields Fields) error
}

// Backend persists encoded document bodies. Implementations keep a stable
// natural order per collection (insertion order).
type Backend interface {
	List(ctx context.Context, coll model.Collection) ([]Document, error)
	Insert(ctx context.Context, coll model.Collection, id string, body []byte) error
	// Merge applies fields on top of the stored body (shallow) and returns ErrNotFound
	// when id does not exist.
	Merge(ctx context.Context, coll model.Collection, id string, fields Fields) error
	Remove(ctx context.Context, coll model.Collection, id string) error
	// Put replaces or creates the document stored under id.
	Put(ctx context.Context, coll model.Collection, id string, body []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// ── Body codec ───────────────────────────────────────────────────────────────

// EncodeFields serializes a body, dropping the reserved id field.
func EncodeFields(f Fields) ([]byte, error) {
	body := make(map[string]any, len(f))
	for k, v := range f {
		if k == FieldID {
			continue
		}
		body[k] = v
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	return b, nil
}

// DecodeFields parses a stored body. Numbers are kept as json.Number so they
// round-trip without float rounding.
func DecodeFields(b []byte) (Fields, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return Fields{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var f Fields
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFields, err)
	}
	if f == nil {
		f = Fields{}
	}
	return f, nil
}

// mergeBody overlays fields onto an encoded body.
func mergeBody(body []byte, fields Fields) ([]byte, error) {
	current, err := DecodeFields(body)
	if err != nil {
		return nil, err
	}
	for k, v := range fields {
		if k == FieldID {
			continue
		}
		current[k] = v
	}
	return EncodeFields(current)
}
