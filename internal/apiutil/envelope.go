package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Shape tags which form a response body took on the wire.
type Shape int

const (
	ShapeEmpty    Shape = iota // null, missing or unusable body
	ShapeArray                 // bare JSON array
	ShapeEnvelope              // {"data"|"items": [...], "pagination"|"meta": {...}}
	ShapeEntity                // single JSON object
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeEnvelope:
		return "envelope"
	case ShapeEntity:
		return "entity"
	}
	return "empty"
}

// Meta is the pagination block a server may attach to a list. Every field is
// optional; nil means the server did not say.
type Meta struct {
	Page       *int  `json:"page,omitempty"`
	Limit      *int  `json:"limit,omitempty"`
	Total      *int  `json:"total,omitempty"`
	TotalPages *int  `json:"totalPages,omitempty"`
	HasNext    *bool `json:"hasNext,omitempty"`
	HasPrev    *bool `json:"hasPrev,omitempty"`
	HasMore    *bool `json:"hasMore,omitempty"`
}

var (
	pageKeys       = []string{"page", "current_page", "currentPage"}
	limitKeys      = []string{"limit", "per_page", "perPage", "page_size", "pageSize"}
	totalKeys      = []string{"total", "total_count", "totalCount", "count"}
	totalPagesKeys = []string{"totalPages", "total_pages", "pages"}
	hasNextKeys    = []string{"hasNext", "has_next", "hasNextPage"}
	hasPrevKeys    = []string{"hasPrev", "has_prev", "hasPrevPage", "hasPrevious"}
	hasMoreKeys    = []string{"hasMore", "has_more"}
)

// UnmarshalJSON accepts camelCase and snake_case field names, and numbers
// sent as strings.
func (m *Meta) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*m = metaFromFields(raw)
	return nil
}

// Empty reports whether no field was supplied.
func (m Meta) Empty() bool {
	return m == Meta{}
}

func metaFromFields(raw map[string]json.RawMessage) Meta {
	return Meta{
		Page:       intField(raw, pageKeys),
		Limit:      intField(raw, limitKeys),
		Total:      intField(raw, totalKeys),
		TotalPages: intField(raw, totalPagesKeys),
		HasNext:    boolField(raw, hasNextKeys),
		HasPrev:    boolField(raw, hasPrevKeys),
		HasMore:    boolField(raw, hasMoreKeys),
	}
}

func intField(raw map[string]json.RawMessage, keys []string) *int {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		var n json.Number
		if err := json.Unmarshal(v, &n); err == nil {
			if i := parseIntOr(n, -1); i >= 0 {
				return &i
			}
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			if i := parseIntOr(s, -1); i >= 0 {
				return &i
			}
		}
	}
	return nil
}

func boolField(raw map[string]json.RawMessage, keys []string) *bool {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		var b bool
		if err := json.Unmarshal(v, &b); err == nil {
			return &b
		}
	}
	return nil
}

// Envelope is the decoded, tagged form of a response body. Controllers work
// on this instead of sniffing raw JSON.
type Envelope[T any] struct {
	Shape Shape
	Items []T
	Item  *T
	Meta  *Meta
}

// ArrayOf builds a bare-array envelope.
func ArrayOf[T any](items ...T) Envelope[T] {
	if items == nil {
		items = []T{}
	}
	return Envelope[T]{Shape: ShapeArray, Items: items}
}

// Paged builds an enveloped list.
func Paged[T any](items []T, meta Meta) Envelope[T] {
	if items == nil {
		items = []T{}
	}
	return Envelope[T]{Shape: ShapeEnvelope, Items: items, Meta: &meta}
}

// EntityOf builds a single-object envelope.
func EntityOf[T any](item T) Envelope[T] {
	return Envelope[T]{Shape: ShapeEntity, Item: &item}
}

// Empty builds the canonical empty envelope.
func Empty[T any]() Envelope[T] {
	return Envelope[T]{Shape: ShapeEmpty}
}

// List returns the items of a list-shaped envelope and an empty slice for
// anything else.
func (e Envelope[T]) List() []T {
	switch e.Shape {
	case ShapeArray, ShapeEnvelope:
		if e.Items != nil {
			return e.Items
		}
	}
	return []T{}
}

// Entity returns the single object, if the envelope holds one.
func (e Envelope[T]) Entity() (T, bool) {
	if e.Shape == ShapeEntity && e.Item != nil {
		return *e.Item, true
	}
	var zero T
	return zero, false
}

// MarshalJSON writes the envelope back out in the shape it was read from.
func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	switch e.Shape {
	case ShapeArray:
		return json.Marshal(e.List())
	case ShapeEnvelope:
		out := struct {
			Data       []T   `json:"data"`
			Pagination *Meta `json:"pagination,omitempty"`
		}{Data: e.List(), Pagination: e.Meta}
		return json.Marshal(out)
	case ShapeEntity:
		if e.Item != nil {
			return json.Marshal(e.Item)
		}
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes leniently; see DecodeEnvelope.
func (e *Envelope[T]) UnmarshalJSON(b []byte) error {
	env, err := DecodeEnvelope[T](b)
	*e = env
	return err
}

// ErrMalformed marks a body that could not be decoded into any known shape.
var ErrMalformed = errors.New("malformed response body")

// DecodeEnvelope sorts a raw body into one of the four shapes. On malformed
// input it returns an empty envelope together with an ErrMalformed-wrapped
// error, so callers that only care about rendering can ignore the error.
func DecodeEnvelope[T any](raw []byte) (Envelope[T], error) {
	body := bytes.TrimSpace(raw)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return Empty[T](), nil
	}

	switch body[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return Empty[T](), fmt.Errorf("%w: array: %v", ErrMalformed, err)
		}
		return ArrayOf(items...), nil
	case '{':
		return decodeObject[T](body)
	}

	log.Warn().
		Int("body_length", len(body)).
		Msg("response body is neither an array nor an object")
	return Empty[T](), fmt.Errorf("%w: unexpected %q", ErrMalformed, body[0])
}

func decodeObject[T any](body []byte) (Envelope[T], error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return Empty[T](), fmt.Errorf("%w: object: %v", ErrMalformed, err)
	}

	for _, key := range []string{"data", "items"} {
		v, ok := fields[key]
		if !ok {
			continue
		}
		v = bytes.TrimSpace(v)
		switch {
		case len(v) == 0 || bytes.Equal(v, []byte("null")):
			return Envelope[T]{Shape: ShapeEnvelope, Items: []T{}, Meta: metaOf(fields)}, nil
		case v[0] == '[':
			var items []T
			if err := json.Unmarshal(v, &items); err != nil {
				return Empty[T](), fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
			}
			if items == nil {
				items = []T{}
			}
			return Envelope[T]{Shape: ShapeEnvelope, Items: items, Meta: metaOf(fields)}, nil
		case v[0] == '{':
			var item T
			if err := json.Unmarshal(v, &item); err != nil {
				return Empty[T](), fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
			}
			return EntityOf(item), nil
		}
	}

	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		return Empty[T](), fmt.Errorf("%w: entity: %v", ErrMalformed, err)
	}
	return EntityOf(item), nil
}

// metaOf prefers an explicit pagination/meta block and falls back to paging
// fields set at the top level of the envelope.
func metaOf(fields map[string]json.RawMessage) *Meta {
	for _, key := range []string{"pagination", "meta"} {
		v, ok := fields[key]
		if !ok {
			continue
		}
		var m Meta
		if err := json.Unmarshal(v, &m); err == nil && !m.Empty() {
			return &m
		}
	}
	if m := metaFromFields(fields); !m.Empty() {
		return &m
	}
	return nil
}

// ValidateStrict checks raw against the shape kind expects and reports any
// drift. It is the strict counterpart of ValidateResponse and is meant for
// tests and contract checks, not for the rendering path.
func ValidateStrict(raw []byte, kind Kind) error {
	if !kind.Known() {
		return fmt.Errorf("unknown response kind %q", kind)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%s: invalid JSON: %w", kind, err)
	}

	if kind.IsEntity() {
		if _, ok := v.(map[string]any); !ok {
			return fmt.Errorf("%s: expected object, got %s", kind, jsonType(v))
		}
		return nil
	}

	switch t := v.(type) {
	case []any:
		return nil
	case map[string]any:
		items, key := t["data"], "data"
		if items == nil {
			items, key = t["items"], "items"
		}
		if _, ok := items.([]any); !ok {
			return fmt.Errorf("%s: expected %q to be an array, got %s", kind, key, jsonType(items))
		}
		for _, mk := range []string{"pagination", "meta"} {
			mv, ok := t[mk]
			if !ok {
				continue
			}
			m, ok := mv.(map[string]any)
			if !ok {
				return fmt.Errorf("%s: expected %q to be an object, got %s", kind, mk, jsonType(mv))
			}
			for _, f := range []string{"page", "limit", "total", "totalPages", "total_pages"} {
				fv, ok := m[f]
				if !ok {
					continue
				}
				n, ok := fv.(json.Number)
				if !ok {
					return fmt.Errorf("%s: %s.%s must be a number, got %s", kind, mk, f, jsonType(fv))
				}
				if i, err := n.Int64(); err != nil || i < 0 {
					return fmt.Errorf("%s: %s.%s must be a non-negative integer, got %s", kind, mk, f, n)
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("%s: expected array or envelope, got %s", kind, jsonType(v))
	}
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
