package apiutil

import (
	"math"
	"reflect"

	"github.com/rs/zerolog/log"
)

// Kind tags the shape a caller expects back from an endpoint.
type Kind string

// Collection kinds
const (
	KindDares         Kind = "dares"
	KindActs          Kind = "acts"
	KindSwitchGames   Kind = "switch_games"
	KindNotifications Kind = "notifications"
	KindUsers         Kind = "users"
	KindComments      Kind = "comments"
	KindSubmissions   Kind = "submissions"
)

// Entity kinds
const (
	KindDare         Kind = "dare"
	KindAct          Kind = "act"
	KindSwitchGame   Kind = "switch_game"
	KindNotification Kind = "notification"
	KindUser         Kind = "user"
	KindProfile      Kind = "profile"
	KindSubmission   Kind = "submission"
)

var collectionKinds = map[Kind]bool{
	KindDares:         true,
	KindActs:          true,
	KindSwitchGames:   true,
	KindNotifications: true,
	KindUsers:         true,
	KindComments:      true,
	KindSubmissions:   true,
}

var entityKinds = map[Kind]bool{
	KindDare:         true,
	KindAct:          true,
	KindSwitchGame:   true,
	KindNotification: true,
	KindUser:         true,
	KindProfile:      true,
	KindSubmission:   true,
}

// IsCollection reports whether k names a list endpoint.
func (k Kind) IsCollection() bool { return collectionKinds[k] }

// IsEntity reports whether k names a single-object endpoint.
func (k Kind) IsEntity() bool { return entityKinds[k] }

// Known reports whether k is one of the declared kinds.
func (k Kind) Known() bool { return k.IsCollection() || k.IsEntity() }

// ValidateResponse coerces an arbitrary decoded payload into the shape kind
// expects. Collections come back as a slice (an empty []any when the payload
// is missing or not a sequence); entities come back as the structured value or
// nil. Unknown kinds pass data through untouched. It never panics.
//
// Falsy scalars count as no value for every declared kind: 0, "" and false
// yield nil for an entity kind and an empty []any for a collection kind.
func ValidateResponse(data any, kind Kind) any {
	if isFalsy(data) {
		log.Warn().
			Str("kind", string(kind)).
			Msg("empty API response, using default value")
		return emptyFor(kind, data)
	}

	switch {
	case kind.IsCollection():
		if isSequence(data) {
			return data
		}
		log.Warn().
			Str("kind", string(kind)).
			Str("got", describe(data)).
			Msg("expected a list response")
		return []any{}
	case kind.IsEntity():
		if isStructured(data) {
			return data
		}
		log.Warn().
			Str("kind", string(kind)).
			Str("got", describe(data)).
			Msg("expected an object response")
		return nil
	default:
		log.Warn().
			Str("kind", string(kind)).
			Msg("unknown response kind, passing data through")
		return data
	}
}

func emptyFor(kind Kind, data any) any {
	switch {
	case kind.IsCollection():
		return []any{}
	case kind.IsEntity():
		return nil
	default:
		return data
	}
}

// isFalsy mirrors the loose "no value" test API consumers expect: nil, typed
// nils, false, zero numbers, NaN and the empty string.
func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.String:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func isSequence(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		// raw bytes are a body, not a list
		return rv.Type().Elem().Kind() != reflect.Uint8
	}
	return false
}

func isStructured(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		return !rv.IsNil()
	case reflect.Struct:
		return true
	}
	return false
}

func describe(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
