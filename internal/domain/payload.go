package domain

import "fmt"

// Payload is a decoded JSON object with no enforced schema.
type Payload map[string]any

// Get returns the value under key. A JSON null counts as absent.
func (p Payload) Get(key string) (any, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// GetOr returns the value under key, or fallback when it is absent.
func (p Payload) GetOr(key string, fallback any) any {
	if v, ok := p.Get(key); ok {
		return v
	}
	return fallback
}

// Object returns the nested object under key, or nil when absent or not an object.
func (p Payload) Object(key string) Payload {
	v, ok := p.Get(key)
	if !ok {
		return nil
	}
	switch m := v.(type) {
	case Payload:
		return m
	case map[string]any:
		return Payload(m)
	}
	return nil
}

// String returns the string under key.
func (p Payload) String(key string) (string, bool) {
	v, ok := p.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// List returns the array under key. An absent key yields an empty list;
// a value that is not an array is an error.
func (p Payload) List(key string) ([]any, error) {
	v, ok := p.Get(key)
	if !ok {
		return []any{}, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("field %q is %T, not an array", key, v)
	}
	return list, nil
}

// AsPayload converts a decoded JSON value into a Payload if it is an object.
func AsPayload(v any) (Payload, bool) {
	switch m := v.(type) {
	case Payload:
		return m, true
	case map[string]any:
		return Payload(m), true
	}
	return nil, false
}
