package indices

import (
	"maps"
	"strings"
)

// identityFields are engine-assigned index settings that must never be replayed
// into the creation settings of another index.
var identityFields = []string{
	"uuid",
	"version",
	"creation_date",
	"provided_name",
}

// Settings is the settings blob of a physical index, i.e. the value under "settings"
// in a get-settings response (usually a single "index" object).
type Settings map[string]any

// Sanitize returns a copy of the settings without the engine-assigned identity fields.
// The receiver is not modified.
func (s Settings) Sanitize() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		if strings.HasPrefix(k, "index.") && isIdentityField(strings.TrimPrefix(k, "index.")) {
			continue
		}
		out[k] = v
	}

	index, ok := s["index"].(map[string]any)
	if !ok {
		return out
	}

	cleaned := maps.Clone(index)
	for _, field := range identityFields {
		delete(cleaned, field)
	}
	out["index"] = cleaned

	return out
}

func isIdentityField(name string) bool {
	for _, field := range identityFields {
		if name == field || strings.HasPrefix(name, field+".") {
			return true
		}
	}
	return false
}

// Mappings maps a document type to its schema definition.
type Mappings map[string]map[string]any

// Merge returns the mappings to create a destination index with, given overrides.
//
// Only types present in the receiver are considered. A type absent from overrides is
// carried over unchanged. A type present with empty content is removed. A type present
// with non-empty content replaces the current one. Overrides for types the receiver
// does not have are ignored. The receiver is not modified.
func (m Mappings) Merge(overrides Mappings) Mappings {
	out := make(Mappings, len(m))
	for docType, schema := range m {
		override, ok := overrides[docType]
		switch {
		case !ok:
			out[docType] = schema
		case len(override) == 0:
			continue
		default:
			out[docType] = override
		}
	}

	return out
}

// Types returns the document types in m.
func (m Mappings) Types() []string {
	types := make([]string, 0, len(m))
	for docType := range m {
		types = append(types, docType)
	}
	return types
}

// CreateBody builds an index creation body from settings and mappings.
func CreateBody(settings Settings, mappings Mappings) map[string]any {
	body := make(map[string]any, 2)
	if len(settings) != 0 {
		body["settings"] = map[string]any(settings)
	}
	if len(mappings) != 0 {
		body["mappings"] = mappingsBody(mappings)
	}
	return body
}

func mappingsBody(m Mappings) map[string]any {
	out := make(map[string]any, len(m))
	for docType, schema := range m {
		out[docType] = schema
	}
	return out
}
