package elasticsearch

import "encoding/json"

// AliasActionType is the kind of an alias action.
type AliasActionType string

// Alias action types.
const (
	AliasActionAdd    AliasActionType = "add"
	AliasActionRemove AliasActionType = "remove"
)

// AliasAction binds or unbinds an alias.
type AliasAction struct {
	Type  AliasActionType
	Index string
	Alias string
}

// AddAlias returns an action binding alias to index.
func AddAlias(index, alias string) AliasAction {
	return AliasAction{Type: AliasActionAdd, Index: index, Alias: alias}
}

// RemoveAlias returns an action unbinding alias from index.
func RemoveAlias(index, alias string) AliasAction {
	return AliasAction{Type: AliasActionRemove, Index: index, Alias: alias}
}

// MarshalJSON encodes the action in the update-aliases wire format.
func (a AliasAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[AliasActionType]map[string]string{
		a.Type: {
			"index": a.Index,
			"alias": a.Alias,
		},
	})
}

// VersionType is the versioning applied to documents written by a reindex.
type VersionType string

// Version types.
const (
	// VersionTypeInternal resets versions on the destination.
	VersionTypeInternal VersionType = "internal"
	// VersionTypeExternal keeps the source documents' versions.
	VersionTypeExternal VersionType = "external"
)
