package config

import (
	"google.golang.org/grpc/codes"

	errorspkg "github.com/hitesh22rana/esmigrate/internal/pkg/errors"
)

// Well-known settings keys.
const (
	KeyIndex        = "index"
	KeyDocumentType = "type"
	KeyIndexPrefix  = "index_prefix"
)

// Settings is a flat set of named configuration values. Empty values count as absent.
type Settings map[string]string

// Resolve returns the value of key from local, falling back to connector.
// It fails with ErrMissingConfiguration when neither source supplies it.
func Resolve(key string, local, connector Settings) (string, error) {
	if v := local[key]; v != "" {
		return v, nil
	}
	if v := connector[key]; v != "" {
		return v, nil
	}

	return "", errorspkg.New(errorspkg.ErrMissingConfiguration, codes.InvalidArgument, "no value configured for %q", key)
}
