package errors_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	errorspkg "github.com/hitesh22rana/esmigrate/internal/pkg/errors"
)

func TestWrap(t *testing.T) {
	err := errorspkg.Wrap(errorspkg.ErrLedgerRead, codes.Internal, io.ErrUnexpectedEOF, "target %s", "users")

	assert.True(t, errors.Is(err, errorspkg.ErrLedgerRead))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.False(t, errors.Is(err, errorspkg.ErrLedgerWrite))
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Equal(t, "ledger read failed: target users: unexpected EOF", err.Error())
}

func TestNew(t *testing.T) {
	err := errorspkg.New(errorspkg.ErrNotFound, codes.NotFound, "index %s", "users_v1")

	assert.True(t, errorspkg.IsNotFound(err))
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, "not found: index users_v1", err.Error())
}

func TestNestedClassification(t *testing.T) {
	inner := errorspkg.New(errorspkg.ErrUnknownMigrationKind, codes.FailedPrecondition, "kind %q", "V9")
	outer := errorspkg.Wrap(errorspkg.ErrLedgerRead, codes.Internal, inner, "target users")

	assert.True(t, errors.Is(outer, errorspkg.ErrLedgerRead))
	assert.True(t, errors.Is(outer, errorspkg.ErrUnknownMigrationKind))
	assert.Equal(t, codes.Internal, status.Code(outer))
}
