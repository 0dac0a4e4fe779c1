package lease_test

import (
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	errorspkg "github.com/hitesh22rana/esmigrate/internal/pkg/errors"
	"github.com/hitesh22rana/esmigrate/internal/repository/lease"
)

const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

const extendScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`

func fixedToken() (string, error) {
	return "token", nil
}

func TestAcquire(t *testing.T) {
	tests := []struct {
		name  string
		mock  func(mock redismock.ClientMock)
		want  string
		errIs error
		code  codes.Code
		isErr bool
	}{
		{
			name: "success",
			mock: func(mock redismock.ClientMock) {
				mock.ExpectSetNX(lease.Key("users"), "token", time.Minute).SetVal(true)
			},
			want: "token",
		},
		{
			name: "error: lease held",
			mock: func(mock redismock.ClientMock) {
				mock.ExpectSetNX(lease.Key("users"), "token", time.Minute).SetVal(false)
			},
			errIs: errorspkg.ErrLeaseHeld,
			code:  codes.Aborted,
			isErr: true,
		},
		{
			name: "error: redis unavailable",
			mock: func(mock redismock.ClientMock) {
				mock.ExpectSetNX(lease.Key("users"), "token", time.Minute).SetErr(errors.New("connection refused"))
			},
			code:  codes.Unavailable,
			isErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := redismock.NewClientMock()
			tt.mock(mock)

			repo := lease.New(client, lease.WithTTL(time.Minute), lease.WithTokenGenerator(fixedToken))

			got, err := repo.Acquire(t.Context(), "users")
			if tt.isErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				assert.Equal(t, tt.code, status.Code(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAcquireTokenFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()

	repo := lease.New(client, lease.WithTokenGenerator(func() (string, error) {
		return "", status.Error(codes.Internal, "no entropy")
	}))

	_, err := repo.Acquire(t.Context(), "users")
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelease(t *testing.T) {
	tests := []struct {
		name  string
		mock  func(mock redismock.ClientMock)
		isErr bool
	}{
		{
			name: "success",
			mock: func(mock redismock.ClientMock) {
				mock.ExpectEval(releaseScript, []string{lease.Key("users")}, "token").SetVal(int64(1))
			},
		},
		{
			name: "success: lease already expired",
			mock: func(mock redismock.ClientMock) {
				mock.ExpectEval(releaseScript, []string{lease.Key("users")}, "token").SetVal(int64(0))
			},
		},
		{
			name: "error: redis unavailable",
			mock: func(mock redismock.ClientMock) {
				mock.ExpectEval(releaseScript, []string{lease.Key("users")}, "token").SetErr(errors.New("connection refused"))
			},
			isErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := redismock.NewClientMock()
			tt.mock(mock)

			repo := lease.New(client)

			err := repo.Release(t.Context(), "users", "token")
			if tt.isErr {
				assert.Equal(t, codes.Unavailable, status.Code(err))
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestExtend(t *testing.T) {
	ttl := time.Minute

	tests := []struct {
		name  string
		mock  func(mock redismock.ClientMock)
		errIs error
		code  codes.Code
		isErr bool
	}{
		{
			name: "success",
			mock: func(mock redismock.ClientMock) {
				mock.ExpectEval(extendScript, []string{lease.Key("users")}, "token", ttl.Milliseconds()).SetVal(int64(1))
			},
		},
		{
			name: "error: lease expired or taken over",
			mock: func(mock redismock.ClientMock) {
				mock.ExpectEval(extendScript, []string{lease.Key("users")}, "token", ttl.Milliseconds()).SetVal(int64(0))
			},
			errIs: errorspkg.ErrLeaseLost,
			code:  codes.Aborted,
			isErr: true,
		},
		{
			name: "error: redis unavailable",
			mock: func(mock redismock.ClientMock) {
				mock.ExpectEval(extendScript, []string{lease.Key("users")}, "token", ttl.Milliseconds()).
					SetErr(errors.New("connection refused"))
			},
			code:  codes.Unavailable,
			isErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := redismock.NewClientMock()
			tt.mock(mock)

			repo := lease.New(client, lease.WithTTL(ttl))

			err := repo.Extend(t.Context(), "users", "token")
			if tt.isErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				assert.Equal(t, tt.code, status.Code(err))
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNoop(t *testing.T) {
	var l lease.Noop

	token, err := l.Acquire(t.Context(), "users")
	require.NoError(t, err)
	assert.NoError(t, l.Extend(t.Context(), "users", token))
	assert.NoError(t, l.Release(t.Context(), "users", token))
}
