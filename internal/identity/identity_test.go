package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/roach88/fittrack/internal/store"
	"github.com/roach88/fittrack/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := testutil.NewStore(t)
	return NewService(st, zaptest.NewLogger(t)), st
}

func countUsers(t *testing.T, st *store.Store, username string) int64 {
	t.Helper()
	n, err := st.Count(context.Background(), "SELECT COUNT(*) FROM users WHERE username = ?", username)
	require.NoError(t, err)
	return n
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid", "Secret!Pass", true},
		{"backslash special", `Abcdefg\`, true},
		{"tilde special", "Abcdefg~", true},
		{"exactly seven", "Abcde!f", true},
		{"too short", "Ab!def", false},
		{"no uppercase", "secret!pass", false},
		{"no special", "SecretPass", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidPassword)
			}
		})
	}
}

func TestValidateUsername_CountsCharacters(t *testing.T) {
	assert.NoError(t, ValidateUsername("alice"))
	assert.NoError(t, ValidateUsername("jos\u00e9e"), "five runes, more than five bytes")
	assert.ErrorIs(t, ValidateUsername("bob"), ErrInvalidUsername)
	assert.ErrorIs(t, ValidateUsername("abcd"), ErrInvalidUsername)
}

func TestCreateAccountThenLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateAccount(ctx, "alice", "Secret!Pass"))

	ok, err := svc.Login(ctx, "alice", "Secret!Pass")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.CreateAccount(ctx, "alice", "Secret!Pass"))

	ok, err := svc.Login(ctx, "alice", "secret!pass")
	require.NoError(t, err)
	assert.False(t, ok, "comparison is exact")

	ok, err = svc.Login(ctx, "nobody", "Secret!Pass")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateAccount_ShortUsername(t *testing.T) {
	svc, st := newTestService(t)

	err := svc.CreateAccount(context.Background(), "bob", "Secret!Pass")
	assert.ErrorIs(t, err, ErrInvalidUsername)
	assert.Zero(t, countUsers(t, st, "bob"))
}

func TestCreateAccount_UsernameCheckedFirst(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.CreateAccount(context.Background(), "bob", "weak")
	assert.ErrorIs(t, err, ErrInvalidUsername)
}

func TestCreateAccount_InvalidPassword(t *testing.T) {
	svc, st := newTestService(t)

	err := svc.CreateAccount(context.Background(), "alice", "password")
	assert.ErrorIs(t, err, ErrInvalidPassword)
	assert.Zero(t, countUsers(t, st, "alice"))
}

func TestCreateAccount_Duplicate(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateAccount(ctx, "alice", "Secret!Pass"))
	err := svc.CreateAccount(ctx, "alice", "Other!Pass")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.Equal(t, int64(1), countUsers(t, st, "alice"))
}

func TestCreateAccount_NormalizedDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateAccount(ctx, "Ren\u00e9e", "Secret!Pass"))
	err := svc.CreateAccount(ctx, "Rene\u0301e", "Secret!Pass")
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	ok, err := svc.Login(ctx, "Rene\u0301e", "Secret!Pass")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateAccount_StoresPasswordVerbatim(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.CreateAccount(ctx, "alice", "Secret!Pass"))

	n, err := st.Count(ctx, "SELECT COUNT(*) FROM users WHERE username = ? AND password = ?", "alice", "Secret!Pass")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestLogin_StoreFailure(t *testing.T) {
	svc, st := newTestService(t)
	require.NoError(t, st.Close())

	_, err := svc.Login(context.Background(), "alice", "Secret!Pass")
	var storeErr *store.Error
	assert.ErrorAs(t, err, &storeErr)
}
