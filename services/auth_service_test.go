package services

import (
	"context"
	"strings"
	"testing"

	"github.com/Dosada05/bowling-tracker/repositories/memory"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuth(t *testing.T) (AuthService, *memory.Users) {
	t.Helper()
	users := memory.NewUsers()
	return NewAuthService(users, NewBcryptHasher(bcrypt.MinCost)), users
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Username:        gofakeit.Username(),
		Password:        "pw1",
		ConfirmPassword: "pw1",
		FirstName:       gofakeit.FirstName(),
		LastName:        gofakeit.LastName(),
		LeagueNames:     []string{"Tuesday Mixed", "  ", ""},
	}
}

func TestRegister_CreatesUserWithHashedPassword(t *testing.T) {
	auth, users := newAuth(t)
	ctx := context.Background()
	in := validRegistration()

	user, err := auth.Register(ctx, in)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Empty(t, user.PasswordHash)
	require.Len(t, user.Leagues, 1)
	assert.Equal(t, "Tuesday Mixed", user.Leagues[0].Name)

	stored, err := users.GetByUsername(ctx, in.Username)
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw1")))
}

func TestRegister_DuplicateUsernameLeavesStoreUnchanged(t *testing.T) {
	auth, users := newAuth(t)
	ctx := context.Background()
	in := validRegistration()

	_, err := auth.Register(ctx, in)
	require.NoError(t, err)
	before := users.Updates

	in.FirstName = "Someone"
	_, err = auth.Register(ctx, in)
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.Equal(t, before, users.Updates)
	assert.Equal(t, 1, users.Len())
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterInput)
		wantErr error
	}{
		{"missing username", func(in *RegisterInput) { in.Username = "  " }, ErrMissingField},
		{"missing password", func(in *RegisterInput) { in.Password = "" }, ErrMissingField},
		{"missing confirmation", func(in *RegisterInput) { in.ConfirmPassword = "" }, ErrMissingField},
		{"missing first name", func(in *RegisterInput) { in.FirstName = "" }, ErrMissingField},
		{"missing last name", func(in *RegisterInput) { in.LastName = "" }, ErrMissingField},
		{"no leagues", func(in *RegisterInput) { in.LeagueNames = []string{" "} }, ErrMissingField},
		{"password mismatch", func(in *RegisterInput) { in.ConfirmPassword = "pw2" }, ErrPasswordMismatch},
		{"password too long", func(in *RegisterInput) {
			in.Password = strings.Repeat("p", MaxPasswordBytes+1)
			in.ConfirmPassword = in.Password
		}, ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, users := newAuth(t)
			in := validRegistration()
			tt.mutate(&in)

			_, err := auth.Register(context.Background(), in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidation(err))
			assert.Zero(t, users.Len())
		})
	}
}

func TestAuthenticate(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()
	in := validRegistration()
	registered, err := auth.Register(ctx, in)
	require.NoError(t, err)

	user, err := auth.Authenticate(ctx, in.Username, "pw1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = auth.Authenticate(ctx, in.Username, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Authenticate(ctx, "nobody-"+in.Username, "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost).Hash(strings.Repeat("p", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrInvalidField)
	assert.True(t, IsValidation(err))
}
