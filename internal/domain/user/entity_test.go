package user_test

import (
	"strings"
	"testing"

	"slot-swapper/internal/domain/user"
	"slot-swapper/internal/testutil/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(user.User{}),
	cmpopts.EquateEmpty(),
}

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewUserBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		name, _ := user.NewName("Test User")
		email, _ := user.NewEmail("test@example.com")
		expected, err := user.NewUser(name, email, "hashed_password", b.CreatedAt)
		require.NoError(t, err)

		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("User mismatch (-want +got):\n%s", diff)
		}

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.NotEqual(t, expected.ID(), actual.ID())
		assert.Equal(t, "Test User", actual.Name().Value())
		assert.Equal(t, b.CreatedAt, actual.CreatedAt())
	})

	t.Run("email validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "valid email",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") },
			},
			{
				name:   "empty email",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "invalid format",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalid-email") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing at sign",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalidemail.com") },
				errIs:  user.ErrInvalidEmail,
			},
		})
	})

	t.Run("name validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "max length",
				mutate: func(b *builder.UserBuilder) { b.WithName(strings.Repeat("a", user.MaxNameLength)) },
			},
			{
				name:   "over max length",
				mutate: func(b *builder.UserBuilder) { b.WithName(strings.Repeat("a", user.MaxNameLength+1)) },
				errIs:  user.ErrInvalidName,
			},
			{
				name:   "blank name",
				mutate: func(b *builder.UserBuilder) { b.WithName("   ") },
				errIs:  user.ErrInvalidName,
			},
		})
	})
}

func TestEmail_Normalizes(t *testing.T) {
	email, err := user.NewEmail("  Alice@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email.Value())
}

func TestPassword(t *testing.T) {
	_, err := user.NewPassword(strings.Repeat("a", user.MinPasswordLength-1))
	require.ErrorIs(t, err, user.ErrPasswordTooWeak)

	p, err := user.NewPassword(strings.Repeat("a", user.MinPasswordLength))
	require.NoError(t, err)
	assert.Len(t, p.Value(), user.MinPasswordLength)
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
