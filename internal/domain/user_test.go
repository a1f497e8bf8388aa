package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmsato/todoapi/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		email     string
		password  string
		firstName string
		lastName  string
		wantErr   error
	}{
		{
			name:     "valid user",
			email:    "test@example.com",
			password: "pw123456",
		},
		{
			name:      "valid user with names",
			email:     "test@example.com",
			password:  "pw123456",
			firstName: "Taro",
			lastName:  "Yamada",
		},
		{
			name:     "empty email",
			email:    "",
			password: "pw123456",
			wantErr:  domain.ErrEmptyEmail,
		},
		{
			name:     "email without at sign",
			email:    "test.example.com",
			password: "pw123456",
			wantErr:  domain.ErrInvalidEmail,
		},
		{
			name:     "email without domain dot",
			email:    "test@examplecom",
			password: "pw123456",
			wantErr:  domain.ErrInvalidEmail,
		},
		{
			name:     "password too short",
			email:    "test@example.com",
			password: "short",
			wantErr:  domain.ErrPasswordTooShort,
		},
		{
			name:     "password too long",
			email:    "test@example.com",
			password: strings.Repeat("x", 73),
			wantErr:  domain.ErrPasswordTooLong,
		},
		{
			name:      "first name too long",
			email:     "test@example.com",
			password:  "pw123456",
			firstName: strings.Repeat("a", 151),
			wantErr:   domain.ErrNameTooLong,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, err := domain.NewUser(tt.email, tt.password, tt.firstName, tt.lastName)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.Equal(t, tt.email, user.Email)
			assert.True(t, user.IsActive)
			assert.False(t, user.IsStaff)
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a@x.com", domain.NormalizeEmail("A@x.com"))
	assert.Equal(t, "a@x.com", domain.NormalizeEmail("  a@X.COM  "))

	user, err := domain.NewUser("User@Example.COM", "pw123456", "", "")
	require.NoError(t, err)
	assert.Equal(t, "User@Example.COM", user.Email)
	assert.Equal(t, "user@example.com", user.NormalizedEmail())
}

func TestUserValidateLoadedFromStore(t *testing.T) {
	t.Parallel()

	// Users loaded from the store have no plaintext password; the
	// hashed password alone must satisfy validation.
	user := &domain.User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)
}

func TestUserApplyPatch(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("test@example.com", "pw123456", "Old", "Name")
	require.NoError(t, err)
	user.Password = ""
	user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"

	first := "  New  "
	require.NoError(t, user.Apply(domain.UserPatch{FirstName: &first}))
	assert.Equal(t, "New", user.FirstName)
	assert.Equal(t, "Name", user.LastName)

	tooLong := strings.Repeat("a", 151)
	err = user.Apply(domain.UserPatch{LastName: &tooLong})
	assert.ErrorIs(t, err, domain.ErrNameTooLong)
}
