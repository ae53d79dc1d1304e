package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cocktail-bar-api/config"
	"cocktail-bar-api/models"
	"cocktail-bar-api/repository"
	"cocktail-bar-api/security"
)

var testSecurity = config.SecurityConfig{
	JWTSecret:   "test-secret",
	AdminTTL:    time.Hour,
	ExternalTTL: 7 * 24 * time.Hour,
	BcryptCost:  bcrypt.MinCost,
}

func newAuth(t *testing.T) (*AuthService, *repository.MemoryUserRepository, *security.TokenIssuer) {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	tokens := security.NewTokenIssuer(testSecurity.JWTSecret)
	return NewAuthService(users, tokens, testSecurity), users, tokens
}

func seedUser(t *testing.T, users repository.UserRepository, identifier, password string, role models.UserRole) models.User {
	t.Helper()
	hash, err := security.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		FirstName:    "Test",
		LastName:     "User",
		Identifier:   &identifier,
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, users.Create(context.Background(), &user))
	return user
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	auth, users, tokens := newAuth(t)
	staff := seedUser(t, users, "barman", "Secret1!", models.RoleEmployee)
	seedUser(t, users, "guest", "Secret1!", models.RoleCustomer)

	t.Run("staff gets a one hour token", func(t *testing.T) {
		session, err := auth.Login(ctx, "barman", "Secret1!")
		require.NoError(t, err)
		assert.Equal(t, staff.ID, session.User.ID)

		claims, err := tokens.Verify(session.Token)
		require.NoError(t, err)
		assert.Equal(t, staff.ID, claims.UserID)
		assert.Equal(t, models.RoleEmployee, claims.Role)
		assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := auth.Login(ctx, "", "Secret1!")
		assert.ErrorIs(t, err, ErrValidation)
		_, err = auth.Login(ctx, "barman", "")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := auth.Login(ctx, "nobody", "Secret1!")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Login(ctx, "barman", "Wrong1!!")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("customer is forbidden only with the right password", func(t *testing.T) {
		_, err := auth.Login(ctx, "guest", "Secret1!")
		assert.ErrorIs(t, err, ErrForbidden)
		_, err = auth.Login(ctx, "guest", "Wrong1!!")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRegisterSuperuser(t *testing.T) {
	ctx := context.Background()
	auth, users, _ := newAuth(t)

	user, err := auth.RegisterSuperuser(ctx, RegisterInput{Identifier: "root", Password: "Secret1!"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleSuperuser, user.Role)
	assert.Equal(t, "Admin", user.FirstName)
	assert.Equal(t, "User", user.LastName)

	stored, err := users.FindByIdentifier(ctx, "root")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret1!", stored.PasswordHash)
	assert.True(t, security.CheckPassword(stored.PasswordHash, "Secret1!"))

	_, err = auth.RegisterSuperuser(ctx, RegisterInput{Identifier: "root", Password: "Other1!x"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = auth.RegisterSuperuser(ctx, RegisterInput{Identifier: "root2"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = auth.RegisterSuperuser(ctx, RegisterInput{Identifier: "root3", Password: "password"})
	assert.ErrorIs(t, err, ErrValidation, "weak passwords are rejected")

	_, err = auth.RegisterSuperuser(ctx, RegisterInput{Identifier: strings.Repeat("r", 51), Password: "Secret1!"})
	assert.ErrorIs(t, err, ErrValidation, "identifier is capped at 50 characters")

	_, err = users.FindByIdentifier(ctx, "root3")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	session, err := auth.Login(ctx, "root", "Secret1!")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
}

func TestExternalLogin(t *testing.T) {
	ctx := context.Background()
	auth, users, tokens := newAuth(t)

	_, err := auth.ExternalLogin(ctx, ExternalIdentity{Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrValidation)

	session, err := auth.ExternalLogin(ctx, ExternalIdentity{
		GoogleID:  "g-123",
		Email:     "new@example.com",
		FirstName: "New",
		LastName:  "Customer",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, session.User.Role)

	claims, err := tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	again, err := auth.ExternalLogin(ctx, ExternalIdentity{GoogleID: "g-123"})
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, again.User.ID)

	customerEmail := "regular@example.com"
	regular := seedUser(t, users, "regular", "Secret1!", models.RoleCustomer)
	regular.Email = &customerEmail
	require.NoError(t, users.Update(ctx, &regular))

	linked, err := auth.ExternalLogin(ctx, ExternalIdentity{GoogleID: "g-regular", Email: customerEmail})
	require.NoError(t, err)
	assert.Equal(t, regular.ID, linked.User.ID)

	byGoogle, err := users.FindByGoogleID(ctx, "g-regular")
	require.NoError(t, err)
	assert.Equal(t, regular.ID, byGoogle.ID)
}

func TestExternalLoginCannotClaimOtherAccounts(t *testing.T) {
	ctx := context.Background()
	auth, users, _ := newAuth(t)

	for _, role := range []models.UserRole{models.RoleEmployee, models.RoleSuperuser} {
		t.Run(string(role), func(t *testing.T) {
			email := string(role) + "@bar.test"
			staff := seedUser(t, users, string(role), "Secret1!", role)
			staff.Email = &email
			require.NoError(t, users.Update(ctx, &staff))

			_, err := auth.ExternalLogin(ctx, ExternalIdentity{GoogleID: "g-" + string(role), Email: email})
			assert.ErrorIs(t, err, ErrForbidden)

			stored, err := users.GetByID(ctx, staff.ID)
			require.NoError(t, err)
			assert.Nil(t, stored.GoogleID, "staff account must not be linked")
			_, err = users.FindByGoogleID(ctx, "g-"+string(role))
			assert.ErrorIs(t, err, repository.ErrNotFound)
		})
	}

	t.Run("customer linked to another google account", func(t *testing.T) {
		first, err := auth.ExternalLogin(ctx, ExternalIdentity{GoogleID: "g-owner", Email: "owner@example.com"})
		require.NoError(t, err)

		_, err = auth.ExternalLogin(ctx, ExternalIdentity{GoogleID: "g-intruder", Email: "owner@example.com"})
		assert.ErrorIs(t, err, ErrForbidden)

		again, err := auth.ExternalLogin(ctx, ExternalIdentity{GoogleID: "g-owner"})
		require.NoError(t, err)
		assert.Equal(t, first.User.ID, again.User.ID)
	})

	t.Run("promoted account loses external sign-in", func(t *testing.T) {
		session, err := auth.ExternalLogin(ctx, ExternalIdentity{GoogleID: "g-promoted", Email: "promoted@example.com"})
		require.NoError(t, err)
		promoted := session.User
		promoted.Role = models.RoleEmployee
		require.NoError(t, users.Update(ctx, &promoted))

		_, err = auth.ExternalLogin(ctx, ExternalIdentity{GoogleID: "g-promoted"})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}
