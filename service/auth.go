package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cocktail-bar-api/config"
	"cocktail-bar-api/models"
	"cocktail-bar-api/repository"
	"cocktail-bar-api/security"
)

type AuthService struct {
	users       repository.UserRepository
	tokens      *security.TokenIssuer
	adminTTL    time.Duration
	externalTTL time.Duration
	bcryptCost  int
}

func NewAuthService(users repository.UserRepository, tokens *security.TokenIssuer, cfg config.SecurityConfig) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		adminTTL:    cfg.AdminTTL,
		externalTTL: cfg.ExternalTTL,
		bcryptCost:  cfg.BcryptCost,
	}
}

// Session is the result of a successful login.
type Session struct {
	Token string
	User  models.User
}

// Login authenticates staff by identifier and password. The role is only
// checked once the password matched, so a customer with a wrong password
// sees the same error as an unknown identifier.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return Session{}, validationf("identifier and password are required")
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, storeErr("user", err)
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		return Session{}, ErrInvalidCredentials
	}
	if !user.Role.IsStaff() {
		return Session{}, fmt.Errorf("%w: role %s cannot sign in to the admin panel", ErrForbidden, user.Role)
	}

	token, err := s.tokens.Issue(security.ClaimsFor(user), s.adminTTL)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: user}, nil
}

type RegisterInput struct {
	Identifier string
	Password   string
	FirstName  string
	LastName   string
	Email      string
}

// RegisterSuperuser bootstraps an admin account.
func (s *AuthService) RegisterSuperuser(ctx context.Context, in RegisterInput) (models.User, error) {
	identifier := strings.TrimSpace(in.Identifier)
	if identifier == "" || in.Password == "" {
		return models.User{}, validationf("identifier and password are required")
	}
	if err := validateIdentifier(identifier); err != nil {
		return models.User{}, err
	}
	if err := validatePassword(in.Password); err != nil {
		return models.User{}, err
	}

	hash, err := security.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{
		FirstName:    defaultString(in.FirstName, "Admin"),
		LastName:     defaultString(in.LastName, "User"),
		Identifier:   &identifier,
		Email:        optionalString(in.Email),
		PasswordHash: hash,
		Role:         models.RoleSuperuser,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, storeErr("user", err)
	}
	return user, nil
}

// ExternalIdentity is a profile asserted by the Google sign-in flow.
type ExternalIdentity struct {
	GoogleID  string
	Email     string
	FirstName string
	LastName  string
}

// ExternalLogin signs in a Google account. It matches on the google id,
// then links an existing customer account with the same email, and
// otherwise creates a customer. Staff accounts never sign in this way.
func (s *AuthService) ExternalLogin(ctx context.Context, in ExternalIdentity) (Session, error) {
	googleID := strings.TrimSpace(in.GoogleID)
	if googleID == "" {
		return Session{}, validationf("googleId is required")
	}

	user, err := s.users.FindByGoogleID(ctx, googleID)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		user, err = s.linkOrCreate(ctx, googleID, in)
		if err != nil {
			return Session{}, err
		}
	default:
		return Session{}, storeErr("user", err)
	}
	if user.Role != models.RoleCustomer {
		return Session{}, fmt.Errorf("%w: role %s must sign in with a password", ErrForbidden, user.Role)
	}

	token, err := s.tokens.Issue(security.ClaimsFor(user), s.externalTTL)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: user}, nil
}

func (s *AuthService) linkOrCreate(ctx context.Context, googleID string, in ExternalIdentity) (models.User, error) {
	email := strings.TrimSpace(in.Email)
	if email != "" {
		user, err := s.users.FindByEmail(ctx, email)
		if err == nil {
			if user.Role != models.RoleCustomer {
				return models.User{}, fmt.Errorf("%w: email belongs to a staff account", ErrForbidden)
			}
			if user.GoogleID != nil && *user.GoogleID != googleID {
				return models.User{}, fmt.Errorf("%w: email is linked to another google account", ErrForbidden)
			}
			user.GoogleID = &googleID
			if err := s.users.Update(ctx, &user); err != nil {
				return models.User{}, storeErr("user", err)
			}
			return user, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return models.User{}, storeErr("user", err)
		}
	}

	user := models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     optionalString(email),
		GoogleID:  &googleID,
		Role:      models.RoleCustomer,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, storeErr("user", err)
	}
	return user, nil
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
