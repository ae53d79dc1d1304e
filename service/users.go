package service

import (
	"context"
	"errors"
	"strings"

	"cocktail-bar-api/models"
	"cocktail-bar-api/repository"
	"cocktail-bar-api/security"
)

type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// UserInput carries the writable user fields. Nil fields are left untouched
// on update.
type UserInput struct {
	Identifier *string
	Password   *string
	FirstName  *string
	LastName   *string
	Email      *string
	Role       *models.UserRole
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	return users, storeErr("user", err)
}

func (s *UserService) Get(ctx context.Context, id uint) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	return user, storeErr("user", err)
}

func (s *UserService) Create(ctx context.Context, in UserInput) (models.User, error) {
	if isBlank(in.Identifier) || in.Password == nil || *in.Password == "" {
		return models.User{}, validationf("identifier and password are required")
	}
	if isBlank(in.FirstName) || isBlank(in.LastName) {
		return models.User{}, validationf("first_name and last_name are required")
	}
	if in.Role == nil {
		role := models.RoleCustomer
		in.Role = &role
	}

	var user models.User
	if err := s.apply(&user, in); err != nil {
		return models.User{}, err
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, storeErr("user", err)
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, in UserInput) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, storeErr("user", err)
	}
	if err := s.apply(&user, in); err != nil {
		return models.User{}, err
	}
	if err := s.users.Update(ctx, &user); err != nil {
		return models.User{}, storeErr("user", err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	return storeErr("user", s.users.Delete(ctx, id))
}

// apply validates every present field before touching user.
func (s *UserService) apply(user *models.User, in UserInput) error {
	if in.Identifier != nil {
		if err := validateIdentifier(*in.Identifier); err != nil {
			return err
		}
	}
	if in.FirstName != nil && (isBlank(in.FirstName) || len(*in.FirstName) > 50) {
		return validationf("first_name must be 1 to 50 characters")
	}
	if in.LastName != nil && (isBlank(in.LastName) || len(*in.LastName) > 50) {
		return validationf("last_name must be 1 to 50 characters")
	}
	if in.Email != nil && *in.Email != "" && !strings.Contains(*in.Email, "@") {
		return validationf("email is not valid")
	}
	if in.Role != nil && !in.Role.Valid() {
		return validationf("role must be one of customer, employee, superuser")
	}

	var hash string
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return err
		}
		h, err := security.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return err
		}
		hash = h
	}

	if in.Identifier != nil {
		identifier := strings.TrimSpace(*in.Identifier)
		user.Identifier = &identifier
	}
	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		user.Email = optionalString(*in.Email)
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if hash != "" {
		user.PasswordHash = hash
	}
	return nil
}

func validateIdentifier(identifier string) error {
	if n := len(strings.TrimSpace(identifier)); n == 0 || n > 50 {
		return validationf("identifier must be 1 to 50 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if err := security.ValidatePasswordStrength(password); err != nil {
		if errors.Is(err, security.ErrWeakPassword) {
			return validationf("%v", err)
		}
		return err
	}
	return nil
}

func isBlank(v *string) bool {
	return v == nil || strings.TrimSpace(*v) == ""
}
