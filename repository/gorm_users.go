package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"cocktail-bar-api/models"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GormUserRepository) FindByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	return r.first(ctx, "identifier = ?", identifier)
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *GormUserRepository) FindByGoogleID(ctx context.Context, googleID string) (models.User, error) {
	return r.first(ctx, "google_id = ?", googleID)
}

func (r *GormUserRepository) first(ctx context.Context, query string, arg interface{}) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkUserUnique(tx, user); err != nil {
			return err
		}
		return translate(tx.Create(user).Error)
	})
}

func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkUserUnique(tx, user); err != nil {
			return err
		}
		res := tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Select("*").
			Omit("id", "created_at").
			Updates(user)
		if err := translate(res.Error); err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *GormUserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// checkUserUnique rejects a write whose identifier, email or google id is
// held by a different user.
func checkUserUnique(tx *gorm.DB, user *models.User) error {
	unique := []struct {
		column string
		value  *string
	}{
		{"identifier", user.Identifier},
		{"email", user.Email},
		{"google_id", user.GoogleID},
	}
	for _, u := range unique {
		if u.value == nil {
			continue
		}
		var count int64
		if err := tx.Model(&models.User{}).
			Where(u.column+" = ? AND id <> ?", *u.value, user.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrConflict
		}
	}
	return nil
}

// translate maps unique violations to ErrConflict. The message check covers
// drivers that do not implement gorm's error translator.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value") {
		return ErrConflict
	}
	return err
}
