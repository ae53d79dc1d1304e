package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cocktail-bar-api/models"
)

type GormAPIKeyRepository struct {
	db *gorm.DB
}

func NewGormAPIKeyRepository(db *gorm.DB) *GormAPIKeyRepository {
	return &GormAPIKeyRepository{db: db}
}

func (r *GormAPIKeyRepository) Create(ctx context.Context, key *models.APIKey) error {
	return translate(r.db.WithContext(ctx).Create(key).Error)
}

func (r *GormAPIKeyRepository) FindByHash(ctx context.Context, hash []byte) (models.APIKey, error) {
	var key models.APIKey
	if err := r.db.WithContext(ctx).Where("key_hash = ?", hash).First(&key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.APIKey{}, ErrNotFound
		}
		return models.APIKey{}, err
	}
	return key, nil
}
