package service

import (
	"context"
	"errors"
	"strings"

	"cocktail-bar-api/models"
	"cocktail-bar-api/repository"
	"cocktail-bar-api/security"
)

type APIKeyService struct {
	keys repository.APIKeyRepository
}

func NewAPIKeyService(keys repository.APIKeyRepository) *APIKeyService {
	return &APIKeyService{keys: keys}
}

// Generate creates a key for owner. The plaintext is returned once and
// never stored.
func (s *APIKeyService) Generate(ctx context.Context, owner uint) (string, error) {
	key, hash, err := security.GenerateAPIKey()
	if err != nil {
		return "", err
	}
	record := models.APIKey{KeyHash: hash, UserID: owner}
	if err := s.keys.Create(ctx, &record); err != nil {
		return "", storeErr("api key", err)
	}
	return key, nil
}

// Validate returns ErrUnauthenticated for an empty key and ErrForbidden for
// an unknown one.
func (s *APIKeyService) Validate(ctx context.Context, key string) (models.APIKey, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return models.APIKey{}, ErrUnauthenticated
	}
	record, err := s.keys.FindByHash(ctx, security.HashAPIKey(key))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.APIKey{}, ErrForbidden
		}
		return models.APIKey{}, storeErr("api key", err)
	}
	return record, nil
}
