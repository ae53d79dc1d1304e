package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cocktail-bar-api/models"
)

type GormCocktailRepository struct {
	db *gorm.DB
}

func NewGormCocktailRepository(db *gorm.DB) *GormCocktailRepository {
	return &GormCocktailRepository{db: db}
}

func (r *GormCocktailRepository) List(ctx context.Context, filter CocktailFilter) ([]models.Cocktail, error) {
	query := r.db.WithContext(ctx)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Available != nil {
		query = query.Where("is_available = ?", *filter.Available)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	var cocktails []models.Cocktail
	if err := query.Order("created_at desc, id desc").Find(&cocktails).Error; err != nil {
		return nil, err
	}
	return cocktails, nil
}

func (r *GormCocktailRepository) GetByID(ctx context.Context, id uint) (models.Cocktail, error) {
	var cocktail models.Cocktail
	if err := r.db.WithContext(ctx).First(&cocktail, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Cocktail{}, ErrNotFound
		}
		return models.Cocktail{}, err
	}
	return cocktail, nil
}

func (r *GormCocktailRepository) MissingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Cocktail{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, err
	}

	present := make(map[uint]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	var missing []uint
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *GormCocktailRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Cocktail{}).Count(&count).Error
	return count, err
}

func (r *GormCocktailRepository) Create(ctx context.Context, cocktail *models.Cocktail) error {
	return r.db.WithContext(ctx).Create(cocktail).Error
}

func (r *GormCocktailRepository) Update(ctx context.Context, cocktail *models.Cocktail) error {
	res := r.db.WithContext(ctx).
		Model(&models.Cocktail{}).
		Where("id = ?", cocktail.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(cocktail)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCocktailRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Cocktail{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
