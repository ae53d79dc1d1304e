package service

import (
	"context"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"cocktail-bar-api/models"
	"cocktail-bar-api/repository"
)

// CocktailCache holds the unfiltered catalog listing.
type CocktailCache interface {
	GetList(ctx context.Context) ([]models.Cocktail, bool)
	SetList(ctx context.Context, cocktails []models.Cocktail)
	Invalidate(ctx context.Context)
}

// CocktailInput carries the writable cocktail fields. Nil fields are left
// untouched on update.
type CocktailInput struct {
	Name         *string
	Description  *string
	Image        *string
	Price        *decimal.Decimal
	Category     *string
	IsAvailable  *bool
	Ingredients  *[]string
	Instructions *string
	Origin       *string
	Status       *string
}

type CocktailService struct {
	cocktails repository.CocktailRepository
	cache     CocktailCache
}

// NewCocktailService builds the catalog service. cache may be nil.
func NewCocktailService(cocktails repository.CocktailRepository, cache CocktailCache) *CocktailService {
	return &CocktailService{cocktails: cocktails, cache: cache}
}

func (s *CocktailService) List(ctx context.Context, filter repository.CocktailFilter) ([]models.Cocktail, error) {
	if filter.Category != "" {
		category, ok := normalizeCategory(string(filter.Category))
		if !ok {
			return nil, validationf("unknown category %q", filter.Category)
		}
		filter.Category = category
	}

	cacheable := s.cache != nil && filter.IsZero()
	if cacheable {
		if cocktails, ok := s.cache.GetList(ctx); ok {
			return cocktails, nil
		}
	}

	cocktails, err := s.cocktails.List(ctx, filter)
	if err != nil {
		return nil, storeErr("cocktail", err)
	}
	if cacheable {
		s.cache.SetList(ctx, cocktails)
	}
	return cocktails, nil
}

func (s *CocktailService) Get(ctx context.Context, id uint) (models.Cocktail, error) {
	cocktail, err := s.cocktails.GetByID(ctx, id)
	return cocktail, storeErr("cocktail", err)
}

func (s *CocktailService) Create(ctx context.Context, in CocktailInput) (models.Cocktail, error) {
	if isBlank(in.Name) {
		return models.Cocktail{}, validationf("name is required")
	}
	if in.Price == nil {
		return models.Cocktail{}, validationf("price is required")
	}
	if isBlank(in.Category) {
		return models.Cocktail{}, validationf("category is required")
	}

	cocktail := models.Cocktail{
		IsAvailable: true,
		Ingredients: []string{},
		Status:      models.CocktailActive,
	}
	if err := applyCocktail(&cocktail, in); err != nil {
		return models.Cocktail{}, err
	}
	if err := s.cocktails.Create(ctx, &cocktail); err != nil {
		return models.Cocktail{}, storeErr("cocktail", err)
	}
	s.invalidate(ctx)
	return cocktail, nil
}

// Update merges the present fields into the stored cocktail and validates
// the result before writing.
func (s *CocktailService) Update(ctx context.Context, id uint, in CocktailInput) (models.Cocktail, error) {
	cocktail, err := s.cocktails.GetByID(ctx, id)
	if err != nil {
		return models.Cocktail{}, storeErr("cocktail", err)
	}
	if err := applyCocktail(&cocktail, in); err != nil {
		return models.Cocktail{}, err
	}
	if err := s.cocktails.Update(ctx, &cocktail); err != nil {
		return models.Cocktail{}, storeErr("cocktail", err)
	}
	s.invalidate(ctx)
	return cocktail, nil
}

func (s *CocktailService) Delete(ctx context.Context, id uint) error {
	if err := s.cocktails.Delete(ctx, id); err != nil {
		return storeErr("cocktail", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *CocktailService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

// applyCocktail writes in onto a copy of c, validates the merged record and
// only then stores it back.
func applyCocktail(c *models.Cocktail, in CocktailInput) error {
	next := *c
	if in.Name != nil {
		next.Name = NormalizeCocktailName(*in.Name)
	}
	if in.Description != nil {
		next.Description = strings.TrimSpace(*in.Description)
	}
	if in.Image != nil {
		next.Image = strings.TrimSpace(*in.Image)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return validationf("price must be greater than or equal to 0")
		}
		next.Price = in.Price.Round(2)
	}
	if in.Category != nil {
		category, ok := normalizeCategory(*in.Category)
		if !ok {
			return validationf("category must be one of Cocktail, Mocktail, Shot, Long Drink, Other")
		}
		next.Category = category
	}
	if in.IsAvailable != nil {
		next.IsAvailable = *in.IsAvailable
	}
	if in.Ingredients != nil {
		next.Ingredients = cleanIngredients(*in.Ingredients)
	}
	if in.Instructions != nil {
		next.Instructions = strings.TrimSpace(*in.Instructions)
	}
	if in.Origin != nil {
		next.Origin = strings.TrimSpace(*in.Origin)
	}
	if in.Status != nil {
		next.Status = models.CocktailStatus(strings.TrimSpace(*in.Status))
	}

	if err := validateCocktail(next); err != nil {
		return err
	}
	*c = next
	return nil
}

func validateCocktail(c models.Cocktail) error {
	if n := utf8.RuneCountInString(c.Name); n < 2 || n > 100 {
		return validationf("name must be 2 to 100 characters")
	}
	if utf8.RuneCountInString(c.Description) > 1000 {
		return validationf("description must be at most 1000 characters")
	}
	if c.Image != "" && !isHTTPURL(c.Image) {
		return validationf("image must be a valid URL")
	}
	if c.Price.IsNegative() {
		return validationf("price must be greater than or equal to 0")
	}
	if !c.Category.Valid() {
		return validationf("category must be one of Cocktail, Mocktail, Shot, Long Drink, Other")
	}
	if utf8.RuneCountInString(c.Instructions) > 2000 {
		return validationf("instructions must be at most 2000 characters")
	}
	if utf8.RuneCountInString(c.Origin) > 100 {
		return validationf("origin must be at most 100 characters")
	}
	if !c.Status.Valid() {
		return validationf("status must be one of active, inactive, deleted")
	}
	return nil
}

// NormalizeCocktailName lower-cases the name and capitalises its first
// letter: "PIÑA colada" becomes "Piña colada".
func NormalizeCocktailName(name string) string {
	runes := []rune(strings.ToLower(strings.TrimSpace(name)))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// normalizeCategory accepts the canonical names case-insensitively and the
// French "Autre" for Other.
func normalizeCategory(raw string) (models.CocktailCategory, bool) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "Autre") {
		return models.CategoryOther, true
	}
	for _, c := range models.Categories {
		if strings.EqualFold(raw, string(c)) {
			return c, true
		}
	}
	return "", false
}

func cleanIngredients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, ing := range in {
		if ing = strings.TrimSpace(ing); ing != "" {
			out = append(out, ing)
		}
	}
	return out
}

func isHTTPURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
