package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cocktail-bar-api/models"
	"cocktail-bar-api/repository"
)

type fakeCocktailCache struct {
	list        []models.Cocktail
	hit         bool
	sets        int
	invalidated int
}

func (f *fakeCocktailCache) GetList(context.Context) ([]models.Cocktail, bool) {
	return f.list, f.hit
}

func (f *fakeCocktailCache) SetList(_ context.Context, cocktails []models.Cocktail) {
	f.list = cocktails
	f.hit = true
	f.sets++
}

func (f *fakeCocktailCache) Invalidate(context.Context) {
	f.list = nil
	f.hit = false
	f.invalidated++
}

func ptr[T any](v T) *T { return &v }

func mojitoInput() CocktailInput {
	return CocktailInput{
		Name:        ptr("  MOJITO "),
		Description: ptr("Rum, mint, lime"),
		Image:       ptr("https://example.com/mojito.jpg"),
		Price:       ptr(decimal.RequireFromString("8.5")),
		Category:    ptr("Cocktail"),
		Ingredients: ptr([]string{"Rum", " ", "Mint"}),
		Origin:      ptr("Cuba"),
	}
}

func TestCreateCocktail(t *testing.T) {
	ctx := context.Background()
	svc := NewCocktailService(repository.NewMemoryCocktailRepository(), nil)

	cocktail, err := svc.Create(ctx, mojitoInput())
	require.NoError(t, err)
	assert.NotZero(t, cocktail.ID)
	assert.Equal(t, "Mojito", cocktail.Name)
	assert.True(t, cocktail.IsAvailable)
	assert.Equal(t, models.CocktailActive, cocktail.Status)
	assert.Equal(t, []string{"Rum", "Mint"}, cocktail.Ingredients)
	assert.Equal(t, "8.5", cocktail.Price.String())

	in := mojitoInput()
	in.Category = ptr("autre")
	other, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryOther, other.Category)
}

func TestNormalizeCocktailName(t *testing.T) {
	assert.Equal(t, "Piña colada", NormalizeCocktailName("PIÑA COLADA"))
	assert.Equal(t, "Éclair", NormalizeCocktailName("éCLAIR"))
	assert.Equal(t, "", NormalizeCocktailName("   "))
}

func TestCreateCocktailValidation(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryCocktailRepository()
	svc := NewCocktailService(repo, nil)

	tests := []struct {
		name   string
		mutate func(*CocktailInput)
	}{
		{"missing name", func(in *CocktailInput) { in.Name = nil }},
		{"short name", func(in *CocktailInput) { in.Name = ptr("M") }},
		{"missing price", func(in *CocktailInput) { in.Price = nil }},
		{"negative price", func(in *CocktailInput) { in.Price = ptr(decimal.RequireFromString("-0.01")) }},
		{"negative price rounding to zero", func(in *CocktailInput) { in.Price = ptr(decimal.RequireFromString("-0.004")) }},
		{"missing category", func(in *CocktailInput) { in.Category = nil }},
		{"unknown category", func(in *CocktailInput) { in.Category = ptr("Smoothie") }},
		{"bad image", func(in *CocktailInput) { in.Image = ptr("not a url") }},
		{"bad status", func(in *CocktailInput) { in.Status = ptr("archived") }},
		{"long origin", func(in *CocktailInput) { in.Origin = ptr(string(make([]byte, 101))) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := mojitoInput()
			tt.mutate(&in)
			_, err := svc.Create(ctx, in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUpdateCocktailIsPartialAndAtomic(t *testing.T) {
	ctx := context.Background()
	svc := NewCocktailService(repository.NewMemoryCocktailRepository(), nil)
	created, err := svc.Create(ctx, mojitoInput())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, CocktailInput{
		Price:       ptr(decimal.RequireFromString("9.99")),
		IsAvailable: ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Mojito", updated.Name)
	assert.Equal(t, "9.99", updated.Price.String())
	assert.False(t, updated.IsAvailable)

	_, err = svc.Update(ctx, created.ID, CocktailInput{
		Name:     ptr("Renamed"),
		Category: ptr("Juice"),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, created.ID, CocktailInput{Price: ptr(decimal.NewFromInt(-1))})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, created.ID, CocktailInput{Price: ptr(decimal.RequireFromString("-0.004"))})
	assert.ErrorIs(t, err, ErrValidation)

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mojito", stored.Name)
	assert.Equal(t, models.CategoryCocktail, stored.Category)
	assert.Equal(t, "9.99", stored.Price.String())

	_, err = svc.Update(ctx, 999, CocktailInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCocktailCache(t *testing.T) {
	ctx := context.Background()
	cache := &fakeCocktailCache{}
	svc := NewCocktailService(repository.NewMemoryCocktailRepository(), cache)

	created, err := svc.Create(ctx, mojitoInput())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	list, err := svc.List(ctx, repository.CocktailFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, cache.sets)

	_, err = svc.List(ctx, repository.CocktailFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "second read is served from cache")

	_, err = svc.List(ctx, repository.CocktailFilter{Search: "moj"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "filtered reads bypass the cache")

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Equal(t, 2, cache.invalidated)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)

	list, err = svc.List(ctx, repository.CocktailFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListCocktailsCategoryFilter(t *testing.T) {
	ctx := context.Background()
	svc := NewCocktailService(repository.NewMemoryCocktailRepository(), nil)
	_, err := svc.Create(ctx, mojitoInput())
	require.NoError(t, err)

	list, err := svc.List(ctx, repository.CocktailFilter{Category: "cocktail"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.List(ctx, repository.CocktailFilter{Category: "Smoothie"})
	assert.ErrorIs(t, err, ErrValidation)
}
