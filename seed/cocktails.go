package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cocktail-bar-api/models"
	"cocktail-bar-api/service"
)

// CocktailCounter is implemented by repository.CocktailRepository.
type CocktailCounter interface {
	Count(ctx context.Context) (int64, error)
}

// CocktailCreator is implemented by *service.CocktailService.
type CocktailCreator interface {
	Create(ctx context.Context, in service.CocktailInput) (models.Cocktail, error)
}

type cocktailSeed struct {
	name         string
	description  string
	price        string
	category     string
	image        string
	ingredients  []string
	instructions string
	origin       string
}

var classics = []cocktailSeed{
	{
		name:         "Mojito",
		description:  "White rum, fresh mint, lime, cane sugar, soda water",
		price:        "8.50",
		category:     "Cocktail",
		image:        "https://example.com/mojito.jpg",
		ingredients:  []string{"White rum", "Fresh mint", "Lime", "Cane sugar", "Soda water"},
		instructions: "Muddle sugar and lime, add mint and press lightly, then add rum and top with soda water.",
		origin:       "Cuba",
	},
	{
		name:         "Piña Colada",
		description:  "White rum, coconut milk, pineapple juice",
		price:        "9.00",
		category:     "Cocktail",
		image:        "https://example.com/pina-colada.jpg",
		ingredients:  []string{"White rum", "Coconut milk", "Pineapple juice"},
		instructions: "Blend all ingredients with crushed ice.",
		origin:       "Puerto Rico",
	},
	{
		name:         "Margarita",
		description:  "Tequila, triple sec, lime juice, salt",
		price:        "8.00",
		category:     "Cocktail",
		image:        "https://example.com/margarita.jpg",
		ingredients:  []string{"Tequila", "Triple sec", "Lime juice", "Salt"},
		instructions: "Rim the glass with lime and salt, shake the ingredients with ice.",
		origin:       "Mexico",
	},
	{
		name:         "Daiquiri",
		description:  "White rum, lime juice, sugar",
		price:        "7.50",
		category:     "Cocktail",
		image:        "https://example.com/daiquiri.jpg",
		ingredients:  []string{"White rum", "Lime juice", "Sugar"},
		instructions: "Shake all ingredients with crushed ice.",
		origin:       "Cuba",
	},
	{
		name:         "Virgin Mojito",
		description:  "Fresh mint, lime, cane sugar, soda water",
		price:        "6.00",
		category:     "Mocktail",
		image:        "https://example.com/virgin-mojito.jpg",
		ingredients:  []string{"Fresh mint", "Lime", "Cane sugar", "Soda water"},
		instructions: "Muddle sugar and lime, add mint and press lightly, then top with soda water.",
		origin:       "Cuba",
	},
}

// Cocktails inserts the classic menu when the catalog is empty and returns
// how many cocktails were added.
func Cocktails(ctx context.Context, counter CocktailCounter, creator CocktailCreator, log zerolog.Logger) (int, error) {
	count, err := counter.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count cocktails: %w", err)
	}
	if count > 0 {
		log.Debug().Int64("count", count).Msg("cocktail catalog not empty, skipping seed")
		return 0, nil
	}

	for _, s := range classics {
		price := decimal.RequireFromString(s.price)
		name, description, category := s.name, s.description, s.category
		image, instructions, origin := s.image, s.instructions, s.origin
		ingredients := append([]string(nil), s.ingredients...)
		if _, err := creator.Create(ctx, service.CocktailInput{
			Name:         &name,
			Description:  &description,
			Image:        &image,
			Price:        &price,
			Category:     &category,
			Ingredients:  &ingredients,
			Instructions: &instructions,
			Origin:       &origin,
		}); err != nil {
			return 0, fmt.Errorf("seed cocktail %s: %w", s.name, err)
		}
	}

	log.Info().Int("count", len(classics)).Msg("cocktail catalog seeded")
	return len(classics), nil
}
