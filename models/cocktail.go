package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CocktailCategory string

const (
	CategoryCocktail  CocktailCategory = "Cocktail"
	CategoryMocktail  CocktailCategory = "Mocktail"
	CategoryShot      CocktailCategory = "Shot"
	CategoryLongDrink CocktailCategory = "Long Drink"
	CategoryOther     CocktailCategory = "Other"
)

var Categories = []CocktailCategory{
	CategoryCocktail,
	CategoryMocktail,
	CategoryShot,
	CategoryLongDrink,
	CategoryOther,
}

func (c CocktailCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type CocktailStatus string

const (
	CocktailActive   CocktailStatus = "active"
	CocktailInactive CocktailStatus = "inactive"
	CocktailDeleted  CocktailStatus = "deleted"
)

func (s CocktailStatus) Valid() bool {
	switch s {
	case CocktailActive, CocktailInactive, CocktailDeleted:
		return true
	}
	return false
}

type Cocktail struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	Name         string           `json:"name" gorm:"size:100;not null"`
	Description  string           `json:"description" gorm:"type:text"`
	Image        string           `json:"image"`
	Price        decimal.Decimal  `json:"price" gorm:"type:decimal(10,2);not null"`
	Category     CocktailCategory `json:"category" gorm:"size:50;not null;index"`
	IsAvailable  bool             `json:"isAvailable" gorm:"not null"`
	Ingredients  []string         `json:"ingredients" gorm:"type:text;serializer:json"`
	Instructions string           `json:"instructions" gorm:"type:text"`
	Origin       string           `json:"origin" gorm:"size:100"`
	Status       CocktailStatus   `json:"status" gorm:"size:20;not null;default:'active'"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
