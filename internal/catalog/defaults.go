package catalog

import (
	"github.com/matchabar/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Default returns the packaged catalog snapshot. It seeds the database on
// first install and serves as the fallback when the backend is unreachable
// at startup.
func Default() *Catalog {
	return New(DefaultProducts(), DefaultSettings())
}

// DefaultProducts is the packaged menu, in display order.
func DefaultProducts() []Product {
	return []Product{
		{ID: "matcha-latte", NameKey: "matcha-latte", Category: enum.CategoryMatcha, Price: dec("6.50"), ImageURL: "/images/matcha-latte.jpg", RequiresMilk: true, Stock: 40, IsAvailable: true},
		{ID: "strawberry-matcha", NameKey: "strawberry-matcha", Category: enum.CategoryMatcha, Price: dec("6.50"), ImageURL: "/images/strawberry-matcha.jpg", RequiresMilk: true, Stock: 35, IsAvailable: true},
		{ID: "blueberry-cinnamon-matcha", NameKey: "blueberry-cinnamon-matcha", Category: enum.CategoryMatcha, Price: dec("8.00"), ImageURL: "/images/blueberry-cinnamon-matcha.jpg", RequiresMilk: true, Stock: 25, IsAvailable: true},
		{ID: "iced-matcha", NameKey: "iced-matcha", Category: enum.CategoryMatcha, Price: dec("5.50"), ImageURL: "/images/iced-matcha.jpg", RequiresMilk: true, Stock: 40, IsAvailable: true},
		{ID: "matcha-lemonade", NameKey: "matcha-lemonade", Category: enum.CategoryMatcha, Price: dec("4.99"), ImageURL: "/images/matcha-lemonade.jpg", Stock: 30, IsAvailable: true},
		{ID: "skin-food", NameKey: "skin-food", Category: enum.CategorySpecialty, Price: dec("10.50"), ImageURL: "/images/skin-food.jpg", RequiresMilk: true, Stock: 15, IsAvailable: true},
		{ID: "banana-brulee-latte", NameKey: "banana-brulee-latte", Category: enum.CategorySpecialty, Price: dec("7.50"), ImageURL: "/images/banana-brulee-latte.jpg", RequiresMilk: true, Stock: 20, IsAvailable: true},
		{ID: "americano", NameKey: "americano", Category: enum.CategoryCoffee, Price: dec("3.00"), ImageURL: "/images/americano.jpg", Stock: 50, IsAvailable: true},
		{ID: "cappuccino", NameKey: "cappuccino", Category: enum.CategoryCoffee, Price: dec("4.50"), ImageURL: "/images/cappuccino.jpg", RequiresMilk: true, Stock: 50, IsAvailable: true},
		{ID: "flat-white", NameKey: "flat-white", Category: enum.CategoryCoffee, Price: dec("4.75"), ImageURL: "/images/flat-white.jpg", RequiresMilk: true, Stock: 50, IsAvailable: true},
		{ID: "vegan-sandwich", NameKey: "vegan-sandwich", Category: enum.CategoryFood, Price: dec("10.99"), ImageURL: "/images/vegan-sandwich.jpg", Stock: 12, IsAvailable: true},
		{ID: "tuna-sandwich", NameKey: "tuna-sandwich", Category: enum.CategoryFood, Price: dec("12.99"), ImageURL: "/images/tuna-sandwich.jpg", Stock: 12, IsAvailable: true},
		{ID: "matcha-cookie", NameKey: "matcha-cookie", Category: enum.CategoryDessert, Price: dec("4.99"), ImageURL: "/images/matcha-cookie.jpg", Stock: 24, IsAvailable: true},
	}
}

// DefaultSettings is the packaged settings row.
func DefaultSettings() Settings {
	return Settings{
		BusinessName:          "Matcha Bar",
		CurrencySymbol:        "$",
		TaxRate:               dec("0.00"),
		ExtraCollagenPrice:    dec("1.50"),
		ExtraAshwagandhaPrice: dec("1.50"),
		ExtraHoneyPrice:       dec("1.00"),
		LargeSizeExtra:        dec("1.00"),
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
