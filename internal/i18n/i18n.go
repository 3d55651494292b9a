// Package i18n resolves product display names for the two kiosk languages.
// Order snapshots capture the resolved name at checkout time so historical
// orders stay readable even if the catalog changes.
package i18n

import "github.com/matchabar/api/internal/enum"

type name struct {
	en string
	es string
}

var productNames = map[string]name{
	"matcha-latte":              {en: "Matcha Latte", es: "Matcha Latte"},
	"strawberry-matcha":         {en: "Strawberry Matcha", es: "Matcha de Fresa"},
	"blueberry-cinnamon-matcha": {en: "Blueberry Cinnamon Matcha", es: "Matcha de Arándano y Canela"},
	"matcha-lemonade":           {en: "Matcha Lemonade", es: "Matcha Limonada"},
	"iced-matcha":               {en: "Iced Matcha", es: "Matcha Frío"},
	"skin-food":                 {en: "Skin Food", es: "Skin Food"},
	"americano":                 {en: "Americano", es: "Americano"},
	"cappuccino":                {en: "Cappuccino", es: "Capuchino"},
	"flat-white":                {en: "Flat White", es: "Flat White"},
	"banana-brulee-latte":       {en: "Banana Brûlée Latte", es: "Latte de Banana Brûlée"},
	"vegan-sandwich":            {en: "Vegan Sandwich", es: "Sándwich Vegano"},
	"tuna-sandwich":             {en: "Tuna Sandwich", es: "Sándwich de Atún"},
	"matcha-cookie":             {en: "Matcha Cookie", es: "Galleta de Matcha"},
}

// ProductName returns the display name for a product name key in the given
// language. Unknown keys fall back to the key itself so a catalog entry added
// before its translation never renders blank.
func ProductName(lang, key string) string {
	n, ok := productNames[key]
	if !ok {
		return key
	}
	if lang == enum.LanguageSpanish {
		return n.es
	}
	return n.en
}
