package enum

// ── Group A: State machines ──

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ── Group B: Drink customization (closed sets, validated at the edge) ──

const (
	MilkWhole   = "whole"
	MilkOat     = "oat"
	MilkAlmond  = "almond"
	MilkCoconut = "coconut"
)

const (
	SizeRegular = "regular"
	SizeLarge   = "large"
)

const (
	ExtraCollagen    = "collagen"
	ExtraAshwagandha = "ashwagandha"
	ExtraHoney       = "honey"
)

// ── Group C: Session & display ──

const (
	LanguageEnglish = "en"
	LanguageSpanish = "es"
)

const (
	ScreenWelcome  = "welcome"
	ScreenMenu     = "menu"
	ScreenCheckout = "checkout"
)

const (
	CategoryMatcha    = "matcha"
	CategoryCoffee    = "coffee"
	CategorySpecialty = "specialty"
	CategoryFood      = "food"
	CategoryDessert   = "dessert"
)

// IsValidMilk reports whether s is a known milk option.
func IsValidMilk(s string) bool {
	switch s {
	case MilkWhole, MilkOat, MilkAlmond, MilkCoconut:
		return true
	}
	return false
}

// IsValidSize reports whether s is a known drink size.
func IsValidSize(s string) bool {
	switch s {
	case SizeRegular, SizeLarge:
		return true
	}
	return false
}

// IsValidLanguage reports whether s is a supported display language.
func IsValidLanguage(s string) bool {
	switch s {
	case LanguageEnglish, LanguageSpanish:
		return true
	}
	return false
}
