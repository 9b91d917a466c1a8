// internal/models/common.go
package models

import "github.com/shopspring/decimal"

// Enums
type JewelryType string

const (
	JewelryTypeRing     JewelryType = "ring"
	JewelryTypeNecklace JewelryType = "necklace"
	JewelryTypeBracelet JewelryType = "bracelet"
	JewelryTypeEarring  JewelryType = "earring"
	JewelryTypePendant  JewelryType = "pendant"

	// Admin-only extended set
	JewelryTypeBrooch JewelryType = "brooch"
	JewelryTypeAnklet JewelryType = "anklet"
	JewelryTypeWatch  JewelryType = "watch"
)

// DesignTypes are the types the design flow can generate.
var DesignTypes = []JewelryType{
	JewelryTypeRing,
	JewelryTypeNecklace,
	JewelryTypeBracelet,
	JewelryTypeEarring,
	JewelryTypePendant,
}

// CatalogTypes are the types an admin may list in the catalog.
var CatalogTypes = append(append([]JewelryType{}, DesignTypes...),
	JewelryTypeBrooch,
	JewelryTypeAnklet,
	JewelryTypeWatch,
)

func (t JewelryType) IsDesignType() bool {
	for _, v := range DesignTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (t JewelryType) IsCatalogType() bool {
	for _, v := range CatalogTypes {
		if v == t {
			return true
		}
	}
	return false
}

type Material string

const (
	MaterialGold      Material = "gold"
	MaterialSilver    Material = "silver"
	MaterialPlatinum  Material = "platinum"
	MaterialRoseGold  Material = "rose-gold"
	MaterialWhiteGold Material = "white-gold"
)

type Gemstone string

const (
	GemstoneDiamond  Gemstone = "diamond"
	GemstoneRuby     Gemstone = "ruby"
	GemstoneSapphire Gemstone = "sapphire"
	GemstoneEmerald  Gemstone = "emerald"
	GemstoneAmethyst Gemstone = "amethyst"
	GemstoneNone     Gemstone = "none"
)

type Finish string

const (
	FinishPolished Finish = "polished"
	FinishMatte    Finish = "matte"
	FinishBrushed  Finish = "brushed"
)

type SortBy string

const (
	SortByDate      SortBy = "date"
	SortByPriceAsc  SortBy = "price-asc"
	SortByPriceDesc SortBy = "price-desc"
	SortByPopular   SortBy = "popular"
)

func (s SortBy) Valid() bool {
	switch s {
	case SortByDate, SortByPriceAsc, SortByPriceDesc, SortByPopular:
		return true
	}
	return false
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// MaterialOption describes a selectable metal and its price multiplier.
type MaterialOption struct {
	ID              Material        `json:"id"`
	Name            string          `json:"name"`
	Color           string          `json:"color"`
	PriceMultiplier decimal.Decimal `json:"priceMultiplier"`
}

// GemstoneOption describes a selectable stone and its price multiplier.
type GemstoneOption struct {
	ID              Gemstone        `json:"id"`
	Name            string          `json:"name"`
	Color           string          `json:"color"`
	PriceMultiplier decimal.Decimal `json:"priceMultiplier"`
}

type FinishOption struct {
	ID          Finish `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var Materials = []MaterialOption{
	{ID: MaterialGold, Name: "Gold", Color: "#FFD700", PriceMultiplier: decimal.RequireFromString("1.0")},
	{ID: MaterialSilver, Name: "Silver", Color: "#C0C0C0", PriceMultiplier: decimal.RequireFromString("0.5")},
	{ID: MaterialPlatinum, Name: "Platinum", Color: "#E5E4E2", PriceMultiplier: decimal.RequireFromString("1.5")},
	{ID: MaterialRoseGold, Name: "Rose Gold", Color: "#B76E79", PriceMultiplier: decimal.RequireFromString("1.1")},
	{ID: MaterialWhiteGold, Name: "White Gold", Color: "#F5F5F5", PriceMultiplier: decimal.RequireFromString("1.2")},
}

var Gemstones = []GemstoneOption{
	{ID: GemstoneNone, Name: "None", Color: "#FFFFFF", PriceMultiplier: decimal.Zero},
	{ID: GemstoneDiamond, Name: "Diamond", Color: "#B9F2FF", PriceMultiplier: decimal.RequireFromString("3.0")},
	{ID: GemstoneRuby, Name: "Ruby", Color: "#E0115F", PriceMultiplier: decimal.RequireFromString("2.0")},
	{ID: GemstoneSapphire, Name: "Sapphire", Color: "#0F52BA", PriceMultiplier: decimal.RequireFromString("2.2")},
	{ID: GemstoneEmerald, Name: "Emerald", Color: "#50C878", PriceMultiplier: decimal.RequireFromString("2.5")},
	{ID: GemstoneAmethyst, Name: "Amethyst", Color: "#9966CC", PriceMultiplier: decimal.RequireFromString("1.5")},
}

var Finishes = []FinishOption{
	{ID: FinishPolished, Name: "Polished", Description: "High shine finish"},
	{ID: FinishMatte, Name: "Matte", Description: "Subtle, non-reflective finish"},
	{ID: FinishBrushed, Name: "Brushed", Description: "Textured, contemporary look"},
}

// Sizes lists the size choices offered per jewelry type.
var Sizes = map[JewelryType][]interface{}{
	JewelryTypeRing:     {4, 4.5, 5, 5.5, 6, 6.5, 7, 7.5, 8, 8.5, 9, 9.5, 10, 10.5, 11},
	JewelryTypeBracelet: {"small", "medium", "large", "x-large"},
	JewelryTypeNecklace: {14, 16, 18, 20, 22, 24},
}

func LookupMaterial(m Material) (MaterialOption, bool) {
	for _, opt := range Materials {
		if opt.ID == m {
			return opt, true
		}
	}
	return MaterialOption{}, false
}

func LookupGemstone(g Gemstone) (GemstoneOption, bool) {
	for _, opt := range Gemstones {
		if opt.ID == g {
			return opt, true
		}
	}
	return GemstoneOption{}, false
}

func ValidFinish(f Finish) bool {
	for _, opt := range Finishes {
		if opt.ID == f {
			return true
		}
	}
	return false
}
