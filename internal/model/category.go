package model

// Category is one of the fixed shopping categories.
type Category string

// Known categories. The remote catalog stores the display names verbatim.
const (
	CategoryCosmetics   Category = "Cosméticos"
	CategoryElectronics Category = "Eletrônicos"
	CategoryGeek        Category = "Coisas Geek"
	CategoryFood        Category = "Comida"
	CategoryArt         Category = "Arte"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryCosmetics,
	CategoryElectronics,
	CategoryGeek,
	CategoryFood,
	CategoryArt,
}

// City is one of the cities purchases are made in.
type City string

// Known cities.
const (
	CityTokyo City = "Tóquio"
	CityOsaka City = "Osaka"
)

// Cities lists every city in display order.
var Cities = []City{CityTokyo, CityOsaka}

var categoryIcons = map[Category]string{
	CategoryCosmetics:   "🧴",
	CategoryElectronics: "📱",
	CategoryGeek:        "🎮",
	CategoryFood:        "🍜",
	CategoryArt:         "🎨",
}

// IsValidCategory reports whether name is one of the known categories.
func IsValidCategory(name string) bool {
	_, ok := categoryIcons[Category(name)]
	return ok
}

// IsValidCity reports whether name is one of the known cities.
func IsValidCity(name string) bool {
	for _, c := range Cities {
		if string(c) == name {
			return true
		}
	}
	return false
}

// CategoryIcon returns the icon shown next to a category.
// Unknown categories get a generic shopping bag.
func CategoryIcon(name string) string {
	if icon, ok := categoryIcons[Category(name)]; ok {
		return icon
	}
	return "🛍️"
}

// CategoryNames returns the category display names as plain strings.
func CategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return names
}

// CityNames returns the city display names as plain strings.
func CityNames() []string {
	names := make([]string, len(Cities))
	for i, c := range Cities {
		names[i] = string(c)
	}
	return names
}
