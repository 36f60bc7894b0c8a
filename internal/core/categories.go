package core

// Category lists presented by the clients. The stores do not enforce
// membership; these exist so the API can serve them and so tests have a
// single source of truth.

var IncomeCategories = []string{"Gaji", "Hadiah", "Investasi", "Lainnya"}

var ExpenseCategories = []string{
	"Makanan", "Minuman", "Transport", "Belanja",
	"Hiburan", "Kesehatan", "Pendidikan", "Listrik",
	"Air", "Internet", "Sewa", "Gas",
	"Olahraga", "Kosmetik", "Hotel", "Lainnya",
}

// GoalCategory pairs a goal category with its display icon.
type GoalCategory struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var GoalCategories = []GoalCategory{
	{Name: "Travel", Icon: "✈️"},
	{Name: "Dana Darurat", Icon: "🛡️"},
	{Name: "Wedding", Icon: "💍"},
	{Name: "Gadget", Icon: "📱"},
	{Name: "Bisnis", Icon: "💼"},
	{Name: "Kendaraan", Icon: "🚗"},
	{Name: "Pendidikan", Icon: "🎓"},
	{Name: "Rumah", Icon: "🏠"},
}

var categoryIcons = map[string]string{
	"Makanan":    "🍽️",
	"Minuman":    "🥤",
	"Transport":  "🚗",
	"Belanja":    "🛍️",
	"Hiburan":    "🎬",
	"Kesehatan":  "💊",
	"Pendidikan": "📚",
	"Listrik":    "⚡",
	"Air":        "💧",
	"Internet":   "🌐",
	"Sewa":       "🏠",
	"Gas":        "⛽",
	"Olahraga":   "🏃",
	"Kosmetik":   "💄",
	"Hotel":      "🏨",
	"Gaji":       "💰",
	"Hadiah":     "🎁",
	"Investasi":  "📈",
	"Lainnya":    "🔹",
}

// CategoryIcon returns the display icon for a transaction category,
// falling back to a neutral marker for unknown categories.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return "🔹"
}

// GoalIcon returns the icon for a goal category.
func GoalIcon(category string) string {
	for _, gc := range GoalCategories {
		if gc.Name == category {
			return gc.Icon
		}
	}
	return "🎯"
}

// Categories returns the category list for a transaction type. An
// unrecognized type yields nil.
func Categories(t TransactionType) []string {
	switch t {
	case Income:
		return IncomeCategories
	case Expense:
		return ExpenseCategories
	}
	return nil
}
