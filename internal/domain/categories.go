// internal/domain/categories.go
package domain

// Category describes a display descriptor for a transaction category key.
type Category struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
	Color string `json:"bgColor"`
}

// ExpenseCategories is the closed set of expense category keys.
var ExpenseCategories = map[string]Category{
	"groceries":      {Label: "Groceries", Value: "groceries", Icon: "shopping-cart", Color: "#16a34a"},
	"rent":           {Label: "Rent", Value: "rent", Icon: "house", Color: "#075985"},
	"utilities":      {Label: "Utilities", Value: "utilities", Icon: "lightbulb", Color: "#ca8a04"},
	"transportation": {Label: "Transportation", Value: "transportation", Icon: "car", Color: "#b45309"},
	"entertainment":  {Label: "Entertainment", Value: "entertainment", Icon: "film-strip", Color: "#0f766e"},
	"dining":         {Label: "Dining", Value: "dining", Icon: "fork-knife", Color: "#be185d"},
	"health":         {Label: "Health", Value: "health", Icon: "heart", Color: "#e11d48"},
	"insurance":      {Label: "Insurance", Value: "insurance", Icon: "shield-check", Color: "#404040"},
	"savings":        {Label: "Savings", Value: "savings", Icon: "piggy-bank", Color: "#065f46"},
	"clothing":       {Label: "Clothing", Value: "clothing", Icon: "t-shirt", Color: "#7c3aed"},
	"personal":       {Label: "Personal", Value: "personal", Icon: "user", Color: "#a21caf"},
	"education":      {Label: "Education", Value: "education", Icon: "graduation-cap", Color: "#0369a1"},
	"subscriptions":  {Label: "Subscriptions", Value: "subscriptions", Icon: "receipt", Color: "#9333ea"},
	"travel":         {Label: "Travel", Value: "travel", Icon: "airplane", Color: "#0284c7"},
	"others":         {Label: "Others", Value: "others", Icon: "dots-three-outline", Color: "#525252"},
}

// IncomeCategory is the single descriptor used for income transactions.
var IncomeCategory = Category{Label: "Income", Value: "income", Icon: "currency-dollar", Color: "#16a34a"}

// LookupCategory resolves a category key to its display descriptor.
// Income transactions always resolve to IncomeCategory; unknown expense keys
// fall back to "others".
func LookupCategory(txType TransactionType, key string) Category {
	if txType == TransactionTypeIncome {
		return IncomeCategory
	}
	if c, ok := ExpenseCategories[key]; ok {
		return c
	}
	return ExpenseCategories["others"]
}
