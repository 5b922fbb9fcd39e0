package model

// OtherCategory is the catch-all category present for both transaction types.
const OtherCategory = "Other"

// ExpenseCategories is the fixed list of categories for expenses.
var ExpenseCategories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Housing",
	"Utilities",
	"Entertainment",
	"Health & Fitness",
	"Personal Care",
	"Education",
	"Travel",
	"Debt & Loans",
	"Gifts & Donations",
	OtherCategory,
}

// IncomeCategories is the fixed list of categories for income.
var IncomeCategories = []string{
	"Salary",
	"Freelance / Contract",
	"Business",
	"Investments",
	"Gifts",
	OtherCategory,
}

// CategoriesByType returns the category list for a transaction type.
// Anything that is not income gets the expense list.
func CategoriesByType(t TransactionType) []string {
	if t == TypeIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}

// IsValidCategory reports whether name belongs to the list for t.
func IsValidCategory(t TransactionType, name string) bool {
	for _, c := range CategoriesByType(t) {
		if c == name {
			return true
		}
	}
	return false
}
