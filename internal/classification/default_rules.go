package classification

import "github.com/Veraticus/savings-sprint/internal/model"

// DefaultRules returns the built-in categorization rules.
func DefaultRules() []Rule {
	return []Rule{
		// Income
		{
			Name:     "Payroll",
			Type:     model.TypeIncome,
			Category: "Salary",
			Pattern:  `\b(SALARY|SAL\s*CREDIT|PAYROLL|WAGES|DIRECT\s*DEP)\b`,
			Priority: 100,
		},
		{
			Name:     "Interest and dividends",
			Type:     model.TypeIncome,
			Category: "Investments",
			Pattern:  `\b(INTEREST|INT\s*(PD|CREDIT|EARNED)|DIVIDEND|DIV|MUTUAL\s*FUND|REDEMPTION)\b`,
			Priority: 95,
		},
		{
			Name:     "Client payment",
			Type:     model.TypeIncome,
			Category: "Freelance / Contract",
			Pattern:  `\b(INVOICE|CLIENT|CONSULTING|UPWORK|FIVERR)\b`,
			Priority: 85,
		},
		{
			Name:     "Gift received",
			Type:     model.TypeIncome,
			Category: "Gifts",
			Pattern:  `\b(GIFT|SHAGUN|BIRTHDAY)\b`,
			Priority: 70,
		},

		// Expenses
		{
			Name:     "Loan repayment",
			Type:     model.TypeExpense,
			Category: "Debt & Loans",
			Pattern:  `\b(EMI|LOAN|CREDIT\s*CARD\s*(PAYMENT|BILL)|CC\s*PAYMENT)\b`,
			Priority: 100,
		},
		{
			Name:     "Rent",
			Type:     model.TypeExpense,
			Category: "Housing",
			Pattern:  `\b(RENT|LANDLORD|MAINTENANCE|SOCIETY)\b`,
			Priority: 95,
		},
		{
			Name:     "Bills",
			Type:     model.TypeExpense,
			Category: "Utilities",
			Pattern:  `\b(ELECTRICITY|BESCOM|TATA\s*POWER|WATER\s*BILL|GAS\s*BILL|BROADBAND|RECHARGE|AIRTEL|JIO|VODAFONE|BSNL)\b`,
			Priority: 90,
		},
		{
			Name:     "Food delivery and restaurants",
			Type:     model.TypeExpense,
			Category: "Food & Dining",
			Pattern:  `\b(SWIGGY|ZOMATO|RESTAURANT|CAFE|DOMINOS|MCDONALD|STARBUCKS|BIGBASKET|BLINKIT|ZEPTO|GROCER)`,
			Priority: 80,
		},
		{
			Name:     "Rides and fuel",
			Type:     model.TypeExpense,
			Category: "Transportation",
			Pattern:  `\b(UBER|OLA|RAPIDO|METRO|FUEL|PETROL|DIESEL|FASTAG|PARKING)\b`,
			Priority: 80,
		},
		{
			Name:     "Travel bookings",
			Type:     model.TypeExpense,
			Category: "Travel",
			Pattern:  `\b(IRCTC|MAKEMYTRIP|GOIBIBO|CLEARTRIP|AIRLINES?|INDIGO|VISTARA|HOTEL|AIRBNB)\b`,
			Priority: 85,
		},
		{
			Name:     "Streaming and shows",
			Type:     model.TypeExpense,
			Category: "Entertainment",
			Pattern:  `\b(NETFLIX|SPOTIFY|HOTSTAR|PRIME\s*VIDEO|BOOKMYSHOW|PVR|INOX)\b`,
			Priority: 80,
		},
		{
			Name:     "Online shopping",
			Type:     model.TypeExpense,
			Category: "Shopping",
			Pattern:  `\b(AMAZON|FLIPKART|MYNTRA|AJIO|NYKAA|MEESHO)\b`,
			Priority: 70,
		},
		{
			Name:     "Health",
			Type:     model.TypeExpense,
			Category: "Health & Fitness",
			Pattern:  `\b(PHARMACY|APOLLO|HOSPITAL|CLINIC|MEDICAL|GYM|CULTFIT)\b`,
			Priority: 80,
		},
		{
			Name:     "Grooming",
			Type:     model.TypeExpense,
			Category: "Personal Care",
			Pattern:  `\b(SALON|SPA|BARBER|URBAN\s*COMPANY)\b`,
			Priority: 75,
		},
		{
			Name:     "Learning",
			Type:     model.TypeExpense,
			Category: "Education",
			Pattern:  `\b(SCHOOL|COLLEGE|TUITION|UDEMY|COURSERA|BOOKS?)\b`,
			Priority: 75,
		},
		{
			Name:     "Donations",
			Type:     model.TypeExpense,
			Category: "Gifts & Donations",
			Pattern:  `\b(DONATION|CHARITY|TEMPLE|NGO)\b`,
			Priority: 75,
		},
	}
}
