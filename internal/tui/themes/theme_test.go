package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/savings-sprint/internal/model"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, CatppuccinMocha.Primary, GetTheme("catppuccin-mocha").Primary)
	assert.Equal(t, Default.Primary, GetTheme("unknown").Primary)
}

func TestEveryCategoryHasAnIcon(t *testing.T) {
	for _, typ := range []model.TransactionType{model.TypeIncome, model.TypeExpense} {
		for _, c := range model.CategoriesByType(typ) {
			_, ok := CategoryIcons[c]
			assert.True(t, ok, "missing icon for %s", c)
		}
	}
	assert.Equal(t, "📦", GetCategoryIcon("Unknown"))
}
