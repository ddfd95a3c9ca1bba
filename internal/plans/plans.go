// Package plans содержит каталог тарифных планов сервиса.
// Планы фиксированы в коде, цены указаны в рупиях за период.
package plans

import (
	"fmt"

	"github.com/magabrotheeeer/movieflix-backend/internal/entitlement"
)

// Plan описывает тарифный план.
type Plan struct {
	Name         string  `json:"name"`
	Quality      string  `json:"quality"`
	Screens      int     `json:"screens"`
	MonthlyPrice float64 `json:"monthly_price"`
	YearlyPrice  float64 `json:"yearly_price"`
}

var catalog = []Plan{
	{Name: "basic", Quality: "HD (720p)", Screens: 1, MonthlyPrice: 199, YearlyPrice: 1499},
	{Name: "standard", Quality: "Full HD (1080p)", Screens: 2, MonthlyPrice: 299, YearlyPrice: 2199},
	{Name: "premium", Quality: "Ultra HD (4K)", Screens: 4, MonthlyPrice: 399, YearlyPrice: 2999},
}

// All возвращает копию каталога планов.
func All() []Plan {
	result := make([]Plan, len(catalog))
	copy(result, catalog)
	return result
}

// ByName возвращает план по имени.
func ByName(name string) (*Plan, error) {
	const op = "plans.ByName"
	for _, p := range catalog {
		if p.Name == name {
			plan := p
			return &plan, nil
		}
	}
	return nil, fmt.Errorf("%s: unknown plan %q", op, name)
}

// Price возвращает цену плана для заданного цикла списания.
func Price(name, billingCycle string) (float64, error) {
	const op = "plans.Price"
	plan, err := ByName(name)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	switch billingCycle {
	case entitlement.BillingMonthly:
		return plan.MonthlyPrice, nil
	case entitlement.BillingYearly:
		return plan.YearlyPrice, nil
	}
	return 0, fmt.Errorf("%s: unknown billing cycle %q", op, billingCycle)
}
