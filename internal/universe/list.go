package universe

import (
	"github.com/pochun/chipscan/internal/contracts"
)

// Stock is one eligible security with its reference data.
type Stock struct {
	Code     string
	Name     string
	Industry string
	Market   contracts.Market
}

// StockList is the eligible universe keyed by security code.
type StockList map[string]Stock

// BuildStockList folds the exchange registries into the eligible universe,
// applying the eligibility filter and resolving industry names. When a code
// appears in both registries the first occurrence wins, so pass the primary
// market first.
func BuildStockList(registries ...[]contracts.RegistryRow) StockList {
	list := make(StockList)
	for _, rows := range registries {
		for _, row := range rows {
			if !Eligible(row.Code, row.Name) {
				continue
			}
			if _, exists := list[row.Code]; exists {
				continue
			}
			list[row.Code] = Stock{
				Code:     row.Code,
				Name:     row.Name,
				Industry: IndustryName(row.IndustryCode),
				Market:   row.Market,
			}
		}
	}
	return list
}

// IndustryByCode builds a code→industry lookup from the registries, without
// the eligibility filter: the snapshot carries industry for every security,
// eligible or not.
func IndustryByCode(registries ...[]contracts.RegistryRow) map[string]string {
	m := make(map[string]string)
	for _, rows := range registries {
		for _, row := range rows {
			if _, exists := m[row.Code]; exists {
				continue
			}
			m[row.Code] = IndustryName(row.IndustryCode)
		}
	}
	return m
}
