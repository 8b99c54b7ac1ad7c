package dto

import "blackarrow-backend/internal/model"

type RegionRequest struct {
	Name           string              `json:"name"`
	Currency       string              `json:"currency"`
	CurrencySymbol string              `json:"currencySymbol"`
	Pricing        []model.PricingTier `json:"pricing"`
	AgentsHeadline string              `json:"agentsHeadline"`
	CafesHeadline  string              `json:"cafesHeadline"`
	ContactPhone   string              `json:"contactPhone"`
	Default        bool                `json:"default"`
}

type RegionListResponse struct {
	Regions []model.RegionItem `json:"regions"`
}
