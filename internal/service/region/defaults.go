package region

import "blackarrow-backend/internal/model"

// builtinRegion answers when the store has no regions at all.
var builtinRegion = model.RegionItem{
	Code:           "uk",
	Name:           "United Kingdom",
	Currency:       "GBP",
	CurrencySymbol: "£",
	Pricing: []model.PricingTier{
		{Name: "Starter", Price: 499, Features: []string{"5-page website", "Contact form", "Basic SEO"}},
		{Name: "Growth", Price: 1299, Features: []string{"Custom design", "Blog", "Ads setup"}},
		{Name: "Scale", Price: 2999, Features: []string{"Automation workflows", "CRM integration", "Monthly reporting"}},
	},
	AgentsHeadline: "More listings, fewer admin hours for estate agents.",
	CafesHeadline:  "Fill more tables with local ads that work.",
	Default:        true,
}
