package model

type PricingTier struct {
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Features []string `json:"features"`
}

// RegionItem is keyed by its lowercase code, stored as the record id.
// Every field is always encoded: an upsert writes the whole item, so an
// empty headline or phone must overwrite the stored one.
type RegionItem struct {
	Code           string        `json:"id"`
	Name           string        `json:"name"`
	Currency       string        `json:"currency"`
	CurrencySymbol string        `json:"currencySymbol"`
	Pricing        []PricingTier `json:"pricing"`
	AgentsHeadline string        `json:"agentsHeadline"`
	CafesHeadline  string        `json:"cafesHeadline"`
	ContactPhone   string        `json:"contactPhone"`
	Default        bool          `json:"default"`
	UpdatedAt      string        `json:"updatedAt"`
}
