package model

type LeadKind string

const (
	LeadKindContact    LeadKind = "contact"
	LeadKindNewsletter LeadKind = "newsletter"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusWon       LeadStatus = "won"
	LeadStatusLost      LeadStatus = "lost"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusWon, LeadStatusLost:
		return true
	}
	return false
}

type LeadItem struct {
	ID         string     `json:"id"`
	Kind       LeadKind   `json:"kind"`
	Name       string     `json:"name,omitempty"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Company    string     `json:"company,omitempty"`
	Service    string     `json:"service,omitempty"`
	Budget     string     `json:"budget,omitempty"`
	Message    string     `json:"message,omitempty"`
	Region     string     `json:"region,omitempty"`
	SourcePage string     `json:"sourcePage,omitempty"`
	Status     LeadStatus `json:"status"`
	CreatedAt  string     `json:"createdAt"`
	UpdatedAt  string     `json:"updatedAt"`
}
