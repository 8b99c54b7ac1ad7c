package dto

import "blackarrow-backend/internal/model"

type ContactRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Service    string `json:"service"`
	Budget     string `json:"budget"`
	Message    string `json:"message"`
	Region     string `json:"region"`
	SourcePage string `json:"sourcePage"`
}

type NewsletterRequest struct {
	Email      string `json:"email"`
	Region     string `json:"region"`
	SourcePage string `json:"sourcePage"`
}

type LeadReceipt struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type LeadStatusRequest struct {
	Status string `json:"status"`
}

type LeadListResponse struct {
	Leads []model.LeadItem `json:"leads"`
}
