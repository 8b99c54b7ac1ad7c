package dto

type PopupCandidate struct {
	ID      string `json:"id"`
	Trigger string `json:"trigger"`
	DelayMs int64  `json:"delayMs,omitempty"`
}

type PopupListResponse struct {
	Popups []PopupCandidate `json:"popups"`
	Active string           `json:"active,omitempty"`
}

type PopupShowResponse struct {
	Granted bool   `json:"granted"`
	Reason  string `json:"reason"`
	Active  string `json:"active,omitempty"`
}

type PopupDismissRequest struct {
	// Remember hides the popup for its suppression window ("don't show again").
	Remember bool `json:"remember"`
}
