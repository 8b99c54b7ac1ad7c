package dto

type ChatMessage struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
}

type ChatSendRequest struct {
	Text string `json:"text"`
}

type ChatSendResponse struct {
	User    ChatMessage `json:"user"`
	Bot     ChatMessage `json:"bot"`
	Outcome string      `json:"outcome"`
}

type ChatHistoryResponse struct {
	Messages []ChatMessage `json:"messages"`
}
