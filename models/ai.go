package models

// ChatRequest is one user message to the support chatbot.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatReply is the chatbot's answer.
type ChatReply struct {
	Reply    string `json:"reply"`
	Topic    string `json:"topic"`
	IsCrisis bool   `json:"isCrisis"`
}
