package model

import "time"

type ChatMessage struct {
	ID         int64     `json:"id"`
	ProblemID  int64     `json:"problemId"`
	UserID     string    `json:"userId"`
	ExchangeID string    `json:"exchangeId,omitempty"`
	Message    string    `json:"message"`
	IsAI       bool      `json:"isAi"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ChatExchange is one user turn together with the assistant's reply.
type ChatExchange struct {
	UserMessage *ChatMessage `json:"userMessage"`
	AIMessage   *ChatMessage `json:"aiMessage"`
}

// CodeAnalysis is the public summary returned by the analyze endpoint.
type CodeAnalysis struct {
	TimeComplexity  string   `json:"timeComplexity"`
	SpaceComplexity string   `json:"spaceComplexity"`
	Suggestions     []string `json:"suggestions"`
}
