package domain

import "github.com/bytedance/sonic"

// Command represents a write request against a board or task. Commands are
// enqueued for the downstream updater rather than applied in the API path.
type Command struct {
	// ID carries the idempotency key when enqueued to the updater queue.
	ID             string                 `json:"id,omitempty"`
	IdempotencyKey string                 `json:"idempotencyKey"`
	BoardID        string                 `json:"boardId"`
	EntityType     string                 `json:"entityType"`
	Type           string                 `json:"type"`
	Data           sonic.NoCopyRawMessage `json:"data,omitempty"`
	Timestamp      int64                  `json:"timestamp"`
}

// CommandEnvelope wraps a command with the company it applies to.
type CommandEnvelope struct {
	CompanyID string  `json:"companyId"`
	Command   Command `json:"command"`
}
