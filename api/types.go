package api

import (
	"context"

	"beacon-api/domain"
)

// Storage abstracts persistence for handlers.
type Storage interface {
	FetchBoards(ctx context.Context, companyID string) ([]domain.Board, error)
	FetchNotifications(ctx context.Context, companyID string) ([]domain.Notification, error)
	SaveNotifications(ctx context.Context, companyID string, notifications []domain.Notification) error
	InsertBoard(ctx context.Context, board domain.Board) error
	InsertTasks(ctx context.Context, companyID, boardID string, tasks []domain.Task) error
	MarkNotificationRead(ctx context.Context, companyID, notificationID string) error
	EnqueueCommands(ctx context.Context, companyID string, cmds []domain.Command) error
}

// Authenticator is implemented by types able to resolve the company scoping
// a request from its Authorization header.
type Authenticator interface {
	CompanyIDFromAuthHeader(string) (string, error)
}

// Deduper prevents processing of duplicate commands.
type Deduper interface {
	// Add records the idempotency key and returns true if it was newly added.
	Add(ctx context.Context, companyID, key string) (bool, error)
	// AddMany records keys in bulk, reporting per key whether it was new.
	AddMany(ctx context.Context, companyID string, keys []string) ([]bool, error)
	// Remove deletes a previously added key, used when downstream processing fails.
	Remove(ctx context.Context, companyID, key string) error
}
