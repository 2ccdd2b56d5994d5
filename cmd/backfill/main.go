// Command backfill repairs historical data in place: tasks created before
// due dates were computed at instantiation get one inferred from the current
// blueprint, and each company's notification set is rebuilt from its boards
// so stale entries disappear while read flags survive.
package main

import (
	"context"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"beacon-api/blueprint"
	"beacon-api/domain"
	"beacon-api/engine"
	"beacon-api/storage"
)

func main() {
	connStr := os.Getenv("STORAGE_CONNECTION_STRING")
	boardsTableName := os.Getenv("BOARDS_TABLE")
	tasksTableName := os.Getenv("TASKS_TABLE")
	notificationsTableName := os.Getenv("NOTIFICATIONS_TABLE")
	commandQueueName := os.Getenv("COMMAND_QUEUE")
	if connStr == "" || boardsTableName == "" || tasksTableName == "" || notificationsTableName == "" || commandQueueName == "" {
		log.Fatal("missing storage config")
	}
	store, err := storage.New(connStr, boardsTableName, tasksTableName, notificationsTableName, commandQueueName)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	ctx := context.Background()
	registry := blueprint.NewRegistry(blueprint.Catalog())
	today := time.Now().UTC()

	companies, err := store.CompanyIDs(ctx)
	if err != nil {
		log.Fatalf("list companies: %v", err)
	}

	totalCompanies := 0
	totalBackfilled := 0
	totalNotifications := 0
	failed := 0
	for _, companyID := range companies {
		backfilled, notifications, err := backfillCompany(ctx, store, registry, companyID, today)
		if err != nil {
			failed++
			log.Errorf("backfill failed, company: %s, err: %v", companyID, err)
			continue
		}
		totalCompanies++
		totalBackfilled += backfilled
		totalNotifications += notifications
		log.Infof("backfill done, company: %s, due dates: %d, notifications: %d", companyID, backfilled, notifications)
	}

	log.WithFields(log.Fields{
		"companies":     totalCompanies,
		"failed":        failed,
		"due_dates":     totalBackfilled,
		"notifications": totalNotifications,
		"blueprint":     registry.Version(),
	}).Info("backfill complete")
	if failed > 0 {
		os.Exit(1)
	}
}

func backfillCompany(ctx context.Context, store *storage.Storage, registry *blueprint.Registry, companyID string, today time.Time) (int, int, error) {
	boards, err := store.FetchBoards(ctx, companyID)
	if err != nil {
		return 0, 0, err
	}

	backfilled := 0
	for bi := range boards {
		board := &boards[bi]
		referenceDate := boardReferenceDate(*board, today)

		changed := make([]domain.Task, 0)
		for ti := range board.Tasks {
			task := &board.Tasks[ti]
			if task.DueDate != "" {
				continue
			}
			due, ok := blueprint.InferDueDate(registry, *task, referenceDate)
			if !ok {
				continue
			}
			task.DueDate = due
			task.UpdatedAt = today.Format(time.RFC3339)
			changed = append(changed, *task)
		}
		if len(changed) == 0 {
			continue
		}
		if err := store.InsertTasks(ctx, companyID, board.ID, changed); err != nil {
			return backfilled, 0, err
		}
		backfilled += len(changed)
	}

	previous, err := store.FetchNotifications(ctx, companyID)
	if err != nil {
		return backfilled, 0, err
	}
	notifications := engine.BuildNotifications(boards, previous, today)
	if err := store.SaveNotifications(ctx, companyID, notifications); err != nil {
		return backfilled, 0, err
	}
	return backfilled, len(notifications), nil
}

func boardReferenceDate(board domain.Board, fallback time.Time) time.Time {
	if created, err := time.Parse(time.RFC3339, board.CreatedAt); err == nil {
		return created
	}
	return fallback
}
