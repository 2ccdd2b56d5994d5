package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"

	"beacon-api/domain"
)

// Storage provides access to underlying persistence mechanisms. Boards and
// notifications partition by company id, tasks by board id.
type Storage struct {
	boardTable        *aztables.Client
	taskTable         *aztables.Client
	notificationTable *aztables.Client
	commandQueue      *azqueue.QueueClient

	taskProjection         *projection
	notificationProjection *projection
}

// New creates a Storage instance from the given connection string.
func New(connStr, boardsTable, tasksTable, notificationsTable, commandQueue string) (*Storage, error) {
	tablesClientOptions := aztables.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    3,
				TryTimeout:    time.Minute * 3,
				RetryDelay:    time.Second * 1,
				MaxRetryDelay: time.Second * 15,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}
	svc, err := aztables.NewServiceClientFromConnectionString(connStr, &tablesClientOptions)
	if err != nil {
		return nil, err
	}
	queueClientOptions := azqueue.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    5,
				TryTimeout:    time.Minute * 5,
				RetryDelay:    time.Second * 1,
				MaxRetryDelay: time.Second * 60,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}
	cq, err := azqueue.NewQueueClientFromConnectionString(connStr, commandQueue, &queueClientOptions)
	if err != nil {
		return nil, err
	}
	return &Storage{
		boardTable:             svc.NewClient(boardsTable),
		taskTable:              svc.NewClient(tasksTable),
		notificationTable:      svc.NewClient(notificationsTable),
		commandQueue:           cq,
		taskProjection:         newProjection(),
		notificationProjection: newProjection(),
	}, nil
}

type boardEntity struct {
	aztables.Entity
	Name        string `json:"Name"`
	Description string `json:"Description"`
	CreatedAt   string `json:"CreatedAt"`
	UpdatedAt   string `json:"UpdatedAt"`
}

type taskEntity struct {
	aztables.Entity
	Title       string `json:"Title"`
	Description string `json:"Description"`
	Severity    string `json:"Severity"`
	Status      string `json:"Status"`
	Owner       string `json:"Owner"`
	Category    string `json:"Category"`
	DueDate     string `json:"DueDate"`
	Phase       string `json:"Phase"`
	Pillar      string `json:"Pillar"`
	Priority    string `json:"Priority"`
	References  string `json:"References"`
	Evidences   string `json:"Evidences"`
	Notes       string `json:"Notes"`
	Tags        string `json:"Tags"`
	CreatedAt   string `json:"CreatedAt"`
	UpdatedAt   string `json:"UpdatedAt"`
}

type notificationEntity struct {
	aztables.Entity
	TaskBoardID string `json:"TaskBoardId"`
	TaskID      string `json:"TaskId"`
	Severity    string `json:"Severity"`
	Title       string `json:"Title"`
	Message     string `json:"Message"`
	DueDate     string `json:"DueDate"`
	CreatedAt   string `json:"CreatedAt"`
	Read        bool   `json:"Read"`
	Phase       string `json:"Phase"`
	Priority    string `json:"Priority"`
	Pillar      string `json:"Pillar"`
}

// FetchBoards retrieves all boards for the company, tasks included.
func (s *Storage) FetchBoards(ctx context.Context, companyID string) ([]domain.Board, error) {
	filter := "PartitionKey eq '" + companyID + "'"
	pager := s.boardTable.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	boards := []domain.Board{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range resp.Entities {
			var ent boardEntity
			if err := json.Unmarshal(e, &ent); err != nil {
				return nil, err
			}
			tasks, err := s.fetchTasks(ctx, ent.RowKey)
			if err != nil {
				return nil, err
			}
			boards = append(boards, domain.Board{
				ID:          ent.RowKey,
				CompanyID:   ent.PartitionKey,
				Name:        ent.Name,
				Description: ent.Description,
				CreatedAt:   ent.CreatedAt,
				UpdatedAt:   ent.UpdatedAt,
				Tasks:       tasks,
			})
		}
	}
	return boards, nil
}

func (s *Storage) fetchTasks(ctx context.Context, boardID string) ([]domain.Task, error) {
	filter := "PartitionKey eq '" + boardID + "'"
	pager := s.taskTable.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	tasks := []domain.Task{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range resp.Entities {
			var ent taskEntity
			if err := json.Unmarshal(e, &ent); err != nil {
				return nil, err
			}
			tasks = append(tasks, decodeTaskEntity(ent))
		}
	}
	return tasks, nil
}

func decodeTaskEntity(ent taskEntity) domain.Task {
	task := domain.Task{
		ID:          ent.RowKey,
		BoardID:     ent.PartitionKey,
		Title:       ent.Title,
		Description: ent.Description,
		Severity:    domain.Severity(ent.Severity),
		Status:      domain.Status(ent.Status),
		Owner:       ent.Owner,
		Category:    domain.Category(ent.Category),
		DueDate:     ent.DueDate,
		Phase:       domain.Phase(ent.Phase),
		Pillar:      domain.Pillar(ent.Pillar),
		Priority:    domain.Priority(ent.Priority),
		CreatedAt:   ent.CreatedAt,
		UpdatedAt:   ent.UpdatedAt,
	}
	// Collection columns are JSON blobs and may be absent on rows written at
	// a narrower projection level; broken blobs degrade to empty.
	_ = json.Unmarshal([]byte(ent.References), &task.References)
	_ = json.Unmarshal([]byte(ent.Evidences), &task.Evidences)
	_ = json.Unmarshal([]byte(ent.Notes), &task.Notes)
	_ = json.Unmarshal([]byte(ent.Tags), &task.Tags)
	task.Sanitize()
	return task
}

// InsertBoard stores the board record itself; its tasks go through
// InsertTasks.
func (s *Storage) InsertBoard(ctx context.Context, board domain.Board) error {
	ent := boardEntity{
		Entity:      aztables.Entity{PartitionKey: board.CompanyID, RowKey: board.ID},
		Name:        board.Name,
		Description: board.Description,
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
	}
	data, err := json.Marshal(ent)
	if err != nil {
		return err
	}
	_, err = s.boardTable.UpsertEntity(ctx, data, &aztables.UpsertEntityOptions{UpdateMode: aztables.UpdateModeReplace})
	return err
}

// InsertTasks writes the given tasks under their board partition, narrowing
// the column projection when the table rejects the richer field set. The
// company identifier is accepted for interface parity with the caching
// wrapper, which needs it to evict the right keys.
func (s *Storage) InsertTasks(ctx context.Context, _ string, boardID string, tasks []domain.Task) error {
	for _, task := range tasks {
		t := task
		if err := s.upsertWithProjection(ctx, s.taskTable, s.taskProjection, func(level projectionLevel) (map[string]any, error) {
			return encodeTaskEntity(boardID, t, level)
		}); err != nil {
			return err
		}
	}
	return nil
}

func encodeTaskEntity(boardID string, task domain.Task, level projectionLevel) (map[string]any, error) {
	ent := map[string]any{
		"PartitionKey": boardID,
		"RowKey":       task.ID,
		"Title":        task.Title,
		"Description":  task.Description,
		"Severity":     string(task.Severity),
		"Status":       string(task.Status),
		"Owner":        task.Owner,
		"Category":     string(task.Category),
		"DueDate":      task.DueDate,
		"CreatedAt":    task.CreatedAt,
		"UpdatedAt":    task.UpdatedAt,
	}
	if level <= projectionStandard {
		ent["Phase"] = string(task.Phase)
		ent["Pillar"] = string(task.Pillar)
		ent["Priority"] = string(task.Priority)
	}
	if level <= projectionFull {
		for column, value := range map[string]any{
			"References": task.References,
			"Evidences":  task.Evidences,
			"Notes":      task.Notes,
			"Tags":       task.Tags,
		} {
			blob, err := json.Marshal(value)
			if err != nil {
				return nil, err
			}
			ent[column] = string(blob)
		}
	}
	return ent, nil
}

// FetchNotifications retrieves the stored notification set for a company.
func (s *Storage) FetchNotifications(ctx context.Context, companyID string) ([]domain.Notification, error) {
	filter := "PartitionKey eq '" + companyID + "'"
	pager := s.notificationTable.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	notifications := []domain.Notification{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range resp.Entities {
			var ent notificationEntity
			if err := json.Unmarshal(e, &ent); err != nil {
				return nil, err
			}
			notifications = append(notifications, decodeNotificationEntity(ent))
		}
	}
	return notifications, nil
}

func decodeNotificationEntity(ent notificationEntity) domain.Notification {
	n := domain.Notification{
		ID:        ent.RowKey,
		BoardID:   ent.TaskBoardID,
		TaskID:    ent.TaskID,
		Severity:  domain.SanitizeSeverity(ent.Severity),
		Title:     ent.Title,
		Message:   ent.Message,
		DueDate:   ent.DueDate,
		CreatedAt: ent.CreatedAt,
		Read:      ent.Read,
		Phase:     domain.SanitizePhase(ent.Phase),
		Pillar:    domain.SanitizePillar(ent.Pillar),
	}
	// Priority stays empty when the row carries none, like Task.Sanitize.
	if ent.Priority != "" {
		n.Priority = domain.SanitizePriority(ent.Priority)
	}
	return n
}

// SaveNotifications replaces the company's stored notification set with the
// given derived records. Rows for tasks that no longer notify are removed so
// the stored set mirrors the derivation.
func (s *Storage) SaveNotifications(ctx context.Context, companyID string, notifications []domain.Notification) error {
	existing, err := s.FetchNotifications(ctx, companyID)
	if err != nil {
		return err
	}
	keep := make(map[string]struct{}, len(notifications))
	for _, n := range notifications {
		keep[n.ID] = struct{}{}
	}
	for _, n := range existing {
		if _, ok := keep[n.ID]; ok {
			continue
		}
		if _, err := s.notificationTable.DeleteEntity(ctx, companyID, n.ID, nil); err != nil {
			return err
		}
	}

	for _, n := range notifications {
		cur := n
		if err := s.upsertWithProjection(ctx, s.notificationTable, s.notificationProjection, func(level projectionLevel) (map[string]any, error) {
			return encodeNotificationEntity(companyID, cur, level), nil
		}); err != nil {
			return err
		}
	}
	return nil
}

func encodeNotificationEntity(companyID string, n domain.Notification, level projectionLevel) map[string]any {
	ent := map[string]any{
		"PartitionKey": companyID,
		"RowKey":       n.ID,
		"TaskBoardId":  n.BoardID,
		"TaskId":       n.TaskID,
		"Severity":     string(n.Severity),
		"Title":        n.Title,
		"Message":      n.Message,
		"CreatedAt":    n.CreatedAt,
		"Read":         n.Read,
	}
	if level <= projectionStandard {
		ent["DueDate"] = n.DueDate
	}
	if level <= projectionFull {
		ent["Phase"] = string(n.Phase)
		ent["Priority"] = string(n.Priority)
		ent["Pillar"] = string(n.Pillar)
	}
	return ent
}

// MarkNotificationRead flips the read flag on one stored notification.
func (s *Storage) MarkNotificationRead(ctx context.Context, companyID, notificationID string) error {
	ent := map[string]any{
		"PartitionKey": companyID,
		"RowKey":       notificationID,
		"Read":         true,
	}
	data, err := json.Marshal(ent)
	if err != nil {
		return err
	}
	_, err = s.notificationTable.UpdateEntity(ctx, data, &aztables.UpdateEntityOptions{UpdateMode: aztables.UpdateModeMerge})
	return err
}

// CompanyIDs lists the distinct company partitions present in the boards
// table. Batch scripts sweep every tenant through this.
func (s *Storage) CompanyIDs(ctx context.Context) ([]string, error) {
	sel := "PartitionKey"
	pager := s.boardTable.NewListEntitiesPager(&aztables.ListEntitiesOptions{Select: &sel})
	seen := map[string]struct{}{}
	ids := []string{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range resp.Entities {
			var ent aztables.Entity
			if err := json.Unmarshal(e, &ent); err != nil {
				return nil, err
			}
			if _, ok := seen[ent.PartitionKey]; ok {
				continue
			}
			seen[ent.PartitionKey] = struct{}{}
			ids = append(ids, ent.PartitionKey)
		}
	}
	return ids, nil
}

// EnqueueCommands sends the given commands to the updater queue.
func (s *Storage) EnqueueCommands(ctx context.Context, companyID string, cmds []domain.Command) error {
	for _, cmd := range cmds {
		env := domain.CommandEnvelope{CompanyID: companyID, Command: cmd}
		data, err := json.Marshal(env)
		if err != nil {
			return err
		}
		if _, err := s.commandQueue.EnqueueMessage(ctx, string(data), nil); err != nil {
			return err
		}
	}
	return nil
}
