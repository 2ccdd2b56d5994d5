package api

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"beacon-api/blueprint"
	"beacon-api/calendar"
	"beacon-api/domain"
	"beacon-api/engine"
)

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, store Storage, auth Authenticator, deduper Deduper, reg *blueprint.Registry, log *log.Logger) {
	e.GET("/api/boards", getBoards(store, auth, log))
	e.GET("/api/summary", getSummary(store, auth))
	e.POST("/api/boards", postBoard(store, auth, reg))
	e.POST("/api/boards/:boardId/tasks", postBoardTasks(store, auth))
	e.GET("/api/notifications", getNotifications(store, auth))
	e.POST("/api/notifications/:id/read", postNotificationRead(store, auth))
	e.POST("/api/commands", postCommands(store, auth, deduper))
	e.GET("/api/calendar", getCalendar(store, auth))
	e.GET("/healthz", healthz(store))

	initCommandSender(store, deduper, log)
}

type boardView struct {
	domain.Board
	Progress int `json:"progress"`
}

type boardsResponse struct {
	Boards   []boardView `json:"boards"`
	Progress int         `json:"progress"`
}

type summaryResponse struct {
	Metrics  engine.Metrics `json:"metrics"`
	Progress int            `json:"progress"`
}

type createBoardRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	ReferenceDate string `json:"referenceDate,omitempty"`
}

type calendarResponse struct {
	Cells []calendar.DayCell `json:"cells"`
	Items []calendar.Item    `json:"items"`
}

func healthz(_ Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		//TODO: implement healthcheck
		return c.NoContent(http.StatusOK)
	}
}

func getBoards(store Storage, auth Authenticator, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newBoardRequestMetrics(ctx, logger)
		if spanCtx != nil {
			req := c.Request().WithContext(spanCtx)
			c.SetRequest(req)
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		authStart := time.Now()
		companyID, authErr := auth.CompanyIDFromAuthHeader(c.Request().Header.Get("Authorization"))
		metrics.ObserveAuth(time.Since(authStart))
		if authErr != nil {
			metrics.SetErrorStage("auth")
			err = c.String(http.StatusUnauthorized, authErr.Error())
			return err
		}

		fetchStart := time.Now()
		boards, fetchErr := store.FetchBoards(ctx, companyID)
		metrics.ObserveFetch(time.Since(fetchStart))
		if fetchErr != nil {
			metrics.SetErrorStage("storage")
			c.Logger().Error(fetchErr)
			err = c.String(http.StatusInternalServerError, fetchErr.Error())
			return err
		}

		today := time.Now().UTC()
		deriveStart := time.Now()
		resp := boardsResponse{
			Boards:   make([]boardView, len(boards)),
			Progress: engine.ProgressForBoards(boards),
		}
		taskCount := 0
		for i, board := range boards {
			taskCount += len(board.Tasks)
			sorted := board
			sorted.Tasks = engine.SortByPriority(board.Tasks, today)
			resp.Boards[i] = boardView{Board: sorted, Progress: engine.ProgressForBoard(board)}
		}
		metrics.ObserveDerive(time.Since(deriveStart))
		metrics.SetBoardsReturned(len(boards))
		metrics.SetTasksReturned(taskCount)

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, resp)
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func getSummary(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		companyID, err := auth.CompanyIDFromAuthHeader(c.Request().Header.Get("Authorization"))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		boards, err := store.FetchBoards(ctx, companyID)
		if err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		today := time.Now().UTC()
		return c.JSON(http.StatusOK, summaryResponse{
			Metrics:  engine.Analyze(boards, today),
			Progress: engine.ProgressForBoards(boards),
		})
	}
}

func postBoard(store Storage, auth Authenticator, reg *blueprint.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		companyID, err := auth.CompanyIDFromAuthHeader(c.Request().Header.Get("Authorization"))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}

		lr := io.LimitReader(c.Request().Body, postCommandMaxSize)
		dec := sonic.ConfigStd.NewDecoder(lr)
		dec.DisallowUnknownFields()

		var req createBoardRequest
		if err := dec.Decode(&req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if strings.TrimSpace(req.Name) == "" {
			return c.String(http.StatusBadRequest, "board name is required")
		}

		now := time.Now().UTC()
		referenceDate := now
		if req.ReferenceDate != "" {
			parsed, ok := domain.ParseDueDate(req.ReferenceDate)
			if !ok {
				return c.String(http.StatusBadRequest, "invalid reference date")
			}
			referenceDate = parsed
		}

		board := domain.Board{
			ID:          uuid.NewString(),
			CompanyID:   companyID,
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			CreatedAt:   now.Format(time.RFC3339),
			UpdatedAt:   now.Format(time.RFC3339),
		}
		board.Tasks = blueprint.Instantiate(reg.Blueprint(), board.ID, referenceDate, now)

		if err := store.InsertBoard(ctx, board); err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		if err := store.InsertTasks(ctx, companyID, board.ID, board.Tasks); err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusCreated, board)
	}
}

func postBoardTasks(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		companyID, err := auth.CompanyIDFromAuthHeader(c.Request().Header.Get("Authorization"))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		boardID := c.Param("boardId")
		if boardID == "" {
			return c.String(http.StatusBadRequest, "missing board id")
		}

		lr := io.LimitReader(c.Request().Body, postCommandMaxSize)
		dec := sonic.ConfigStd.NewDecoder(lr)

		tasks := make([]domain.Task, 0, 4)
		if err := dec.Decode(&tasks); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if len(tasks) == 0 {
			return c.String(http.StatusBadRequest, "empty task list")
		}

		stamp := time.Now().UTC().Format(time.RFC3339)
		for i := range tasks {
			if tasks[i].ID == "" {
				tasks[i].ID = uuid.NewString()
			}
			tasks[i].BoardID = boardID
			if tasks[i].CreatedAt == "" {
				tasks[i].CreatedAt = stamp
			}
			tasks[i].UpdatedAt = stamp
			tasks[i].Sanitize()
		}

		if err := store.InsertTasks(ctx, companyID, boardID, tasks); err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusCreated, tasks)
	}
}

// getNotifications rebuilds the notification set from current board state on
// every read, carrying read flags over by id, then persists the result so
// dismissed items stay dismissed across rebuilds.
func getNotifications(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		companyID, err := auth.CompanyIDFromAuthHeader(c.Request().Header.Get("Authorization"))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}

		boards, err := store.FetchBoards(ctx, companyID)
		if err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		previous, err := store.FetchNotifications(ctx, companyID)
		if err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}

		today := time.Now().UTC()
		notifications := engine.BuildNotifications(boards, previous, today)
		if err := store.SaveNotifications(ctx, companyID, notifications); err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, notifications)
	}
}

func postNotificationRead(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		companyID, err := auth.CompanyIDFromAuthHeader(c.Request().Header.Get("Authorization"))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		notificationID := c.Param("id")
		if notificationID == "" {
			return c.String(http.StatusBadRequest, "missing notification id")
		}
		if err := store.MarkNotificationRead(ctx, companyID, notificationID); err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func getCalendar(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		companyID, err := auth.CompanyIDFromAuthHeader(c.Request().Header.Get("Authorization"))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}

		today := time.Now().UTC()
		reference := today
		if monthParam := c.QueryParam("month"); monthParam != "" {
			parsed, parseErr := time.Parse("2006-01", monthParam)
			if parseErr != nil {
				return c.String(http.StatusBadRequest, "invalid month")
			}
			reference = parsed
		}
		weekStart := time.Sunday
		if startParam := strings.TrimSpace(c.QueryParam("weekStart")); startParam != "" {
			parsed, parseErr := strconv.Atoi(startParam)
			if parseErr != nil || parsed < 0 || parsed > 6 {
				return c.String(http.StatusBadRequest, "invalid week start")
			}
			weekStart = time.Weekday(parsed)
		}

		boards, err := store.FetchBoards(ctx, companyID)
		if err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}

		items := make([]calendar.Item, 0)
		for _, board := range boards {
			items = append(items, calendar.FromTasks(board.Tasks)...)
		}
		return c.JSON(http.StatusOK, calendarResponse{
			Cells: calendar.MonthGrid(reference, today, weekStart),
			Items: items,
		})
	}
}

func postCommands(store Storage, auth Authenticator, deduper Deduper) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		companyID, err := auth.CompanyIDFromAuthHeader(c.Request().Header.Get("Authorization"))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}

		lr := io.LimitReader(c.Request().Body, postCommandMaxSize)
		dec := sonic.ConfigStd.NewDecoder(lr)
		dec.DisallowUnknownFields()

		cmds := make([]domain.Command, 0, 4)
		if err := dec.Decode(&cmds); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if len(cmds) == 0 {
			return c.JSON(http.StatusAccepted, postCommandResponse{IdempotencyKeys: []string{}})
		}

		keys := make([]string, len(cmds))
		for i := range cmds {
			if cmds[i].IdempotencyKey == "" {
				cmds[i].IdempotencyKey = uuid.NewString()
			}
			cmds[i].ID = cmds[i].IdempotencyKey
			keys[i] = cmds[i].IdempotencyKey
		}

		added, dedupeErr := deduper.AddMany(ctx, companyID, keys)
		if dedupeErr != nil {
			rollbackAdded(ctx, deduper, companyID, keys, added)
			c.Logger().Errorf("dedupe failed: %v", dedupeErr)
			return c.String(http.StatusInternalServerError, "failed to enqueue commands")
		}

		fresh := make([]domain.Command, 0, len(cmds))
		addedKeys := make([]string, 0, len(cmds))
		for i := range cmds {
			if !added[i] {
				continue
			}
			fresh = append(fresh, cmds[i])
			addedKeys = append(addedKeys, keys[i])
		}
		if len(fresh) == 0 {
			// Every command in the batch was a duplicate.
			return c.JSON(http.StatusAccepted, postCommandResponse{IdempotencyKeys: keys})
		}

		ts := nextTimestampRange(len(fresh))
		for i := range fresh {
			fresh[i].Timestamp = ts + int64(i)
		}

		job := enqueueJob{
			companyID: companyID,
			cmds:      fresh,
			added:     addedKeys,
		}

		if tryEnqueueJob(job) {
			return c.JSON(http.StatusAccepted, postCommandResponse{IdempotencyKeys: keys})
		}

		if globalLog != nil {
			globalLog.Warn("enqueue buffer saturated; processing inline")
		}

		enqueueCtx, cancel := context.WithTimeout(bg, enqueueTimeout)
		enqueueErr := store.EnqueueCommands(enqueueCtx, companyID, fresh)
		cancel()

		if enqueueErr != nil {
			rollbackKeys(ctx, deduper, companyID, addedKeys)
			c.Logger().Errorf("enqueue inline failed: %v", enqueueErr)
			return c.String(http.StatusInternalServerError, "failed to enqueue commands")
		}

		return c.JSON(http.StatusAccepted, postCommandResponse{IdempotencyKeys: keys})
	}
}

func rollbackAdded(ctx context.Context, deduper Deduper, companyID string, keys []string, added []bool) {
	for i, ok := range added {
		if !ok || i >= len(keys) {
			continue
		}
		_ = deduper.Remove(ctx, companyID, keys[i])
	}
}

func rollbackKeys(ctx context.Context, deduper Deduper, companyID string, keys []string) {
	for _, k := range keys {
		_ = deduper.Remove(ctx, companyID, k)
	}
}
