package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/feed"
	"codal-docs-be/internal/pkg/logger"
	"codal-docs-be/internal/pkg/serverutils"
	internalWS "codal-docs-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyLoader struct{}

func (emptyLoader) List(context.Context, entity.DocumentFilter) ([]*entity.Document, error) {
	return nil, nil
}

func newTestApp(t *testing.T) (*fiber.App, *feed.Feed) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := logger.NewNopLogger()
	hub := internalWS.NewHub(log)
	go hub.Run(ctx)

	f := feed.New(emptyLoader{}, log, time.Second)
	h := NewSyncHandler(ctx, hub, f, func() internalWS.Session {
		t.Fatal("no session expected without an upgrade")
		return nil
	}, log)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	h.RegisterRoutes(app.Group("/api"))
	return app, f
}

func TestServeWsRequiresUpgrade(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/sync/v1/ws", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestStats(t *testing.T) {
	app, f := newTestApp(t)

	scope := f.NewScope()
	defer scope.Close()
	_, err := scope.Subscribe(context.Background(), entity.DocumentFilter{})
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/sync/v1/stats", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body serverutils.BaseResponse[SyncStatsResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, 0, body.Data.Sessions)
	assert.Equal(t, 1, body.Data.Subscriptions)
}
