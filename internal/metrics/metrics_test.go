package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graph-gophers/gamereviews/internal/store"
	"github.com/graph-gophers/gamereviews/internal/store/memory"
)

func TestInstrumentStore(t *testing.T) {
	ctx := context.Background()
	c := NewCollector("game-reviews")
	s := InstrumentStore(memory.New(memory.WithSeed(store.Sample)), c)

	games, err := s.Games(ctx)
	require.NoError(t, err)
	assert.Len(t, games, len(store.Sample.Games))

	_, err = s.Games(ctx)
	require.NoError(t, err)

	title := "x"
	_, err = s.UpdateGame(ctx, "missing", store.GameEdits{Title: &title})
	require.ErrorIs(t, err, store.ErrNotFound)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.storeOpsTotal.WithLabelValues("games", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.storeOpsTotal.WithLabelValues("update_game", "error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.storeOpsTotal.WithLabelValues("update_game", "ok")))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := NewCollector("gamereviews")

	r := gin.New()
	r.Use(c.Middleware())
	r.GET("/health", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(c.Handler()))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 3.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("GET", "/health", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "gamereviews_http_requests_total"))
}
