package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graph-gophers/gamereviews/internal/metrics"
	"github.com/graph-gophers/gamereviews/internal/resolver"
	"github.com/graph-gophers/gamereviews/internal/store"
	"github.com/graph-gophers/gamereviews/internal/store/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	mc := metrics.NewCollector("gamereviews")
	st := metrics.InstrumentStore(memory.New(memory.WithSeed(store.Sample)), mc)
	schema, err := resolver.NewSchema(st, []resolver.Option{resolver.WithLogger(log)})
	require.NoError(t, err)

	srv, err := New(Config{Addr: "127.0.0.1:0", ServiceName: "gamereviews", ShutdownTimeout: time.Second}, schema, mc, log)
	require.NoError(t, err)
	return srv
}

func TestQueryEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body := `{"query": "query G($id: ID!) { game(id: $id) { title reviews { rating } } }", "variables": {"id": "1"}}`
	req := httptest.NewRequest(http.MethodPost, QueryPath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"data": {
			"game": {
				"title": "Zelda, Tears of the Kingdom",
				"reviews": [{"rating": 10}, {"rating": 10}]
			}
		}
	}`, w.Body.String())
}

func TestMutationEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body := `{"query": "mutation { updateGame(id: \"nope\", edits: {title: \"x\"}) { id } }"}`
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, QueryPath, strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data   map[string]interface{} `json:"data"`
		Errors []struct {
			Message    string                 `json:"message"`
			Extensions map[string]interface{} `json:"extensions"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "NOT_FOUND", resp.Errors[0].Extensions["code"])
	assert.Nil(t, resp.Data["updateGame"])
}

func TestPlaygroundHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "GraphQLPlayground.init")
	assert.Contains(t, w.Body.String(), QueryPath)

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "healthy", "service": "gamereviews"}`, w.Body.String())

	body := `{"query": "{ authors { id } }"}`
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, QueryPath, strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `gamereviews_store_operations_total{op="authors",result="ok"} 1`)
	assert.Contains(t, w.Body.String(), `gamereviews_http_requests_total{endpoint="/query",method="POST",status="200"} 1`)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
