package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

func TestNewServer(t *testing.T) {
	t.Run("creates server with required ports", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Answers:   &mockAnswerService{},
			Scenarios: &mockScenarioService{},
		})

		require.NoError(t, err)
		require.NotNil(t, server)
		assert.NotNil(t, server.server)
	})

	t.Run("nil ports", func(t *testing.T) {
		_, err := NewServer(nil)

		assert.ErrorIs(t, err, ErrMissingAnswerService)
	})

	t.Run("requires answer service", func(t *testing.T) {
		_, err := NewServer(&Ports{Scenarios: &mockScenarioService{}})

		assert.ErrorIs(t, err, ErrMissingAnswerService)
	})

	t.Run("requires scenario service", func(t *testing.T) {
		_, err := NewServer(&Ports{Answers: &mockAnswerService{}})

		assert.ErrorIs(t, err, ErrMissingScenarioService)
	})
}

func newHealthServer(t *testing.T, index *mockIndexService) *Server {
	t.Helper()
	ports := &Ports{
		Answers:   &mockAnswerService{},
		Scenarios: &mockScenarioService{},
		IndexPath: "/data/index",
	}
	if index != nil {
		ports.Index = index
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func getHealth(t *testing.T, server *Server) (int, healthStatus) {
	t.Helper()
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var body healthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealth(t *testing.T) {
	t.Run("reports the loaded index", func(t *testing.T) {
		index := &mockIndexService{manifest: &domain.IndexManifest{Count: 1520, EmbeddingModel: "models/embedding-001"}}

		code, body := getHealth(t, newHealthServer(t, index))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, healthStatus{Status: "ok", Chunks: 1520, Model: "models/embedding-001"}, body)
		assert.Equal(t, "/data/index", index.path)
	})

	t.Run("without index service", func(t *testing.T) {
		code, body := getHealth(t, newHealthServer(t, nil))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, healthStatus{Status: "ok"}, body)
	})

	t.Run("index missing", func(t *testing.T) {
		index := &mockIndexService{err: fmt.Errorf("%w: /data/index", domain.ErrIndexNotFound)}

		code, body := getHealth(t, newHealthServer(t, index))

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unavailable", body.Status)
		assert.Contains(t, body.Error, "index not found")
	})
}

func TestServe_StopsOnCancel(t *testing.T) {
	server := newHealthServer(t, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
