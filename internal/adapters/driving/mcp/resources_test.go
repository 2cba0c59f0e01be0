package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

func manifestRequest() *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: manifestURI}}
}

func TestServer_handleManifestResource(t *testing.T) {
	created := time.Date(2026, 1, 26, 10, 0, 0, 0, time.UTC)
	index := &mockIndexService{manifest: &domain.IndexManifest{
		BuildID:        "build-1",
		EmbeddingModel: "models/embedding-001",
		Dimensions:     768,
		Count:          412,
		ChunkSize:      800,
		ChunkOverlap:   100,
		CreatedAt:      created,
	}}
	server, err := NewServer(&Ports{
		Answers:   &mockAnswerService{},
		Scenarios: &mockScenarioService{},
		Index:     index,
		IndexPath: "/idx",
	})
	require.NoError(t, err)

	result, err := server.handleManifestResource(context.Background(), manifestRequest())

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "/idx", index.path)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var info manifestInfo
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &info))
	assert.Equal(t, "build-1", info.BuildID)
	assert.Equal(t, 412, info.Count)
	assert.True(t, created.Equal(info.CreatedAt))
}

func TestServer_handleManifestResource_Missing(t *testing.T) {
	index := &mockIndexService{err: fmt.Errorf("%w: /idx", domain.ErrIndexNotFound)}
	server, err := NewServer(&Ports{
		Answers:   &mockAnswerService{},
		Scenarios: &mockScenarioService{},
		Index:     index,
		IndexPath: "/idx",
	})
	require.NoError(t, err)

	_, err = server.handleManifestResource(context.Background(), manifestRequest())

	assert.Error(t, err)
}
