package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for samvidhan resources.
	uriScheme = "samvidhan://"

	manifestURI = uriScheme + "index/manifest"
)

// manifestInfo is the JSON view of an index manifest.
type manifestInfo struct {
	BuildID        string    `json:"build_id"`
	EmbeddingModel string    `json:"embedding_model"`
	Dimensions     int       `json:"dimensions"`
	Count          int       `json:"count"`
	ChunkSize      int       `json:"chunk_size"`
	ChunkOverlap   int       `json:"chunk_overlap"`
	CreatedAt      time.Time `json:"created_at"`
	Path           string    `json:"path"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.Index == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         manifestURI,
		Name:        "index-manifest",
		Description: "Build metadata of the loaded constitution index",
		MIMEType:    "application/json",
	}, s.handleManifestResource)
}

// handleManifestResource returns the manifest of the index on disk.
func (s *Server) handleManifestResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	manifest, err := s.ports.Index.Inspect(s.ports.IndexPath)
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	data, err := json.MarshalIndent(manifestInfo{
		BuildID:        manifest.BuildID,
		EmbeddingModel: manifest.EmbeddingModel,
		Dimensions:     manifest.Dimensions,
		Count:          manifest.Count,
		ChunkSize:      manifest.ChunkSize,
		ChunkOverlap:   manifest.ChunkOverlap,
		CreatedAt:      manifest.CreatedAt,
		Path:           s.ports.IndexPath,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling manifest: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
