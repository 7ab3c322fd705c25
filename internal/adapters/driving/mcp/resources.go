package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sourcerank/internal/adapters/driving/report"
	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

const uriScheme = "sourcerank://"

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "catalogs",
		Name:        "catalogs",
		Description: "Catalog files the recommendations are built from",
		MIMEType:    "application/json",
	}, s.handleCatalogsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "report/{query}",
		Name:        "report",
		Description: "Plain-text recommendation report for a URL-escaped query",
		MIMEType:    "text/plain",
	}, s.handleReportResource)
}

func (s *Server) handleCatalogsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	paths := s.ports.Recommend.CatalogPaths()
	if paths == nil {
		paths = []string{}
	}
	data, err := json.MarshalIndent(paths, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling catalogs: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleReportResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	query := extractQuery(req.Params.URI)
	if query == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	rec, err := s.ports.Recommend.Recommend(ctx, query, domain.RecommendOptions{})
	if err != nil {
		return nil, fmt.Errorf("recommending: %w", err)
	}
	var buf bytes.Buffer
	if err := report.WriteText(&buf, rec, report.Options{}); err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     buf.String(),
		}},
	}, nil
}

// extractQuery decodes the query from sourcerank://report/{query}.
func extractQuery(uri string) string {
	const prefix = uriScheme + "report/"
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	q, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(q)
}
