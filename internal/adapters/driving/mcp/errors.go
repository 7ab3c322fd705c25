// Package mcp exposes sourcerank to AI assistants over the Model Context
// Protocol. The recommend_sources tool returns the same ranked list as
// the recommend command, structured for tool consumers.
package mcp

import "errors"

// ErrMissingRecommendService is returned when the recommend service is not provided.
var ErrMissingRecommendService = errors.New("mcp: recommend service is required")
