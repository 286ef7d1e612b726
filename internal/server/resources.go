package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerResources() {
	for _, kind := range storyKinds {
		s.mcp.AddResource(mcp.NewResource(
			"hn://"+kind,
			strings.ToUpper(kind[:1])+kind[1:]+" Stories",
			mcp.WithResourceDescription(fmt.Sprintf("Ranked item IDs of the %s story collection", kind)),
			mcp.WithMIMEType("application/json"),
		), s.handleStoryListResource(kind))
	}

	s.mcp.AddResourceTemplate(mcp.NewResourceTemplate(
		"hn://item/{id}",
		"HackerNews Item",
		mcp.WithTemplateDescription("A single item: story, comment, job, poll or poll option"),
		mcp.WithTemplateMIMEType("application/json"),
	), s.handleItemResource)

	s.mcp.AddResourceTemplate(mcp.NewResourceTemplate(
		"hn://user/{username}",
		"HackerNews User",
		mcp.WithTemplateDescription("A user profile"),
		mcp.WithTemplateMIMEType("application/json"),
	), s.handleUserResource)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// handleStoryListResource serves one ranked ID list. Transient
// upstream failures are retried with backoff; everything else
// propagates.
func (s *Server) handleStoryListResource(kind string) func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := RetryWithValue(ctx, s.retrier, func() ([]int, error) {
			return s.client.Stories(ctx, kind)
		})
		if err != nil {
			return nil, err
		}
		return jsonContents(req.Params.URI, ids)
	}
}

// handleItemResource serves hn://item/{id}. The client returns nil for
// a clean miss; the protocol layer turns that into an explicit
// not-found error.
func (s *Server) handleItemResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	raw := strings.TrimPrefix(req.Params.URI, "hn://item/")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid item id %q", raw)
	}

	item, err := s.client.Item(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %d not found", id)
	}
	return jsonContents(req.Params.URI, item)
}

// handleUserResource serves hn://user/{username}, with the same
// not-found conversion as items.
func (s *Server) handleUserResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	username := strings.TrimPrefix(req.Params.URI, "hn://user/")
	if username == "" {
		return nil, fmt.Errorf("missing username in %q", req.Params.URI)
	}

	user, err := s.client.User(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %q not found", username)
	}
	return jsonContents(req.Params.URI, user)
}
