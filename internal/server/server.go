// Package server wires the HackerNews client into the Model Context
// Protocol: tools for invocations, resources for reads, prompts for
// templated analysis. It converts clean not-found results into
// protocol-level errors and owns the retry policy for transient
// upstream failures.
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/hnlabs/hn-mcp-go/internal/hn"
	"github.com/hnlabs/hn-mcp-go/internal/utils"
	"github.com/hnlabs/hn-mcp-go/pkg/version"
)

var storyKinds = []string{"top", "new", "best", "ask", "show", "job"}

// Server exposes a hn.Client over MCP.
type Server struct {
	client  *hn.Client
	mcp     *mcpserver.MCPServer
	retrier *Retrier
	log     *utils.Logger
}

// New creates the MCP server and registers all tools, resources and
// prompts.
func New(client *hn.Client, log *utils.Logger) *Server {
	if log == nil {
		log = utils.NewNopLogger()
	}

	s := &Server{
		client:  client,
		retrier: NewRetrier(DefaultRetrierOptions()),
		log:     log.WithComponent("server"),
		mcp: mcpserver.NewMCPServer(
			"hackernews",
			version.Short(),
			mcpserver.WithToolCapabilities(false),
			mcpserver.WithResourceCapabilities(false, true),
			mcpserver.WithPromptCapabilities(false),
			mcpserver.WithRecovery(),
		),
	}

	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// ServeStdio runs the server on the stdio transport until the client
// disconnects.
func (s *Server) ServeStdio() error {
	s.log.Info().Msg("serving MCP over stdio")
	return mcpserver.ServeStdio(s.mcp)
}

// MCPServer returns the underlying protocol server, mainly for tests.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("get_stories",
		mcp.WithDescription("Get HackerNews stories from one of the ranked collections"),
		mcp.WithString("type",
			mcp.Description("Story collection: top, new, best, ask, show or job"),
			mcp.Enum(storyKinds...),
			mcp.DefaultString("top"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of stories to return (1-50)"),
			mcp.DefaultNumber(10),
		),
	), s.handleGetStories)

	s.mcp.AddTool(mcp.NewTool("get_story_info",
		mcp.WithDescription("Get a story with derived metadata: comment count, age in hours, link domain"),
		mcp.WithNumber("story_id",
			mcp.Description("Numeric item ID of the story"),
			mcp.Required(),
		),
	), s.handleGetStoryInfo)

	s.mcp.AddTool(mcp.NewTool("get_comment_tree",
		mcp.WithDescription("Get the flattened comment tree of a story"),
		mcp.WithNumber("story_id",
			mcp.Description("Numeric item ID of the story"),
			mcp.Required(),
		),
	), s.handleGetCommentTree)

	s.mcp.AddTool(mcp.NewTool("get_user_info",
		mcp.WithDescription("Get a user profile with submission statistics"),
		mcp.WithString("username",
			mcp.Description("HackerNews username"),
			mcp.Required(),
		),
	), s.handleGetUserInfo)

	s.mcp.AddTool(mcp.NewTool("search_stories",
		mcp.WithDescription("Search current top stories with client-side filters. Best effort: only the top-stories window is searched"),
		mcp.WithString("query", mcp.Description("Case-insensitive substring to match in titles")),
		mcp.WithString("author", mcp.Description("Exact author username")),
		mcp.WithNumber("min_score", mcp.Description("Minimum story score")),
		mcp.WithString("item_type", mcp.Description("Exact item type to match")),
		mcp.WithNumber("start_time", mcp.Description("Earliest submission time, unix seconds, inclusive")),
		mcp.WithNumber("end_time", mcp.Description("Latest submission time, unix seconds, inclusive")),
		mcp.WithNumber("limit", mcp.Description("Maximum results (default 10, max 100)")),
	), s.handleSearchStories)

	s.mcp.AddTool(mcp.NewTool("get_multiple_items",
		mcp.WithDescription("Fetch many items by ID. Failed fetches come back as null, order is preserved"),
		mcp.WithArray("ids",
			mcp.Description("Numeric item IDs"),
			mcp.Required(),
			mcp.Items(map[string]any{"type": "number"}),
		),
	), s.handleGetMultipleItems)

	s.mcp.AddTool(mcp.NewTool("get_max_item_id",
		mcp.WithDescription("Get the current largest item ID"),
	), s.handleGetMaxItemID)

	s.mcp.AddTool(mcp.NewTool("get_updates",
		mcp.WithDescription("Get recently changed item IDs and user profiles"),
	), s.handleGetUpdates)

	s.mcp.AddTool(mcp.NewTool("get_cache_stats",
		mcp.WithDescription("Get entry counts of the item, user and list caches"),
	), s.handleGetCacheStats)

	s.mcp.AddTool(mcp.NewTool("clear_cache",
		mcp.WithDescription("Clear all caches"),
	), s.handleClearCache)
}

// toolJSON marshals a tool result payload.
func toolJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleGetStories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := req.GetString("type", "top")
	limit := req.GetInt("limit", 10)
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}

	ids, err := RetryWithValue(ctx, s.retrier, func() ([]int, error) {
		return s.client.Stories(ctx, kind)
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	items := s.client.Items(ctx, ids)
	stories := make([]*hn.Item, 0, len(items))
	for _, item := range items {
		if item != nil {
			stories = append(stories, item)
		}
	}
	return toolJSON(stories)
}

func (s *Server) handleGetStoryInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("story_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	story, err := s.client.StoryWithMetadata(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if story == nil {
		return mcp.NewToolResultError(fmt.Sprintf("story %d not found", id)), nil
	}
	return toolJSON(story)
}

func (s *Server) handleGetCommentTree(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("story_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	comments, err := s.client.CommentTree(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolJSON(comments)
}

func (s *Server) handleGetUserInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username, err := req.RequireString("username")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	user, err := s.client.UserWithStats(ctx, username)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if user == nil {
		return mcp.NewToolResultError(fmt.Sprintf("user %q not found", username)), nil
	}
	return toolJSON(user)
}

func (s *Server) handleSearchStories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	params := hn.SearchParams{
		Query:    req.GetString("query", ""),
		Author:   req.GetString("author", ""),
		ItemType: req.GetString("item_type", ""),
		Limit:    req.GetInt("limit", 0),
	}
	if v, ok := args["min_score"].(float64); ok {
		score := int(v)
		params.MinScore = &score
	}
	if v, ok := args["start_time"].(float64); ok {
		t := int64(v)
		params.StartTime = &t
	}
	if v, ok := args["end_time"].(float64); ok {
		t := int64(v)
		params.EndTime = &t
	}

	results, err := s.client.SearchStories(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolJSON(results)
}

func (s *Server) handleGetMultipleItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := req.GetArguments()["ids"].([]any)
	if !ok {
		return mcp.NewToolResultError("ids must be an array of numbers"), nil
	}

	ids := make([]int, 0, len(raw))
	for _, v := range raw {
		f, ok := v.(float64)
		if !ok {
			return mcp.NewToolResultError("ids must be an array of numbers"), nil
		}
		ids = append(ids, int(f))
	}

	return toolJSON(s.client.Items(ctx, ids))
}

func (s *Server) handleGetMaxItemID(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.client.MaxItemID(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolJSON(map[string]int{"max_item_id": id})
}

func (s *Server) handleGetUpdates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	updates, err := s.client.Updates(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolJSON(updates)
}

func (s *Server) handleGetCacheStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolJSON(s.client.CacheStats())
}

func (s *Server) handleClearCache(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.client.ClearCache()
	s.log.Info().Msg("caches cleared")
	return mcp.NewToolResultText("all caches cleared"), nil
}
