package server

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("summarize_story",
		mcp.WithPromptDescription("Summarize a story and the themes of its discussion"),
		mcp.WithArgument("story_id",
			mcp.ArgumentDescription("Numeric item ID of the story"),
			mcp.RequiredArgument(),
		),
	), s.handleSummarizeStory)

	s.mcp.AddPrompt(mcp.NewPrompt("analyze_user",
		mcp.WithPromptDescription("Analyze a user's submission history and interests"),
		mcp.WithArgument("username",
			mcp.ArgumentDescription("HackerNews username"),
			mcp.RequiredArgument(),
		),
	), s.handleAnalyzeUser)

	s.mcp.AddPrompt(mcp.NewPrompt("top_stories_digest",
		mcp.WithPromptDescription("Produce a digest of the current top stories"),
		mcp.WithArgument("count",
			mcp.ArgumentDescription("Number of stories to include (default 10)"),
		),
	), s.handleTopStoriesDigest)
}

func (s *Server) handleSummarizeStory(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	raw := req.Params.Arguments["story_id"]
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid story_id %q", raw)
	}

	story, err := s.client.StoryWithMetadata(ctx, id)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, fmt.Errorf("story %d not found", id)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Summarize this HackerNews story and its discussion.\n\n")
	fmt.Fprintf(&b, "Title: %s\n", story.Title)
	if story.URL != "" {
		fmt.Fprintf(&b, "URL: %s (%s)\n", story.URL, story.Domain)
	}
	fmt.Fprintf(&b, "Score: %d | Comments: %d | Age: %.1f hours | By: %s\n",
		story.Score, story.CommentCount, story.AgeHours, story.By)
	if story.Text != "" {
		fmt.Fprintf(&b, "\n%s\n", story.Text)
	}
	b.WriteString("\nCover the main points of the story and the dominant viewpoints in the comments.")

	return mcp.NewGetPromptResult(
		fmt.Sprintf("Summary request for story %d", id),
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(b.String())),
		},
	), nil
}

func (s *Server) handleAnalyzeUser(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	username := req.Params.Arguments["username"]
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	user, err := s.client.UserWithStats(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %q not found", username)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the HackerNews user %q.\n\n", user.ID)
	fmt.Fprintf(&b, "Karma: %d | Submissions: %d\n", user.Karma, len(user.Submitted))
	if user.AverageScore != nil {
		fmt.Fprintf(&b, "Average story score (recent): %.1f\n", *user.AverageScore)
	}
	if len(user.TopStories) > 0 {
		b.WriteString("\nRecent stories:\n")
		for _, story := range user.TopStories {
			fmt.Fprintf(&b, "- %s (%d points)\n", story.Title, story.Score)
		}
	}
	b.WriteString("\nDescribe their apparent interests and contribution style.")

	return mcp.NewGetPromptResult(
		fmt.Sprintf("Analysis request for user %q", username),
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(b.String())),
		},
	), nil
}

func (s *Server) handleTopStoriesDigest(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	count := 10
	if raw := req.Params.Arguments["count"]; raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid count %q", raw)
		}
		count = n
	}
	if count > 30 {
		count = 30
	}

	ids, err := RetryWithValue(ctx, s.retrier, func() ([]int, error) {
		return s.client.TopStories(ctx)
	})
	if err != nil {
		return nil, err
	}
	if len(ids) > count {
		ids = ids[:count]
	}

	var b strings.Builder
	b.WriteString("Write a short digest of the current HackerNews front page.\n\n")
	for _, item := range s.client.Items(ctx, ids) {
		if item == nil || item.Title == "" {
			continue
		}
		fmt.Fprintf(&b, "- %s (%d points, %d comments)\n", item.Title, item.Score, item.Descendants)
	}
	b.WriteString("\nGroup related stories and call out anything unusual.")

	return mcp.NewGetPromptResult(
		"Front page digest request",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(b.String())),
		},
	), nil
}
