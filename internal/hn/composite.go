package hn

import (
	"context"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// commentBatchSize bounds the parallel fetches per comment-tree batch.
	commentBatchSize = 5

	// itemBatchSize bounds the parallel fetches per multi-item batch.
	itemBatchSize = 10

	// searchOverfetch widens the search candidate window to compensate
	// for items the filters discard. Tunable, not a completeness
	// guarantee: items outside the window are never found.
	searchOverfetch = 2

	defaultSearchLimit = 10
	maxSearchLimit     = 100

	userRecentFetch = 10
	userListLimit   = 5
)

// StoryWithMetadata fetches a story and derives its comment count, age
// in hours and link domain. Returns (nil, nil) when the item is absent
// or not a story.
func (c *Client) StoryWithMetadata(ctx context.Context, id int) (*StoryWithMetadata, error) {
	item, err := c.Item(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Type != TypeStory {
		return nil, nil
	}

	story := &StoryWithMetadata{
		Item:         *item,
		CommentCount: item.Descendants,
		AgeHours:     time.Since(time.Unix(item.Time, 0)).Hours(),
	}
	if item.URL != "" {
		if u, err := url.Parse(item.URL); err == nil {
			story.Domain = u.Hostname()
		}
	}
	return story, nil
}

// UserWithStats fetches a user and enriches the profile from their ten
// most recent submissions, fetched in parallel with per-item failure
// tolerance. TopStories and RecentActivity keep upstream submission
// order; AverageScore covers the story subset and is nil when the user
// has no fetched stories. Returns (nil, nil) when the user is absent.
func (c *Client) UserWithStats(ctx context.Context, username string) (*UserWithStats, error) {
	user, err := c.User(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	ids := user.Submitted
	if len(ids) > userRecentFetch {
		ids = ids[:userRecentFetch]
	}

	recent := compact(c.fetchTolerant(ctx, ids))

	stories := make([]*Item, 0, len(recent))
	for _, item := range recent {
		if item.Type == TypeStory {
			stories = append(stories, item)
		}
	}

	stats := &UserWithStats{
		User:           *user,
		TopStories:     firstN(stories, userListLimit),
		RecentActivity: firstN(recent, userListLimit),
	}
	if len(stories) > 0 {
		total := 0
		for _, story := range stories {
			total += story.Score
		}
		avg := float64(total) / float64(len(stories))
		stats.AverageScore = &avg
	}
	return stats, nil
}

// SearchStories filters the current top-stories window client-side.
// The candidate pool is the first 2x-limit top story IDs; this is a
// best-effort search, not an index.
func (c *Client) SearchStories(ctx context.Context, params SearchParams) ([]*Item, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	ids, err := c.TopStories(ctx)
	if err != nil {
		return nil, err
	}
	if window := searchOverfetch * limit; len(ids) > window {
		ids = ids[:window]
	}

	items, err := c.fetchStrict(ctx, ids)
	if err != nil {
		return nil, err
	}

	matches := make([]*Item, 0, limit)
	for _, item := range items {
		if item == nil || item.Type != TypeStory {
			continue
		}
		if !matchesSearch(item, params) {
			continue
		}
		matches = append(matches, item)
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func matchesSearch(item *Item, p SearchParams) bool {
	if p.Query != "" && !strings.Contains(strings.ToLower(item.Title), strings.ToLower(p.Query)) {
		return false
	}
	if p.Author != "" && item.By != p.Author {
		return false
	}
	if p.MinScore != nil && item.Score < *p.MinScore {
		return false
	}
	if p.StartTime != nil && item.Time < *p.StartTime {
		return false
	}
	if p.EndTime != nil && item.Time > *p.EndTime {
		return false
	}
	if p.ItemType != "" && item.Type != p.ItemType {
		return false
	}
	return true
}

// CommentTree returns the flattened descendant comments of an item.
// Child IDs are walked in batches of five, parallel within a batch; a
// batch and its recursive descendants complete before the next sibling
// batch starts. A fetched node joins the result only when it is a
// non-deleted comment, but its own kids are walked regardless.
func (c *Client) CommentTree(ctx context.Context, id int) ([]*Item, error) {
	root, err := c.Item(ctx, id)
	if err != nil {
		return nil, err
	}
	if root == nil || len(root.Kids) == 0 {
		return []*Item{}, nil
	}
	return c.walkComments(ctx, root.Kids)
}

func (c *Client) walkComments(ctx context.Context, ids []int) ([]*Item, error) {
	comments := make([]*Item, 0, len(ids))
	for start := 0; start < len(ids); start += commentBatchSize {
		batch := ids[start:min(start+commentBatchSize, len(ids))]

		fetched, err := c.fetchStrict(ctx, batch)
		if err != nil {
			return nil, err
		}

		for _, item := range fetched {
			if item == nil {
				continue
			}
			if item.Type == TypeComment && !item.Deleted {
				comments = append(comments, item)
			}
			if len(item.Kids) > 0 {
				descendants, err := c.walkComments(ctx, item.Kids)
				if err != nil {
					return nil, err
				}
				comments = append(comments, descendants...)
			}
		}
	}
	return comments, nil
}

// Items fetches many items in batches of ten, parallel within a batch
// and sequential across batches. Output order matches input order; an
// individual failure or absence becomes a nil slot and never aborts
// the rest of the batch.
func (c *Client) Items(ctx context.Context, ids []int) []*Item {
	results := make([]*Item, 0, len(ids))
	for start := 0; start < len(ids); start += itemBatchSize {
		batch := ids[start:min(start+itemBatchSize, len(ids))]
		results = append(results, c.fetchTolerant(ctx, batch)...)
	}
	return results
}

// fetchStrict fetches ids in parallel preserving order and fails the
// whole batch on the first error.
func (c *Client) fetchStrict(ctx context.Context, ids []int) ([]*Item, error) {
	results := make([]*Item, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			item, err := c.Item(gctx, id)
			if err != nil {
				return err
			}
			results[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// fetchTolerant fetches ids in parallel preserving order; a failed
// fetch leaves a nil slot.
func (c *Client) fetchTolerant(ctx context.Context, ids []int) []*Item {
	results := make([]*Item, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			item, err := c.Item(ctx, id)
			if err != nil {
				c.log.Debug().Int("id", id).Err(err).Msg("dropping failed item fetch")
				return nil
			}
			results[i] = item
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func compact(items []*Item) []*Item {
	out := make([]*Item, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}

func firstN(items []*Item, n int) []*Item {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]*Item, len(items))
	copy(out, items)
	return out
}
