package hn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hnlabs/hn-mcp-go/internal/cache"
)

// DefaultBaseURL is the public HackerNews Firebase API endpoint.
const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

// Client fetches items, users and story-ID lists from the HackerNews
// API. It owns three independent caches (items, users, lists) and
// bounds every network call with the configured timeout. The client
// never retries; every failure is raised to the caller as a
// ClientError.
type Client struct {
	baseURL string
	httpc   *http.Client
	timeout time.Duration
	log     zerolog.Logger

	items *cache.Cache[*Item]
	users *cache.Cache[*User]
	lists *cache.Cache[[]int]
}

// Options contains options for creating a Client.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	CacheTTL     time.Duration
	CacheMaxSize int
	Logger       zerolog.Logger
}

// DefaultOptions returns default client options.
func DefaultOptions() Options {
	return Options{
		BaseURL:      DefaultBaseURL,
		Timeout:      10 * time.Second,
		CacheTTL:     5 * time.Minute,
		CacheMaxSize: 500,
		Logger:       zerolog.Nop(),
	}
}

// NewClient creates a client for the HackerNews API. The lists cache
// is sized at a tenth of the configured max: there are only seven
// distinct list endpoints.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.CacheTTL < 0 {
		opts.CacheTTL = 0
	}
	if opts.CacheMaxSize < 0 {
		opts.CacheMaxSize = 0
	}

	return &Client{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		httpc:   &http.Client{},
		timeout: opts.Timeout,
		log:     opts.Logger,
		items:   cache.New[*Item](opts.CacheTTL, opts.CacheMaxSize),
		users:   cache.New[*User](opts.CacheTTL, opts.CacheMaxSize),
		lists:   cache.New[[]int](opts.CacheTTL, opts.CacheMaxSize/10),
	}
}

// fetchJSON performs a timeout-bounded GET against path and decodes
// the JSON body. An upstream "null" body decodes to the zero value,
// which callers treat as not-found.
func fetchJSON[T any](ctx context.Context, c *Client, path string) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return zero, newClientError(KindNetwork, 0, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return zero, newClientError(KindTimeout, 0,
				fmt.Errorf("request to %s timed out after %s", url, c.timeout))
		}
		return zero, newClientError(KindNetwork, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, newClientError(KindStatus, resp.StatusCode,
			fmt.Errorf("unexpected status %q from %s", resp.Status, url))
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return zero, newClientError(KindDecode, 0, err)
	}
	return out, nil
}

// Item fetches a single item by ID. A clean upstream not-found returns
// (nil, nil). Results are cached; null results are not.
func (c *Client) Item(ctx context.Context, id int) (*Item, error) {
	key := fmt.Sprintf("item:%d", id)
	if item, ok := c.items.Get(key); ok {
		c.log.Debug().Int("id", id).Msg("item cache hit")
		return item, nil
	}

	item, err := fetchJSON[*Item](ctx, c, fmt.Sprintf("/item/%d.json", id))
	if err != nil {
		return nil, err
	}
	if item != nil {
		c.items.Set(key, item)
	}
	return item, nil
}

// User fetches a user profile by username. A clean upstream not-found
// returns (nil, nil).
func (c *Client) User(ctx context.Context, username string) (*User, error) {
	key := "user:" + username
	if user, ok := c.users.Get(key); ok {
		c.log.Debug().Str("username", username).Msg("user cache hit")
		return user, nil
	}

	user, err := fetchJSON[*User](ctx, c, "/user/"+username+".json")
	if err != nil {
		return nil, err
	}
	if user != nil {
		c.users.Set(key, user)
	}
	return user, nil
}

// MaxItemID fetches the current largest item ID. Never cached.
func (c *Client) MaxItemID(ctx context.Context) (int, error) {
	return fetchJSON[int](ctx, c, "/maxitem.json")
}

// Updates fetches the set of recently changed items and profiles.
// Never cached.
func (c *Client) Updates(ctx context.Context) (*Updates, error) {
	return fetchJSON[*Updates](ctx, c, "/updates.json")
}

// storyList fetches one of the ranked ID-list endpoints. Upstream
// order is the ranking.
func (c *Client) storyList(ctx context.Context, endpoint string) ([]int, error) {
	key := "list:" + endpoint
	if ids, ok := c.lists.Get(key); ok {
		c.log.Debug().Str("endpoint", endpoint).Msg("list cache hit")
		return ids, nil
	}

	ids, err := fetchJSON[[]int](ctx, c, "/"+endpoint+".json")
	if err != nil {
		return nil, err
	}
	if ids != nil {
		c.lists.Set(key, ids)
	}
	return ids, nil
}

// TopStories fetches the front-page story ID ranking.
func (c *Client) TopStories(ctx context.Context) ([]int, error) {
	return c.storyList(ctx, "topstories")
}

// NewStories fetches the newest story IDs.
func (c *Client) NewStories(ctx context.Context) ([]int, error) {
	return c.storyList(ctx, "newstories")
}

// BestStories fetches the best story IDs.
func (c *Client) BestStories(ctx context.Context) ([]int, error) {
	return c.storyList(ctx, "beststories")
}

// AskStories fetches the Ask HN story IDs.
func (c *Client) AskStories(ctx context.Context) ([]int, error) {
	return c.storyList(ctx, "askstories")
}

// ShowStories fetches the Show HN story IDs.
func (c *Client) ShowStories(ctx context.Context) ([]int, error) {
	return c.storyList(ctx, "showstories")
}

// JobStories fetches the job story IDs.
func (c *Client) JobStories(ctx context.Context) ([]int, error) {
	return c.storyList(ctx, "jobstories")
}

// Stories fetches the ID ranking for a named collection: top, new,
// best, ask, show or job.
func (c *Client) Stories(ctx context.Context, kind string) ([]int, error) {
	switch kind {
	case "top", "new", "best", "ask", "show", "job":
		return c.storyList(ctx, kind+"stories")
	default:
		return nil, fmt.Errorf("unknown story list %q", kind)
	}
}

// CacheStats returns the expiry-aware sizes of the three caches.
func (c *Client) CacheStats() CacheStats {
	return CacheStats{
		Items: c.items.Len(),
		Users: c.users.Len(),
		Lists: c.lists.Len(),
	}
}

// ClearCache empties all three caches.
func (c *Client) ClearCache() {
	c.items.Clear()
	c.users.Clear()
	c.lists.Clear()
}
