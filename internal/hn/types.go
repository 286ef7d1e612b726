// Package hn implements a caching client for the public HackerNews
// Firebase API. It exposes the primitive item/user/list fetches plus
// the composite read operations (story metadata, user statistics,
// search, comment trees, multi-item batches) that the MCP layer serves.
package hn

// ItemType values returned by the upstream API.
const (
	TypeJob     = "job"
	TypeStory   = "story"
	TypeComment = "comment"
	TypePoll    = "poll"
	TypePollOpt = "pollopt"
)

// Item is a single HackerNews content unit: story, comment, job, poll
// or poll option. Items are immutable snapshots fetched at a point in
// time; every field except ID may be absent upstream.
type Item struct {
	ID          int    `json:"id"`
	Type        string `json:"type,omitempty"`
	By          string `json:"by,omitempty"`
	Time        int64  `json:"time,omitempty"`
	Text        string `json:"text,omitempty"`
	Deleted     bool   `json:"deleted,omitempty"`
	Dead        bool   `json:"dead,omitempty"`
	Parent      int    `json:"parent,omitempty"`
	Poll        int    `json:"poll,omitempty"`
	Kids        []int  `json:"kids,omitempty"`
	URL         string `json:"url,omitempty"`
	Score       int    `json:"score,omitempty"`
	Title       string `json:"title,omitempty"`
	Parts       []int  `json:"parts,omitempty"`
	Descendants int    `json:"descendants,omitempty"`
}

// User is a HackerNews user profile. Submitted is ordered most recent
// first, per upstream convention.
type User struct {
	ID        string `json:"id"`
	Created   int64  `json:"created,omitempty"`
	Karma     int    `json:"karma,omitempty"`
	About     string `json:"about,omitempty"`
	Submitted []int  `json:"submitted,omitempty"`
}

// StoryWithMetadata is a story item enriched with derived fields.
type StoryWithMetadata struct {
	Item
	CommentCount int     `json:"comment_count"`
	AgeHours     float64 `json:"age_hours"`
	Domain       string  `json:"domain,omitempty"`
}

// UserWithStats is a user profile enriched with submission statistics.
// TopStories and RecentActivity are the first entries of the user's
// recent-submission fetch in upstream order; no score ranking is
// applied.
type UserWithStats struct {
	User
	AverageScore   *float64 `json:"average_score,omitempty"`
	TopStories     []*Item  `json:"top_stories"`
	RecentActivity []*Item  `json:"recent_activity"`
}

// SearchParams is a one-shot filter specification for SearchStories.
// Pointer fields distinguish "unset" from a zero value.
type SearchParams struct {
	Query     string `json:"query,omitempty"`
	Author    string `json:"author,omitempty"`
	StartTime *int64 `json:"start_time,omitempty"`
	EndTime   *int64 `json:"end_time,omitempty"`
	MinScore  *int   `json:"min_score,omitempty"`
	ItemType  string `json:"item_type,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// Updates lists the item and profile IDs changed recently upstream.
type Updates struct {
	Items    []int    `json:"items"`
	Profiles []string `json:"profiles"`
}

// CacheStats reports the expiry-aware entry counts of the client's
// three caches.
type CacheStats struct {
	Items int `json:"items"`
	Users int `json:"users"`
	Lists int `json:"lists"`
}
