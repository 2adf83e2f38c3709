package domain

import "time"

// FollowSummary is one row of a follower or following list, relative to
// the viewer who asked for it.
type FollowSummary struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"fullName"`
	Avatar      string `json:"profile"`
	Verified    bool   `json:"verified"`
	IsFollowing bool   `json:"isFollowing"`
}

// PostMarkKind names a per-user set of post ids.
type PostMarkKind string

const (
	PostLiked PostMarkKind = "like"
	PostSaved PostMarkKind = "save"
)

// PostMark is a post id in one of a user's sets.
type PostMark struct {
	PostID    string    `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}
