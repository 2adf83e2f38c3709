package matrixsdk

import (
	"time"

	"github.com/matrixmedia/matrix/pkg/httpx"
)

// ============================================================================
// Common Response Types
// ============================================================================

// ErrorResponse is the body of every error response.
type ErrorResponse = httpx.ErrorBody

// MessageResponse is the body of plain success responses.
type MessageResponse = httpx.MessageBody

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	// Status is "ok" or "degraded"
	Status string `json:"status"`

	// Uptime is the process uptime as a Go duration string
	Uptime string `json:"uptime"`

	// Version is the build version
	Version string `json:"version"`

	// Checks holds per-dependency results, readiness only
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of the dependencies checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// ============================================================================
// Account Types
// ============================================================================

// SignUpRequest is the body of POST /api/v1/user/auth/signup.
type SignUpRequest struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/v1/user/auth/login. Username may
// also be the account's email or phone.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ResetPasswordRequest is the body of PUT /api/v1/user/auth/forger/password.
type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

// ============================================================================
// Profile Types
// ============================================================================

// Profile is a profile as returned by GET /api/v1/user/profile/{username}.
// The private fields are only present when MyProfile is true.
type Profile struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	FullName       string     `json:"fullName"`
	Profile        string     `json:"profile"`
	Cover          string     `json:"cover"`
	Bio            string     `json:"bio"`
	CurrentAddress string     `json:"currentAddress"`
	MediaLink      string     `json:"mediaLink"`
	Verified       bool       `json:"verified"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`

	Followers  int `json:"followers"`
	Following  int `json:"following"`
	LikedPosts int `json:"likedPosts"`
	SavedPosts int `json:"savedPosts"`

	MyProfile   bool `json:"myProfile"`
	IsFollowing bool `json:"isFollowing"`

	// Present on the owner's view only
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Provider   *string `json:"provider,omitempty"`
	GoogleID   *string `json:"googleId,omitempty"`
	GitHubID   *string `json:"githubId,omitempty"`
	FacebookID *string `json:"facebookId,omitempty"`
}

// ProfileResponse wraps a Profile.
type ProfileResponse struct {
	Profile Profile `json:"profile"`
}

// PictureResponse is returned by PUT /api/v1/user/profile/pic/update with
// the URLs of whichever images were replaced.
type PictureResponse struct {
	Message string `json:"message"`
	Profile string `json:"profile,omitempty"`
	Cover   string `json:"cover,omitempty"`
}

// UpdateInfoRequest is the body of PUT /api/v1/user/profile/info/update.
// Omitted fields are left unchanged.
type UpdateInfoRequest struct {
	FullName       *string `json:"fullName,omitempty"`
	Username       *string `json:"username,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	CurrentAddress *string `json:"currentAddress,omitempty"`
	MediaLink      *string `json:"mediaLink,omitempty"`
	OldPassword    *string `json:"oldPassword,omitempty"`
	NewPassword    *string `json:"newPassword,omitempty"`
}

// ============================================================================
// Social Graph Types
// ============================================================================

// UserSummary is one row of a followers, following or search listing.
// IsFollowing is relative to the caller.
type UserSummary struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"fullName"`
	Profile     string `json:"profile"`
	Verified    bool   `json:"verified"`
	IsFollowing bool   `json:"isFollowing"`
}

// FollowResponse is returned by PUT /api/v1/user/profile/follow/{userId}.
type FollowResponse struct {
	Message string `json:"message"`

	// Action is "followed" or "unfollowed"
	Action string `json:"action"`
}

// FollowersResponse lists the accounts following a user, oldest first.
type FollowersResponse struct {
	Followers []UserSummary `json:"followers"`
}

// FollowingResponse lists the accounts a user follows, oldest first.
type FollowingResponse struct {
	Following []UserSummary `json:"following"`
}

// SearchRequest is the body of POST /api/v1/user/search.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse lists matching accounts, prefix matches first.
type SearchResponse struct {
	Users []UserSummary `json:"users"`
}

// ============================================================================
// Post Types
// ============================================================================

// SavedPost is one entry of the caller's saved posts.
type SavedPost struct {
	PostID    string    `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SavedPostsResponse lists the caller's saved posts, oldest first.
type SavedPostsResponse struct {
	Posts []SavedPost `json:"posts"`
}

// PostMarkResponse is returned by the like and save toggles.
type PostMarkResponse struct {
	Message string `json:"message"`

	// Active reports whether the post is liked (or saved) after the call
	Active bool `json:"active"`
}
