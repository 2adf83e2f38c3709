package domain

import "time"

// ProfileCounts are the aggregate numbers shown on a profile.
type ProfileCounts struct {
	Followers  int `json:"followers"`
	Following  int `json:"following"`
	LikedPosts int `json:"likedPosts"`
	SavedPosts int `json:"savedPosts"`
}

// ProfileView is either a SelfProfileView or a PublicProfileView.
type ProfileView interface {
	isProfileView()
}

type profileBase struct {
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

	ProfileCounts
}

// SelfProfileView is what an account sees of itself, private fields
// included.
type SelfProfileView struct {
	profileBase

	Email      string   `json:"email"`
	Phone      string   `json:"phone,omitempty"`
	Provider   Provider `json:"provider"`
	GoogleID   string   `json:"googleId,omitempty"`
	GitHubID   string   `json:"githubId,omitempty"`
	FacebookID string   `json:"facebookId,omitempty"`
	MyProfile  bool     `json:"myProfile"`
}

// PublicProfileView is what everyone else sees. It has no contact or
// provider fields at all.
type PublicProfileView struct {
	profileBase

	MyProfile   bool `json:"myProfile"`
	IsFollowing bool `json:"isFollowing"`
}

func (SelfProfileView) isProfileView()   {}
func (PublicProfileView) isProfileView() {}

func newProfileBase(u User, counts ProfileCounts) profileBase {
	return profileBase{
		ID:             u.ID,
		Username:       u.Username,
		FullName:       u.FullName,
		Profile:        u.ProfileImage,
		Cover:          u.CoverImage,
		Bio:            u.Bio,
		CurrentAddress: u.CurrentAddress,
		MediaLink:      u.MediaLink,
		Verified:       u.Verified,
		LastLogin:      u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
		ProfileCounts:  counts,
	}
}

// NewSelfProfileView builds the owner's view of u.
func NewSelfProfileView(u User, counts ProfileCounts) SelfProfileView {
	return SelfProfileView{
		profileBase: newProfileBase(u, counts),
		Email:       u.Email,
		Phone:       u.Phone,
		Provider:    u.Provider,
		GoogleID:    u.GoogleID,
		GitHubID:    u.GitHubID,
		FacebookID:  u.FacebookID,
		MyProfile:   true,
	}
}

// NewPublicProfileView builds another viewer's view of u.
func NewPublicProfileView(u User, counts ProfileCounts, isFollowing bool) PublicProfileView {
	return PublicProfileView{
		profileBase: newProfileBase(u, counts),
		IsFollowing: isFollowing,
	}
}
