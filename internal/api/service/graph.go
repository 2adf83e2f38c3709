package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/matrixmedia/matrix/internal/api/domain"
	"github.com/matrixmedia/matrix/internal/api/store"
	"github.com/matrixmedia/matrix/pkg/slogx"
)

// SearchLimit caps the number of search results.
const SearchLimit = 20

// Self is the username alias for the viewer's own account.
const Self = "me"

const (
	MsgFollowed   = "Followed Successfully"
	MsgUnfollowed = "Unfollowed Successfully"

	MsgPostLiked   = "Post liked"
	MsgPostUnliked = "Post unliked"
	MsgPostSaved   = "Post saved"
	MsgPostUnsaved = "Post removed from saved"

	msgSelfFollow   = "You cannot follow yourself"
	msgUserNotFound = "User not found"
)

// FollowAction is the outcome of a follow toggle.
type FollowAction string

const (
	Followed   FollowAction = "followed"
	Unfollowed FollowAction = "unfollowed"
)

// Message is the client facing text for the action.
func (a FollowAction) Message() string {
	if a == Followed {
		return MsgFollowed
	}
	return MsgUnfollowed
}

type SearchInput struct {
	Query string `json:"query" validate:"required,max=64"`
}

type postInput struct {
	PostID string `json:"postId" validate:"required,max=64"`
}

// GraphService maintains who follows whom and the per-user post sets.
type GraphService struct {
	Store store.Store
	Now   func() time.Time
}

// ToggleFollow flips whether actorID follows targetID. The check and the
// write happen in one transaction.
func (s *GraphService) ToggleFollow(ctx context.Context, actorID, targetID string) (FollowAction, error) {
	log := slogx.FromContext(ctx)

	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return "", validationError("userId is required", map[string]string{"userId": "userId is required"})
	}
	if actorID == targetID {
		return "", validationError(msgSelfFollow, nil)
	}

	var action FollowAction
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, id := range []string{actorID, targetID} {
			if _, err := tx.Users().GetUserByID(ctx, id); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return notFoundError(msgUserNotFound)
				}
				return err
			}
		}

		removed, err := tx.Follows().Unfollow(ctx, actorID, targetID)
		if err != nil {
			return err
		}
		if removed {
			action = Unfollowed
			return nil
		}

		if err := tx.Follows().Follow(ctx, actorID, targetID, clock(s.Now)); err != nil {
			return err
		}
		action = Followed
		return nil
	})
	if err != nil {
		var serr *Error
		if errors.As(err, &serr) {
			return "", serr
		}
		return "", fmt.Errorf("toggle follow: %w", err)
	}

	log.Info("follow toggled",
		slog.String("target_id", targetID),
		slog.String("action", string(action)),
	)
	return action, nil
}

// resolveUser looks up username, treating "me" as the viewer.
func resolveUser(ctx context.Context, users store.Users, viewerID, username string) (domain.User, error) {
	username = strings.TrimSpace(username)

	var (
		u   domain.User
		err error
	)
	if username == Self {
		u, err = users.GetUserByID(ctx, viewerID)
	} else {
		u, err = users.GetUserByUsername(ctx, username)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, notFoundError(msgUserNotFound)
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}

// ListFollowers returns who follows username, in the order they followed.
func (s *GraphService) ListFollowers(ctx context.Context, viewerID, username string) ([]domain.FollowSummary, error) {
	subject, err := resolveUser(ctx, s.Store.Users(), viewerID, username)
	if err != nil {
		return nil, err
	}

	users, err := s.Store.Follows().ListFollowers(ctx, subject.ID)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return s.summarize(ctx, viewerID, users)
}

// ListFollowing returns who username follows, in the order they were
// followed.
func (s *GraphService) ListFollowing(ctx context.Context, viewerID, username string) ([]domain.FollowSummary, error) {
	subject, err := resolveUser(ctx, s.Store.Users(), viewerID, username)
	if err != nil {
		return nil, err
	}

	users, err := s.Store.Follows().ListFollowing(ctx, subject.ID)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return s.summarize(ctx, viewerID, users)
}

// Search matches query against usernames and full names, excluding the
// viewer.
func (s *GraphService) Search(ctx context.Context, viewerID, query string) ([]domain.FollowSummary, error) {
	in := SearchInput{Query: strings.TrimSpace(query)}
	if verr := validateInput(in); verr != nil {
		return nil, verr
	}

	users, err := s.Store.Users().SearchUsers(ctx, in.Query, viewerID, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return s.summarize(ctx, viewerID, users)
}

// summarize builds list rows with isFollowing relative to the viewer. The
// viewer's own row is always false.
func (s *GraphService) summarize(ctx context.Context, viewerID string, users []domain.User) ([]domain.FollowSummary, error) {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	followed, err := s.Store.Follows().FollowedAmong(ctx, viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve follow state: %w", err)
	}

	out := make([]domain.FollowSummary, 0, len(users))
	for _, u := range users {
		out = append(out, domain.FollowSummary{
			ID:          u.ID,
			Username:    u.Username,
			FullName:    u.FullName,
			Avatar:      u.ProfileImage,
			Verified:    u.Verified,
			IsFollowing: u.ID != viewerID && followed[u.ID],
		})
	}
	return out, nil
}

// ToggleLike flips whether userID likes postID and reports whether the
// post is now liked.
func (s *GraphService) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	return s.togglePostMark(ctx, domain.PostLiked, userID, postID)
}

// ToggleSave flips whether userID saved postID and reports whether the
// post is now saved.
func (s *GraphService) ToggleSave(ctx context.Context, userID, postID string) (bool, error) {
	return s.togglePostMark(ctx, domain.PostSaved, userID, postID)
}

func (s *GraphService) togglePostMark(ctx context.Context, kind domain.PostMarkKind, userID, postID string) (bool, error) {
	in := postInput{PostID: strings.TrimSpace(postID)}
	if verr := validateInput(in); verr != nil {
		return false, verr
	}

	var added bool
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		removed, err := tx.PostMarks().Remove(ctx, kind, userID, in.PostID)
		if err != nil || removed {
			return err
		}
		added = true
		return tx.PostMarks().Add(ctx, kind, userID, in.PostID, clock(s.Now))
	})
	if err != nil {
		return false, fmt.Errorf("toggle %s: %w", kind, err)
	}
	return added, nil
}

// ListSavedPosts returns the user's saved post ids, oldest first.
func (s *GraphService) ListSavedPosts(ctx context.Context, userID string) ([]domain.PostMark, error) {
	marks, err := s.Store.PostMarks().List(ctx, domain.PostSaved, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved posts: %w", err)
	}
	return marks, nil
}
