package http

import (
	"net/http"

	"github.com/matrixmedia/matrix/internal/api/domain"
	"github.com/matrixmedia/matrix/internal/api/service"
	"github.com/matrixmedia/matrix/pkg/httpx"
	"github.com/matrixmedia/matrix/pkg/matrixsdk"
)

// GraphHandler serves follows, user search and post likes and saves.
type GraphHandler struct {
	GraphService *service.GraphService
}

func toSummaries(in []domain.FollowSummary) []matrixsdk.UserSummary {
	out := make([]matrixsdk.UserSummary, 0, len(in))
	for _, s := range in {
		out = append(out, matrixsdk.UserSummary{
			ID:          s.ID,
			Username:    s.Username,
			FullName:    s.FullName,
			Profile:     s.Avatar,
			Verified:    s.Verified,
			IsFollowing: s.IsFollowing,
		})
	}
	return out
}

// HandleFollow godoc
//
//	@Summary		Toggle Follow
//	@Description	Follows the account, or unfollows it when already following.
//	@Tags			Social
//	@Security		CookieAuth
//	@Produce		json
//	@Param			userId	path		string						true	"Account id to follow or unfollow"
//	@Success		200		{object}	matrixsdk.FollowResponse	"message, action"
//	@Failure		400		{object}	matrixsdk.ErrorResponse		"validation_error (self follow)"
//	@Failure		401		{object}	matrixsdk.ErrorResponse		"unauthenticated"
//	@Failure		404		{object}	matrixsdk.ErrorResponse		"not_found"
//	@Router			/api/v1/user/profile/follow/{userId} [put].
func (h *GraphHandler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	action, err := h.GraphService.ToggleFollow(r.Context(), id, r.PathValue("userId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, matrixsdk.FollowResponse{
		Message: action.Message(),
		Action:  string(action),
	})
}

// HandleFollowers godoc
//
//	@Summary		List Followers
//	@Description	Lists who follows the account, oldest first. isFollowing is relative to the caller.
//	@Tags			Social
//	@Security		CookieAuth
//	@Produce		json
//	@Param			username	path		string						true	"Username or me"
//	@Success		200			{object}	matrixsdk.FollowersResponse	"followers"
//	@Failure		401			{object}	matrixsdk.ErrorResponse		"unauthenticated"
//	@Failure		404			{object}	matrixsdk.ErrorResponse		"not_found"
//	@Router			/api/v1/user/followers/{username} [get].
func (h *GraphHandler) HandleFollowers(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	rows, err := h.GraphService.ListFollowers(r.Context(), id, r.PathValue("username"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, matrixsdk.FollowersResponse{Followers: toSummaries(rows)})
}

// HandleFollowing godoc
//
//	@Summary		List Following
//	@Description	Lists who the account follows, oldest first. isFollowing is relative to the caller.
//	@Tags			Social
//	@Security		CookieAuth
//	@Produce		json
//	@Param			username	path		string						true	"Username or me"
//	@Success		200			{object}	matrixsdk.FollowingResponse	"following"
//	@Failure		401			{object}	matrixsdk.ErrorResponse		"unauthenticated"
//	@Failure		404			{object}	matrixsdk.ErrorResponse		"not_found"
//	@Router			/api/v1/user/following/{username} [get].
func (h *GraphHandler) HandleFollowing(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	rows, err := h.GraphService.ListFollowing(r.Context(), id, r.PathValue("username"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, matrixsdk.FollowingResponse{Following: toSummaries(rows)})
}

// HandleSearch godoc
//
//	@Summary		Search Users
//	@Description	Matches usernames and full names, prefix matches first, at most 20 results. The caller is excluded.
//	@Tags			Social
//	@Security		CookieAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		matrixsdk.SearchRequest		true	"query"
//	@Success		200		{object}	matrixsdk.SearchResponse	"users"
//	@Failure		400		{object}	matrixsdk.ErrorResponse		"validation_error"
//	@Failure		401		{object}	matrixsdk.ErrorResponse		"unauthenticated"
//	@Router			/api/v1/user/search [post].
func (h *GraphHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req matrixsdk.SearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rows, err := h.GraphService.Search(r.Context(), id, req.Query)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, matrixsdk.SearchResponse{Users: toSummaries(rows)})
}

// HandleSavedPosts godoc
//
//	@Summary		List Saved Posts
//	@Description	Lists the caller's saved post ids, oldest first.
//	@Tags			Posts
//	@Security		CookieAuth
//	@Produce		json
//	@Success		200	{object}	matrixsdk.SavedPostsResponse	"posts"
//	@Failure		401	{object}	matrixsdk.ErrorResponse			"unauthenticated"
//	@Router			/api/v1/user/save/post [get].
func (h *GraphHandler) HandleSavedPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	marks, err := h.GraphService.ListSavedPosts(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	posts := make([]matrixsdk.SavedPost, 0, len(marks))
	for _, m := range marks {
		posts = append(posts, matrixsdk.SavedPost{PostID: m.PostID, CreatedAt: m.CreatedAt})
	}
	httpx.WriteJSON(w, http.StatusOK, matrixsdk.SavedPostsResponse{Posts: posts})
}

// HandleLike godoc
//
//	@Summary		Toggle Like
//	@Description	Likes the post, or removes the like.
//	@Tags			Posts
//	@Security		CookieAuth
//	@Produce		json
//	@Param			postId	path		string						true	"Post id"
//	@Success		200		{object}	matrixsdk.PostMarkResponse	"message, active"
//	@Failure		400		{object}	matrixsdk.ErrorResponse		"validation_error"
//	@Failure		401		{object}	matrixsdk.ErrorResponse		"unauthenticated"
//	@Router			/api/v1/user/post/like/{postId} [put].
func (h *GraphHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	liked, err := h.GraphService.ToggleLike(r.Context(), id, r.PathValue("postId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	msg := service.MsgPostUnliked
	if liked {
		msg = service.MsgPostLiked
	}
	httpx.WriteJSON(w, http.StatusOK, matrixsdk.PostMarkResponse{Message: msg, Active: liked})
}

// HandleSave godoc
//
//	@Summary		Toggle Save
//	@Description	Saves the post, or removes it from the saved list.
//	@Tags			Posts
//	@Security		CookieAuth
//	@Produce		json
//	@Param			postId	path		string						true	"Post id"
//	@Success		200		{object}	matrixsdk.PostMarkResponse	"message, active"
//	@Failure		400		{object}	matrixsdk.ErrorResponse		"validation_error"
//	@Failure		401		{object}	matrixsdk.ErrorResponse		"unauthenticated"
//	@Router			/api/v1/user/post/save/{postId} [put].
func (h *GraphHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	saved, err := h.GraphService.ToggleSave(r.Context(), id, r.PathValue("postId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	msg := service.MsgPostUnsaved
	if saved {
		msg = service.MsgPostSaved
	}
	httpx.WriteJSON(w, http.StatusOK, matrixsdk.PostMarkResponse{Message: msg, Active: saved})
}
