package matrixsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ToggleFollow follows userID, or unfollows when already following.
func (c *Client) ToggleFollow(ctx context.Context, userID string) (*FollowResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, APIPrefix+"/user/profile/follow/"+url.PathEscape(userID), nil)
	if err != nil {
		return nil, err
	}

	var out FollowResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Followers lists who follows username.
func (c *Client) Followers(ctx context.Context, username string) ([]UserSummary, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, APIPrefix+"/user/followers/"+url.PathEscape(username), nil, nil)
	if err != nil {
		return nil, err
	}

	var out FollowersResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Followers, nil
}

// Following lists who username follows.
func (c *Client) Following(ctx context.Context, username string) ([]UserSummary, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, APIPrefix+"/user/following/"+url.PathEscape(username), nil, nil)
	if err != nil {
		return nil, err
	}

	var out FollowingResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Following, nil
}

// Search finds accounts by username or full name.
func (c *Client) Search(ctx context.Context, query string) ([]UserSummary, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, APIPrefix+"/user/search", SearchRequest{Query: query})
	if err != nil {
		return nil, err
	}

	var out SearchResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// ToggleLike likes postID, or removes the like.
func (c *Client) ToggleLike(ctx context.Context, postID string) (*PostMarkResponse, error) {
	return c.togglePostMark(ctx, "like", postID)
}

// ToggleSave saves postID, or removes it from the saved list.
func (c *Client) ToggleSave(ctx context.Context, postID string) (*PostMarkResponse, error) {
	return c.togglePostMark(ctx, "save", postID)
}

func (c *Client) togglePostMark(ctx context.Context, kind, postID string) (*PostMarkResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, APIPrefix+"/user/post/"+kind+"/"+url.PathEscape(postID), nil)
	if err != nil {
		return nil, err
	}

	var out PostMarkResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SavedPosts lists the caller's saved posts.
func (c *Client) SavedPosts(ctx context.Context) ([]SavedPost, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, APIPrefix+"/user/save/post", nil, nil)
	if err != nil {
		return nil, err
	}

	var out SavedPostsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Posts, nil
}
