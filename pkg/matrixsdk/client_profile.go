package matrixsdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// GetProfile fetches a profile. "me" is the caller's own.
func (c *Client) GetProfile(ctx context.Context, username string) (*Profile, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, APIPrefix+"/user/profile/"+url.PathEscape(username), nil, nil)
	if err != nil {
		return nil, err
	}

	var out ProfileResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

// UpdateInfo changes profile fields and, optionally, the password.
func (c *Client) UpdateInfo(ctx context.Context, req UpdateInfoRequest) (*MessageResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, APIPrefix+"/user/profile/info/update", req)
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Picture is an image file to upload.
type Picture struct {
	Filename string
	Body     io.Reader
}

// UpdatePictures uploads a new profile image, cover image or both. A nil
// Picture is skipped.
func (c *Client) UpdatePictures(ctx context.Context, profile, cover *Picture) (*PictureResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for field, p := range map[string]*Picture{"profile": profile, "cover": cover} {
		if p == nil {
			continue
		}
		part, err := mw.CreateFormFile(field, p.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, p.Body); err != nil {
			return nil, fmt.Errorf("failed to write form file: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPut, APIPrefix+"/user/profile/pic/update", &buf, map[string]string{
		"Content-Type": mw.FormDataContentType(),
	})
	if err != nil {
		return nil, err
	}

	var out PictureResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
