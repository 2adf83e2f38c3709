package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/matrixmedia/matrix/internal/api/domain"
)

// getJSON performs an authenticated GET and decodes the JSON response.
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: %s: %s", url, resp.Status, body)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func fetchGoogle(ctx context.Context, client *http.Client, apiURL string) (domain.ExternalProfile, error) {
	var info struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := getJSON(ctx, client, apiURL+"/v1/userinfo", &info); err != nil {
		return domain.ExternalProfile{}, err
	}

	ext := domain.ExternalProfile{
		ID:        info.Sub,
		FullName:  info.Name,
		AvatarURL: info.Picture,
	}
	if info.EmailVerified {
		ext.Email = info.Email
	}
	return ext, nil
}

func fetchGitHub(ctx context.Context, client *http.Client, apiURL string) (domain.ExternalProfile, error) {
	var user struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := getJSON(ctx, client, apiURL+"/user", &user); err != nil {
		return domain.ExternalProfile{}, err
	}
	if user.ID == 0 {
		return domain.ExternalProfile{}, ErrNoIdentity
	}

	ext := domain.ExternalProfile{
		ID:        strconv.FormatInt(user.ID, 10),
		Username:  user.Login,
		FullName:  user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	}
	if ext.FullName == "" {
		ext.FullName = user.Login
	}

	// The public profile email is often hidden; the emails endpoint lists
	// the primary address when the user:email scope was granted.
	if ext.Email == "" {
		var emails []struct {
			Email    string `json:"email"`
			Primary  bool   `json:"primary"`
			Verified bool   `json:"verified"`
		}
		if err := getJSON(ctx, client, apiURL+"/user/emails", &emails); err == nil {
			for _, e := range emails {
				if e.Primary && e.Verified {
					ext.Email = e.Email
					break
				}
			}
		}
	}

	return ext, nil
}

func fetchFacebook(ctx context.Context, client *http.Client, apiURL string) (domain.ExternalProfile, error) {
	var me struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
	}
	if err := getJSON(ctx, client, apiURL+"/me?fields=id,name,email,picture.type(large)", &me); err != nil {
		return domain.ExternalProfile{}, err
	}

	return domain.ExternalProfile{
		ID:        me.ID,
		FullName:  me.Name,
		Email:     me.Email,
		AvatarURL: me.Picture.Data.URL,
	}, nil
}
