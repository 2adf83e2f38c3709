package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/matrixmedia/matrix/internal/api/domain"
	"github.com/matrixmedia/matrix/internal/api/media"
	"github.com/matrixmedia/matrix/internal/api/store"
	"github.com/matrixmedia/matrix/pkg/cryptox"
	"github.com/matrixmedia/matrix/pkg/idx"
	"github.com/matrixmedia/matrix/pkg/slogx"
)

// DefaultMaxUploadBytes is the largest accepted profile or cover image.
const DefaultMaxUploadBytes = 5 << 20

const (
	MsgPicturesUpdated = "Profile pictures updated successfully"
	MsgProfileUpdated  = "Profile updated successfully"

	msgNoPicture        = "Please provide a profile or cover image"
	msgNothingToUpdate  = "Please provide at least one field to update"
	msgUsernameSame     = "New username must be different from the current one."
	msgPasswordPair     = "Both oldPassword and newPassword are required to change the password"
	msgOldPasswordWrong = "Old password is incorrect"
)

// Upload is one file from a multipart form.
type Upload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// PictureURLs are the stored image URLs; empty when not updated.
type PictureURLs struct {
	Profile string `json:"profile,omitempty"`
	Cover   string `json:"cover,omitempty"`
}

// UpdateInfoInput carries the profile fields to change. Nil leaves a field
// as it is.
type UpdateInfoInput struct {
	FullName       *string `json:"fullName" validate:"omitempty,max=64"`
	Username       *string `json:"username" validate:"omitempty,alphanum,ne=me,notphone,max=30"`
	Bio            *string `json:"bio" validate:"omitempty,max=280"`
	CurrentAddress *string `json:"currentAddress" validate:"omitempty,max=128"`
	MediaLink      *string `json:"mediaLink" validate:"omitempty,url,max=256"`
	OldPassword    *string `json:"oldPassword"`
	NewPassword    *string `json:"newPassword" validate:"omitempty,strongpassword"`
}

func (in *UpdateInfoInput) empty() bool {
	return in.FullName == nil && in.Username == nil && in.Bio == nil &&
		in.CurrentAddress == nil && in.MediaLink == nil &&
		in.OldPassword == nil && in.NewPassword == nil
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

// ProfileService builds profile views and applies profile edits.
type ProfileService struct {
	Store          store.Store
	Media          media.ObjectStorage
	MaxUploadBytes int64
	Now            func() time.Time
}

// GetProfile returns the viewer's own SelfProfileView when username is
// "me" or names the viewer, and a PublicProfileView otherwise.
func (s *ProfileService) GetProfile(ctx context.Context, viewerID, username string) (domain.ProfileView, error) {
	subject, err := resolveUser(ctx, s.Store.Users(), viewerID, username)
	if err != nil {
		return nil, err
	}

	counts, err := s.counts(ctx, subject.ID)
	if err != nil {
		return nil, err
	}

	if subject.ID == viewerID {
		return domain.NewSelfProfileView(subject, counts), nil
	}

	following, err := s.Store.Follows().IsFollowing(ctx, viewerID, subject.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve follow state: %w", err)
	}
	return domain.NewPublicProfileView(subject, counts, following), nil
}

func (s *ProfileService) counts(ctx context.Context, userID string) (domain.ProfileCounts, error) {
	var (
		c   domain.ProfileCounts
		err error
	)
	if c.Followers, err = s.Store.Follows().CountFollowers(ctx, userID); err != nil {
		return c, fmt.Errorf("count followers: %w", err)
	}
	if c.Following, err = s.Store.Follows().CountFollowing(ctx, userID); err != nil {
		return c, fmt.Errorf("count following: %w", err)
	}
	if c.LikedPosts, err = s.Store.PostMarks().Count(ctx, domain.PostLiked, userID); err != nil {
		return c, fmt.Errorf("count liked posts: %w", err)
	}
	if c.SavedPosts, err = s.Store.PostMarks().Count(ctx, domain.PostSaved, userID); err != nil {
		return c, fmt.Errorf("count saved posts: %w", err)
	}
	return c, nil
}

func (s *ProfileService) maxUpload() int64 {
	if s.MaxUploadBytes <= 0 {
		return DefaultMaxUploadBytes
	}
	return s.MaxUploadBytes
}

// UpdatePictures stores whichever of profile and cover is given and
// persists the resulting URLs.
func (s *ProfileService) UpdatePictures(ctx context.Context, userID string, profile, cover *Upload) (PictureURLs, error) {
	log := slogx.FromContext(ctx)

	if profile == nil && cover == nil {
		return PictureURLs{}, validationError(msgNoPicture, nil)
	}

	details := map[string]string{}
	var checked [2]*checkedUpload
	for i, item := range []struct {
		field string
		up    *Upload
	}{{"profile", profile}, {"cover", cover}} {
		if item.up == nil {
			continue
		}
		cu, reason := s.checkImage(item.up)
		if reason != "" {
			details[item.field] = reason
			continue
		}
		checked[i] = cu
	}
	if len(details) > 0 {
		first := "profile"
		if _, ok := details[first]; !ok {
			first = "cover"
		}
		return PictureURLs{}, newValidationError(details, first)
	}

	var urls PictureURLs
	for i, kind := range []string{"profile", "cover"} {
		cu := checked[i]
		if cu == nil {
			continue
		}

		key := fmt.Sprintf("users/%s/%s/%s%s", userID, kind, idx.New(), cu.ext)
		url, err := s.Media.Put(ctx, media.Object{
			Key:         key,
			ContentType: cu.contentType,
			Size:        cu.size,
			Body:        cu.body,
		})
		if err != nil {
			return PictureURLs{}, fmt.Errorf("store %s image: %w", kind, err)
		}

		if kind == "profile" {
			urls.Profile = url
		} else {
			urls.Cover = url
		}
	}

	var profileURL, coverURL *string
	if urls.Profile != "" {
		profileURL = &urls.Profile
	}
	if urls.Cover != "" {
		coverURL = &urls.Cover
	}
	if err := s.Store.Users().UpdateImages(ctx, userID, profileURL, coverURL, clock(s.Now)); err != nil {
		return PictureURLs{}, fmt.Errorf("save image urls: %w", err)
	}

	log.Info("profile pictures updated", slog.Bool("profile", profileURL != nil), slog.Bool("cover", coverURL != nil))
	return urls, nil
}

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

type checkedUpload struct {
	contentType string
	ext         string
	size        int64
	body        io.Reader
}

// checkImage sniffs the content type and enforces the size limit. It
// returns a reason when the upload is rejected.
func (s *ProfileService) checkImage(up *Upload) (*checkedUpload, string) {
	if up.Size <= 0 {
		return nil, "file is empty"
	}
	if up.Size > s.maxUpload() {
		return nil, fmt.Sprintf("file must be at most %d MB", s.maxUpload()>>20)
	}

	br := bufio.NewReaderSize(up.Body, 512)
	head, _ := br.Peek(512)
	ct := http.DetectContentType(head)
	if !strings.HasPrefix(ct, "image/") {
		return nil, "file must be an image"
	}

	ext := strings.ToLower(filepath.Ext(up.Filename))
	if ext == "" || mime.TypeByExtension(ext) != ct {
		ext = imageExt[ct]
		if ext == "" {
			if exts, _ := mime.ExtensionsByType(ct); len(exts) > 0 {
				ext = exts[0]
			}
		}
	}

	return &checkedUpload{contentType: ct, ext: ext, size: up.Size, body: br}, ""
}

// UpdateInfo applies a partial profile edit, including an optional
// password change that requires the old password.
func (s *ProfileService) UpdateInfo(ctx context.Context, userID string, in UpdateInfoInput) error {
	log := slogx.FromContext(ctx)

	if in.empty() {
		return validationError(msgNothingToUpdate, nil)
	}

	in.FullName = trimPtr(in.FullName)
	in.Username = trimPtr(in.Username)
	in.Bio = trimPtr(in.Bio)
	in.CurrentAddress = trimPtr(in.CurrentAddress)
	in.MediaLink = trimPtr(in.MediaLink)

	details := map[string]string{}
	first := ""
	note := func(field, reason string) {
		if _, ok := details[field]; !ok {
			details[field] = reason
		}
		if first == "" {
			first = field
		}
	}

	if in.FullName != nil && *in.FullName == "" {
		note("fullName", "fullName cannot be empty")
	}
	if in.Username != nil && *in.Username == "" {
		note("username", "username cannot be empty")
	}
	if in.OldPassword != nil && in.NewPassword == nil {
		note("newPassword", msgPasswordPair)
	}
	if in.NewPassword != nil && *in.NewPassword == "" {
		note("newPassword", "newPassword cannot be empty")
	}
	if verr := validateInput(in); verr != nil {
		for field, reason := range verr.Details {
			note(field, reason)
		}
	}
	if len(details) > 0 {
		return newValidationError(details, first)
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundError(msgUserNotFound)
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	upd := store.ProfileUpdate{
		FullName:       in.FullName,
		Bio:            in.Bio,
		CurrentAddress: in.CurrentAddress,
		MediaLink:      in.MediaLink,
	}

	if in.Username != nil {
		if *in.Username == u.Username {
			return validationError(msgUsernameSame, map[string]string{"username": msgUsernameSame})
		}
		upd.Username = in.Username
	}

	if in.NewPassword != nil {
		hash, err := s.changedPassword(u, in.OldPassword, *in.NewPassword)
		if err != nil {
			return err
		}
		upd.PasswordHash = &hash
	}

	if err := s.Store.Users().UpdateProfile(ctx, u.ID, upd, clock(s.Now)); err != nil {
		if cerr := accountConflict(err); cerr != nil {
			return cerr
		}
		return fmt.Errorf("update profile: %w", err)
	}

	log.Info("profile updated",
		slog.Bool("username_changed", upd.Username != nil),
		slog.Bool("password_changed", upd.PasswordHash != nil),
	)
	return nil
}

// changedPassword checks a password change and returns the new hash.
// Accounts created through OAuth have no password yet and may set one
// without an old password.
func (s *ProfileService) changedPassword(u domain.User, oldPassword *string, newPassword string) (string, error) {
	if u.HasPassword() {
		if oldPassword == nil || *oldPassword == "" {
			return "", validationError(msgPasswordPair, map[string]string{"oldPassword": msgPasswordPair})
		}
		if err := cryptox.VerifyPassword(*oldPassword, u.PasswordHash); err != nil {
			if errors.Is(err, cryptox.ErrPasswordMismatch) {
				return "", authError(msgOldPasswordWrong)
			}
			return "", fmt.Errorf("verify password: %w", err)
		}

		if newPassword == *oldPassword {
			return "", validationError(msgPasswordSame, map[string]string{"newPassword": msgPasswordSame})
		}
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}
