package http

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/matrixmedia/matrix/internal/api/domain"
	"github.com/matrixmedia/matrix/internal/api/service"
	"github.com/matrixmedia/matrix/pkg/httpx"
	"github.com/matrixmedia/matrix/pkg/matrixsdk"
	"github.com/matrixmedia/matrix/pkg/slogx"
)

// ProfileHandler serves profile reads and edits.
type ProfileHandler struct {
	ProfileService *service.ProfileService
	MaxUploadBytes int64
}

type profileEnvelope struct {
	Profile domain.ProfileView `json:"profile"`
}

// HandleGet godoc
//
//	@Summary		Get Profile
//	@Description	Returns a profile with follower, following, liked and saved counts. Use "me" for your own.
//	@Description	Your own profile includes email, phone and linked providers; anyone else's never does.
//	@Tags			Profile
//	@Security		CookieAuth
//	@Produce		json
//	@Param			username	path		string						true	"Username or me"
//	@Success		200			{object}	matrixsdk.ProfileResponse	"profile"
//	@Failure		401			{object}	matrixsdk.ErrorResponse		"unauthenticated"
//	@Failure		404			{object}	matrixsdk.ErrorResponse		"not_found"
//	@Router			/api/v1/user/profile/{username} [get].
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := userID(w, r)
	if !ok {
		return
	}

	view, err := h.ProfileService.GetProfile(r.Context(), viewerID, r.PathValue("username"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, profileEnvelope{Profile: view})
}

// HandlePictures godoc
//
//	@Summary		Update Profile Pictures
//	@Description	Replaces the profile image, the cover image or both. Each file must be an image within the upload limit.
//	@Tags			Profile
//	@Security		CookieAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			profile	formData	file						false	"New profile image"
//	@Param			cover	formData	file						false	"New cover image"
//	@Success		200		{object}	matrixsdk.PictureResponse	"message and new URLs"
//	@Failure		400		{object}	matrixsdk.ErrorResponse		"validation_error"
//	@Failure		401		{object}	matrixsdk.ErrorResponse		"unauthenticated"
//	@Failure		503		{object}	matrixsdk.ErrorResponse		"object storage not configured"
//	@Router			/api/v1/user/profile/pic/update [put].
func (h *ProfileHandler) HandlePictures(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := userID(w, r)
	if !ok {
		return
	}

	// Two files plus multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, 2*h.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeBadRequest(w, fmt.Sprintf("Each image must be at most %d MB", h.MaxUploadBytes>>20))
			return
		}
		log.Debug("invalid multipart form", "err", err)
		writeBadRequest(w, "Invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	profile, closeProfile, err := formUpload(r, "profile")
	if err != nil {
		writeBadRequest(w, "Invalid profile file")
		return
	}
	defer closeProfile()

	cover, closeCover, err := formUpload(r, "cover")
	if err != nil {
		writeBadRequest(w, "Invalid cover file")
		return
	}
	defer closeCover()

	urls, err := h.ProfileService.UpdatePictures(ctx, id, profile, cover)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, matrixsdk.PictureResponse{
		Message: service.MsgPicturesUpdated,
		Profile: urls.Profile,
		Cover:   urls.Cover,
	})
}

// formUpload opens the named file field. A missing field yields a nil
// upload.
func formUpload(r *http.Request, field string) (*service.Upload, func(), error) {
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}

	return &service.Upload{
		Filename: hdr.Filename,
		Size:     hdr.Size,
		Body:     f,
	}, closer(f), nil
}

func closer(f multipart.File) func() {
	return func() { _ = f.Close() }
}

// HandleInfo godoc
//
//	@Summary		Update Profile Info
//	@Description	Changes any of fullName, username, bio, currentAddress and mediaLink. Omitted fields stay as they are.
//	@Description	A password change needs newPassword, plus oldPassword when the account already has one.
//	@Tags			Profile
//	@Security		CookieAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		matrixsdk.UpdateInfoRequest	true	"Fields to change"
//	@Success		200		{object}	matrixsdk.MessageResponse	"message"
//	@Failure		400		{object}	matrixsdk.ErrorResponse		"validation_error, conflict or auth_error"
//	@Failure		401		{object}	matrixsdk.ErrorResponse		"unauthenticated"
//	@Router			/api/v1/user/profile/info/update [put].
func (h *ProfileHandler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req matrixsdk.UpdateInfoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.ProfileService.UpdateInfo(r.Context(), id, service.UpdateInfoInput{
		FullName:       req.FullName,
		Username:       req.Username,
		Bio:            req.Bio,
		CurrentAddress: req.CurrentAddress,
		MediaLink:      req.MediaLink,
		OldPassword:    req.OldPassword,
		NewPassword:    req.NewPassword,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteMessage(w, http.StatusOK, service.MsgProfileUpdated)
}
