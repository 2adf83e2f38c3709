package http

import (
	"net/http"

	"github.com/matrixmedia/matrix/internal/api/service"
	"github.com/matrixmedia/matrix/pkg/httpx"
	"github.com/matrixmedia/matrix/pkg/matrixsdk"
)

// PasswordResetHandler serves the two step OTP password reset.
type PasswordResetHandler struct {
	PasswordResetService *service.PasswordResetService
}

// HandleRequestOTP godoc
//
//	@Summary		Request Password Reset Code
//	@Description	Mails a 6 digit code to the account registered with email. The code is valid for 5 minutes.
//	@Description	A new code can only be requested once the previous one is 2 minutes old; the message says how long to wait.
//	@Tags			Password Reset
//	@Produce		json
//	@Param			email	path		string						true	"Account email"
//	@Success		200		{object}	matrixsdk.MessageResponse	"message"
//	@Failure		400		{object}	matrixsdk.ErrorResponse		"validation_error or rate_limited"
//	@Failure		404		{object}	matrixsdk.ErrorResponse		"not_found"
//	@Failure		500		{object}	matrixsdk.ErrorResponse		"mail delivery failed"
//	@Router			/api/v1/user/auth/forger/password/{email} [post].
func (h *PasswordResetHandler) HandleRequestOTP(w http.ResponseWriter, r *http.Request) {
	if err := h.PasswordResetService.RequestOTP(r.Context(), r.PathValue("email")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteMessage(w, http.StatusOK, service.MsgOTPSent)
}

// HandleReset godoc
//
//	@Summary		Reset Password
//	@Description	Sets a new password using the mailed code. The code works once.
//	@Tags			Password Reset
//	@Accept			json
//	@Produce		json
//	@Param			request	body		matrixsdk.ResetPasswordRequest	true	"email, code, password"
//	@Success		200		{object}	matrixsdk.MessageResponse		"message"
//	@Failure		400		{object}	matrixsdk.ErrorResponse			"validation_error or auth_error"
//	@Failure		404		{object}	matrixsdk.ErrorResponse			"not_found"
//	@Router			/api/v1/user/auth/forger/password [put].
func (h *PasswordResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req matrixsdk.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.PasswordResetService.ResetPassword(r.Context(), service.ResetPasswordInput{
		Email:    req.Email,
		Code:     req.Code,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteMessage(w, http.StatusOK, service.MsgPasswordReset)
}
