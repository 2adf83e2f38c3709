package http

import (
	"net/http"
	"time"

	"github.com/matrixmedia/matrix/internal/api/service"
	"github.com/matrixmedia/matrix/pkg/httpx"
	"github.com/matrixmedia/matrix/pkg/jwtx"
	"github.com/matrixmedia/matrix/pkg/matrixsdk"
	"github.com/matrixmedia/matrix/pkg/slogx"
)

// AccountHandler serves sign up, login and logout.
type AccountHandler struct {
	AccountService *service.AccountService
	Verifier       jwtx.Verifier
	Cookie         CookieConfig
	Now            func() time.Time
}

// HandleSignUp godoc
//
//	@Summary		Sign Up
//	@Description	Creates a password account. All field problems are reported together in details.
//	@Description	Username, email and phone must be unique; the message names the one already taken.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		matrixsdk.SignUpRequest		true	"Account details"
//	@Success		201		{object}	matrixsdk.MessageResponse	"message"
//	@Failure		400		{object}	matrixsdk.ErrorResponse		"validation_error or conflict"
//	@Failure		429		{object}	matrixsdk.ErrorResponse		"rate_limited"
//	@Failure		500		{object}	matrixsdk.ErrorResponse		"server_error"
//	@Router			/api/v1/user/auth/signup [post].
func (h *AccountHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var req matrixsdk.SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, err := h.AccountService.SignUp(r.Context(), service.SignUpInput{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteMessage(w, http.StatusCreated, service.MsgSignedUp)
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Authenticates by username, email or phone and sets the session cookie.
//	@Description	A request that already carries a valid session is refused.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		matrixsdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	matrixsdk.MessageResponse	"message, Set-Cookie: token"
//	@Failure		400		{object}	matrixsdk.ErrorResponse		"auth_error or validation_error"
//	@Failure		404		{object}	matrixsdk.ErrorResponse		"not_found"
//	@Failure		429		{object}	matrixsdk.ErrorResponse		"rate_limited"
//	@Router			/api/v1/user/auth/login [post].
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if claims, ok := httpx.SessionFromRequest(r, h.Cookie.Name, h.Verifier); ok {
		log.Info("login refused: session already present", "user_id", claims.Subject)
		httpx.WriteError(w, http.StatusBadRequest, matrixsdk.ErrorResponse{
			Error:   matrixsdk.ErrorCodeAuth,
			Message: service.MsgAlreadyLoggedIn,
		})
		return
	}

	var req matrixsdk.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.AccountService.Login(ctx, service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Cookie.setSession(w, res.Session, h.Now())
	httpx.WriteMessage(w, http.StatusOK, service.MsgLoggedIn)
}

// HandleLogout godoc
//
//	@Summary		Logout
//	@Description	Clears the session cookie.
//	@Tags			Auth
//	@Security		CookieAuth
//	@Produce		json
//	@Success		200	{object}	matrixsdk.MessageResponse	"message"
//	@Failure		401	{object}	matrixsdk.ErrorResponse		"unauthenticated"
//	@Router			/api/v1/user/auth/logout [post].
func (h *AccountHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if _, ok := userID(w, r); !ok {
		return
	}

	h.Cookie.clearSession(w)
	slogx.FromContext(r.Context()).Info("logged out")
	httpx.WriteMessage(w, http.StatusOK, service.MsgLoggedOut)
}
