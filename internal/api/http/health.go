package http

import (
	"net/http"
	"time"

	"github.com/matrixmedia/matrix/internal/api/store"
	"github.com/matrixmedia/matrix/pkg/httpx"
	"github.com/matrixmedia/matrix/pkg/jwtx"
	"github.com/matrixmedia/matrix/pkg/matrixsdk"
	"github.com/matrixmedia/matrix/pkg/slogx"
)

const (
	healthOK       = "ok"
	healthDegraded = "degraded"
)

// healthHandlers serves the liveness and readiness documents for
// monitoring. Both report uptime and build version.
type healthHandlers struct {
	started time.Time
	version string
	store   store.Store
	keys    *jwtx.KeySet
}

func (h *healthHandlers) body(status string, checks *matrixsdk.HealthChecks) matrixsdk.HealthResponse {
	return matrixsdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Version: h.version,
		Checks:  checks,
	}
}

// HandleLivez godoc
//
//	@Summary		Liveness check
//	@Description	Answers 200 whenever the process is serving requests. Dependencies are not consulted.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	matrixsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func (h *healthHandlers) HandleLivez(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.body(healthOK, nil))
}

// HandleReadyz godoc
//
//	@Summary		Readiness check
//	@Description	Reports whether the database answers and a session signing key is loaded. Any failed check answers 503.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	matrixsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	matrixsdk.HealthResponse	"degraded, with the failing check named"
//	@Router			/readyz [get].
func (h *healthHandlers) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	checks := &matrixsdk.HealthChecks{Database: healthOK, Signer: healthOK}

	if err := h.store.Ping(r.Context()); err != nil {
		slogx.FromContext(r.Context()).Warn("readiness: database ping failed", "err", err)
		checks.Database = "error: unreachable"
	}
	if !h.keys.IsReady() {
		checks.Signer = "error: no keys loaded"
	}

	if checks.Database != healthOK || checks.Signer != healthOK {
		httpx.WriteJSON(w, http.StatusServiceUnavailable, h.body(healthDegraded, checks))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.body(healthOK, checks))
}
