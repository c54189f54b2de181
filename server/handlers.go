package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"vippsbroker/auth"
)

// StartLoginHandler creates a login session and returns the Vipps
// consent URL together with the session handle the app polls with.
func (s *Server) StartLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, err := s.flow.StartLogin()
		if err != nil {
			log.Error().Err(err).Msg("failed to start login flow")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to start Vipps login flow"})
			return
		}
		writeJSON(w, http.StatusOK, start)
	}
}

// CallbackHandler receives the browser redirect from Vipps and hands
// the outcome back to the app as a deep link. Success carries only the
// session handle; provider tokens stay server-side.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		result := s.flow.HandleCallback(r.Context(), auth.CallbackParams{
			Code:             query.Get("code"),
			State:            query.Get("state"),
			Error:            query.Get("error"),
			ErrorDescription: query.Get("error_description"),
		})

		values := url.Values{}
		if result.Success {
			values.Set("success", "true")
			values.Set("sessionId", result.SessionID)
		} else {
			log.Warn().Str("error", result.Error).Msg("vipps callback failed")
			values.Set("success", "false")
			values.Set("error", result.Error)
		}

		redirectURL := fmt.Sprintf("%s://auth/callback?%s", s.config.GetAppRedirectScheme(), values.Encode())
		http.Redirect(w, r, redirectURL, http.StatusFound)
	}
}

// SessionCheckHandler reports whether a login has completed. A session
// still mid-flow answers exactly like an unknown one.
func (s *Server) SessionCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.PathValue("sessionId")
		if sessionID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "sessionId is required"})
			return
		}

		status := s.flow.CheckSession(sessionID)
		if !status.Found {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Session not found or expired"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":       true,
			"user":          status.Profile,
			"authenticated": true,
		})
	}
}

// RedeemSessionHandler exchanges a completed session for a signed
// bearer credential. Redeeming does not consume the session.
func (s *Server) RedeemSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := sessionIDFromBody(w, r)
		if !ok {
			return
		}

		credential, err := s.flow.RedeemSession(sessionID)
		if err != nil {
			if errors.Is(err, auth.ErrSessionNotReady) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Session not found or expired"})
				return
			}
			log.Error().Err(err).Msg("failed to redeem session")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create session"})
			return
		}

		writeJSON(w, http.StatusOK, credential)
	}
}

// SignoutHandler deletes the session. Reported as success either way;
// the message tells the caller whether there was anything to remove.
func (s *Server) SignoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := sessionIDFromBody(w, r)
		if !ok {
			return
		}

		existed := s.flow.SignOut(sessionID)
		message := "Signed out"
		if !existed {
			message = "Session not found"
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": existed,
			"message": message,
		})
	}
}

// HealthHandler is the liveness probe.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func sessionIDFromBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "sessionId is required"})
		return "", false
	}
	return body.SessionID, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
