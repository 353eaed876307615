package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

// Generic messages used when the cause must not reach the caller.
const (
	MsgInvalidBody       = "Invalid request body"
	MsgRegistrationError = "An error occurred during registration"
	MsgAuthError         = "An error occurred during authentication"
	MsgInternalError     = "Internal server error"
	MsgMissingToken      = "Missing token"
	MsgRegistered        = "Registration successful"
)

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.accounts.Register(r.Context(), req); err != nil {
		s.writeServiceError(w, r, err, MsgRegistrationError)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{Success: true, Message: MsgRegistered})
}

func (s *HTTPServer) handleAuth(w http.ResponseWriter, r *http.Request) {
	var c services.Credentials
	if !decodeBody(w, r, &c) {
		return
	}

	res, err := s.accounts.Authenticate(r.Context(), c)
	if err != nil {
		s.writeServiceError(w, r, err, MsgAuthError)
		return
	}

	resp := authResponse{Success: true}
	if res.Token != "" {
		resp.Token = res.Token
		resp.Username = res.Username
		resp.Email = res.Email
		resp.Phone = res.Phone
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) handleProfile(w http.ResponseWriter, r *http.Request) {
	token, _ := r.Context().Value(tokenKey).(string)

	p, err := s.accounts.Profile(r.Context(), token)
	if err != nil {
		s.writeServiceError(w, r, err, MsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBody reads a single JSON value of at most maxBodyBytes into dst. On failure it has
// already written the 400 response.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidBody)
		return false
	}
	// exactly one JSON value per request
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, MsgInvalidBody)
		return false
	}
	return true
}

// writeServiceError maps service error kinds to status codes. Anything
// unclassified is logged and answered with the generic fallback.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorConflict):
		writeError(w, http.StatusBadRequest, common.PublicMessage(err, fallback))
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, common.PublicMessage(err, fallback))
	default:
		logging.LogError(r.Context(), s.logger, "request failed", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
