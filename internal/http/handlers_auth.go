package http

import (
	"net/http"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "User", err)
		return
	}

	token, err := s.svc.Users.Register(r.Context(), sanitizeInput(req.Email), req.Password)
	if err != nil {
		writeError(w, r, "User", err)
		return
	}
	NewJSONResponse().
		Status(http.StatusCreated).
		Message("User registered successfully").
		With("token", token).
		Write(w)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "User", err)
		return
	}

	token, err := s.svc.Users.Login(r.Context(), sanitizeInput(req.Email), req.Password)
	if err != nil {
		writeError(w, r, "User", err)
		return
	}
	NewJSONResponse().With("token", token).Write(w)
}
