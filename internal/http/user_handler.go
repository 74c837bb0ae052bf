package http

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID    int32     `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type userHandler struct {
	users UserService
	log   logrus.FieldLogger
}

func (h *userHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondBody(w, http.StatusCreated, "user registered", idResponse{ID: id})
}

func (h *userHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	respondBody(w, http.StatusOK, "login succeeded", loginResponse{
		UserID:    session.User.ID,
		UserName:  session.User.Name,
		UserEmail: session.User.Email,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}
