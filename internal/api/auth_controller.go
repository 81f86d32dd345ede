package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/solodesk/solodesk/internal/auth"
	"github.com/solodesk/solodesk/internal/config"
	"github.com/solodesk/solodesk/internal/dao"
	"github.com/solodesk/solodesk/internal/logging"
)

type AuthController struct {
	users    dao.UserDao
	sessions auth.SessionStore
	cfg      config.AuthConfig
}

func NewAuthController(users dao.UserDao, sessions auth.SessionStore, cfg config.AuthConfig) *AuthController {
	return &AuthController{users: users, sessions: sessions, cfg: cfg}
}

func (ac *AuthController) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "INVALID_JSON")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	u, err := ac.users.GetByEmail(r.Context(), email)
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		// identical answer for unknown email and wrong password
		writeErr(w, http.StatusUnauthorized, "INVALID_CREDENTIALS")
		return
	}
	teamID, err := ac.users.FirstTeam(r.Context(), u.ID)
	if err != nil {
		logging.Error(r.Context(), "login: no team membership", zap.Int64("user_id", u.ID), zap.Error(err))
		writeErr(w, http.StatusForbidden, "NO_TEAM")
		return
	}
	token, err := ac.sessions.Create(r.Context(), auth.Session{UserID: u.ID, TeamID: teamID}, ac.cfg.SessionTTL)
	if err != nil {
		logging.Error(r.Context(), "login: session create failed", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, "INTERNAL")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     ac.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ac.cfg.SessionTTL.Seconds()),
	})
	writeJSON(w, map[string]any{"user_id": u.ID, "team_id": teamID, "name": u.Name})
}

func (ac *AuthController) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(ac.cfg.CookieName); err == nil && c.Value != "" {
		_ = ac.sessions.Delete(r.Context(), c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     ac.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeJSON(w, map[string]any{"logged_out": true})
}
