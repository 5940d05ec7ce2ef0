package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskman/internal/config"
	"taskman/internal/middleware"
	"taskman/internal/models"
	"taskman/internal/services"
	"taskman/internal/utils"
)

const refreshTTL = 30 * 24 * time.Hour

type AuthHandler struct {
	users services.UserService
	auth  services.AuthService
	store services.RefreshStore
	cfg   *config.Config
}

func NewAuthHandler(users services.UserService, auth services.AuthService, store services.RefreshStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, auth: auth, store: store, cfg: cfg}
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int    `json:"expiresIn"`
}

// @Summary      Log in
// @Description  Exchanges email/password for an access and refresh token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  handlers.tokenResponse
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Printf("[auth][login][err] %v", err)
		respondError(c, err)
		return
	}
	if user == nil || !h.auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		log.Printf("[auth][login][token][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue tokens"})
		return
	}
	log.Printf("[auth][login][ok] user_id=%d", user.ID)
	c.JSON(http.StatusOK, resp)
}

// Refresh rotates the opaque refresh token: the presented token is
// consumed and replaced, and a fresh access token is minted.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refreshToken is required"})
		return
	}

	// validate the stored token before rotating it
	user, err := h.store.FindByRefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		log.Printf("[auth][refresh][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue tokens"})
		return
	}
	if user == nil || user.RefreshRevoked ||
		user.RefreshExpiresAt == nil || user.RefreshExpiresAt.Before(time.Now()) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	newToken, err := utils.NewRefreshToken(32)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue tokens"})
		return
	}

	rotated, err := h.store.RotateRefresh(c.Request.Context(), req.RefreshToken, newToken, time.Now().Add(refreshTTL))
	if err != nil {
		log.Printf("[auth][refresh][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue tokens"})
		return
	}
	if rotated == nil {
		// consumed by a concurrent refresh
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	access, err := middleware.NewAccessToken(
		[]byte(h.cfg.JWT.Secret), user.ID, user.IsAdmin,
		time.Duration(h.cfg.JWT.AccessTTLMinutes)*time.Minute,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue tokens"})
		return
	}
	log.Printf("[auth][refresh][ok] user_id=%d", user.ID)
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  access,
		RefreshToken: newToken,
		TokenType:    "Bearer",
		ExpiresIn:    h.cfg.JWT.AccessTTLMinutes * 60,
	})
}

// Logout revokes the caller's refresh token.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, _ := getCaller(c)
	if err := h.store.ClearRefresh(c.Request.Context(), userID); err != nil {
		log.Printf("[auth][logout][err] user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}
	log.Printf("[auth][logout][ok] user_id=%d", userID)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) issueTokens(c *gin.Context, user *models.User) (*tokenResponse, error) {
	access, err := middleware.NewAccessToken(
		[]byte(h.cfg.JWT.Secret), user.ID, user.IsAdmin,
		time.Duration(h.cfg.JWT.AccessTTLMinutes)*time.Minute,
	)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.NewRefreshToken(32)
	if err != nil {
		return nil, err
	}
	if err := h.store.UpdateRefresh(c.Request.Context(), user.ID, refresh, time.Now().Add(refreshTTL)); err != nil {
		return nil, err
	}
	return &tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    h.cfg.JWT.AccessTTLMinutes * 60,
	}, nil
}
