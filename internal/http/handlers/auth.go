package handlers

import (
	"net/http"
	"time"

	"albahr-backend/internal/config"
	"albahr-backend/internal/http/middleware"
	"albahr-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 12 * time.Hour

// AuthHandler issues dashboard tokens. Only mounted when a JWT secret
// and a bcrypt password hash are both configured.
type AuthHandler struct {
	Env config.Env
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login is POST /api/auth/login.
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.Env.AdminPassHash), []byte(req.Password)); err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auth", "login_rejected", "bad password")
		RespondError(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(h.Env.AdminJWTSecret))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "token signing failed", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login_ok", "admin session issued")
	c.JSON(http.StatusOK, gin.H{
		"token":      signed,
		"expires_at": now.Add(tokenTTL).Format(time.RFC3339),
	})
}
