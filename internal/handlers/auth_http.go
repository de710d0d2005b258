package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dorincreciun/Server-Pizza/internal/model"
	"github.com/dorincreciun/Server-Pizza/internal/service"
)

const refreshCookie = "refreshToken"

type AuthHTTP struct {
	S            service.AuthService
	UseCookies   bool
	CookieSecure bool
	RefreshTTL   time.Duration
}

func NewAuthHTTP(s service.AuthService, useCookies, cookieSecure bool, refreshTTL time.Duration) *AuthHTTP {
	return &AuthHTTP{S: s, UseCookies: useCookies, CookieSecure: cookieSecure, RefreshTTL: refreshTTL}
}

type registerReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Phone    string `json:"phone" binding:"omitempty,max=30"`
}

func (h *AuthHTTP) Register(c *gin.Context) {
	var req registerReq
	if !BindJSON(c, &req) {
		return
	}
	u, err := h.S.Register(service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": gin.H{"id": u.ID, "email": u.Email}})
}

func (h *AuthHTTP) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if len(token) < 10 {
		Error(c, service.NewValidation("Invalid token", map[string][]string{
			"token": {"token is required"},
		}))
		return
	}
	if err := h.S.VerifyEmail(token); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true})
}

func (h *AuthHTTP) ResendVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if !BindJSON(c, &req) {
		return
	}
	// always 200 so the endpoint cannot confirm whether an email exists
	_ = h.S.ResendVerification(req.Email)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

func (h *AuthHTTP) Login(c *gin.Context) {
	var req loginReq
	if !BindJSON(c, &req) {
		return
	}
	res, err := h.S.Login(req.Email, req.Password)
	if err != nil {
		Error(c, err)
		return
	}

	body := gin.H{
		"user": gin.H{
			"id":    res.User.ID,
			"email": res.User.Email,
			"name":  res.User.Name,
		},
		"accessToken": res.AccessToken,
	}
	if h.UseCookies {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(refreshCookie, res.RefreshToken, int(h.RefreshTTL.Seconds()), "/", "", h.CookieSecure, true)
	} else {
		body["refreshToken"] = res.RefreshToken
	}
	c.JSON(http.StatusOK, body)
}

func (h *AuthHTTP) Refresh(c *gin.Context) {
	token := ""
	if h.UseCookies {
		if v, err := c.Cookie(refreshCookie); err == nil {
			token = v
		}
	}
	if token == "" {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
	}
	if token == "" {
		Error(c, service.NewUnauthorized("Unauthorized"))
		return
	}
	access, err := h.S.Refresh(token)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": access})
}

func (h *AuthHTTP) Logout(c *gin.Context) {
	if h.UseCookies {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(refreshCookie, "", -1, "/", "", h.CookieSecure, true)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHTTP) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"userId": userID(c)})
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword" binding:"required,min=8,max=128"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=128"`
}

func (h *AuthHTTP) ChangePassword(c *gin.Context) {
	var req changePasswordReq
	if !BindJSON(c, &req) {
		return
	}
	if err := h.S.ChangePassword(userID(c), req.OldPassword, req.NewPassword); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Profile serves GET /users/me: the full profile minus the hash.
func (h *AuthHTTP) Profile(c *gin.Context) {
	u, err := h.S.User(userID(c))
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profileView(u)})
}

func profileView(u model.User) gin.H {
	v := gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"role":  u.Role,
	}
	if u.Phone != "" {
		v["phone"] = u.Phone
	}
	if u.EmailVerifiedAt != nil {
		v["emailVerifiedAt"] = u.EmailVerifiedAt
	}
	return v
}
