package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dorincreciun/Server-Pizza/internal/model"
)

const bcryptCost = 12

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenConfig carries the secrets and lifetimes for the token pair plus the
// verification-mail settings.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	VerifyTTL     time.Duration
	PublicBaseURL string
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

type LoginResult struct {
	User         model.User
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Register(in RegisterInput) (model.User, error)
	ResendVerification(email string) error
	VerifyEmail(token string) error
	Login(email, password string) (LoginResult, error)
	Refresh(refreshToken string) (string, error)
	ChangePassword(userID uint, oldPassword, newPassword string) error
	ParseAccessToken(token string) (uint, error)
	ParseRefreshToken(token string) (uint, error)
	User(userID uint) (model.User, error)
}

type authService struct {
	db    *gorm.DB
	email EmailService
	cfg   TokenConfig
}

func NewAuthService(db *gorm.DB, email EmailService, cfg TokenConfig) AuthService {
	return &authService{db: db, email: email, cfg: cfg}
}

func (a *authService) Register(in RegisterInput) (model.User, error) {
	var existing model.User
	err := a.db.Where("email = ?", in.Email).First(&existing).Error
	if err == nil {
		return model.User{}, NewConflict("Email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         model.RoleUser,
	}
	if err := a.db.Create(&u).Error; err != nil {
		// unique index on email catches the race with a concurrent register
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.User{}, NewConflict("Email already registered")
		}
		return model.User{}, err
	}

	a.sendVerification(u)
	return u, nil
}

// ResendVerification answers silently for unknown or already verified
// accounts so the endpoint cannot be used to enumerate emails.
func (a *authService) ResendVerification(email string) error {
	var u model.User
	err := a.db.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if u.EmailVerifiedAt != nil {
		return nil
	}
	a.sendVerification(u)
	return nil
}

// sendVerification creates a fresh single-use token and mails the link.
// Mail failure is logged, never surfaced: registration must not roll back on
// a dead SMTP relay.
func (a *authService) sendVerification(u model.User) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		log.Printf("verification token for user %d: %v", u.ID, err)
		return
	}
	token := hex.EncodeToString(raw)
	rec := model.EmailVerificationToken{
		UserID:    u.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(a.cfg.VerifyTTL),
	}
	if err := a.db.Create(&rec).Error; err != nil {
		log.Printf("verification token for user %d: %v", u.ID, err)
		return
	}

	link := fmt.Sprintf("%s/api/auth/verify-email?token=%s", a.cfg.PublicBaseURL, url.QueryEscape(token))
	body := fmt.Sprintf("Hi %s,\n\nPlease confirm your email address:\n%s\n\nThe link expires in %s.", u.Name, link, a.cfg.VerifyTTL)
	if err := a.email.Send(u.Email, "Verify your email", body); err != nil {
		log.Printf("verification mail to %s: %v", u.Email, err)
	}
}

// VerifyEmail consumes the token: marking the user verified and deleting the
// token happen in one transaction, keyed on the delete's affected rows, so of
// two concurrent consumers exactly one wins.
func (a *authService) VerifyEmail(token string) error {
	invalid := NewValidation("Invalid or expired token", nil)
	return a.db.Transaction(func(tx *gorm.DB) error {
		var rec model.EmailVerificationToken
		err := tx.Where("token = ?", token).First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid
		}
		if err != nil {
			return err
		}
		if time.Now().After(rec.ExpiresAt) {
			return invalid
		}
		res := tx.Where("id = ?", rec.ID).Delete(&model.EmailVerificationToken{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return invalid
		}
		now := time.Now()
		return tx.Model(&model.User{}).Where("id = ?", rec.UserID).
			Update("email_verified_at", &now).Error
	})
}

func (a *authService) Login(email, password string) (LoginResult, error) {
	var u model.User
	err := a.db.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LoginResult{}, NewUnauthorized("Invalid credentials")
	}
	if err != nil {
		return LoginResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, NewUnauthorized("Invalid credentials")
	}
	if u.EmailVerifiedAt == nil {
		return LoginResult{}, NewForbidden("EMAIL_NOT_VERIFIED", "Email not verified")
	}

	access, err := a.sign(u.ID, tokenTypeAccess, a.cfg.AccessSecret, a.cfg.AccessTTL)
	if err != nil {
		return LoginResult{}, err
	}
	refresh, err := a.sign(u.ID, tokenTypeRefresh, a.cfg.RefreshSecret, a.cfg.RefreshTTL)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: u, AccessToken: access, RefreshToken: refresh}, nil
}

func (a *authService) Refresh(refreshToken string) (string, error) {
	uid, err := a.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	var u model.User
	if err := a.db.First(&u, uid).Error; err != nil {
		return "", NewUnauthorized("Unauthorized")
	}
	return a.sign(u.ID, tokenTypeAccess, a.cfg.AccessSecret, a.cfg.AccessTTL)
}

func (a *authService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	var u model.User
	if err := a.db.First(&u, userID).Error; err != nil {
		return NewUnauthorized("Unauthorized")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)) != nil {
		return NewValidation("Invalid old password", nil)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	return a.db.Model(&u).Update("password_hash", string(hash)).Error
}

func (a *authService) User(userID uint) (model.User, error) {
	var u model.User
	err := a.db.First(&u, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, NewNotFound("User not found")
	}
	return u, err
}

func (a *authService) sign(userID uint, typ string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"typ": typ,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	return t.SignedString(secret)
}

// parse rejects type confusion: a refresh token presented as an access token
// (or the other way round) fails even though both are validly signed.
func parse(token, wantType string, secret []byte) (uint, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return 0, NewUnauthorized("Invalid or expired token")
	}
	if claims["typ"] != wantType {
		return 0, NewUnauthorized("Invalid token type")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, NewUnauthorized("Invalid token subject")
	}
	return uint(sub), nil
}

func (a *authService) ParseAccessToken(token string) (uint, error) {
	return parse(token, tokenTypeAccess, a.cfg.AccessSecret)
}

func (a *authService) ParseRefreshToken(token string) (uint, error) {
	return parse(token, tokenTypeRefresh, a.cfg.RefreshSecret)
}
