package services

import (
	"errors"
	"time"

	"github.com/noahfaas/relationship-y/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: []byte(jwtSecret)}
}

func (s *AuthService) Register(username, password string) (string, error) {
	var existing models.Curator
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return "", ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	curator := models.Curator{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(&curator).Error; err != nil {
		return "", err
	}

	return s.GenerateToken(curator.ID)
}

func (s *AuthService) Login(username, password string) (string, error) {
	var curator models.Curator
	if err := s.db.Where("username = ?", username).First(&curator).Error; err != nil {
		return "", ErrInvalidLogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(curator.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidLogin
	}

	return s.GenerateToken(curator.ID)
}

func (s *AuthService) GenerateToken(curatorID uint) (string, error) {
	claims := jwt.MapClaims{
		"curator_id": curatorID,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	idFloat, ok := claims["curator_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}

	return uint(idFloat), nil
}
