package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"

	"motorsonline/internal/models"
	"motorsonline/internal/repositories"
	"motorsonline/utils"
)

type UserService struct {
	UserRepo       *repositories.UserRepository
	TokenManager   *utils.Manager
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	GoogleClientID string
}

func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	exists, err := s.UserRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if exists {
		return models.AuthResponse{}, models.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.AuthResponse{}, err
	}

	user, err := s.UserRepo.CreateUser(ctx, models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Phone:    req.Phone,
		Role:     "user",
	})
	if err != nil {
		return models.AuthResponse{}, err
	}

	return s.issueTokens(ctx, user)
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.AuthResponse, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.AuthResponse{}, models.ErrInvalidCredentials
		}
		return models.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}
	user.Password = ""

	return s.issueTokens(ctx, user)
}

// GoogleSignIn verifies a Google ID token and signs the holder in, creating
// the account on first use.
func (s *UserService) GoogleSignIn(ctx context.Context, rawIDToken string) (models.AuthResponse, error) {
	payload, err := idtoken.Validate(ctx, rawIDToken, s.GoogleClientID)
	if err != nil {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}

	user, err := s.UserRepo.GetUserByEmail(ctx, email)
	if errors.Is(err, models.ErrUserNotFound) {
		user, err = s.UserRepo.CreateUser(ctx, models.User{
			Name:     name,
			Email:    email,
			Role:     "user",
			GoogleID: payload.Subject,
		})
		if err != nil {
			return models.AuthResponse{}, err
		}
	} else if err != nil {
		return models.AuthResponse{}, err
	} else if user.GoogleID == "" {
		if err := s.UserRepo.AttachGoogleID(ctx, user.ID, payload.Subject); err != nil {
			log.Printf("Error attaching google id for user %d: %v", user.ID, err)
		}
	}
	user.Password = ""

	return s.issueTokens(ctx, user)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	return s.UserRepo.DeleteSession(ctx, refreshToken)
}

func (s *UserService) issueTokens(ctx context.Context, user models.User) (models.AuthResponse, error) {
	accessToken, err := s.TokenManager.NewAccessToken(user.ID, user.Role, s.AccessTTL)
	if err != nil {
		return models.AuthResponse{}, err
	}

	refreshToken, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		refreshToken = uuid.New().String() // Fallback if the token manager fails
	}

	session := models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.RefreshTTL),
	}
	if err := s.UserRepo.SetSession(ctx, session); err != nil {
		log.Printf("Error creating session: %v", err)
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
