package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"expensetracker/internal/model"
	"expensetracker/internal/repository"
	"expensetracker/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrUsernameTaken = errors.New("username already exists, please choose another")
	ErrEmailTaken    = errors.New("email already registered, please login")
	ErrDuplicateUser = errors.New("username or email already registered")
	// ErrInvalidCredentials covers both unknown username and wrong password;
	// the two must stay indistinguishable on the response surface.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrRoleMismatch       = errors.New("account is not registered under the selected role")
)

// dummyPasswordHash is a valid bcrypt hash at the default cost. The
// user-not-found branch of Login compares against it so that rejecting an
// unknown username costs the same bcrypt work as rejecting a wrong password;
// the result is discarded.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error)
}

type authService struct {
	userRepo             repository.UserRepository
	jwtUtil              *utils.JWTUtil
	initialAdminUsername string
	log                  *logrus.Logger
}

// NewAuthService creates a new AuthService. initialAdminUsername is the
// trusted setup path for role elevation; registrations matching it become
// admins, everyone else is a regular user.
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, initialAdminUsername string, log *logrus.Logger) AuthService {
	return &authService{
		userRepo:             userRepo,
		jwtUtil:              jwtUtil,
		initialAdminUsername: strings.ToLower(initialAdminUsername),
		log:                  log,
	}
}

// Register creates a new user account and issues a token for auto-login
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Courtesy pre-checks for friendlier messages; the unique indexes remain
	// the authoritative guard against concurrent duplicates.
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing username: %w", err)
	}
	if existing != nil {
		return nil, "", ErrUsernameTaken
	}
	existing, err = s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	userRole := model.RoleUser
	if s.initialAdminUsername != "" && username == s.initialAdminUsername {
		userRole = model.RoleAdmin
		s.log.WithField("username", username).Info("registering user as admin via INITIAL_ADMIN_USERNAME")
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         userRole,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Gender:       req.Gender,
		Phone:        req.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// Lost the race between pre-check and insert
			return nil, "", ErrDuplicateUser
		}
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user)
	if err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Error("user created, but token generation failed")
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns a JWT token. The role the client
// selected must match the stored role.
func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		// Burn the same bcrypt work as a real comparison so timing does not
		// reveal whether the username exists
		utils.CheckPasswordHash(req.Password, dummyPasswordHash)
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials // Password mismatch
	}

	if req.Role != user.Role {
		return nil, "", ErrRoleMismatch
	}

	token, err := s.jwtUtil.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}
