package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mentora-app/mentora-backend/internal/data/repos"
	types "github.com/mentora-app/mentora-backend/internal/domain"
	"github.com/mentora-app/mentora-backend/internal/domain/apperr"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
	"github.com/mentora-app/mentora-backend/internal/requestdata"
)

type AuthService interface {
	Register(ctx context.Context, user *types.User) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context) (string, string, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) AccessTTL() time.Duration { return as.accessTTL }

func (as *authService) Register(ctx context.Context, user *types.User) (*types.User, error) {
	const op = "AuthService.Register"

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)
	if user.Role == "" {
		user.Role = types.RoleStudent
	}

	switch {
	case user.Email == "":
		return nil, apperr.New(apperr.CodeValidation, op, "email is required")
	case user.Password == "":
		return nil, apperr.New(apperr.CodeValidation, op, "password is required")
	case user.FirstName == "" || user.LastName == "":
		return nil, apperr.New(apperr.CodeValidation, op, "first and last name are required")
	case !types.ValidRole(user.Role):
		return nil, apperr.New(apperr.CodeValidation, op, "unknown role")
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return nil, apperr.MapError(op, err)
	}
	if exists {
		return nil, apperr.New(apperr.CodeConflict, op, "email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, op, err)
	}
	user.Password = string(hashed)

	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.ID = uuid.New()
		_, crErr := as.userRepo.Create(ctx, tx, []*types.User{user})
		return crErr
	}); err != nil {
		return nil, apperr.MapError(op, err)
	}

	as.log.Info("registered user", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	const op = "AuthService.Login"

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", "", apperr.New(apperr.CodeValidation, op, "email and password are required")
	}

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", "", apperr.MapError(op, err)
	}
	if len(users) == 0 {
		return "", "", apperr.New(apperr.CodeForbidden, op, "invalid credentials")
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", apperr.New(apperr.CodeForbidden, op, "invalid credentials")
	}

	var accessToken, refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if dErr := as.userTokenRepo.FullDeleteByUserIDs(ctx, tx, []uuid.UUID{user.ID}); dErr != nil {
			return dErr
		}
		var gErr error
		accessToken, refreshToken, gErr = as.issueTokens(ctx, tx, user)
		return gErr
	}); err != nil {
		return "", "", apperr.MapError(op, err)
	}

	return accessToken, refreshToken, nil
}

func (as *authService) Refresh(ctx context.Context) (string, string, error) {
	const op = "AuthService.Refresh"

	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", apperr.New(apperr.CodeForbidden, op, "missing refresh token")
	}

	var accessToken, refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tokens, gErr := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
		if gErr != nil {
			return gErr
		}
		if len(tokens) == 0 {
			return apperr.New(apperr.CodeForbidden, op, "unknown refresh token")
		}
		stored := tokens[0]
		if stored.ExpiresAt.Before(time.Now()) {
			return apperr.New(apperr.CodeForbidden, op, "refresh token expired")
		}

		users, uErr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{stored.UserID})
		if uErr != nil {
			return uErr
		}
		if len(users) == 0 {
			return apperr.New(apperr.CodeNotFound, op, "user no longer exists")
		}

		if dErr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{stored.ID}); dErr != nil {
			return dErr
		}
		var iErr error
		accessToken, refreshToken, iErr = as.issueTokens(ctx, tx, users[0])
		return iErr
	}); err != nil {
		return "", "", apperr.MapError(op, err)
	}

	return accessToken, refreshToken, nil
}

func (as *authService) Logout(ctx context.Context) error {
	const op = "AuthService.Logout"

	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apperr.New(apperr.CodeForbidden, op, "not authenticated")
	}
	if err := as.userTokenRepo.FullDeleteByUserIDs(ctx, nil, []uuid.UUID{rd.UserID}); err != nil {
		return apperr.MapError(op, err)
	}
	return nil
}

// SetContextFromToken verifies an access token and installs the acting
// user into the request context.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	const op = "AuthService.SetContextFromToken"

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.CodeForbidden, op, "unexpected signing method")
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, apperr.New(apperr.CodeForbidden, op, "invalid access token")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, apperr.New(apperr.CodeForbidden, op, "malformed subject claim")
	}
	role, _ := claims["role"].(string)

	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Role:        role,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (string, string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(as.accessTTL).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", "", err
	}

	refreshToken := uuid.NewString()
	record := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{record}); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}
