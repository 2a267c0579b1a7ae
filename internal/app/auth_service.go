package app

import (
	"context"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"scholarfind/internal/common"
	"scholarfind/internal/domain/user"
	"scholarfind/internal/security"
)

const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthService struct {
	users    user.Repository
	jwt      *security.JWTProvider
	tokenTTL time.Duration
}

func NewAuthService(users user.Repository, jwt *security.JWTProvider, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, jwt: jwt, tokenTTL: tokenTTL}
}

type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Phone          string
	University     string
	Major          string
	GPA            *float64
	GraduationYear *int
}

type AuthResult struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      *user.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	fields := map[string]string{}
	if len(in.Name) < 2 {
		fields["name"] = "name must be at least 2 characters"
	}
	if !emailPattern.MatchString(in.Email) {
		fields["email"] = "a valid email is required"
	}
	if len(in.Password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if in.GPA != nil && (*in.GPA < 0 || *in.GPA > 4) {
		fields["gpa"] = "gpa must be between 0 and 4"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid registration", fields)
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, common.NewError(common.CodeDuplicate, "user already exists with this email", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	created, err := s.users.Create(ctx, user.User{
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   string(hash),
		Phone:          strings.TrimSpace(in.Phone),
		University:     strings.TrimSpace(in.University),
		Major:          strings.TrimSpace(in.Major),
		GPA:            in.GPA,
		GraduationYear: in.GraduationYear,
	})
	if err != nil {
		return nil, err
	}
	return s.issueToken(created)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	found, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)); err != nil {
		return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
	}
	return s.issueToken(found)
}

func (s *AuthService) Me(ctx context.Context, userID common.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) issueToken(u *user.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(u.ID, s.tokenTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: u}, nil
}
