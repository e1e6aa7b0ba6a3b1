package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/keicha2025/keicha-shop/internal/errors"
	"github.com/keicha2025/keicha-shop/internal/models"
	repository "github.com/keicha2025/keicha-shop/internal/repositories"
)

// MemberService handles phone login and saved pickup-point profiles. There
// are no passwords: possession of the phone number is the whole credential,
// so login is rate limited per phone.
type MemberService struct {
	repo        repository.MemberRepository
	rateLimiter repository.RateLimitRepository
	jwtKey      []byte
	tokenTTL    time.Duration
}

func NewMemberService(repo repository.MemberRepository, rateLimiter repository.RateLimitRepository, jwtKey []byte, tokenTTL time.Duration) *MemberService {
	return &MemberService{
		repo:        repo,
		rateLimiter: rateLimiter,
		jwtKey:      jwtKey,
		tokenTTL:    tokenTTL,
	}
}

// Login signs in a member by phone, creating the member on first use. A
// throttled attempt returns a response with RetryAfter set and no token.
func (s *MemberService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	allowed, _, retryAfter, err := s.rateLimiter.CheckLoginRateLimit(ctx, req.Phone)
	if err != nil {
		return nil, errors.StorageError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{RetryAfter: retryAfter}, nil
	}

	member, err := s.repo.GetByPhone(ctx, req.Phone)
	if err != nil {
		return nil, errors.StorageError("Failed to load member").WithError(err)
	}

	if member == nil {
		now := time.Now()
		member = &models.Member{Phone: req.Phone, CreatedAt: now, UpdatedAt: now}

		if err := s.repo.Save(ctx, member); err != nil {
			return nil, errors.StorageError("Failed to create member").WithError(err)
		}
	}

	claims := &models.Claims{
		Phone: member.Phone,
		Name:  member.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Token:     tokenString,
		ExpiresIn: int(time.Until(claims.ExpiresAt.Time).Seconds()),
		Member:    member,
	}, nil
}

func (s *MemberService) GetProfile(ctx context.Context, phone string) (*models.Member, error) {
	member, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, errors.StorageError("Failed to load member").WithError(err)
	}

	if member == nil {
		return nil, errors.NotFoundError("Member not found")
	}

	return member, nil
}

// UpdateProfile applies the non-nil fields of the request to the stored
// profile.
func (s *MemberService) UpdateProfile(ctx context.Context, phone string, req *models.UpdateProfileRequest) (*models.Member, error) {
	member, err := s.GetProfile(ctx, phone)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		member.Name = *req.Name
	}

	if req.Email != nil {
		member.Email = *req.Email
	}

	if req.Store711 != nil {
		member.Store711 = *req.Store711
	}

	if req.Store711Note != nil {
		member.Store711Note = *req.Store711Note
	}

	if req.StoreFami != nil {
		member.StoreFami = *req.StoreFami
	}

	if req.StoreFamiNote != nil {
		member.StoreFamiNote = *req.StoreFamiNote
	}

	if req.ShippingAddress != nil {
		member.ShippingAddress = *req.ShippingAddress
	}

	member.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, member); err != nil {
		return nil, errors.StorageError("Failed to save member").WithError(err)
	}

	return member, nil
}
