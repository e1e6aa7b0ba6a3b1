package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keicha2025/keicha-shop/internal/models"
	"github.com/redis/go-redis/v9"
)

type MemberRepository interface {
	GetByPhone(ctx context.Context, phone string) (*models.Member, error)
	Save(ctx context.Context, member *models.Member) error
}

type memberRepository struct {
	client *redis.Client
}

func NewMemberRepo(client *redis.Client) MemberRepository {
	return &memberRepository{client: client}
}

func memberKey(phone string) string {
	return "member:" + phone
}

// GetByPhone returns nil without error when the member does not exist yet;
// phone login creates members on first use.
func (r *memberRepository) GetByPhone(ctx context.Context, phone string) (*models.Member, error) {
	data, err := r.client.Get(ctx, memberKey(phone)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to load member: %w", err)
	}

	member := &models.Member{}
	if err := json.Unmarshal(data, member); err != nil {
		return nil, fmt.Errorf("failed to unmarshal member: %w", err)
	}

	return member, nil
}

func (r *memberRepository) Save(ctx context.Context, member *models.Member) error {
	data, err := json.Marshal(member)
	if err != nil {
		return fmt.Errorf("failed to marshal member: %w", err)
	}

	if err := r.client.Set(ctx, memberKey(member.Phone), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save member: %w", err)
	}

	return nil
}
