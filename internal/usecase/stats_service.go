package usecase

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/St1cky1/marketplace-service/internal/repository"
	"github.com/redis/rueidis"
)

const statsCacheTTL = time.Minute

type StatsService struct {
	userRepo repository.IUserRepository
	policy   *PolicyGate
	redis    rueidis.Client
	cacheKey string
}

func NewStatsService(
	userRepo repository.IUserRepository,
	policy *PolicyGate,
	redis rueidis.Client,
	cacheKey string,
) *StatsService {
	if cacheKey == "" {
		cacheKey = "marketplace:statistics"
	}
	return &StatsService{
		userRepo: userRepo,
		policy:   policy,
		redis:    redis,
		cacheKey: cacheKey,
	}
}

// GetStatistics - агрегаты для админ-дашборда. Пересчитываются на чтении,
// кэш в Redis на минуту; недоступный кэш деградирует до прямого пересчета.
func (s *StatsService) GetStatistics(ctx context.Context, p *entity.Principal) (*entity.Statistics, error) {
	if err := s.policy.CanPerform(p, ActionViewStatistics, nil); err != nil {
		return nil, err
	}

	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	stats, err := s.userRepo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, stats)

	return stats, nil
}

func (s *StatsService) fromCache(ctx context.Context) *entity.Statistics {
	if s.redis == nil {
		return nil
	}

	data, err := s.redis.Do(ctx, s.redis.B().Get().Key(s.cacheKey).Build()).AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			log.Printf("statistics cache read failed: %v", err)
		}
		return nil
	}

	var stats entity.Statistics
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *StatsService) toCache(ctx context.Context, stats *entity.Statistics) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return
	}

	cmd := s.redis.B().Set().Key(s.cacheKey).Value(string(data)).Ex(statsCacheTTL).Build()
	if err := s.redis.Do(ctx, cmd).Error(); err != nil {
		log.Printf("statistics cache write failed: %v", err)
	}
}
