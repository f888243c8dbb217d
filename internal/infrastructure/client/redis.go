package client

import (
	"github.com/redis/rueidis"
)

// NewRedisClient создает клиент Redis для кэша статистики
func NewRedisClient(addr string) (rueidis.Client, error) {
	redisClient, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress: []string{addr},
		},
	)
	if err != nil {
		return nil, err
	}

	return redisClient, nil
}
