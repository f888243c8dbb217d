package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/St1cky1/marketplace-service/internal/entity"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	queryTimeout = 5 * time.Second
	retryBackoff = 100 * time.Millisecond
)

// withRetry выполняет вызов к БД с ограниченным таймаутом и одним повтором
// при транзиентной ошибке. После неудачного повтора наружу уходит ErrUnavailable.
func withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	attempt := func() error {
		opCtx, cancel := context.WithTimeout(ctx, queryTimeout)
		defer cancel()
		return fn(opCtx)
	}

	err := attempt()
	if err == nil || !transient(err) {
		return err
	}

	select {
	case <-time.After(retryBackoff):
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", entity.ErrUnavailable, ctx.Err())
	}

	if err = attempt(); err != nil {
		if transient(err) {
			return fmt.Errorf("%w: %v", entity.ErrUnavailable, err)
		}
		return err
	}
	return nil
}

func transient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return pgconn.Timeout(err) || pgconn.SafeToRetry(err)
}
