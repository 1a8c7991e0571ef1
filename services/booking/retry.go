package booking

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// withRetry runs attempt until it succeeds, fails with a non-retryable code, or
// MaxAttempts is used up. Every failure leaves as a *ReservationError.
func (s *DefaultReservationService) withRetry(ctx context.Context, logger *zap.Logger, op string, attempt func() error) error {
	maxAttempts := s.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	backoff := s.RetryBackoff
	if backoff < 0 {
		backoff = 0
	} else if backoff == 0 {
		backoff = defaultRetryBackoff
	}

	var lastErr *ReservationError
	for i := 1; i <= maxAttempts; i++ {
		err := attempt()
		if err == nil {
			return nil
		}
		lastErr = toReservationError(err)
		if !lastErr.Code.Retryable() {
			return lastErr
		}
		logger.Debug("Retryable booking transaction failure",
			zap.String("op", op),
			zap.Int("attempt", i),
			zap.Int("maxAttempts", maxAttempts),
			zap.Error(err),
		)
		if i == maxAttempts || ctx.Err() != nil {
			break
		}

		timer := time.NewTimer(backoff * time.Duration(i))
		select {
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		case <-timer.C:
		}
	}
	return lastErr
}
