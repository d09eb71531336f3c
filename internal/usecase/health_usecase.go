package usecase

import (
	"context"
	"time"
)

// Pinger reports the reachability of the rate-limit backend.
type Pinger func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	mailConfigured bool
	rateLimitStore string
	ping           Pinger
}

// NewHealthUsecase reports mailer configuration and the rate-limit backend.
// ping may be nil for the in-memory store.
func NewHealthUsecase(mailConfigured bool, rateLimitStore string, ping Pinger) HealthUsecase {
	return &healthUsecase{
		mailConfigured: mailConfigured,
		rateLimitStore: rateLimitStore,
		ping:           ping,
	}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status":           "ok",
		"mail":             "configured",
		"rate_limit_store": u.rateLimitStore,
	}
	if !u.mailConfigured {
		status["status"] = "degraded"
		status["mail"] = "not_configured"
	}

	if u.ping != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := u.ping(ctx); err != nil {
			status["status"] = "degraded"
			status["rate_limit_backend"] = "unreachable"
		} else {
			status["rate_limit_backend"] = "ok"
		}
	}
	return status
}
