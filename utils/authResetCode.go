package utils

import (
	"DentaBill/cache"
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const resetCodeExpiry = 15 * time.Minute

// GenerateResetCode generates a random 6-digit reset code.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// SetResetCode stores the reset code for a given email in Redis with a
// 15-minute expiry.
func SetResetCode(ctx context.Context, cacheInstance *cache.Cache, email, code string) error {
	return cacheInstance.Set(ctx, "reset_code:"+email, code, resetCodeExpiry)
}

// GetResetCode retrieves the reset code for a given email from Redis.
// Returns nil when no code is pending.
func GetResetCode(ctx context.Context, cacheInstance *cache.Cache, email string) (*string, error) {
	code, err := cacheInstance.Get(ctx, "reset_code:"+email)
	if err != nil {
		return nil, err
	}
	if code == "" {
		return nil, nil
	}
	return &code, nil
}

// DeleteResetCode deletes the reset code for a given email from Redis.
func DeleteResetCode(ctx context.Context, cacheInstance *cache.Cache, email string) error {
	return cacheInstance.Delete(ctx, "reset_code:"+email)
}
