package config

import (
	"context"
	"fmt"

	"github.com/mwantia/vfsh/backend"
	"github.com/mwantia/vfsh/data"
)

// SeedUsers stores users in the backend named by cfg if it holds no users
// yet. Backends that cannot store users are left alone.
// Returns true if users were written.
func SeedUsers(ctx context.Context, cfg *UsersConfig, users ...*data.User) (bool, error) {
	ub, err := CreateUserBackend(ctx, cfg)
	if err != nil {
		return false, err
	}

	writer, ok := ub.(backend.UserWriter)
	if !ok {
		return false, nil
	}

	if err := ub.Open(ctx); err != nil {
		return false, fmt.Errorf("failed to open %s users backend: %w", ub.Name(), err)
	}
	defer ub.Close(ctx)

	existing, err := ub.LoadUsers(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	if err := writer.SaveUsers(ctx, users); err != nil {
		return false, fmt.Errorf("failed to seed users: %w", err)
	}

	return true, nil
}
