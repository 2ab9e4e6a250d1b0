package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"stockflow/internal/model"
	"stockflow/internal/repository"
)

// Recipient is a user who should hear about a product's stock.
type Recipient struct {
	ID                 uint
	Email              string
	Username           string
	EmailNotifications bool
}

// RecipientResolver finds the users interested in a product.
type RecipientResolver interface {
	Resolve(ctx context.Context, product *model.Product) ([]Recipient, error)
}

type recipientResolver struct {
	userRepo      repository.UserRepository
	watchlistRepo repository.WatchlistRepository
}

// NewRecipientResolver builds a resolver over the user and watchlist stores.
func NewRecipientResolver(userRepo repository.UserRepository, watchlistRepo repository.WatchlistRepository) RecipientResolver {
	return &recipientResolver{userRepo: userRepo, watchlistRepo: watchlistRepo}
}

// Resolve returns the product's creator followed by its watchers. Each user
// appears once; a creator that no longer exists is skipped.
func (r *recipientResolver) Resolve(ctx context.Context, product *model.Product) ([]Recipient, error) {
	var recipients []Recipient
	seen := make(map[uint]struct{})

	add := func(u *model.User) {
		if _, ok := seen[u.ID]; ok {
			return
		}
		seen[u.ID] = struct{}{}
		recipients = append(recipients, Recipient{
			ID:                 u.ID,
			Email:              u.Email,
			Username:           u.Username,
			EmailNotifications: u.EmailNotifications,
		})
	}

	if product.CreatedBy != 0 {
		creator, err := r.userRepo.FindByID(ctx, product.CreatedBy)
		switch {
		case err == nil:
			add(creator)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("load creator: %w", err)
		}
	}

	watchers, err := r.watchlistRepo.ListWatchers(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("load watchers: %w", err)
	}
	for i := range watchers {
		add(&watchers[i])
	}

	return recipients, nil
}
