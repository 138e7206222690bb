package subscription

import (
	"context"
	"fmt"

	"github.com/example/quizme/internal/quizerr"
)

// Manager coordinates subscription seeding, listing, and updates.
type Manager struct {
	userTags UserTagRepository
}

// NewManager creates a new Manager.
func NewManager(userTags UserTagRepository) *Manager {
	return &Manager{userTags: userTags}
}

// EnsureSubscriptions creates disabled subscriptions for any catalog tag the
// user has never seen. Idempotent; callers run it before reading the list so
// that the read itself stays pure.
func (m *Manager) EnsureSubscriptions(ctx context.Context, userID int64) error {
	if err := m.userTags.SeedMissing(ctx, userID); err != nil {
		return quizerr.Persistence("seed subscriptions", err)
	}
	return nil
}

// Subscriptions returns one UserTag per catalog tag, ordered by tag name.
// EnsureSubscriptions must have run at least once for the user.
func (m *Manager) Subscriptions(ctx context.Context, userID int64) ([]UserTag, error) {
	userTags, err := m.userTags.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find subscriptions > %w", err)
	}
	return userTags, nil
}

// ApplyUpdates bulk-sets enabled flags. The whole batch is validated before
// anything is written: on any invalid entry a ValidationError with per-field
// messages is returned and no state changes.
func (m *Manager) ApplyUpdates(ctx context.Context, userID int64, updates []Update) error {
	if len(updates) == 0 {
		return nil
	}

	existing, err := m.userTags.FindByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("find subscriptions > %w", err)
	}
	subscribed := make(map[int64]bool, len(existing))
	for _, userTag := range existing {
		subscribed[userTag.TagID] = true
	}

	validationErr := quizerr.NewValidationError()
	seen := make(map[int64]bool, len(updates))
	for _, update := range updates {
		field := fmt.Sprintf("tag_%d", update.TagID)
		if !subscribed[update.TagID] {
			validationErr.Add(field, "no subscription exists for this tag")
			continue
		}
		if seen[update.TagID] {
			validationErr.Add(field, "duplicate update for this tag")
			continue
		}
		seen[update.TagID] = true
	}
	if validationErr.HasErrors() {
		return validationErr
	}

	if err := m.userTags.ApplyEnabled(ctx, userID, updates); err != nil {
		return quizerr.Persistence("update subscriptions", err)
	}
	return nil
}
