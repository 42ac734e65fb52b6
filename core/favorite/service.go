package favorite

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/motbey/mylms/core"
)

// CodeLimitReached is the stable error code reported when an Add would
// exceed MaxFavorites. Clients match on it rather than on the message.
const CodeLimitReached = "FAVORITES_LIMIT"

var (
	// errors
	ErrNotFound      = errors.New("favorite not found")
	ErrAlreadyExists = errors.New("already a favorite")
	ErrLimitReached  = core.NewConflictError(
		CodeLimitReached,
		fmt.Errorf("you already have %d favorites; remove one to add another", MaxFavorites),
	)
)

type (
	Repository interface {
		// ListFavorites returns the owner's favorites ordered by position.
		ListFavorites(ctx context.Context, ownerID string, exec ...core.DBExecutor) ([]Favorite, error)
		CreateFavorite(ctx context.Context, fav Favorite, exec ...core.DBExecutor) (Favorite, error)
		// DeleteFavorite reports the number of favorites removed; 0 is not an error.
		DeleteFavorite(ctx context.Context, ownerID, slug string, exec ...core.DBExecutor) (int, error)
		// ReorderFavorites rewrites positions to match order, atomically.
		ReorderFavorites(ctx context.Context, ownerID string, order []string, exec ...core.DBExecutor) error
	}

	ServiceInterface interface {
		List(ctx context.Context, ownerID string) ([]Favorite, error)
		Add(ctx context.Context, ownerID string, nf NewFavorite) (Favorite, error)
		Remove(ctx context.Context, ownerID, slug string) error
		Reorder(ctx context.Context, ownerID string, order []string) error
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) List(ctx context.Context, ownerID string) ([]Favorite, error) {
	return svc.repo.ListFavorites(ctx, ownerID)
}

// Add pins a shortcut at the end of the owner's strip.
func (svc *Service) Add(ctx context.Context, ownerID string, nf NewFavorite) (Favorite, error) {
	favs, err := svc.repo.ListFavorites(ctx, ownerID)
	if err != nil {
		return Favorite{}, err
	}
	if len(favs) >= MaxFavorites {
		return Favorite{}, ErrLimitReached
	}
	for _, fav := range favs {
		if fav.Slug == nf.Slug {
			return Favorite{}, alreadyExistsError()
		}
	}

	now := time.Now().UTC()
	fav := Favorite{
		OwnerID:   ownerID,
		Slug:      nf.Slug,
		Label:     nf.Label,
		Pos:       len(favs),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// concurrent adds racing the checks above are caught by the capacity
	// trigger and the (owner_id, slug) unique constraint
	fav, err = svc.repo.CreateFavorite(ctx, fav)
	if err != nil {
		if errors.Cause(err) == ErrAlreadyExists {
			return Favorite{}, alreadyExistsError()
		}
		return Favorite{}, err
	}
	return fav, nil
}

// Remove unpins a shortcut. Removing an absent slug is a no-op.
func (svc *Service) Remove(ctx context.Context, ownerID, slug string) error {
	_, err := svc.repo.DeleteFavorite(ctx, ownerID, slug)
	return err
}

// Reorder rewrites the strip order. order must hold exactly the owner's
// current slugs.
func (svc *Service) Reorder(ctx context.Context, ownerID string, order []string) error {
	favs, err := svc.repo.ListFavorites(ctx, ownerID)
	if err != nil {
		return err
	}
	if err = checkPermutation(order, favs); err != nil {
		return err
	}
	return svc.repo.ReorderFavorites(ctx, ownerID, order)
}

func alreadyExistsError() error {
	return core.NewValidationError(ErrAlreadyExists, core.FieldError{Field: "slug", Error: ErrAlreadyExists.Error()})
}

func checkPermutation(order []string, favs []Favorite) error {
	reject := func(msg string) error {
		return core.NewValidationError(nil, core.FieldError{Field: "order", Error: msg})
	}

	if len(order) != len(favs) {
		return reject(fmt.Sprintf("expected %d slugs, got %d", len(favs), len(order)))
	}
	owned := make(map[string]bool, len(favs))
	for _, fav := range favs {
		owned[fav.Slug] = true
	}
	seen := make(map[string]bool, len(order))
	for _, slug := range order {
		if !owned[slug] {
			return reject(fmt.Sprintf("%q is not a favorite", slug))
		}
		if seen[slug] {
			return reject(fmt.Sprintf("%q appears more than once", slug))
		}
		seen[slug] = true
	}
	return nil
}
