package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/motbey/mylms/core"
	"github.com/motbey/mylms/core/favorite"
)

type favoriteRepository struct {
	db *favoriteTable
}

var _ favorite.Repository = (*favoriteRepository)(nil) // interface compliance check

func NewFavoriteRepository(db *DB) favorite.Repository {
	return &favoriteRepository{db: db.favorite}
}

func (repo *favoriteRepository) ListFavorites(ctx context.Context, ownerID string, exec ...core.DBExecutor) ([]favorite.Favorite, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rows := repo.db.table[ownerID]
	favs := make([]favorite.Favorite, 0, len(rows))
	for _, row := range rows {
		favs = append(favs, *row)
	}
	sort.Slice(favs, func(i, j int) bool { return favs[i].Pos < favs[j].Pos })
	return favs, nil
}

func (repo *favoriteRepository) CreateFavorite(ctx context.Context, fav favorite.Favorite, exec ...core.DBExecutor) (favorite.Favorite, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	// mirror the capacity trigger and the (owner_id, slug) unique
	// constraint of the real schema
	rows := repo.db.table[fav.OwnerID]
	if len(rows) >= favorite.MaxFavorites {
		return favorite.Favorite{}, favorite.ErrLimitReached
	}
	for _, row := range rows {
		if row.Slug == fav.Slug {
			return favorite.Favorite{}, favorite.ErrAlreadyExists
		}
	}

	fav.ID = uuid.New().String()
	repo.db.table[fav.OwnerID] = append(rows, &fav)
	return fav, nil
}

func (repo *favoriteRepository) DeleteFavorite(ctx context.Context, ownerID, slug string, exec ...core.DBExecutor) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rows := repo.db.table[ownerID]
	if len(rows) == 0 {
		return 0, nil
	}

	var deleted int
	kept := make([]*favorite.Favorite, 0, len(rows))
	for _, row := range rows {
		if row.Slug == slug {
			deleted++
			continue
		}
		kept = append(kept, row)
	}

	// renumber the remainder to keep positions contiguous
	sort.Slice(kept, func(i, j int) bool { return kept[i].Pos < kept[j].Pos })
	for i, row := range kept {
		row.Pos = i
	}
	repo.db.table[ownerID] = kept
	return deleted, nil
}

func (repo *favoriteRepository) ReorderFavorites(ctx context.Context, ownerID string, order []string, exec ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	rows := repo.db.table[ownerID]
	bySlug := make(map[string]*favorite.Favorite, len(rows))
	for _, row := range rows {
		bySlug[row.Slug] = row
	}

	for pos, slug := range order {
		row, ok := bySlug[slug]
		if !ok {
			return favorite.ErrNotFound
		}
		row.Pos = pos
	}
	return nil
}
