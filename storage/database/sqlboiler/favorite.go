package boiledrepos

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
	"github.com/volatiletech/sqlboiler/v4/boil"
	"github.com/volatiletech/sqlboiler/v4/queries/qm"

	"github.com/motbey/mylms/core"
	"github.com/motbey/mylms/core/favorite"
	"github.com/motbey/mylms/storage/database/sqlboiler/models"
)

type favoriteRepository struct {
	db core.DB
}

var _ favorite.Repository = (*favoriteRepository)(nil) // interface compliance check

func NewFavoriteRepository(db core.DB) *favoriteRepository {
	return &favoriteRepository{db: db}
}

func (repo favoriteRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.db
}

func (repo favoriteRepository) boil(fav favorite.Favorite) *models.Favorite {
	f := &models.Favorite{
		OwnerID:   fav.OwnerID,
		Slug:      fav.Slug,
		Label:     null.NewString(fav.Label, fav.Label != ""),
		Position:  fav.Pos,
		CreatedAt: null.NewTime(fav.CreatedAt.UTC(), !fav.CreatedAt.IsZero()),
		UpdatedAt: null.NewTime(fav.UpdatedAt.UTC(), !fav.UpdatedAt.IsZero()),
	}
	if fav.ID != "" {
		f.ID = fav.ID
	}
	return f
}

func (repo favoriteRepository) unboil(fav *models.Favorite) favorite.Favorite {
	if fav == nil {
		return favorite.Favorite{}
	}
	return favorite.Favorite{
		ID:        fav.ID,
		OwnerID:   fav.OwnerID,
		Slug:      fav.Slug,
		Label:     fav.Label.String,
		Pos:       fav.Position,
		CreatedAt: fav.CreatedAt.Time,
		UpdatedAt: fav.UpdatedAt.Time,
	}
}

func (repo favoriteRepository) unboilSlice(slice models.FavoriteSlice) []favorite.Favorite {
	favs := make([]favorite.Favorite, 0, len(slice))
	for _, f := range slice {
		favs = append(favs, repo.unboil(f))
	}
	return favs
}

// trapConstraintErr maps the capacity trigger to favorite.ErrLimitReached and
// the (owner_id, slug) unique constraint to favorite.ErrAlreadyExists.
func (repo favoriteRepository) trapConstraintErr(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if strings.Contains(pqErr.Message, favorite.CodeLimitReached) {
			return favorite.ErrLimitReached
		}
		if pqErr.Code.Name() == "unique_violation" {
			return favorite.ErrAlreadyExists
		}
	}
	return errors.Wrap(err, msg)
}

func (repo favoriteRepository) ListFavorites(ctx context.Context, ownerID string, exec ...core.DBExecutor) ([]favorite.Favorite, error) {
	favs, err := models.Favorites(
		models.FavoriteWhere.OwnerID.EQ(ownerID),
		qm.OrderBy(fmt.Sprintf("%q", models.FavoriteColumns.Position)),
	).All(ctx, repo.getExec(exec))
	if err != nil {
		return nil, errors.Wrap(err, "querying favorites")
	}
	return repo.unboilSlice(favs), nil
}

func (repo favoriteRepository) CreateFavorite(ctx context.Context, fav favorite.Favorite, exec ...core.DBExecutor) (favorite.Favorite, error) {
	fav.ID = uuid.New().String()
	f := repo.boil(fav)
	if err := f.Insert(ctx, repo.getExec(exec), boil.Infer()); err != nil {
		return favorite.Favorite{}, repo.trapConstraintErr(err, "inserting favorite")
	}
	return repo.unboil(f), nil
}

func (repo favoriteRepository) DeleteFavorite(ctx context.Context, ownerID, slug string, exec ...core.DBExecutor) (int, error) {
	if len(exec) > 0 {
		return repo.deleteFavorite(ctx, ownerID, slug, exec[0])
	}

	var cnt int
	err := core.RunInTx(ctx, repo.db, func(tx core.DBTransactor) error {
		var err error
		cnt, err = repo.deleteFavorite(ctx, ownerID, slug, tx)
		return err
	})
	return cnt, err
}

// deleteFavorite renumbers the remaining favorites so positions stay
// contiguous in [0, n).
func (repo favoriteRepository) deleteFavorite(ctx context.Context, ownerID, slug string, exec core.DBExecutor) (int, error) {
	cnt, err := models.Favorites(
		models.FavoriteWhere.OwnerID.EQ(ownerID),
		models.FavoriteWhere.Slug.EQ(slug),
	).DeleteAll(ctx, exec)
	if err != nil {
		return 0, errors.Wrap(err, "deleting favorite")
	}
	if cnt == 0 {
		return 0, nil
	}

	favs, err := models.Favorites(
		models.FavoriteWhere.OwnerID.EQ(ownerID),
		qm.OrderBy(fmt.Sprintf("%q", models.FavoriteColumns.Position)),
	).All(ctx, exec)
	if err != nil {
		return 0, errors.Wrap(err, "querying favorites")
	}
	for pos, f := range favs {
		if f.Position == pos {
			continue
		}
		f.Position = pos
		if _, err = f.Update(ctx, exec, boil.Whitelist(models.FavoriteColumns.Position)); err != nil {
			return 0, errors.Wrap(err, "renumbering favorite")
		}
	}
	return int(cnt), nil
}

func (repo favoriteRepository) ReorderFavorites(ctx context.Context, ownerID string, order []string, exec ...core.DBExecutor) error {
	if len(exec) > 0 {
		return repo.reorderFavorites(ctx, ownerID, order, exec[0])
	}
	return core.RunInTx(ctx, repo.db, func(tx core.DBTransactor) error {
		return repo.reorderFavorites(ctx, ownerID, order, tx)
	})
}

func (repo favoriteRepository) reorderFavorites(ctx context.Context, ownerID string, order []string, exec core.DBExecutor) error {
	for pos, slug := range order {
		cnt, err := models.Favorites(
			models.FavoriteWhere.OwnerID.EQ(ownerID),
			models.FavoriteWhere.Slug.EQ(slug),
		).UpdateAll(ctx, exec, models.M{models.FavoriteColumns.Position: pos})
		if err != nil {
			return errors.Wrap(err, "reordering favorites")
		}
		if cnt == 0 {
			return favorite.ErrNotFound
		}
	}
	return nil
}
