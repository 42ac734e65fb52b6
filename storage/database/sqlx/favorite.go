package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/motbey/mylms/core"
	"github.com/motbey/mylms/core/favorite"
)

type favoriteRepository struct {
	db *sqlx.DB
}

var _ favorite.Repository = (*favoriteRepository)(nil) // interface compliance check

func NewFavoriteRepository(db *sql.DB) *favoriteRepository {
	return &favoriteRepository{db: sqlx.NewDb(db, "postgres")}
}

// getExt wraps an override executor for sqlx scanning; overrides are *sql.Tx
// handed out by core.RunInTx.
func (repo favoriteRepository) getExt(svcExec []core.DBExecutor) sqlx.ExtContext {
	if len(svcExec) > 0 {
		if tx, ok := svcExec[0].(*sql.Tx); ok {
			return &sqlx.Tx{Tx: tx, Mapper: repo.db.Mapper}
		}
	}
	return repo.db
}

type favoriteRow struct {
	ID        string         `db:"id"`
	OwnerID   string         `db:"owner_id"`
	Slug      string         `db:"slug"`
	Label     sql.NullString `db:"label"`
	Position  int            `db:"position"`
	CreatedAt sql.NullTime   `db:"created_at"`
	UpdatedAt sql.NullTime   `db:"updated_at"`
}

func (repo favoriteRepository) pack(fav favorite.Favorite) favoriteRow {
	return favoriteRow{
		ID:        fav.ID,
		OwnerID:   fav.OwnerID,
		Slug:      fav.Slug,
		Label:     sql.NullString{String: fav.Label, Valid: fav.Label != ""},
		Position:  fav.Pos,
		CreatedAt: sql.NullTime{Time: fav.CreatedAt.UTC(), Valid: !fav.CreatedAt.IsZero()},
		UpdatedAt: sql.NullTime{Time: fav.UpdatedAt.UTC(), Valid: !fav.UpdatedAt.IsZero()},
	}
}

func (repo favoriteRepository) unpack(row favoriteRow) favorite.Favorite {
	return favorite.Favorite{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Slug:      row.Slug,
		Label:     row.Label.String,
		Pos:       row.Position,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func (repo favoriteRepository) unpackSlice(rows []favoriteRow) []favorite.Favorite {
	favs := make([]favorite.Favorite, 0, len(rows))
	for _, row := range rows {
		favs = append(favs, repo.unpack(row))
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
	var rows []favoriteRow
	query := `SELECT * FROM favorite WHERE owner_id = $1 ORDER BY "position"`
	if err := sqlx.SelectContext(ctx, repo.getExt(exec), &rows, query, ownerID); err != nil {
		return nil, errors.Wrap(err, "querying favorites")
	}
	return repo.unpackSlice(rows), nil
}

func (repo favoriteRepository) CreateFavorite(ctx context.Context, fav favorite.Favorite, exec ...core.DBExecutor) (favorite.Favorite, error) {
	fav.ID = uuid.New().String()
	row := repo.pack(fav)

	query := `
		INSERT INTO favorite (id, owner_id, slug, label, "position", created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := repo.getExt(exec).ExecContext(ctx, query,
		row.ID, row.OwnerID, row.Slug, row.Label, row.Position, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return favorite.Favorite{}, repo.trapConstraintErr(err, "inserting favorite")
	}
	return repo.unpack(row), nil
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
	res, err := exec.ExecContext(ctx, `DELETE FROM favorite WHERE owner_id = $1 AND slug = $2`, ownerID, slug)
	if err != nil {
		return 0, errors.Wrap(err, "deleting favorite")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "counting deleted favorites")
	}
	if cnt == 0 {
		return 0, nil
	}

	renumber := `
		UPDATE favorite f
		SET "position" = t.rn - 1
		FROM (
			SELECT id, row_number() OVER (ORDER BY "position") AS rn
			FROM favorite
			WHERE owner_id = $1
		) t
		WHERE f.id = t.id AND f."position" != t.rn - 1`
	if _, err = exec.ExecContext(ctx, renumber, ownerID); err != nil {
		return 0, errors.Wrap(err, "renumbering favorites")
	}
	return int(cnt), nil
}

func (repo favoriteRepository) ReorderFavorites(ctx context.Context, ownerID string, order []string, exec ...core.DBExecutor) error {
	query := `
		UPDATE favorite f
		SET "position" = t.ord - 1
		FROM UNNEST($2::text[]) WITH ORDINALITY AS t(slug, ord)
		WHERE f.owner_id = $1 AND f.slug = t.slug`
	res, err := repo.getExt(exec).ExecContext(ctx, query, ownerID, pq.Array(order))
	if err != nil {
		return errors.Wrap(err, "reordering favorites")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "counting reordered favorites")
	}
	if int(cnt) != len(order) {
		return favorite.ErrNotFound
	}
	return nil
}
