package favorite

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/motbey/mylms/core"
)

// MaxFavorites is the hard cap on pinned shortcuts per user.
const MaxFavorites = 6

type (
	// Favorite is a shortcut a user pinned to their portal strip.
	// Label is a snapshot of the tile label at pin time; an empty Label
	// means none was recorded and the display falls back to the tile
	// registry.
	//
	// Positions are kept contiguous in [0, n): Add appends at the end,
	// Remove renumbers the remainder and Reorder rewrites them all.
	Favorite struct {
		ID        string    `json:"id"`
		OwnerID   string    `json:"-"`
		Slug      string    `json:"slug"`
		Label     string    `json:"label,omitempty"`
		Pos       int       `json:"pos"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	NewFavorite struct {
		Slug  string `json:"slug" validate:"required,max=64,slug"`
		Label string `json:"label" validate:"omitempty,max=120"`
	}
)

func (nf *NewFavorite) Validate(validate *validator.Validate) error {
	nf.Slug = core.CleanString(nf.Slug, true /* lower */)
	nf.Label = core.CleanString(nf.Label)
	return validate.Struct(nf)
}

// Slugs returns the slugs of favs in order.
func Slugs(favs []Favorite) []string {
	slugs := make([]string, len(favs))
	for i, fav := range favs {
		slugs[i] = fav.Slug
	}
	return slugs
}
