package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/motbey/mylms/core/favorite"
	"github.com/motbey/mylms/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	usr.SetActive(isActive)
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// CreateFavorites pins the given slugs for usr, in order.
func CreateFavorites(t *testing.T, repo favorite.Repository, usr user.User, slugs ...string) []favorite.Favorite {
	now := time.Now().UTC()
	favs := make([]favorite.Favorite, 0, len(slugs))
	for pos, slug := range slugs {
		fav, err := repo.CreateFavorite(context.Background(), favorite.Favorite{
			OwnerID:   usr.ID,
			Slug:      slug,
			Pos:       pos,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			t.Fatalf("CreateFavorites(%q) failed: %v", slug, err)
		}
		favs = append(favs, fav)
	}
	return favs
}
