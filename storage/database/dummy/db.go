package dummydb

import (
	"sync"

	"github.com/motbey/mylms/core/favorite"
	"github.com/motbey/mylms/core/user"
)

type (
	DB struct {
		user     *userTable
		favorite *favoriteTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	// favoriteTable keys rows by owner ID. Row order is insertion order;
	// readers sort by position.
	favoriteTable struct {
		sync.RWMutex
		table map[string][]*favorite.Favorite
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:     &userTable{table: make(map[string]*user.User)},
		favorite: &favoriteTable{table: make(map[string][]*favorite.Favorite)},
	}
	return db, nil
}
