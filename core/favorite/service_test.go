package favorite_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/motbey/mylms/core"
	"github.com/motbey/mylms/core/favorite"
	dummydb "github.com/motbey/mylms/storage/database/dummy"
)

func newService(t *testing.T) favorite.ServiceInterface {
	t.Helper()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}
	return favorite.NewService(dummydb.NewFavoriteRepository(db))
}

func addAll(t *testing.T, svc favorite.ServiceInterface, ownerID string, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		if _, err := svc.Add(context.Background(), ownerID, favorite.NewFavorite{Slug: slug}); err != nil {
			t.Fatalf("Add(%q): %v", slug, err)
		}
	}
}

func checkSlugs(t *testing.T, svc favorite.ServiceInterface, ownerID string, want []string) {
	t.Helper()
	favs, err := svc.List(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("List(): %v", err)
	}
	if diff := cmp.Diff(want, favorite.Slugs(favs)); diff != "" {
		t.Errorf("slugs mismatch (-want +got):\n%s", diff)
	}
	for i, fav := range favs {
		if fav.Pos != i {
			t.Errorf("favs[%d].Pos = %d; want %d", i, fav.Pos, i)
		}
	}
}

func checkFieldError(t *testing.T, err error, field string) {
	t.Helper()
	verr, ok := errors.Cause(err).(*core.ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, fe := range verr.Fields {
		if fe.Field == field {
			return
		}
	}
	t.Errorf("no error reported for field %q: %+v", field, verr.Fields)
}

func TestServiceAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("appends at the end", func(t *testing.T) {
		svc := newService(t)
		ownerID := uuid.New().String()

		fav, err := svc.Add(ctx, ownerID, favorite.NewFavorite{Slug: "users", Label: "Users"})
		if err != nil {
			t.Fatalf("Add(): %v", err)
		}
		if fav.Pos != 0 {
			t.Errorf("Pos = %d; want 0", fav.Pos)
		}
		if fav.Label != "Users" {
			t.Errorf("Label = %q; want %q", fav.Label, "Users")
		}
		if fav.ID == "" {
			t.Error("ID not set")
		}

		fav, err = svc.Add(ctx, ownerID, favorite.NewFavorite{Slug: "courses"})
		if err != nil {
			t.Fatalf("Add(): %v", err)
		}
		if fav.Pos != 1 {
			t.Errorf("Pos = %d; want 1", fav.Pos)
		}
		checkSlugs(t, svc, ownerID, []string{"users", "courses"})
	})

	t.Run("rejects the 7th", func(t *testing.T) {
		svc := newService(t)
		ownerID := uuid.New().String()
		addAll(t, svc, ownerID, "users", "groups", "courses", "reports", "forms", "branding")

		_, err := svc.Add(ctx, ownerID, favorite.NewFavorite{Slug: "workshops"})
		if !core.IsConflict(err, favorite.CodeLimitReached) {
			t.Fatalf("Add() error = %v; want conflict %s", err, favorite.CodeLimitReached)
		}
		if !strings.Contains(err.Error(), favorite.CodeLimitReached) {
			t.Errorf("error %q does not contain %q", err.Error(), favorite.CodeLimitReached)
		}
		checkSlugs(t, svc, ownerID, []string{"users", "groups", "courses", "reports", "forms", "branding"})
	})

	t.Run("rejects a duplicate slug", func(t *testing.T) {
		svc := newService(t)
		ownerID := uuid.New().String()
		addAll(t, svc, ownerID, "users", "courses")

		_, err := svc.Add(ctx, ownerID, favorite.NewFavorite{Slug: "users"})
		checkFieldError(t, err, "slug")
		checkSlugs(t, svc, ownerID, []string{"users", "courses"})
	})

	t.Run("caps are per owner", func(t *testing.T) {
		svc := newService(t)
		ownerID := uuid.New().String()
		otherID := uuid.New().String()
		addAll(t, svc, ownerID, "users", "groups", "courses", "reports", "forms", "branding")

		if _, err := svc.Add(ctx, otherID, favorite.NewFavorite{Slug: "users"}); err != nil {
			t.Errorf("Add() for another owner: %v", err)
		}
	})
}

func TestServiceRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("renumbers the remainder", func(t *testing.T) {
		svc := newService(t)
		ownerID := uuid.New().String()
		addAll(t, svc, ownerID, "users", "groups", "courses")

		if err := svc.Remove(ctx, ownerID, "groups"); err != nil {
			t.Fatalf("Remove(): %v", err)
		}
		checkSlugs(t, svc, ownerID, []string{"users", "courses"})
	})

	t.Run("absent slug is a no-op", func(t *testing.T) {
		svc := newService(t)
		ownerID := uuid.New().String()
		addAll(t, svc, ownerID, "users")

		if err := svc.Remove(ctx, ownerID, "courses"); err != nil {
			t.Errorf("Remove(): %v", err)
		}
		checkSlugs(t, svc, ownerID, []string{"users"})
	})

	t.Run("scoped to the owner", func(t *testing.T) {
		svc := newService(t)
		ownerID := uuid.New().String()
		otherID := uuid.New().String()
		addAll(t, svc, ownerID, "users")
		addAll(t, svc, otherID, "users")

		if err := svc.Remove(ctx, ownerID, "users"); err != nil {
			t.Fatalf("Remove(): %v", err)
		}
		checkSlugs(t, svc, ownerID, []string{})
		checkSlugs(t, svc, otherID, []string{"users"})
	})
}

func TestServiceReorder(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		svc := newService(t)
		ownerID := uuid.New().String()
		addAll(t, svc, ownerID, "users", "groups", "courses")

		if err := svc.Reorder(ctx, ownerID, []string{"courses", "users", "groups"}); err != nil {
			t.Fatalf("Reorder(): %v", err)
		}
		checkSlugs(t, svc, ownerID, []string{"courses", "users", "groups"})
	})

	t.Run("rejects a partial order", func(t *testing.T) {
		svc := newService(t)
		ownerID := uuid.New().String()
		addAll(t, svc, ownerID, "users", "groups", "courses")

		err := svc.Reorder(ctx, ownerID, []string{"courses", "users"})
		checkFieldError(t, err, "order")
		checkSlugs(t, svc, ownerID, []string{"users", "groups", "courses"})
	})

	t.Run("rejects an unknown slug", func(t *testing.T) {
		svc := newService(t)
		ownerID := uuid.New().String()
		addAll(t, svc, ownerID, "users", "groups")

		err := svc.Reorder(ctx, ownerID, []string{"users", "scorm"})
		checkFieldError(t, err, "order")
		checkSlugs(t, svc, ownerID, []string{"users", "groups"})
	})

	t.Run("rejects a duplicated slug", func(t *testing.T) {
		svc := newService(t)
		ownerID := uuid.New().String()
		addAll(t, svc, ownerID, "users", "groups")

		err := svc.Reorder(ctx, ownerID, []string{"users", "users"})
		checkFieldError(t, err, "order")
		checkSlugs(t, svc, ownerID, []string{"users", "groups"})
	})
}
