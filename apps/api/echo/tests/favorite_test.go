package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/motbey/mylms/core/favorite"
	"github.com/motbey/mylms/core/user"
	testutil "github.com/motbey/mylms/tests"
)

func Test_favoriteApi_favoriteList(t *testing.T) {
	app := setup(t)

	learner := testutil.CreateUser(t, usrRepo, "Hero", "hero", "user3@test.cd", "", []string{user.RoleLearner}, true)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true)
	favs := testutil.CreateFavorites(t, favRepo, learner, "courses", "users", "reports")
	adminFavs := testutil.CreateFavorites(t, favRepo, admin, "settings")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Empty strip", token: getToken(t, testutil.CreateUser(t, usrRepo, "King", "user02", "king@test.cd", "", nil, true)), wantData: marchallList(t, []interface{}{}...)},
		{name: "Ordered by position", token: getToken(t, learner), wantData: marchallList(t, favs[0], favs[1], favs[2])},
		{name: "Scoped to owner", token: getToken(t, admin), wantData: marchallList(t, adminFavs[0])},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/api/favorites"
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_favoriteApi_favoriteCreate(t *testing.T) {
	app := setup(t)

	learner := testutil.CreateUser(t, usrRepo, "Hero", "hero", "user3@test.cd", "", []string{user.RoleLearner}, true)
	testutil.CreateFavorites(t, favRepo, learner, "courses", "users")
	learnerToken := getToken(t, learner)

	full := testutil.CreateUser(t, usrRepo, "King", "user02", "king@test.cd", "", []string{user.RoleLearner}, true)
	testutil.CreateFavorites(t, favRepo, full, "a", "b", "c", "d", "e", "f")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "required fields", token: learnerToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"slug": "this field is required"}),
		},
		{
			name: "invalid slug", token: learnerToken, wantCode: http.StatusBadRequest,
			body:     marchallObj(t, favorite.NewFavorite{Slug: "bad slug!"}),
			wantData: marchallObj(t, map[string]string{"slug": "only lowercase letters, digits, hyphens and underscores are allowed"}),
		},
		{
			name: "already a favorite", token: learnerToken, wantCode: http.StatusBadRequest,
			body:     marchallObj(t, favorite.NewFavorite{Slug: "courses"}),
			wantData: marchallObj(t, map[string]string{"slug": "already a favorite"}),
		},
		{
			name: "Pinned at the end", token: learnerToken, wantCode: http.StatusCreated,
			body:  marchallObj(t, favorite.NewFavorite{Slug: "reports", Label: "Reports"}),
			extra: favorite.Favorite{Slug: "reports", Label: "Reports", Pos: 2},
		},
		{
			name: "Slug is lowercased", token: learnerToken, wantCode: http.StatusCreated,
			body:  marchallObj(t, favorite.NewFavorite{Slug: "GRADES"}),
			extra: favorite.Favorite{Slug: "grades", Pos: 3},
		},
		{
			name: "Strip is full", token: getToken(t, full), wantCode: http.StatusConflict,
			body: marchallObj(t, favorite.NewFavorite{Slug: "g"}),
			wantData: marchallObj(t, map[string]string{
				"error": favorite.ErrLimitReached.Error(),
				"code":  favorite.CodeLimitReached,
			}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/api/favorites"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			// cannot guess ID and timestamps.. check the stable fields
			if want, ok := tt.extra.(favorite.Favorite); ok {
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var fav favorite.Favorite
				if err := json.Unmarshal(rec.Body.Bytes(), &fav); err != nil {
					t.Errorf("json.Unmarshal() failed! err %v", err)
				}
				if fav.ID == "" {
					t.Error("failed! empty ID")
				}
				if fav.Slug != want.Slug || fav.Label != want.Label || fav.Pos != want.Pos {
					t.Errorf("failed! favorite = %+v; want %+v", fav, want)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_favoriteApi_favoriteCapacityMessage(t *testing.T) {
	app := setup(t)

	learner := testutil.CreateUser(t, usrRepo, "Hero", "hero", "user3@test.cd", "", []string{user.RoleLearner}, true)
	learnerToken := getToken(t, learner)

	for i := 0; i < favorite.MaxFavorites; i++ {
		body := marchallObj(t, favorite.NewFavorite{Slug: fmt.Sprintf("tile-%d", i)})
		req, rec := newAuthRequest(http.MethodPost, "/api/favorites", learnerToken, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("pin %d: code = %v; want %v", i, rec.Code, http.StatusCreated)
		}
	}

	req, rec := newAuthRequest(http.MethodPost, "/api/favorites", learnerToken, marchallObj(t, favorite.NewFavorite{Slug: "one-too-many"}))
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("code = %v; want %v", rec.Code, http.StatusConflict)
	}
	var resp struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json.Unmarshal(): %v", err)
	}
	// clients match on the code, or on the marker kept in the message
	if resp.Code != favorite.CodeLimitReached {
		t.Errorf("code = %q; want %q", resp.Code, favorite.CodeLimitReached)
	}
	if !strings.Contains(resp.Error, favorite.CodeLimitReached) {
		t.Errorf("error %q does not contain %q", resp.Error, favorite.CodeLimitReached)
	}
	if !strings.Contains(resp.Error, strconv.Itoa(favorite.MaxFavorites)) {
		t.Errorf("error %q does not mention the capacity %d", resp.Error, favorite.MaxFavorites)
	}
}

func Test_favoriteApi_favoriteDestroy(t *testing.T) {
	app := setup(t)

	learner := testutil.CreateUser(t, usrRepo, "Hero", "hero", "user3@test.cd", "", []string{user.RoleLearner}, true)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin", "admin@test.cd", "", []string{user.RoleAdmin}, true)
	testutil.CreateFavorites(t, favRepo, learner, "courses", "users", "reports")
	testutil.CreateFavorites(t, favRepo, admin, "courses")

	learnerToken := getToken(t, learner)

	type wantStrip []string
	tests := []httpTest{
		{name: "Auth required", path: "/api/favorites/courses", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Removed and renumbered", path: "/api/favorites/users", token: learnerToken,
			wantCode: http.StatusNoContent, extra: wantStrip{"courses", "reports"},
		},
		{
			name: "Absent slug is a no-op", path: "/api/favorites/users", token: learnerToken,
			wantCode: http.StatusNoContent, extra: wantStrip{"courses", "reports"},
		},
		{
			name: "Scoped to owner", path: "/api/favorites/courses", token: learnerToken,
			wantCode: http.StatusNoContent, extra: wantStrip{"reports"},
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodDelete

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusNoContent {
				checkNoContent(t, tt, rec)
				checkStrip(t, learner, tt.extra.(wantStrip))
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}

	// the admin's identically named favorite survived the learner's removals
	favs, err := favRepo.ListFavorites(context.Background(), admin.ID)
	if err != nil {
		t.Fatalf("ListFavorites(): %v", err)
	}
	if len(favs) != 1 || favs[0].Slug != "courses" {
		t.Errorf("failed! admin favorites = %+v; want [courses]", favs)
	}
}

func Test_favoriteApi_favoriteReorder(t *testing.T) {
	app := setup(t)

	learner := testutil.CreateUser(t, usrRepo, "Hero", "hero", "user3@test.cd", "", []string{user.RoleLearner}, true)
	testutil.CreateFavorites(t, favRepo, learner, "courses", "users", "reports")
	learnerToken := getToken(t, learner)

	order := func(slugs ...string) []byte {
		return marchallObj(t, map[string][]string{"order": slugs})
	}

	type wantStrip []string
	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "required fields", token: learnerToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"order": "this field is required"}),
		},
		{
			name: "Partial order rejected", token: learnerToken, wantCode: http.StatusBadRequest,
			body:     order("courses"),
			wantData: marchallObj(t, map[string]string{"order": "expected 3 slugs, got 1"}),
		},
		{
			name: "Unknown slug rejected", token: learnerToken, wantCode: http.StatusBadRequest,
			body:     order("courses", "users", "scorm"),
			wantData: marchallObj(t, map[string]string{"order": `"scorm" is not a favorite`}),
		},
		{
			name: "Duplicate slug rejected", token: learnerToken, wantCode: http.StatusBadRequest,
			body:     order("courses", "users", "users"),
			wantData: marchallObj(t, map[string]string{"order": `"users" appears more than once`}),
		},
		{
			name: "Reordered", token: learnerToken, wantCode: http.StatusNoContent,
			body: order("reports", "courses", "users"), extra: wantStrip{"reports", "courses", "users"},
		},
		{
			name: "Reordered again", token: learnerToken, wantCode: http.StatusNoContent,
			body: order("users", "reports", "courses"), extra: wantStrip{"users", "reports", "courses"},
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPut
		tt.path = "/api/favorites/order"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusNoContent {
				checkNoContent(t, tt, rec)
				checkStrip(t, learner, tt.extra.(wantStrip))
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

// checkStrip asserts the owner's favorites hold the given slugs with
// contiguous positions.
func checkStrip(t *testing.T, usr user.User, slugs []string) {
	favs, err := favRepo.ListFavorites(context.Background(), usr.ID)
	if err != nil {
		t.Fatalf("ListFavorites(): %v", err)
	}
	if len(favs) != len(slugs) {
		t.Fatalf("failed! strip = %v; want %v", favorite.Slugs(favs), slugs)
	}
	for i, fav := range favs {
		if fav.Slug != slugs[i] {
			t.Fatalf("failed! strip = %v; want %v", favorite.Slugs(favs), slugs)
		}
		if fav.Pos != i {
			t.Errorf("failed! favs[%d].Pos = %d; want %d", i, fav.Pos, i)
		}
	}
}
