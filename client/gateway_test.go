package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/motbey/mylms/client"
	"github.com/motbey/mylms/core"
	"github.com/motbey/mylms/core/favorite"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func clientConf(baseURL string) *core.Config {
	return &core.Config{
		Client: core.ClientConfig{
			APIBaseURL:     baseURL,
			RequestTimeout: 2 * time.Second,
		},
	}
}

func newTestGateway(t *testing.T, handler http.HandlerFunc) (*client.Gateway, *int) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	hub := client.NewHub()
	broadcasts := 0
	hub.Subscribe(func() { broadcasts++ })

	gw := client.NewGateway(clientConf(ts.URL), staticToken("tok-123"), hub, testLogger{t})
	return gw, &broadcasts
}

func TestGatewayList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the list in server order", func(t *testing.T) {
		var gotPath, gotAuth string
		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.Method + " " + r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"slug":"users","label":"Users","pos":0},{"slug":"courses","pos":1}]`))
		})

		favs, err := gw.List(ctx)
		if err != nil {
			t.Fatalf("List(): %v", err)
		}
		if gotPath != "GET /api/favorites" {
			t.Errorf("request = %q; want %q", gotPath, "GET /api/favorites")
		}
		if gotAuth != "Bearer tok-123" {
			t.Errorf("Authorization = %q; want %q", gotAuth, "Bearer tok-123")
		}
		if diff := cmp.Diff([]string{"users", "courses"}, favorite.Slugs(favs)); diff != "" {
			t.Errorf("slugs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("server failure", func(t *testing.T) {
		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		_, err := gw.List(ctx)
		if errors.Cause(err) != client.ErrFetchFailed {
			t.Errorf("List() error = %v; want cause %v", err, client.ErrFetchFailed)
		}
	})

	t.Run("network failure", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()
		gw := client.NewGateway(clientConf(ts.URL), staticToken(""), nil, testLogger{t})

		_, err := gw.List(ctx)
		if errors.Cause(err) != client.ErrFetchFailed {
			t.Errorf("List() error = %v; want cause %v", err, client.ErrFetchFailed)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		t.Cleanup(ts.Close)
		conf := clientConf(ts.URL)
		conf.Client.RequestTimeout = 20 * time.Millisecond
		gw := client.NewGateway(conf, staticToken(""), nil, testLogger{t})

		_, err := gw.List(ctx)
		if errors.Cause(err) != client.ErrFetchFailed {
			t.Errorf("List() error = %v; want cause %v", err, client.ErrFetchFailed)
		}
	})
}

func TestGatewayAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the pin and broadcasts", func(t *testing.T) {
		var gotPath string
		var gotBody map[string]string
		gw, broadcasts := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.Method + " " + r.URL.Path
			json.NewDecoder(r.Body).Decode(&gotBody)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"slug":"users","pos":0}`))
		})

		if err := gw.Add(ctx, "users", "Users"); err != nil {
			t.Fatalf("Add(): %v", err)
		}
		if gotPath != "POST /api/favorites" {
			t.Errorf("request = %q; want %q", gotPath, "POST /api/favorites")
		}
		want := map[string]string{"slug": "users", "label": "Users"}
		if diff := cmp.Diff(want, gotBody); diff != "" {
			t.Errorf("body mismatch (-want +got):\n%s", diff)
		}
		if *broadcasts != 1 {
			t.Errorf("broadcasts = %d; want 1", *broadcasts)
		}
	})

	t.Run("capacity conflict by code", func(t *testing.T) {
		gw, broadcasts := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error":"full up","code":"FAVORITES_LIMIT"}`))
		})

		err := gw.Add(ctx, "users", "")
		if errors.Cause(err) != client.ErrCapacityExceeded {
			t.Fatalf("Add() error = %v; want %v", err, client.ErrCapacityExceeded)
		}
		if !core.IsConflict(err, favorite.CodeLimitReached) {
			t.Errorf("error %v is not a %s conflict", err, favorite.CodeLimitReached)
		}
		if !strings.Contains(err.Error(), "remove one to add another") {
			t.Errorf("error %q misses the actionable message", err.Error())
		}
		if *broadcasts != 0 {
			t.Errorf("broadcasts = %d; want 0", *broadcasts)
		}
	})

	t.Run("capacity conflict by message marker", func(t *testing.T) {
		gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error":"FAVORITES_LIMIT: a user may pin at most 6 favorites"}`))
		})

		err := gw.Add(ctx, "users", "")
		if errors.Cause(err) != client.ErrCapacityExceeded {
			t.Errorf("Add() error = %v; want %v", err, client.ErrCapacityExceeded)
		}
	})

	t.Run("validation rejection", func(t *testing.T) {
		gw, broadcasts := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"slug":"already a favorite"}`))
		})

		err := gw.Add(ctx, "users", "")
		if errors.Cause(err) != client.ErrMutationFailed {
			t.Errorf("Add() error = %v; want cause %v", err, client.ErrMutationFailed)
		}
		if *broadcasts != 0 {
			t.Errorf("broadcasts = %d; want 0", *broadcasts)
		}
	})
}

func TestGatewayRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes by slug and broadcasts", func(t *testing.T) {
		var gotPath string
		gw, broadcasts := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.Method + " " + r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		})

		if err := gw.Remove(ctx, "users"); err != nil {
			t.Fatalf("Remove(): %v", err)
		}
		if gotPath != "DELETE /api/favorites/users" {
			t.Errorf("request = %q; want %q", gotPath, "DELETE /api/favorites/users")
		}
		if *broadcasts != 1 {
			t.Errorf("broadcasts = %d; want 1", *broadcasts)
		}
	})

	t.Run("server failure", func(t *testing.T) {
		gw, broadcasts := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		err := gw.Remove(ctx, "users")
		if errors.Cause(err) != client.ErrMutationFailed {
			t.Errorf("Remove() error = %v; want cause %v", err, client.ErrMutationFailed)
		}
		if *broadcasts != 0 {
			t.Errorf("broadcasts = %d; want 0", *broadcasts)
		}
	})
}

func TestGatewayReorder(t *testing.T) {
	ctx := context.Background()

	t.Run("puts the full order and broadcasts", func(t *testing.T) {
		var gotPath string
		var gotBody map[string][]string
		gw, broadcasts := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.Method + " " + r.URL.Path
			json.NewDecoder(r.Body).Decode(&gotBody)
			w.WriteHeader(http.StatusNoContent)
		})

		if err := gw.Reorder(ctx, []string{"courses", "users"}); err != nil {
			t.Fatalf("Reorder(): %v", err)
		}
		if gotPath != "PUT /api/favorites/order" {
			t.Errorf("request = %q; want %q", gotPath, "PUT /api/favorites/order")
		}
		want := map[string][]string{"order": {"courses", "users"}}
		if diff := cmp.Diff(want, gotBody); diff != "" {
			t.Errorf("body mismatch (-want +got):\n%s", diff)
		}
		if *broadcasts != 1 {
			t.Errorf("broadcasts = %d; want 1", *broadcasts)
		}
	})

	t.Run("rejection keeps the server message", func(t *testing.T) {
		gw, broadcasts := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"\"scorm\" is not a favorite"}`))
		})

		err := gw.Reorder(ctx, []string{"scorm"})
		if errors.Cause(err) != client.ErrMutationFailed {
			t.Fatalf("Reorder() error = %v; want cause %v", err, client.ErrMutationFailed)
		}
		if !strings.Contains(err.Error(), "scorm") {
			t.Errorf("error %q lost the server message", err.Error())
		}
		if *broadcasts != 0 {
			t.Errorf("broadcasts = %d; want 0", *broadcasts)
		}
	})
}
