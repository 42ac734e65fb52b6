package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/motbey/mylms/client"
	"github.com/motbey/mylms/core/favorite"
)

type fakeGateway struct {
	mu         sync.Mutex
	rows       []favorite.Favorite
	listCalls  int
	failList   bool
	failRemove bool
}

var _ client.GatewayInterface = (*fakeGateway)(nil)

func (f *fakeGateway) List(ctx context.Context) ([]favorite.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.failList {
		return nil, errors.New("store unavailable")
	}
	rows := make([]favorite.Favorite, len(f.rows))
	copy(rows, f.rows)
	return rows, nil
}

func (f *fakeGateway) Add(ctx context.Context, slug, label string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, favorite.Favorite{Slug: slug, Label: label, Pos: len(f.rows)})
	return nil
}

func (f *fakeGateway) Remove(ctx context.Context, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRemove {
		return errors.New("store unavailable")
	}
	rows := f.rows[:0]
	for _, row := range f.rows {
		if row.Slug != slug {
			row.Pos = len(rows)
			rows = append(rows, row)
		}
	}
	f.rows = rows
	return nil
}

func (f *fakeGateway) Reorder(ctx context.Context, order []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	bySlug := make(map[string]favorite.Favorite, len(f.rows))
	for _, row := range f.rows {
		bySlug[row.Slug] = row
	}
	rows := make([]favorite.Favorite, 0, len(order))
	for i, slug := range order {
		row := bySlug[slug]
		row.Pos = i
		rows = append(rows, row)
	}
	f.rows = rows
	return nil
}

func (f *fakeGateway) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func rowsOf(slugs ...string) []favorite.Favorite {
	rows := make([]favorite.Favorite, len(slugs))
	for i, slug := range slugs {
		rows[i] = favorite.Favorite{Slug: slug, Pos: i}
	}
	return rows
}

func checkStateSlugs(t *testing.T, st *client.State, want []string) {
	t.Helper()
	if diff := cmp.Diff(want, favorite.Slugs(st.Favorites())); diff != "" {
		t.Errorf("state slugs mismatch (-want +got):\n%s", diff)
	}
}

func TestStateRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("starts loading and settles on first refresh", func(t *testing.T) {
		fake := &fakeGateway{rows: rowsOf("users", "courses")}
		st := client.NewState(fake, nil, nil, testLogger{t})

		if !st.Loading() {
			t.Error("Loading() = false before the first refresh")
		}
		st.Refresh(ctx)

		if st.Loading() {
			t.Error("Loading() = true after the first refresh")
		}
		checkStateSlugs(t, st, []string{"users", "courses"})
		if !st.IsFavorite("users") {
			t.Error(`IsFavorite("users") = false`)
		}
		if st.IsFavorite("groups") {
			t.Error(`IsFavorite("groups") = true`)
		}
	})

	t.Run("failed refresh keeps the previous list", func(t *testing.T) {
		fake := &fakeGateway{rows: rowsOf("users")}
		st := client.NewState(fake, nil, nil, testLogger{t})
		st.Refresh(ctx)

		fake.failList = true
		st.Refresh(ctx)

		if st.Loading() {
			t.Error("Loading() = true after a failed refresh")
		}
		checkStateSlugs(t, st, []string{"users"})
		if !st.IsFavorite("users") {
			t.Error(`IsFavorite("users") = false after a failed refresh`)
		}
	})

	t.Run("failed first refresh still ends loading", func(t *testing.T) {
		fake := &fakeGateway{failList: true}
		st := client.NewState(fake, nil, nil, testLogger{t})
		st.Refresh(ctx)

		if st.Loading() {
			t.Error("Loading() = true after the first refresh failed")
		}
		checkStateSlugs(t, st, []string{})
	})

	t.Run("notifies subscribers after every refresh", func(t *testing.T) {
		fake := &fakeGateway{rows: rowsOf("users")}
		st := client.NewState(fake, nil, nil, testLogger{t})

		var notified int
		unsubscribe := st.Subscribe(func() { notified++ })
		st.Refresh(ctx)
		st.Refresh(ctx)
		unsubscribe()
		st.Refresh(ctx)

		if notified != 2 {
			t.Errorf("subscriber notified %d times; want 2", notified)
		}
	})
}

func TestStateBroadcastReconciliation(t *testing.T) {
	ctx := context.Background()

	t.Run("hub broadcast re-fetches the list", func(t *testing.T) {
		fake := &fakeGateway{rows: rowsOf("users", "courses")}
		hub := client.NewHub()
		st := client.NewState(fake, hub, nil, testLogger{t})
		defer st.Close()
		st.Refresh(ctx)

		var notified int
		st.Subscribe(func() { notified++ })

		// a mutation lands elsewhere, then the hub fires
		if err := fake.Remove(ctx, "courses"); err != nil {
			t.Fatalf("Remove(): %v", err)
		}
		hub.Broadcast()

		checkStateSlugs(t, st, []string{"users"})
		if st.IsFavorite("courses") {
			t.Error(`IsFavorite("courses") = true after reconciliation`)
		}
		if notified != 1 {
			t.Errorf("subscriber notified %d times; want 1", notified)
		}
	})

	t.Run("close releases the hub subscription", func(t *testing.T) {
		fake := &fakeGateway{}
		hub := client.NewHub()
		st := client.NewState(fake, hub, nil, testLogger{t})
		st.Refresh(ctx)
		before := fake.calls()

		st.Close()
		hub.Broadcast()

		if got := fake.calls(); got != before {
			t.Errorf("list calls = %d after Close; want %d", got, before)
		}
	})
}

func TestStateUnfavourite(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates to the gateway", func(t *testing.T) {
		fake := &fakeGateway{rows: rowsOf("users", "courses")}
		st := client.NewState(fake, nil, nil, testLogger{t})
		st.Refresh(ctx)

		st.Unfavourite(ctx, "courses")

		// the cache converges on the next refresh, not before
		checkStateSlugs(t, st, []string{"users", "courses"})
		st.Refresh(ctx)
		checkStateSlugs(t, st, []string{"users"})
	})

	t.Run("swallows failures", func(t *testing.T) {
		fake := &fakeGateway{rows: rowsOf("users"), failRemove: true}
		st := client.NewState(fake, nil, nil, testLogger{t})
		st.Refresh(ctx)

		st.Unfavourite(ctx, "users")
		checkStateSlugs(t, st, []string{"users"})
	})
}

func TestStateSessionTransitions(t *testing.T) {
	t.Run("sign-in refreshes", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"token":"tok-123"}`))
		}))
		t.Cleanup(ts.Close)

		conf := clientConf(ts.URL)
		conf.Client.TokenPath = filepath.Join(t.TempDir(), "token")
		session := client.NewSession(conf, testLogger{t})

		fake := &fakeGateway{rows: rowsOf("users")}
		st := client.NewState(fake, nil, session, testLogger{t})
		defer st.Close()

		if err := session.Login(context.Background(), "admin", "s3cr3t"); err != nil {
			t.Fatalf("Login(): %v", err)
		}
		if got := fake.calls(); got != 1 {
			t.Errorf("list calls = %d after sign-in; want 1", got)
		}
		checkStateSlugs(t, st, []string{"users"})
	})

	t.Run("sign-out refreshes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token")
		if err := os.WriteFile(path, []byte("tok-123"), 0600); err != nil {
			t.Fatalf("seeding token: %v", err)
		}
		conf := clientConf("http://localhost:0")
		conf.Client.TokenPath = path
		session := client.NewSession(conf, testLogger{t})

		fake := &fakeGateway{}
		st := client.NewState(fake, nil, session, testLogger{t})
		defer st.Close()

		session.Logout()
		if got := fake.calls(); got != 1 {
			t.Errorf("list calls = %d after sign-out; want 1", got)
		}
	})
}
