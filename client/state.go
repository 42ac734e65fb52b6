package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/motbey/mylms/core"
	"github.com/motbey/mylms/core/favorite"
)

// State is the process-wide cache of the favorites list. It is the only
// copy consumers read; render surfaces derive from it instead of
// fetching on their own. It refreshes itself on the Hub's
// favorites-changed broadcast and on session sign-in/sign-out
// transitions.
type State struct {
	gateway GatewayInterface
	logger  core.Logger

	mu        sync.RWMutex
	favorites []favorite.Favorite
	slugs     map[string]struct{}
	loading   bool

	subMu  sync.Mutex
	nextID int
	subs   []stateSub

	unsubHub     func()
	unsubSession func()
}

type stateSub struct {
	id int
	fn func()
}

// NewState builds the cache in its loading phase; the first Refresh
// ends it. hub and session may be nil when the caller wires those
// signals itself.
func NewState(gateway GatewayInterface, hub *Hub, session *Session, logger core.Logger) *State {
	st := &State{
		gateway: gateway,
		logger:  logger,
		slugs:   make(map[string]struct{}),
		loading: true,
	}
	if hub != nil {
		st.unsubHub = hub.Subscribe(func() { st.Refresh(context.Background()) })
	}
	if session != nil {
		st.unsubSession = session.Subscribe(func(bool) { st.Refresh(context.Background()) })
	}
	return st
}

// Refresh replaces the cached list from the store. A failed refresh
// keeps the previous list, logs and returns; it never retries and never
// propagates the error.
func (st *State) Refresh(ctx context.Context) {
	favs, err := st.gateway.List(ctx)

	st.mu.Lock()
	st.loading = false
	if err == nil {
		st.favorites = favs
		st.slugs = make(map[string]struct{}, len(favs))
		for _, fav := range favs {
			st.slugs[fav.Slug] = struct{}{}
		}
	}
	st.mu.Unlock()

	if err != nil {
		st.logger.Error(fmt.Sprintf("refreshing favorites: %v", err), err)
	}
	st.notify()
}

// Favorites returns a copy of the canonical list in display order.
func (st *State) Favorites() []favorite.Favorite {
	st.mu.RLock()
	defer st.mu.RUnlock()
	favs := make([]favorite.Favorite, len(st.favorites))
	copy(favs, st.favorites)
	return favs
}

// IsFavorite reports whether slug is pinned, without scanning the list.
func (st *State) IsFavorite(slug string) bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	_, ok := st.slugs[slug]
	return ok
}

// Loading reports whether the first refresh is still outstanding.
func (st *State) Loading() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.loading
}

// Unfavourite unpins slug through the Gateway, swallowing any failure;
// consumers converge again on the next broadcast-triggered refresh.
func (st *State) Unfavourite(ctx context.Context, slug string) {
	if err := st.gateway.Remove(ctx, slug); err != nil {
		st.logger.Error(fmt.Sprintf("removing favorite %q: %v", slug, err), err)
	}
}

// Subscribe registers fn to run after every refresh, successful or not.
// Subscribers run synchronously in subscription order.
func (st *State) Subscribe(fn func()) (unsubscribe func()) {
	st.subMu.Lock()
	defer st.subMu.Unlock()

	st.nextID++
	id := st.nextID
	st.subs = append(st.subs, stateSub{id: id, fn: fn})

	return func() {
		st.subMu.Lock()
		defer st.subMu.Unlock()
		for i, sub := range st.subs {
			if sub.id == id {
				st.subs = append(st.subs[:i], st.subs[i+1:]...)
				return
			}
		}
	}
}

func (st *State) notify() {
	st.subMu.Lock()
	subs := make([]stateSub, len(st.subs))
	copy(subs, st.subs)
	st.subMu.Unlock()

	for _, sub := range subs {
		sub.fn()
	}
}

// Close releases the Hub and Session subscriptions.
func (st *State) Close() {
	if st.unsubHub != nil {
		st.unsubHub()
	}
	if st.unsubSession != nil {
		st.unsubSession()
	}
}
