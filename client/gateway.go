// Package client is the portal-side SDK for the favorites API: a
// Gateway over the remote store, a Hub broadcasting the
// favorites-changed signal, a shared State caching the canonical list
// and a Session owning the signed-in identity's token.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/motbey/mylms/core"
	"github.com/motbey/mylms/core/favorite"
)

var (
	// errors
	ErrFetchFailed    = errors.New("favorites could not be fetched")
	ErrMutationFailed = errors.New("favorites could not be updated")

	// ErrCapacityExceeded is returned by Add when the store rejects a pin
	// past favorite.MaxFavorites, whether the reply carries the conflict
	// code or only the message marker.
	ErrCapacityExceeded = core.NewConflictError(
		favorite.CodeLimitReached,
		fmt.Errorf("you already have %d favorites; remove one to add another", favorite.MaxFavorites),
	)
)

type (
	// TokenSource provides the bearer token attached to store calls. An
	// empty token means signed out; calls are then sent anonymously and
	// rejected by the store.
	TokenSource interface {
		Token() string
	}

	// GatewayInterface is the only path between the portal and the remote
	// favorites store.
	GatewayInterface interface {
		List(ctx context.Context) ([]favorite.Favorite, error)
		Add(ctx context.Context, slug, label string) error
		Remove(ctx context.Context, slug string) error
		Reorder(ctx context.Context, order []string) error
	}

	Gateway struct {
		baseURL string
		timeout time.Duration
		client  *http.Client
		tokens  TokenSource
		hub     *Hub
		logger  core.Logger
	}
)

var _ GatewayInterface = (*Gateway)(nil)

func NewGateway(conf *core.Config, tokens TokenSource, hub *Hub, logger core.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(conf.Client.APIBaseURL, "/"),
		timeout: conf.Client.RequestTimeout,
		client:  &http.Client{},
		tokens:  tokens,
		hub:     hub,
		logger:  logger,
	}
}

// List returns the caller's favorites in display order. A failure means
// "list unknown", never "list empty".
func (g *Gateway) List(ctx context.Context) ([]favorite.Favorite, error) {
	var favs []favorite.Favorite
	if err := g.do(ctx, http.MethodGet, "/api/favorites", nil, &favs); err != nil {
		return nil, errors.Wrap(ErrFetchFailed, err.Error())
	}
	return favs, nil
}

// Add pins slug at the end of the strip. label is a display snapshot
// taken from the tile registry at pin time.
func (g *Gateway) Add(ctx context.Context, slug, label string) error {
	data := favorite.NewFavorite{Slug: slug, Label: label}
	if err := g.do(ctx, http.MethodPost, "/api/favorites", data, nil); err != nil {
		return g.mutationError(err)
	}
	g.broadcast()
	return nil
}

// Remove unpins slug. The store treats an absent slug as a no-op, so
// Remove is safe to repeat.
func (g *Gateway) Remove(ctx context.Context, slug string) error {
	if err := g.do(ctx, http.MethodDelete, "/api/favorites/"+url.PathEscape(slug), nil, nil); err != nil {
		return g.mutationError(err)
	}
	g.broadcast()
	return nil
}

// Reorder submits the complete desired slug order, not a delta. The
// store rejects anything that is not an exact permutation of the
// caller's current favorites.
func (g *Gateway) Reorder(ctx context.Context, order []string) error {
	data := struct {
		Order []string `json:"order"`
	}{Order: order}
	if err := g.do(ctx, http.MethodPut, "/api/favorites/order", data, nil); err != nil {
		return g.mutationError(err)
	}
	g.broadcast()
	return nil
}

// broadcast is the single funnel for the favorites-changed signal so no
// mutating path can skip it.
func (g *Gateway) broadcast() {
	if g.hub != nil {
		g.hub.Broadcast()
	}
}

func (g *Gateway) mutationError(err error) error {
	if rerr, ok := errors.Cause(err).(*responseError); ok && rerr.capacity() {
		return ErrCapacityExceeded
	}
	return errors.Wrap(ErrMutationFailed, err.Error())
}

func (g *Gateway) do(ctx context.Context, method, path string, in, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	if g.tokens != nil {
		if token := g.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := g.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer res.Body.Close()

	g.logger.Debug(fmt.Sprintf("%s %s -> %d", method, path, res.StatusCode))

	if res.StatusCode >= http.StatusBadRequest {
		return decodeResponseError(res)
	}
	if out != nil {
		if err = json.NewDecoder(res.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decoding response body")
		}
	}
	return nil
}

// responseError is a non-2xx API reply.
type responseError struct {
	Status  int
	Code    string
	Message string
}

func (e *responseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server replied %d", e.Status)
	}
	return e.Message
}

// capacity reports whether the reply is the favorites-limit conflict,
// by code or by message marker.
func (e *responseError) capacity() bool {
	return e.Code == favorite.CodeLimitReached ||
		strings.Contains(e.Message, favorite.CodeLimitReached)
}

func decodeResponseError(res *http.Response) *responseError {
	rerr := &responseError{Status: res.StatusCode}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return rerr
	}

	var payload struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err = json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		rerr.Message = payload.Error
		rerr.Code = payload.Code
	} else {
		rerr.Message = strings.TrimSpace(string(data))
	}
	return rerr
}
