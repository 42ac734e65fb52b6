package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"

	"github.com/motbey/mylms/core"
)

var errLoginFailed = errors.New("login failed")

// Session owns the signed-in identity's API token. The token is cached
// on disk so portal restarts stay signed in; subscribers are told about
// every sign-in and sign-out transition.
type Session struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
	path    string
	logger  core.Logger

	mu    sync.Mutex
	token string

	subMu  sync.Mutex
	nextID int
	subs   []sessionSub
}

type sessionSub struct {
	id int
	fn func(signedIn bool)
}

var _ TokenSource = (*Session)(nil)

// NewSession loads any token cached at conf.Client.TokenPath.
func NewSession(conf *core.Config, logger core.Logger) *Session {
	s := &Session{
		baseURL: strings.TrimRight(conf.Client.APIBaseURL, "/"),
		timeout: conf.Client.RequestTimeout,
		client:  &http.Client{},
		path:    conf.Client.TokenPath,
		logger:  logger,
	}
	s.token = s.readToken()
	return s
}

// Login exchanges credentials for a token, caches it and notifies
// subscribers of the sign-in.
func (s *Session) Login(ctx context.Context, username, password string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := json.Marshal(struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password})
	if err != nil {
		return errors.Wrap(err, "encoding credentials")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/users/login", bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "calling login")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return errors.Wrap(errLoginFailed, decodeResponseError(res).Error())
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err = json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return errors.Wrap(err, "decoding login response")
	}
	if payload.Token == "" {
		return errLoginFailed
	}

	s.mu.Lock()
	s.token = payload.Token
	s.mu.Unlock()

	s.writeToken(payload.Token)
	s.notify(true)
	return nil
}

// Logout forgets the token and clears the cache. Calling it while
// signed out is a no-op.
func (s *Session) Logout() {
	s.mu.Lock()
	wasSignedIn := s.token != ""
	s.token = ""
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn(fmt.Sprintf("clearing cached token: %v", err))
	}
	if wasSignedIn {
		s.notify(false)
	}
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) SignedIn() bool {
	return s.Token() != ""
}

// Subscribe registers fn to run on every sign-in/sign-out transition.
func (s *Session) Subscribe(fn func(signedIn bool)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, sessionSub{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) notify(signedIn bool) {
	s.subMu.Lock()
	subs := make([]sessionSub, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(signedIn)
	}
}

func (s *Session) readToken() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn(fmt.Sprintf("reading cached token: %v", err))
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

// writeToken replaces the cache atomically so a crash can never leave a
// truncated token behind.
func (s *Session) writeToken(token string) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		s.logger.Warn(fmt.Sprintf("caching token: %v", err))
		return
	}
	if err := atomic.WriteFile(s.path, strings.NewReader(token)); err != nil {
		s.logger.Warn(fmt.Sprintf("caching token: %v", err))
	}
}
