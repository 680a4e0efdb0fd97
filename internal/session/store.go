package session

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/AdityaHandrian/kelompokfprsbp/internal/clients"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/domain"
)

// ErrSuperseded is returned from SelectUser when a newer selection started
// before this one resolved. The resolved profile is discarded; the newest
// started request wins regardless of completion order.
var ErrSuperseded = errors.New("user selection superseded by a newer request")

// Session is a read-only snapshot of the current identity state. Profile is
// non-nil only when it belongs to the last successfully fetched user id;
// Error non-empty with a non-nil CurrentUserID means "authenticated but
// profile load failed".
type Session struct {
	CurrentUserID   *int64              `json:"current_user_id"`
	Profile         *domain.UserProfile `json:"profile"`
	IsLoading       bool                `json:"is_loading"`
	Error           string              `json:"error,omitempty"`
	IsAuthenticated bool                `json:"is_authenticated"`
}

// Store owns the demo's "current user" identity: the selected id, its cached
// profile and the persisted slot. Pages read it through Snapshot and mutate
// it only through Initialize/SelectUser/Logout.
type Store struct {
	client  clients.RecsysClient
	storage UserIDStorage
	log     *logrus.Logger

	mu        sync.Mutex
	userID    *int64
	profile   *domain.UserProfile
	loading   bool
	lastError string
	selectGen uint64
}

func NewStore(client clients.RecsysClient, storage UserIDStorage, logger *logrus.Logger) *Store {
	return &Store{
		client:  client,
		storage: storage,
		log:     logger,
	}
}

// Initialize restores a persisted user id and re-fetches its profile. A
// failed fetch keeps the id set with the error recorded, so the UI can
// distinguish "authenticated but profile load failed" from "not
// authenticated".
func (s *Store) Initialize(ctx context.Context) {
	storedID, err := s.storage.Load()
	if err != nil {
		s.log.Warnf("Session: Failed to read persisted user id: %v", err)
		return
	}
	if storedID == nil {
		s.log.Info("Session: No persisted user, starting unauthenticated")
		return
	}

	s.mu.Lock()
	s.selectGen++
	gen := s.selectGen
	s.userID = storedID
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	s.log.Infof("Session: Restoring user %d from persisted state", *storedID)

	profile, err := s.client.GetUserProfile(ctx, *storedID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.selectGen {
		return
	}
	s.loading = false
	if err != nil {
		s.log.Warnf("Session: Profile fetch failed for restored user %d: %v", *storedID, err)
		s.lastError = err.Error()
		return
	}
	s.profile = profile
}

// SelectUser fetches the profile for id and, only on success, commits
// id+profile and persists the id. On failure the prior session state is left
// untouched and the error is returned for inline display.
func (s *Store) SelectUser(ctx context.Context, id int64) (*domain.UserProfile, error) {
	s.mu.Lock()
	s.selectGen++
	gen := s.selectGen
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	s.log.Infof("Session: Selecting user %d", id)

	profile, err := s.client.GetUserProfile(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.selectGen {
		s.log.Infof("Session: Discarding stale selection result for user %d", id)
		return nil, ErrSuperseded
	}

	s.loading = false
	if err != nil {
		s.lastError = err.Error()
		s.log.Warnf("Session: Failed to select user %d: %v", id, err)
		return nil, err
	}

	s.userID = &id
	s.profile = profile
	if perr := s.storage.Save(id); perr != nil {
		// state committed; persistence failure only costs the next restart
		s.log.Warnf("Session: Failed to persist user id %d: %v", id, perr)
	}

	s.log.Infof("Session: User %d selected", id)
	return profile, nil
}

// Logout clears the id, the cached profile and the persisted slot. It never
// fails; a storage error is logged and the in-memory state still clears.
func (s *Store) Logout() {
	s.mu.Lock()
	s.selectGen++
	s.userID = nil
	s.profile = nil
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		s.log.Warnf("Session: Failed to clear persisted user id: %v", err)
	}
	s.log.Info("Session: Logged out")
}

// IsAuthenticated reports whether a user id is selected, independent of
// whether its profile loaded.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID != nil
}

// CurrentUserID returns the selected id, or 0 and false when none is set.
func (s *Store) CurrentUserID() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == nil {
		return 0, false
	}
	return *s.userID, true
}

// Snapshot returns a copy of the session state for rendering.
func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Session{
		Profile:         s.profile,
		IsLoading:       s.loading,
		Error:           s.lastError,
		IsAuthenticated: s.userID != nil,
	}
	if s.userID != nil {
		id := *s.userID
		snap.CurrentUserID = &id
	}
	return snap
}
