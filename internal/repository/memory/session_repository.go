package memory

import (
	"sort"

	"settings-core/internal/entity"

	"github.com/patrickmn/go-cache"
)

// SessionRepository holds the active sessions of one account. Sessions never
// expire on their own; they leave only through Delete or DeleteWhere.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(cache.NoExpiration, 0)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session entity.ActiveSession) {
	r.cache.Set(session.Id, session, cache.NoExpiration)
}

func (r *SessionRepository) Get(sessionID string) (entity.ActiveSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(entity.ActiveSession), true
	}
	return entity.ActiveSession{}, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// DeleteWhere removes every session matching pred and returns how many went.
func (r *SessionRepository) DeleteWhere(pred func(entity.ActiveSession) bool) int {
	removed := 0
	for id, item := range r.cache.Items() {
		if pred(item.Object.(entity.ActiveSession)) {
			r.cache.Delete(id)
			removed++
		}
	}
	return removed
}

// List returns the current session first, then the rest by most recent
// activity.
func (r *SessionRepository) List() []entity.ActiveSession {
	items := r.cache.Items()
	sessions := make([]entity.ActiveSession, 0, len(items))
	for _, item := range items {
		sessions = append(sessions, item.Object.(entity.ActiveSession))
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].IsCurrent != sessions[j].IsCurrent {
			return sessions[i].IsCurrent
		}
		if !sessions[i].LastActive.Equal(sessions[j].LastActive) {
			return sessions[i].LastActive.After(sessions[j].LastActive)
		}
		return sessions[i].Id < sessions[j].Id
	})
	return sessions
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}

func (r *SessionRepository) Flush() {
	r.cache.Flush()
}
