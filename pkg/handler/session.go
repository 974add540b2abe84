package handler

import "github.com/spf13/cast"

const (
	sessionKeyDriverID = "driver_id"
	sessionKeyVisits   = "num_visits"
)

// SessionStore is the per-browser state the handlers read and write.
// sessions.Session satisfies it.
type SessionStore interface {
	Get(key interface{}) interface{}
	Set(key interface{}, val interface{})
	Delete(key interface{})
	Clear()
	Save() error
}

// nextVisit bumps the session's visit counter and returns the new value;
// the first visit is 1.
func nextVisit(s SessionStore) (int, error) {
	n := cast.ToInt(s.Get(sessionKeyVisits)) + 1
	s.Set(sessionKeyVisits, n)
	return n, s.Save()
}

func sessionDriverID(s SessionStore) int64 {
	return cast.ToInt64(s.Get(sessionKeyDriverID))
}

// login starts a fresh session for the driver. The visit counter of an
// earlier anonymous session is not carried over.
func login(s SessionStore, driverID int64) error {
	s.Clear()
	s.Set(sessionKeyDriverID, driverID)
	return s.Save()
}

func logout(s SessionStore) error {
	s.Clear()
	return s.Save()
}
