package handler

import "testing"

type fakeSession struct {
	values map[interface{}]interface{}
	saves  int
}

func newFakeSession() *fakeSession {
	return &fakeSession{values: map[interface{}]interface{}{}}
}

func (s *fakeSession) Get(key interface{}) interface{}      { return s.values[key] }
func (s *fakeSession) Set(key interface{}, val interface{}) { s.values[key] = val }
func (s *fakeSession) Delete(key interface{})               { delete(s.values, key) }
func (s *fakeSession) Clear()                               { s.values = map[interface{}]interface{}{} }
func (s *fakeSession) Save() error                          { s.saves++; return nil }

func TestNextVisit(t *testing.T) {
	s := newFakeSession()
	for want := 1; want <= 3; want++ {
		got, err := nextVisit(s)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("visit = %d, want %d", got, want)
		}
	}
	if s.saves != 3 {
		t.Fatalf("saves = %d, want 3", s.saves)
	}
}

func TestLoginResetsSession(t *testing.T) {
	s := newFakeSession()
	s.Set(sessionKeyVisits, 7)

	if err := login(s, 42); err != nil {
		t.Fatal(err)
	}
	if got := sessionDriverID(s); got != 42 {
		t.Fatalf("driver id = %d", got)
	}
	if s.Get(sessionKeyVisits) != nil {
		t.Fatal("visit counter survived login")
	}

	if err := logout(s); err != nil {
		t.Fatal(err)
	}
	if got := sessionDriverID(s); got != 0 {
		t.Fatalf("driver id after logout = %d", got)
	}
}

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                    "/",
		"/cars/":              "/cars/",
		"/cars/?page=2":       "/cars/?page=2",
		"//evil.example.com":  "/",
		"/\\evil.example.com": "/",
		"https://example.com": "/",
	}
	for in, want := range cases {
		if got := safeNext(in); got != want {
			t.Errorf("safeNext(%q) = %q, want %q", in, got, want)
		}
	}
}
