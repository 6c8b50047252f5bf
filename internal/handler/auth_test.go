package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/repfit/repfit-go/internal/crypto"
	"github.com/repfit/repfit-go/internal/repository"
	"github.com/repfit/repfit-go/internal/service"
	"github.com/repfit/repfit-go/internal/token"
	"github.com/repfit/repfit-go/model"
)

// fakeUserStore backs the auth handlers with an in-memory credential store.
type fakeUserStore struct {
	nextID int64
	users  []*model.User
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	for _, u := range s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repository.ErrDuplicateUser
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.users = append(s.users, user)
	return nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) UpdateLastLogin(context.Context, int64, time.Time) error { return nil }

func (s *fakeUserStore) UpdateSettings(context.Context, int64, model.UserSettings) error { return nil }

func newAuthHandler() *AuthHandler {
	issuer := token.NewIssuer("test-access", "test-refresh", 15*time.Minute, 7*24*time.Hour)
	svc := service.NewAuthService(&fakeUserStore{}, issuer, token.NewVerifier("test-refresh"), crypto.DefaultCost)
	return NewAuthHandler(svc)
}

func postJSON(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestLoginFailureBodiesAreIdentical(t *testing.T) {
	// An attacker comparing responses must not learn whether the identifier
	// or the password was wrong.
	h := newAuthHandler()

	reg := postJSON(h.HandleRegister, `{"username":"ana_01","email":"ana@x.com","password":"Sunshine1"}`)
	if reg.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201; body: %s", reg.Code, reg.Body)
	}

	unknown := postJSON(h.HandleLogin, `{"identifier":"ghost@x.com","password":"Sunshine1"}`)
	wrongPass := postJSON(h.HandleLogin, `{"identifier":"ana@x.com","password":"WrongPass1"}`)

	if unknown.Code != http.StatusUnauthorized || wrongPass.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = (%d, %d), want (401, 401)", unknown.Code, wrongPass.Code)
	}
	if !bytes.Equal(unknown.Body.Bytes(), wrongPass.Body.Bytes()) {
		t.Errorf("401 bodies differ:\nunknown identifier: %s\nwrong password:     %s",
			unknown.Body, wrongPass.Body)
	}
}

func TestAuthResponsesCarryNoPasswordMaterial(t *testing.T) {
	h := newAuthHandler()
	const password = "Sunshine1"

	reg := postJSON(h.HandleRegister, `{"username":"ana_01","email":"ana@x.com","password":"`+password+`"}`)
	if reg.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201; body: %s", reg.Code, reg.Body)
	}

	login := postJSON(h.HandleLogin, `{"identifier":"ana@x.com","password":"`+password+`"}`)
	if login.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200; body: %s", login.Code, login.Body)
	}

	for name, body := range map[string]string{"register": reg.Body.String(), "login": login.Body.String()} {
		if strings.Contains(body, password) {
			t.Errorf("%s body contains the plaintext password", name)
		}
		// bcrypt hashes start with a $2 prefix that base64url tokens can't contain.
		if strings.Contains(body, "$2") {
			t.Errorf("%s body contains a password hash", name)
		}
		if strings.Contains(body, "password") {
			t.Errorf("%s body contains a password field", name)
		}
	}
}

func TestRegisterDuplicateUser(t *testing.T) {
	h := newAuthHandler()

	first := postJSON(h.HandleRegister, `{"username":"ana_01","email":"ana@x.com","password":"Sunshine1"}`)
	if first.Code != http.StatusCreated {
		t.Fatalf("first register status = %d, want 201", first.Code)
	}

	dup := postJSON(h.HandleRegister, `{"username":"other_99","email":"ana@x.com","password":"Sunshine1"}`)
	if dup.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", dup.Code)
	}
	if !strings.Contains(dup.Body.String(), codeDuplicateUser) {
		t.Errorf("409 body = %s, want code %s", dup.Body, codeDuplicateUser)
	}
}
