package middleware

import (
	"context"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-recovery/errors"
	"github.com/johnquangdev/meeting-recovery/pkg/jwt"
)

type stubAuthenticator struct {
	id    uuid.UUID
	err   error
	token string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (uuid.UUID, error) {
	s.token = token
	return s.id, s.err
}

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func appErrorStatus(t *testing.T, err error) int {
	t.Helper()
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T %v", err, err)
	}
	return appErr.HTTPCode
}

func TestEchoAuth_BearerAndCookie(t *testing.T) {
	id := uuid.New()
	auth := &stubAuthenticator{id: id}
	var seen uuid.UUID
	h := EchoAuth(auth)(func(c echo.Context) error {
		seen, _ = UserID(c)
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer abc")
	c, _ := newContext(req)
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != id || auth.token != "abc" {
		t.Fatalf("expected user %s with token abc, got %s %q", id, seen, auth.token)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "from-cookie"})
	c, _ = newContext(req)
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.token != "from-cookie" {
		t.Fatalf("expected cookie token, got %q", auth.token)
	}
}

func TestEchoAuth_Rejections(t *testing.T) {
	next := func(c echo.Context) error {
		t.Fatalf("next must not run")
		return nil
	}

	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/api/user", nil))
	if code := appErrorStatus(t, EchoAuth(&stubAuthenticator{})(next)(c)); code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401 got %d", code)
	}

	cases := map[error]int{
		jwt.ErrTokenExpired:        http.StatusUnauthorized,
		jwt.ErrTokenInvalid:        http.StatusUnauthorized,
		stdErrors.New("db is down"): http.StatusInternalServerError,
	}
	for cause, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer t")
		c, _ := newContext(req)
		if code := appErrorStatus(t, EchoAuth(&stubAuthenticator{err: cause})(next)(c)); code != want {
			t.Fatalf("%v: expected %d got %d", cause, want, code)
		}
	}
}

func TestUserRateLimiter(t *testing.T) {
	mw, err := NewUserRateLimiter("2-M", nil, nil)
	if err != nil {
		t.Fatalf("NewUserRateLimiter error: %v", err)
	}
	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	alice, bob := uuid.New(), uuid.New()
	call := func(id uuid.UUID) (*httptest.ResponseRecorder, error) {
		c, rec := newContext(httptest.NewRequest(http.MethodPost, "/api/analyze", nil))
		c.Set(UserIDKey, id)
		err := h(c)
		return rec, err
	}

	for i := 0; i < 2; i++ {
		if _, err := call(alice); err != nil {
			t.Fatalf("request %d: unexpected error %v", i, err)
		}
	}
	rec, err := call(alice)
	if code := appErrorStatus(t, err); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", code)
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("expected remaining 0, got %q", rec.Header().Get("X-RateLimit-Remaining"))
	}

	if _, err := call(bob); err != nil {
		t.Fatalf("limits must be per user: %v", err)
	}
}

func TestUserRateLimiter_DisabledAndInvalid(t *testing.T) {
	if _, err := NewUserRateLimiter("ten per minute", nil, nil); err == nil {
		t.Fatalf("expected invalid rate to fail")
	}
	mw, err := NewUserRateLimiter("", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	called := false
	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
	_ = mw(func(echo.Context) error { called = true; return nil })(c)
	if !called {
		t.Fatalf("disabled limiter must pass through")
	}
}
