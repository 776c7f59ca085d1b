package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"user-session-backend/internal/identity/service"
	"user-session-backend/internal/logging"
	userdomain "user-session-backend/internal/user/domain"
)

type stubValidator struct {
	user *userdomain.User
	err  error
	got  string
}

func (v *stubValidator) Validate(ctx context.Context, sessionID string) (*userdomain.User, error) {
	v.got = sessionID
	return v.user, v.err
}

func authTestApp(v SessionValidator) (*fiber.App, *bool) {
	reached := false
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/protected", SessionAuth(v, "sessionId", logging.NopLogger{}), func(c *fiber.Ctx) error {
		reached = true
		if _, ok := c.Locals("user").(*userdomain.User); !ok {
			return fiber.NewError(fiber.StatusInternalServerError, "user missing from locals")
		}
		return c.SendStatus(fiber.StatusOK)
	})
	return app, &reached
}

func TestSessionAuth_ValidCookie(t *testing.T) {
	v := &stubValidator{user: &userdomain.User{ID: 7, Email: "user@example.com"}}
	app, reached := authTestApp(v)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "sessionId", Value: "abc"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if !*reached {
		t.Error("handler should run for a valid session")
	}
	if v.got != "abc" {
		t.Errorf("validator saw session id %q, want %q", v.got, "abc")
	}
}

func TestSessionAuth_Rejections(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", service.ErrUnauthenticated, http.StatusUnauthorized},
		{"expired", service.ErrSessionExpired, http.StatusUnauthorized},
		{"store unavailable", service.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, reached := authTestApp(&stubValidator{err: tt.err})
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.AddCookie(&http.Cookie{Name: "sessionId", Value: "abc"})
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			if *reached {
				t.Error("handler must not run when validation fails")
			}
		})
	}
}

func TestSessionAuth_MissingCookiePassesEmptyID(t *testing.T) {
	v := &stubValidator{err: service.ErrUnauthenticated, got: "sentinel"}
	app, _ := authTestApp(v)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	if v.got != "" {
		t.Errorf("validator saw session id %q, want empty", v.got)
	}
}
