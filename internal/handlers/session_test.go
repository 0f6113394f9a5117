package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionTestApp() *fiber.App {
	app := fiber.New()
	app.Use(SessionMiddleware())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(OwnerID(c).String())
	})
	return app
}

func TestSessionMiddlewareIssuesCookie(t *testing.T) {
	app := newSessionTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var issued string
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName {
			issued = cookie.Value
			assert.True(t, cookie.HttpOnly)
		}
	}

	require.NotEmpty(t, issued, "first request must receive a session cookie")
	_, err = uuid.Parse(issued)
	assert.NoError(t, err, "cookie value is a uuid")
}

func TestSessionMiddlewareReusesExistingIdentity(t *testing.T) {
	app := newSessionTestApp()

	ownerID := uuid.New()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: ownerID.String()})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, ownerID.String(), string(body))
}

func TestSessionMiddlewareReplacesGarbageCookie(t *testing.T) {
	app := newSessionTestApp()

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "not-a-uuid"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var reissued string
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName {
			reissued = cookie.Value
		}
	}

	require.NotEmpty(t, reissued, "garbage cookies are replaced")
	_, err = uuid.Parse(reissued)
	assert.NoError(t, err)
}
