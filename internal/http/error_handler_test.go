package handlers_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// A handler failure must surface the generic apology page, never the
// underlying error text.
func TestServerErrorsStayGeneric(t *testing.T) {
	app, _ := newApp(t)
	app.Get("/exploding", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError,
			"sqlite: database is locked (/var/lib/lumina.db)")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/exploding", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if !strings.Contains(s, "Something went wrong") {
		t.Fatalf("generic message missing; body=%s", s)
	}
	for _, leak := range []string{"sqlite", "database is locked", "/var/lib"} {
		if strings.Contains(s, leak) {
			t.Fatalf("error detail %q leaked to the response; body=%s", leak, s)
		}
	}
}
