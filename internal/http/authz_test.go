package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lumina/internal/repos"
)

func TestAdminGuard(t *testing.T) {
	app, db := newApp(t)
	userRepo := repos.NewUserRepo(db)

	// Anonymous -> sent to the admin login
	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect for anonymous, got %d", resp.StatusCode)
	}

	// Approved wholesale account is still not an admin -> 403
	_ = userRepo.BindSession("sid-b2b", "u-abc")
	reqB2B := httptest.NewRequest("GET", "/admin", nil)
	reqB2B.AddCookie(&http.Cookie{Name: "sid", Value: "sid-b2b"})
	respB2B, err := app.Test(reqB2B)
	if err != nil {
		t.Fatal(err)
	}
	if respB2B.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for b2b user, got %d", respB2B.StatusCode)
	}

	// Admin -> 200
	_ = userRepo.BindSession("sid-admin", "u-admin")
	reqAdmin := httptest.NewRequest("GET", "/admin", nil)
	reqAdmin.AddCookie(&http.Cookie{Name: "sid", Value: "sid-admin"})
	respAdmin, err := app.Test(reqAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if respAdmin.StatusCode != http.StatusOK {
		t.Fatalf("admin expected 200, got %d", respAdmin.StatusCode)
	}
}

func TestB2BGuard(t *testing.T) {
	app, db := newApp(t)
	userRepo := repos.NewUserRepo(db)

	// Anonymous -> B2B login
	resp, err := app.Test(httptest.NewRequest("GET", "/b2b-dashboard", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect for anonymous, got %d", resp.StatusCode)
	}

	// Admin account is not a wholesale buyer -> redirected too
	_ = userRepo.BindSession("sid-admin", "u-admin")
	reqAdmin := httptest.NewRequest("GET", "/b2b-dashboard", nil)
	reqAdmin.AddCookie(&http.Cookie{Name: "sid", Value: "sid-admin"})
	respAdmin, err := app.Test(reqAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if respAdmin.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect for admin, got %d", respAdmin.StatusCode)
	}

	// Approved B2B -> 200
	_ = userRepo.BindSession("sid-b2b", "u-abc")
	reqB2B := httptest.NewRequest("GET", "/b2b-dashboard", nil)
	reqB2B.AddCookie(&http.Cookie{Name: "sid", Value: "sid-b2b"})
	respB2B, err := app.Test(reqB2B)
	if err != nil {
		t.Fatal(err)
	}
	if respB2B.StatusCode != http.StatusOK {
		t.Fatalf("b2b expected 200, got %d", respB2B.StatusCode)
	}
}

func TestB2BLoginRejectsRetailAccounts(t *testing.T) {
	app, db := newApp(t)

	// Seed a plain customer account via the auth service path used in prod.
	userRepo := repos.NewUserRepo(db)
	_ = userRepo.Create("u-plain", "plain@example.com", "Plain",
		"$2a$12$invalidhashinvalidhashinvalidhashinvalidhashinvalid00", "CUSTOMER")

	tok := csrfToken(t, app, "/b2b-login")
	resp, err := postForm(app, "/b2b-login", tok, "email=plain@example.com&password=whatever")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for retail account, got %d", resp.StatusCode)
	}
}
