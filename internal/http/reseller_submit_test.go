package handlers_test

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func resellerForm(company string, password, confirm string) string {
	v := url.Values{}
	v.Set("companyName", company)
	v.Set("contactPerson", "Pat Smith")
	v.Set("email", "pat@gemstone.test")
	v.Set("phone", "+1 555 0199")
	v.Set("businessType", "retail-store")
	v.Set("password", password)
	v.Set("confirmPassword", confirm)
	return v.Encode()
}

func TestResellerPasswordMismatchBlocksBeforeWrite(t *testing.T) {
	app, db := newApp(t)

	tok := csrfToken(t, app, "/reseller-application")
	resp, err := postForm(app, "/reseller-application", tok,
		resellerForm("Gem & Stone Co", "S3cretPass", "different"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 on mismatch, got %d", resp.StatusCode)
	}

	// Nothing reached the database: no application, no account.
	var apps int
	if err := db.Get(&apps, `SELECT COUNT(*) FROM reseller_applications`); err != nil {
		t.Fatal(err)
	}
	if apps != 0 {
		t.Fatalf("application was written despite mismatch: %d rows", apps)
	}
	var users int
	if err := db.Get(&users, `SELECT COUNT(*) FROM users WHERE email='pat@gemstone.test'`); err != nil {
		t.Fatal(err)
	}
	if users != 0 {
		t.Fatalf("account was created despite mismatch")
	}
}

func TestResellerSubmitCreatesPendingApplication(t *testing.T) {
	app, db := newApp(t)

	tok := csrfToken(t, app, "/reseller-application")
	resp, err := postForm(app, "/reseller-application", tok,
		resellerForm("Gem & Stone Co", "S3cretPass", "S3cretPass"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Gem &amp; Stone Co") {
		t.Fatalf("success page should name the company; body=%s", body)
	}

	var status string
	if err := db.Get(&status, `SELECT status FROM reseller_applications WHERE company_name='Gem & Stone Co'`); err != nil {
		t.Fatal(err)
	}
	if status != "pending" {
		t.Fatalf("want pending, got %s", status)
	}
}
