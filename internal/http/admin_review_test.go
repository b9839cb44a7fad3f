package handlers_test

import (
	"net/http"
	"testing"

	"lumina/internal/repos"
)

// Approving an application from the admin screen promotes the applicant.
func TestAdminApprovesApplication(t *testing.T) {
	app, db := newApp(t)
	userRepo := repos.NewUserRepo(db)
	_ = userRepo.BindSession("sid-admin", "u-admin")

	// File an application as an anonymous visitor.
	tok := csrfToken(t, app, "/reseller-application")
	resp, err := postForm(app, "/reseller-application", tok,
		resellerForm("Coastal Gems", "S3cretPass", "S3cretPass"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d", resp.StatusCode)
	}
	var appID string
	if err := db.Get(&appID, `SELECT id FROM reseller_applications WHERE company_name='Coastal Gems'`); err != nil {
		t.Fatal(err)
	}

	// Approve it as the admin.
	respOK, err := postForm(app, "/admin/applications/"+appID+"/approve", tok, "",
		&http.Cookie{Name: "sid", Value: "sid-admin"})
	if err != nil {
		t.Fatal(err)
	}
	if respOK.StatusCode != http.StatusFound {
		t.Fatalf("approve: expected redirect, got %d", respOK.StatusCode)
	}

	u, err := userRepo.ByEmail("pat@gemstone.test")
	if err != nil {
		t.Fatal(err)
	}
	if !u.Wholesale() {
		t.Fatalf("applicant not promoted: %+v", u)
	}

	// The decision is final: approving again fails.
	respAgain, err := postForm(app, "/admin/applications/"+appID+"/approve", tok, "",
		&http.Cookie{Name: "sid", Value: "sid-admin"})
	if err != nil {
		t.Fatal(err)
	}
	if respAgain.StatusCode != http.StatusBadRequest {
		t.Fatalf("second approve: expected 400, got %d", respAgain.StatusCode)
	}
}
