package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Hostile query strings are rejected with 400 instead of reaching the catalog.
func TestProductsRejectsBadQuery(t *testing.T) {
	app, _ := newApp(t)

	for _, q := range []string{"%3Cscript%3E", "%27%3B+DROP+TABLE+products%3B--", strings.Repeat("a", 80)} {
		resp, err := app.Test(httptest.NewRequest("GET", "/products?q="+q, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("q=%q: expected 400, got %d", q, resp.StatusCode)
		}
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/products?q=pearl", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("well-formed query: expected 200, got %d", resp.StatusCode)
	}
}

// A POST without the csrf form field is stopped by the middleware.
func TestMissingCSRFTokenRejected(t *testing.T) {
	app, _ := newApp(t)

	req := httptest.NewRequest("POST", "/cart", strings.NewReader("productId=necklace-pearl&qty=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without csrf token, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Security check failed") {
		t.Fatalf("csrf rejection missing message; body=%s", body)
	}
}

// Product names render escaped; a script-tag name never reaches the page raw.
func TestTemplateAutoEscape(t *testing.T) {
	app, db := newApp(t)

	db.MustExec(`INSERT INTO products(id,category_id,name,description,b2c_price,b2b_price,min_qty_b2b,in_stock,image_url,sku,material)
	  VALUES ('xss-1','rings','<script>alert(1)</script>','plain band',99,70,2,1,'','LU-X-001','silver')`)

	resp, err := app.Test(httptest.NewRequest("GET", "/products", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if strings.Contains(page, "<script>alert(1)</script>") {
		t.Fatal("raw script tag leaked into the page")
	}
	if !strings.Contains(page, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatal("escaped product name not rendered")
	}
}
