package handlers

import (
	"io"
	"strings"

	"lumina/internal/domain"
	applog "lumina/internal/log"
	"lumina/internal/metrics"
	"lumina/internal/repos"
	"lumina/internal/services"
	"lumina/internal/storage"
	"lumina/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	Cats     *repos.CategoryRepo
	Prods    *repos.ProductRepo
	Orders   *repos.OrderRepo
	Reseller *services.ResellerService
	Media    *storage.MediaStore
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	pending, _ := h.Reseller.List(domain.AppPending)
	orders, _ := h.Orders.ListLatest(10)
	return render(c, "admin_dashboard", fiber.Map{
		"PendingApplications": len(pending),
		"RecentOrders":        orders,
	})
}

// ---------- Products ----------

// GET /admin/products
func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	prods, err := h.Prods.List("", q, 200, 0)
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	cats, _ := h.Cats.List()
	return render(c, "admin_products", fiber.Map{"Products": prods, "Categories": cats, "Q": q})
}

func (h *AdminHandler) productFromForm(c *fiber.Ctx, id string) (domain.Product, string) {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return domain.Product{}, "enter a product name"
	}
	catID, ok := validate.ID(c.FormValue("category_id"))
	if !ok {
		return domain.Product{}, "pick a category"
	}
	b2c, ok := validate.Price(c.FormValue("b2c_price"))
	if !ok {
		return domain.Product{}, "invalid retail price"
	}
	b2b, ok := validate.Price(c.FormValue("b2b_price"))
	if !ok {
		return domain.Product{}, "invalid wholesale price"
	}
	sku, ok := validate.SKU(c.FormValue("sku"))
	if !ok {
		return domain.Product{}, "invalid SKU"
	}
	return domain.Product{
		ID:          id,
		CategoryID:  catID,
		Name:        name,
		Description: c.FormValue("description"),
		B2CPrice:    b2c,
		B2BPrice:    b2b,
		MinQtyB2B:   validate.Qty(c.FormValue("min_qty_b2b")),
		InStock:     c.FormValue("in_stock") != "",
		ImageURL:    c.FormValue("image_url"),
		SKU:         sku,
		Material:    c.FormValue("material"),
	}, ""
}

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	p, msg := h.productFromForm(c, uuid.NewString())
	if msg != "" {
		return c.Status(400).SendString(msg)
	}
	if err := h.Prods.Create(p); err != nil {
		applog.Error(c, "admin.products.create.fail", err, map[string]any{"name": p.Name})
		return c.Status(400).SendString("could not create product")
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product_id": p.ID, "name": p.Name})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	p, msg := h.productFromForm(c, id)
	if msg != "" {
		return c.Status(400).SendString(msg)
	}
	if err := h.Prods.Update(p); err != nil {
		applog.Error(c, "admin.products.update.fail", err, map[string]any{"product_id": id})
		return c.Status(400).SendString("could not update product")
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product_id": id})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id/delete
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if p, err := h.Prods.Get(id); err == nil && strings.HasPrefix(p.ImageURL, "/media/") {
		_ = h.Media.Delete(p.ImageURL)
	}
	if err := h.Prods.Delete(id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product_id": id})
		return c.Status(400).SendString("could not delete product")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
	return c.Redirect("/admin/products")
}

// ---------- Categories ----------

// GET /admin/categories
func (h *AdminHandler) CategoriesPage(c *fiber.Ctx) error {
	cats, err := h.Cats.List()
	if err != nil {
		applog.Error(c, "admin.categories.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load categories"})
	}
	return render(c, "admin_categories", fiber.Map{"Categories": cats})
}

// POST /admin/categories
func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(400).SendString("enter a category name")
	}
	id := slugify(name)
	if err := h.Cats.Create(id, name, c.FormValue("description"), c.FormValue("image_url")); err != nil {
		applog.Error(c, "admin.categories.create.fail", err, map[string]any{"name": name})
		return c.Status(400).SendString("could not create category")
	}
	applog.Audit(c, "admin.categories.create", map[string]any{"category_id": id})
	return c.Redirect("/admin/categories")
}

// POST /admin/categories/:id
func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(400).SendString("enter a category name")
	}
	if err := h.Cats.Update(id, name, c.FormValue("description"), c.FormValue("image_url")); err != nil {
		applog.Error(c, "admin.categories.update.fail", err, map[string]any{"category_id": id})
		return c.Status(400).SendString("could not update category")
	}
	applog.Audit(c, "admin.categories.update", map[string]any{"category_id": id})
	return c.Redirect("/admin/categories")
}

// POST /admin/categories/:id/delete
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	// Fails while products still reference the category.
	if err := h.Cats.Delete(id); err != nil {
		applog.Error(c, "admin.categories.delete.fail", err, map[string]any{"category_id": id})
		return c.Status(400).SendString("could not delete category (remove its products first)")
	}
	applog.Audit(c, "admin.categories.delete", map[string]any{"category_id": id})
	return c.Redirect("/admin/categories")
}

// ---------- Reseller applications ----------

// GET /admin/applications
func (h *AdminHandler) ApplicationsPage(c *fiber.Ctx) error {
	status := strings.TrimSpace(c.Query("status"))
	switch status {
	case "", domain.AppPending, domain.AppApproved, domain.AppRejected:
	default:
		status = ""
	}
	apps, err := h.Reseller.List(status)
	if err != nil {
		applog.Error(c, "admin.applications.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load applications"})
	}
	return render(c, "admin_applications", fiber.Map{"Applications": apps, "Status": status})
}

// POST /admin/applications/:id/approve
func (h *AdminHandler) ApproveApplication(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Reseller.Approve(id, currentUser(c).ID); err != nil {
		applog.Error(c, "admin.applications.approve.fail", err, map[string]any{"application_id": id})
		return c.Status(400).SendString("could not approve application")
	}
	metrics.ApplicationsReviewedTotal.WithLabelValues(domain.AppApproved).Inc()
	applog.Audit(c, "admin.applications.approve", map[string]any{"application_id": id})
	return c.Redirect("/admin/applications")
}

// POST /admin/applications/:id/reject
func (h *AdminHandler) RejectApplication(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Reseller.Reject(id, currentUser(c).ID); err != nil {
		applog.Error(c, "admin.applications.reject.fail", err, map[string]any{"application_id": id})
		return c.Status(400).SendString("could not reject application")
	}
	metrics.ApplicationsReviewedTotal.WithLabelValues(domain.AppRejected).Inc()
	applog.Audit(c, "admin.applications.reject", map[string]any{"application_id": id})
	return c.Redirect("/admin/applications")
}

// ---------- Orders ----------

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	ords, err := h.Orders.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "admin_orders", fiber.Map{"Orders": ords})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	status := strings.ToUpper(strings.TrimSpace(c.FormValue("status")))
	if !ok || status == "" {
		return c.Status(400).SendString("missing id or status")
	}
	if err := h.Orders.UpdateStatus(id, status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return c.Status(400).SendString("could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders")
}

// ---------- Image upload ----------

// POST /admin/upload
func (h *AdminHandler) Upload(c *fiber.Ctx) error {
	bucket := c.FormValue("bucket", storage.BucketProductImages)
	if bucket != storage.BucketProductImages && bucket != storage.BucketCategoryImages {
		return c.Status(400).JSON(fiber.Map{"error": "unknown bucket"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "missing file"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "unreadable file"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "unreadable file"})
	}

	urlPath, err := h.Media.Save(bucket, fh.Filename, data)
	if err != nil {
		applog.Error(c, "admin.upload.fail", err, map[string]any{"bucket": bucket})
		return c.Status(500).JSON(fiber.Map{"error": "could not store file"})
	}
	applog.Audit(c, "admin.upload", map[string]any{"bucket": bucket, "path": urlPath})
	return c.JSON(fiber.Map{"url": urlPath})
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = uuid.NewString()
	}
	return out
}
