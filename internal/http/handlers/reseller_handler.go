package handlers

import (
	"errors"

	"lumina/internal/domain"
	applog "lumina/internal/log"
	"lumina/internal/services"
	"lumina/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ResellerHandler struct {
	Reseller *services.ResellerService
}

func (h *ResellerHandler) Form(c *fiber.Ctx) error {
	return render(c, "reseller_application", fiber.Map{"Err": ""})
}

// Submit validates the application form fully before touching the database:
// a password mismatch or bad field never reaches the repos.
func (h *ResellerHandler) Submit(c *fiber.Ctx) error {
	form := func(k string) string { return c.FormValue(k) }

	company, ok := validate.Name(form("companyName"))
	if !ok {
		return h.formErr(c, "Enter your company name")
	}
	contact, ok := validate.Name(form("contactPerson"))
	if !ok {
		return h.formErr(c, "Enter a contact person")
	}
	email, ok := validate.Email(form("email"))
	if !ok {
		return h.formErr(c, "Enter a valid business email")
	}
	phone, ok := validate.Phone(form("phone"))
	if !ok {
		return h.formErr(c, "Enter a valid business phone")
	}

	password := form("password")
	if password != form("confirmPassword") {
		applog.Security(c, "reseller.apply.reject", map[string]any{"reason": "password_mismatch"})
		return h.formErr(c, "Passwords do not match")
	}
	if !validate.Password(password) {
		return h.formErr(c, "Password must be 8+ characters with upper, lower and digit")
	}

	app := domain.ResellerApplication{
		CompanyName:     company,
		ContactPerson:   contact,
		Email:           email,
		Phone:           phone,
		BusinessAddress: form("businessAddress"),
		City:            form("city"),
		State:           form("state"),
		ZipCode:         form("zipCode"),
		BusinessType:    form("businessType"),
		YearsInBusiness: form("yearsInBusiness"),
		TaxID:           form("taxId"),
		Website:         form("website"),
		MonthlyVolume:   form("expectedMonthlyVolume"),
		Description:     form("businessDescription"),
		TradeReferences: form("references"),
	}
	if u := currentUser(c); u != nil {
		app.UserID = u.ID
	}

	id, err := h.Reseller.Apply(app, password, form("confirmPassword"))
	if err != nil {
		if errors.Is(err, services.ErrPasswordMismatch) {
			return h.formErr(c, "Passwords do not match")
		}
		applog.Error(c, "reseller.apply.fail", err, map[string]any{"email": email})
		return h.formErr(c, "Could not submit your application. Please try again.")
	}

	applog.Audit(c, "reseller.apply", map[string]any{"application_id": id, "company": company})
	return render(c, "reseller_success", fiber.Map{"Company": company})
}

func (h *ResellerHandler) formErr(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).Render("reseller_application", fiber.Map{
		"Err": msg, "CSRFToken": c.Cookies("csrf_"),
	})
}
