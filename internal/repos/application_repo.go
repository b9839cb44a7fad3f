package repos

import (
	"fmt"

	"lumina/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ApplicationRepo struct{ db *sqlx.DB }

func NewApplicationRepo(db *sqlx.DB) *ApplicationRepo { return &ApplicationRepo{db: db} }

const appCols = `
  id, COALESCE(user_id,'') AS user_id, company_name, contact_person, email, phone,
  business_address, city, state, zip_code, business_type, years_in_business,
  tax_id, website, expected_monthly_volume, business_description,
  trade_references, status, reviewed_by, COALESCE(reviewed_at,'') AS reviewed_at, created_at`

func (r *ApplicationRepo) Create(a domain.ResellerApplication) error {
	userID := any(a.UserID)
	if a.UserID == "" {
		userID = nil
	}
	_, err := r.db.Exec(`
	  INSERT INTO reseller_applications(
	    id, user_id, company_name, contact_person, email, phone,
	    business_address, city, state, zip_code, business_type, years_in_business,
	    tax_id, website, expected_monthly_volume, business_description,
	    trade_references, status)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,'pending')
	`, a.ID, userID, a.CompanyName, a.ContactPerson, a.Email, a.Phone,
		a.BusinessAddress, a.City, a.State, a.ZipCode, a.BusinessType, a.YearsInBusiness,
		a.TaxID, a.Website, a.MonthlyVolume, a.Description, a.TradeReferences)
	return err
}

func (r *ApplicationRepo) Get(id string) (domain.ResellerApplication, error) {
	var a domain.ResellerApplication
	err := r.db.Get(&a, `SELECT `+appCols+` FROM reseller_applications WHERE id=?`, id)
	return a, err
}

// List returns applications newest first, optionally filtered by status.
func (r *ApplicationRepo) List(status string) ([]domain.ResellerApplication, error) {
	var out []domain.ResellerApplication
	if status != "" {
		err := r.db.Select(&out, `SELECT `+appCols+` FROM reseller_applications WHERE status=? ORDER BY datetime(created_at) DESC`, status)
		return out, err
	}
	err := r.db.Select(&out, `SELECT `+appCols+` FROM reseller_applications ORDER BY datetime(created_at) DESC`)
	return out, err
}

// Transition moves a pending application to approved or rejected. The guard
// lives in the WHERE clause so a second review cannot overwrite the first.
func (r *ApplicationRepo) Transition(id, status, reviewedBy string) error {
	res, err := r.db.Exec(`
		UPDATE reseller_applications
		SET status=?, reviewed_by=?, reviewed_at=CURRENT_TIMESTAMP
		WHERE id=? AND status='pending'
	`, status, reviewedBy, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("application %s is not pending", id)
	}
	return nil
}
