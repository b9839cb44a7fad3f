package repos

import (
	"lumina/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, category_id, name, description, b2c_price, b2b_price, min_qty_b2b,
  in_stock, image_url, sku, material, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// List returns products newest first, optionally filtered by category and a
// name/description keyword.
func (r *ProductRepo) List(catID, q string, limit, offset int) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if catID != "" {
		where += ` AND category_id = ?`
		args = append(args, catID)
	}
	if q != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}

	sql := `SELECT ` + productCols + ` FROM products WHERE ` + where + `
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, sql, args...)
	return out, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,category_id,name,description,b2c_price,b2b_price,min_qty_b2b,in_stock,image_url,sku,material)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?)
	`, p.ID, p.CategoryID, p.Name, p.Description, p.B2CPrice, p.B2BPrice, p.MinQtyB2B, p.InStock, p.ImageURL, p.SKU, p.Material)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products
	  SET category_id=?, name=?, description=?, b2c_price=?, b2b_price=?,
	      min_qty_b2b=?, in_stock=?, image_url=?, sku=?, material=?,
	      updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, p.CategoryID, p.Name, p.Description, p.B2CPrice, p.B2BPrice, p.MinQtyB2B, p.InStock, p.ImageURL, p.SKU, p.Material, p.ID)
	return err
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id=?`, id)
	return err
}
