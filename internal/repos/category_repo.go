package repos

import (
	"lumina/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT
	    id, name, description, image_url,
	    created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories
	  ORDER BY name
	`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, name, description, image_url,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories WHERE id = ?
	`, id)
	return c, err
}

func (r *CategoryRepo) Create(id, name, description, imageURL string) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id,name,description,image_url)
	  VALUES(?,?,?,?)
	`, id, name, description, imageURL)
	return err
}

func (r *CategoryRepo) Update(id, name, description, imageURL string) error {
	_, err := r.db.Exec(`
	  UPDATE categories
	  SET name=?, description=?, image_url=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, name, description, imageURL, id)
	return err
}

// Delete fails while products still reference the category (ON DELETE RESTRICT).
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id=?`, id)
	return err
}
