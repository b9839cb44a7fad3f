package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type CartItemRow struct {
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	ImageURL  string  `db:"image_url"`
	Qty       int     `db:"qty"`
	UnitPrice float64 `db:"unit_price"`
	Channel   string  `db:"channel"`
	Subtotal  float64 `db:"subtotal"`
}

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// UpsertItem adds qty to an existing line or inserts a new one. The unit price
// and channel stick from the first insert; a line keeps the price the viewer
// saw when it entered the cart.
func (r *CartRepo) UpsertItem(cartID, productID string, qty int, price float64, channel string) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id,product_id,qty,unit_price,channel,created_at)
		VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,product_id) DO UPDATE
		SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, cartID, productID, qty, price, channel)
	return err
}

func (r *CartRepo) SetQty(cartID, productID string, qty int) error {
	_, err := r.db.Exec(`
		UPDATE cart_items SET qty=?, updated_at=CURRENT_TIMESTAMP
		WHERE cart_id=? AND product_id=?
	`, qty, cartID, productID)
	return err
}

func (r *CartRepo) RemoveItem(cartID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id=? AND product_id=?`, cartID, productID)
	return err
}

func (r *CartRepo) Items(cartID string) ([]CartItemRow, error) {
	rows := []CartItemRow{}
	err := r.db.Select(&rows, `
	  SELECT ci.product_id, p.name, p.image_url, ci.qty, ci.unit_price, ci.channel,
	         (ci.qty*ci.unit_price) AS subtotal
	  FROM cart_items ci JOIN products p ON p.id=ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.created_at
	`, cartID)
	return rows, err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
