package repos

import "github.com/jmoiron/sqlx"

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// ---------- Admin list summary ----------
type OrderSummary struct {
	ID            string  `db:"id"`
	SessionID     string  `db:"session_id"`
	Channel       string  `db:"channel"`
	CompanyName   string  `db:"company_name"`
	CustomerName  string  `db:"customer_name"`
	CustomerEmail string  `db:"customer_email"`
	Total         float64 `db:"total"`
	Status        string  `db:"status"`
	CreatedAt     string  `db:"created_at"`
}

// ---------- Order detail (used by /order/:id and the invoice) ----------
type OrderRow struct {
	ID          string  `db:"id"`
	SessionID   string  `db:"session_id"`
	Channel     string  `db:"channel"`
	CompanyName string  `db:"company_name"`
	Customer    string  `db:"customer_name"`
	Email       string  `db:"customer_email"`
	Phone       string  `db:"customer_phone"`
	Address     string  `db:"address"`
	City        string  `db:"city"`
	State       string  `db:"state"`
	ZipCode     string  `db:"zip_code"`
	Notes       string  `db:"notes"`
	Total       float64 `db:"total"`
	Status      string  `db:"status"`
	CreatedAt   string  `db:"created_at"`
}

type OrderItemRow struct {
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	Qty       int     `db:"qty"`
	UnitPrice float64 `db:"unit_price"`
	Subtotal  float64 `db:"subtotal"`
}

func (r *OrderRepo) Create(o OrderRow) error {
	_, err := r.db.Exec(`
	  INSERT INTO orders
	    (id, session_id, channel, company_name, customer_name, customer_email,
	     customer_phone, address, city, state, zip_code, notes, total, status, created_at)
	  VALUES
	    (?,?,?,?,?,?,?,?,?,?,?,?,?,'PLACED',CURRENT_TIMESTAMP)
	`, o.ID, o.SessionID, o.Channel, o.CompanyName, o.Customer, o.Email,
		o.Phone, o.Address, o.City, o.State, o.ZipCode, o.Notes, o.Total)
	return err
}

func (r *OrderRepo) InsertItem(orderID, productID, name string, qty int, unitPrice float64) error {
	_, err := r.db.Exec(`
	  INSERT INTO order_items(order_id, product_id, name, qty, unit_price)
	  VALUES(?, ?, ?, ?, ?)
	`, orderID, productID, name, qty, unitPrice)
	return err
}

func (r *OrderRepo) Get(orderID string) (OrderRow, []OrderItemRow, error) {
	var o OrderRow
	if err := r.db.Get(&o, `
		SELECT id, session_id, channel, company_name, customer_name, customer_email,
		       customer_phone, address, city, state, zip_code, notes, total, status, created_at
		FROM orders
		WHERE id = ?
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	var items []OrderItemRow
	if err := r.db.Select(&items, `
		SELECT product_id, name, qty, unit_price, (qty * unit_price) AS subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY name
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	return o, items, nil
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, session_id, channel, company_name, customer_name, customer_email, total, status, created_at
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

// ListByUser returns orders placed from sessions belonging to the user.
func (r *OrderRepo) ListByUser(userID string) ([]OrderSummary, error) {
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT o.id, o.session_id, o.channel, o.company_name, o.customer_name, o.customer_email, o.total, o.status, o.created_at
		FROM orders o
		JOIN sessions s ON s.id = o.session_id
		WHERE s.user_id = ?
		ORDER BY datetime(o.created_at) DESC
	`, userID)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}
