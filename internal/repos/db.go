package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog if DB is empty (categories/products)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure accounts exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  b2c_price NUMERIC NOT NULL CHECK (b2c_price >= 0),
  b2b_price NUMERIC NOT NULL CHECK (b2b_price >= 0),
  min_qty_b2b INTEGER NOT NULL DEFAULT 1 CHECK (min_qty_b2b >= 1),
  in_stock INTEGER NOT NULL DEFAULT 1,
  image_url TEXT NOT NULL DEFAULT '',
  sku TEXT NOT NULL DEFAULT '',
  material TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Carts
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  unit_price NUMERIC NOT NULL,
  channel TEXT NOT NULL CHECK (channel IN ('B2C','B2B')),
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  session_id TEXT,
  channel TEXT NOT NULL DEFAULT 'B2C',
  company_name TEXT NOT NULL DEFAULT '',
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  customer_phone TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  zip_code TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'PLACED',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  name TEXT NOT NULL,
  qty INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id)
);

-- Reseller applications
CREATE TABLE IF NOT EXISTS reseller_applications(
  id TEXT PRIMARY KEY,
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  company_name TEXT NOT NULL,
  contact_person TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  business_address TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  zip_code TEXT NOT NULL DEFAULT '',
  business_type TEXT NOT NULL DEFAULT '',
  years_in_business TEXT NOT NULL DEFAULT '',
  tax_id TEXT NOT NULL DEFAULT '',
  website TEXT NOT NULL DEFAULT '',
  expected_monthly_volume TEXT NOT NULL DEFAULT '',
  business_description TEXT NOT NULL DEFAULT '',
  trade_references TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','approved','rejected')),
  reviewed_by TEXT NOT NULL DEFAULT '',
  reviewed_at TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_applications_status ON reseller_applications(status);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('CUSTOMER','B2B','ADMIN')),
  approved INTEGER NOT NULL DEFAULT 0,
  company_name TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name,description) VALUES
	  ('rings','Rings','Engagement, wedding and fashion rings'),
	  ('necklaces','Necklaces','Pendants, chains and pearl strands'),
	  ('earrings','Earrings','Studs, hoops and drops'),
	  ('bracelets','Bracelets','Tennis bracelets, bangles and cuffs')`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,description,b2c_price,b2b_price,min_qty_b2b,in_stock,image_url,sku,material) VALUES
	  ('ring-solitaire','rings','Diamond Solitaire Ring','Elegant 1-carat diamond solitaire ring in 18k white gold',2500,1800,2,1,'/media/product-images/seed/ring-solitaire.jpg','LU-R-001','18k white gold'),
	  ('necklace-pearl','necklaces','Pearl Necklace','Classic freshwater pearl necklace with sterling silver clasp',450,320,5,1,'/media/product-images/seed/necklace-pearl.jpg','LU-N-001','freshwater pearl'),
	  ('earrings-hoop','earrings','Gold Hoop Earrings','Classic 14k gold hoop earrings, perfect for everyday wear',180,130,10,1,'/media/product-images/seed/earrings-hoop.jpg','LU-E-001','14k gold'),
	  ('bracelet-emerald','bracelets','Emerald Tennis Bracelet','Stunning emerald tennis bracelet in 18k yellow gold',1200,850,3,1,'/media/product-images/seed/bracelet-emerald.jpg','LU-B-001','18k yellow gold'),
	  ('necklace-sapphire','necklaces','Sapphire Pendant','Blue sapphire pendant with diamond accents on white gold chain',800,580,4,1,'/media/product-images/seed/necklace-sapphire.jpg','LU-N-002','white gold'),
	  ('ring-wedding-set','rings','Wedding Band Set','Matching his and hers wedding bands in platinum',1500,1100,2,1,'/media/product-images/seed/ring-wedding-set.jpg','LU-R-002','platinum')`)

	return tx.Commit()
}

// seedUsers ensures one ADMIN and one approved B2B account exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Company, Hash string
		Approved                             int
	}
	mk := func(id, email, name, role, company, raw string, approved int) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Company: company, Hash: string(h), Approved: approved}
	}

	users := []u{
		mk("u-admin", "admin@lumina.test", "Admin", "ADMIN", "", "Adm1nPass!", 1),
		mk("u-abc", "buyer@abcjewelry.test", "ABC Buyer", "B2B", "ABC Jewelry Store", "Wh0lesale!", 1),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role,approved,company_name)
			VALUES(?,?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role, x.Approved, x.Company); err != nil {
			return err
		}
	}

	return tx.Commit()
}
