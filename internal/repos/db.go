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
	// Baseline catalog data if DB is empty (categories/locations)
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
  name TEXT NOT NULL COLLATE NOCASE UNIQUE,
  description TEXT,
  icon TEXT,
  color TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

-- Locations (self-referential tree)
CREATE TABLE IF NOT EXISTS locations(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL CHECK (type IN ('building','warehouse','room','rack','shelf')),
  parent_id TEXT REFERENCES locations(id) ON DELETE SET NULL,
  code TEXT,
  description TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
-- Sparse unique: rows without a code are allowed
CREATE UNIQUE INDEX IF NOT EXISTS idx_locations_code ON locations(code) WHERE code IS NOT NULL AND code <> '';
CREATE INDEX IF NOT EXISTS idx_locations_parent ON locations(parent_id);

-- Items
CREATE TABLE IF NOT EXISTS items(
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  location_id TEXT NOT NULL REFERENCES locations(id) ON DELETE RESTRICT,
  type TEXT NOT NULL DEFAULT 'consumable' CHECK (type IN ('asset','consumable')),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  min_stock INTEGER NOT NULL DEFAULT 0 CHECK (min_stock >= 0),
  unit TEXT,
  price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
  supplier TEXT,
  spec_json TEXT,
  images_json TEXT,
  qr_payload TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_items_category ON items(category_id);
CREATE INDEX IF NOT EXISTS idx_items_location ON items(location_id);
CREATE INDEX IF NOT EXISTS idx_items_name     ON items(LOWER(name));

-- Transactions (append-only ledger)
CREATE TABLE IF NOT EXISTS transactions(
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL CHECK (type IN ('inbound','outbound','adjustment')),
  item_id TEXT NOT NULL REFERENCES items(id) ON DELETE RESTRICT,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  user_id TEXT REFERENCES users(id),
  staff_id TEXT REFERENCES users(id),
  supplier TEXT,
  invoice_no TEXT,
  purpose TEXT,
  notes TEXT,
  location_id TEXT REFERENCES locations(id),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_transactions_item       ON transactions(item_id);
CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at);

-- Requests
CREATE TABLE IF NOT EXISTS requests(
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  requester_id TEXT NOT NULL REFERENCES users(id),
  item_id TEXT NOT NULL REFERENCES items(id) ON DELETE RESTRICT,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  reason TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','approved','rejected','completed')),
  approved_by TEXT REFERENCES users(id),
  approved_at TEXT,
  rejected_by TEXT REFERENCES users(id),
  rejected_at TEXT,
  reject_reason TEXT,
  fulfilled_tx_id TEXT REFERENCES transactions(id),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_requests_status    ON requests(status);
CREATE INDEX IF NOT EXISTS idx_requests_requester ON requests(requester_id);

-- Users
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL COLLATE NOCASE UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('super_admin','staff','employee')),
  department TEXT,
  phone TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  last_login_at TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

-- Atomic identifier counters, keyed by scope ("item", "location:room",
-- "request:2025"). Replaces count-existing-rows generation, which races
-- under concurrent creation.
CREATE TABLE IF NOT EXISTS sequences(
  scope TEXT PRIMARY KEY,
  n INTEGER NOT NULL DEFAULT 0
);
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

	log.Println("[seed] inserting baseline categories/locations")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name,description,icon,color) VALUES
	  ('cat-electronics','Electronics','Computers, monitors and peripherals','cpu','#2563eb'),
	  ('cat-furniture','Furniture','Desks, chairs and cabinets','armchair','#9333ea'),
	  ('cat-office','Office Supplies','Consumable office material','paperclip','#16a34a')`)

	// Seed codes stay outside the generated {TYP}-{NNN} namespace so
	// the per-type counters start clean.
	tx.MustExec(`INSERT INTO locations(id,name,type,code) VALUES
	  ('loc-hq','Headquarters','building','HQ'),
	  ('loc-main-wh','Main Warehouse','warehouse','MAIN-WH')`)
	tx.MustExec(`INSERT INTO locations(id,name,type,parent_id,code) VALUES
	  ('loc-store-room','Storage Room','room','loc-main-wh','STORE-1')`)

	return tx.Commit()
}

// seedUsers ensures one account per role exists (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Dept, Hash string
	}
	mk := func(id, email, name, role, dept, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Dept: dept, Hash: string(h)}
	}

	users := []u{
		mk("u-admin", "admin@stockroom.test", "Admin", "super_admin", "IT", "ChangeMe123"),
		mk("u-staff", "staff@stockroom.test", "Warehouse Staff", "staff", "Logistics", "ChangeMe123"),
		mk("u-employee", "employee@stockroom.test", "Employee", "employee", "Operations", "ChangeMe123"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role,department)
			VALUES(?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role, x.Dept); err != nil {
			return err
		}
	}

	return tx.Commit()
}
