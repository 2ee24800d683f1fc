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
	// Seed reference data if DB is empty (brands/devices/variants/prices/cities)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure an admin account and baseline settings exist (idempotent)
	if err := seedAdmin(db); err != nil {
		return nil, err
	}
	if err := seedSettings(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Brands
CREATE TABLE IF NOT EXISTS brands(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL CHECK (category IN ('phone','laptop','tablet')),
  logo_path TEXT DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_brands_category ON brands(category);

-- Devices
CREATE TABLE IF NOT EXISTS devices(
  id TEXT PRIMARY KEY,
  brand_id TEXT NOT NULL REFERENCES brands(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  series TEXT DEFAULT '',
  release_date TEXT DEFAULT '',     -- YYYY-MM-DD, empty for laptops
  active INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_devices_brand ON devices(brand_id);

-- Phone/tablet storage variants (base_price in whole rupees)
CREATE TABLE IF NOT EXISTS variants(
  id TEXT PRIMARY KEY,
  device_id TEXT NOT NULL REFERENCES devices(id) ON DELETE CASCADE,
  storage TEXT NOT NULL,
  base_price INTEGER NOT NULL CHECK (base_price > 0)
);
CREATE INDEX IF NOT EXISTS idx_variants_device ON variants(device_id);

-- Laptop variants (sparse combinatorial space, faceted selection)
CREATE TABLE IF NOT EXISTS laptop_variants(
  id TEXT PRIMARY KEY,
  device_id TEXT NOT NULL REFERENCES devices(id) ON DELETE CASCADE,
  processor TEXT NOT NULL,
  ram TEXT NOT NULL,
  storage TEXT NOT NULL,
  screen TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_laptop_variants_device ON laptop_variants(device_id);

-- Laptop pricing: exactly one record per laptop variant
CREATE TABLE IF NOT EXISTS laptop_prices(
  variant_id TEXT PRIMARY KEY REFERENCES laptop_variants(id) ON DELETE CASCADE,
  price_under_1yr INTEGER NOT NULL,
  price_1_to_3yrs INTEGER NOT NULL,
  price_over_3yrs INTEGER NOT NULL,
  deduct_good_pct INTEGER NOT NULL DEFAULT 0,
  deduct_average_pct INTEGER NOT NULL DEFAULT 10,
  deduct_below_avg_pct INTEGER NOT NULL DEFAULT 25,
  charger_deduction INTEGER NOT NULL DEFAULT 1500,
  box_deduction INTEGER NOT NULL DEFAULT 500,
  bill_deduction INTEGER NOT NULL DEFAULT 300
);

-- Cities
CREATE TABLE IF NOT EXISTS cities(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  active INTEGER NOT NULL DEFAULT 1
);

-- Wizard snapshots, one per browser session
CREATE TABLE IF NOT EXISTS flow_states(
  session_id TEXT PRIMARY KEY,
  state_json TEXT NOT NULL,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Leads: created the moment phone verification succeeds
CREATE TABLE IF NOT EXISTS leads(
  id TEXT PRIMARY KEY,
  phone TEXT NOT NULL,
  category TEXT NOT NULL,
  brand_name TEXT NOT NULL,
  device_name TEXT NOT NULL,
  city_name TEXT DEFAULT '',
  quoted_price INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'NEW' CHECK (status IN ('NEW','CONTACTED','COMPLETED','REJECTED')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);

-- Pickup requests: terminal flow record
CREATE TABLE IF NOT EXISTS pickup_requests(
  id TEXT PRIMARY KEY,
  lead_id TEXT REFERENCES leads(id) ON DELETE SET NULL,
  phone TEXT NOT NULL,
  category TEXT NOT NULL,
  brand_name TEXT NOT NULL,
  device_name TEXT NOT NULL,
  variant_label TEXT DEFAULT '',
  city_name TEXT NOT NULL,
  final_price INTEGER NOT NULL,
  customer_name TEXT NOT NULL,
  address TEXT NOT NULL,
  pincode TEXT NOT NULL,
  pickup_date TEXT NOT NULL,
  pickup_slot TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'PENDING'
    CHECK (status IN ('PENDING','CONFIRMED','IN_TRANSIT','COMPLETED','CANCELLED')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_pickups_created_at ON pickup_requests(created_at);

-- Customer reviews (admin-moderated)
CREATE TABLE IF NOT EXISTS reviews(
  id TEXT PRIMARY KEY,
  author TEXT NOT NULL,
  city_name TEXT DEFAULT '',
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  body TEXT NOT NULL,
  approved INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Admin users & audit trail
CREATE TABLE IF NOT EXISTS admin_users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_admin_users_email ON admin_users(LOWER(email));

CREATE TABLE IF NOT EXISTS admin_activity_logs(
  id TEXT PRIMARY KEY,
  admin_id TEXT NOT NULL,
  action TEXT NOT NULL,
  detail TEXT DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_activity_created_at ON admin_activity_logs(created_at);

-- Key/value settings editable from the back-office
CREATE TABLE IF NOT EXISTS system_settings(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM brands`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting baseline brands/devices/variants/prices/cities")

	tx := db.MustBegin()

	tx.MustExec(`INSERT INTO brands(id,name,category) VALUES
	  ('apple','Apple','phone'),
	  ('samsung','Samsung','phone'),
	  ('oneplus','OnePlus','phone'),
	  ('xiaomi','Xiaomi','phone'),
	  ('apple-tab','Apple','tablet'),
	  ('samsung-tab','Samsung','tablet'),
	  ('dell','Dell','laptop'),
	  ('hp','HP','laptop'),
	  ('lenovo','Lenovo','laptop')`)

	tx.MustExec(`INSERT INTO devices(id,brand_id,name,series,release_date) VALUES
	  ('iphone-15','apple','iPhone 15','','2023-09-22'),
	  ('iphone-14','apple','iPhone 14','','2022-09-16'),
	  ('iphone-13','apple','iPhone 13','','2021-09-24'),
	  ('iphone-11','apple','iPhone 11','','2019-09-20'),
	  ('galaxy-s24','samsung','Galaxy S24','Galaxy S','2024-01-31'),
	  ('galaxy-s23','samsung','Galaxy S23','Galaxy S','2023-02-17'),
	  ('galaxy-a55','samsung','Galaxy A55','Galaxy A','2024-03-26'),
	  ('galaxy-m34','samsung','Galaxy M34','Galaxy M','2023-07-07'),
	  ('oneplus-12','oneplus','OnePlus 12','','2024-01-23'),
	  ('redmi-note-13','xiaomi','Redmi Note 13','','2024-01-04'),
	  ('ipad-10','apple-tab','iPad (10th gen)','','2022-10-26'),
	  ('galaxy-tab-s9','samsung-tab','Galaxy Tab S9','','2023-08-11'),
	  ('xps-13','dell','XPS 13','',''),
	  ('inspiron-15','dell','Inspiron 15','',''),
	  ('pavilion-14','hp','Pavilion 14','',''),
	  ('thinkpad-e14','lenovo','ThinkPad E14','','')`)

	tx.MustExec(`INSERT INTO variants(id,device_id,storage,base_price) VALUES
	  ('iphone-15-128','iphone-15','128 GB',42000),
	  ('iphone-15-256','iphone-15','256 GB',47000),
	  ('iphone-14-128','iphone-14','128 GB',32000),
	  ('iphone-14-256','iphone-14','256 GB',36000),
	  ('iphone-13-128','iphone-13','128 GB',25000),
	  ('iphone-11-64','iphone-11','64 GB',13000),
	  ('galaxy-s24-256','galaxy-s24','256 GB',38000),
	  ('galaxy-s23-128','galaxy-s23','128 GB',27000),
	  ('galaxy-a55-128','galaxy-a55','128 GB',16000),
	  ('galaxy-m34-128','galaxy-m34','128 GB',9500),
	  ('oneplus-12-256','oneplus-12','256 GB',34000),
	  ('redmi-note-13-128','redmi-note-13','128 GB',8500),
	  ('ipad-10-64','ipad-10','64 GB',19000),
	  ('galaxy-tab-s9-128','galaxy-tab-s9','128 GB',30000)`)

	tx.MustExec(`INSERT INTO laptop_variants(id,device_id,processor,ram,storage,screen) VALUES
	  ('xps-13-i5-8','xps-13','Intel Core i5','8 GB','256 GB','13.3"'),
	  ('xps-13-i7-16','xps-13','Intel Core i7','16 GB','512 GB','13.4"'),
	  ('inspiron-15-i5-8','inspiron-15','Intel Core i5','8 GB','512 GB','15.6"'),
	  ('pavilion-14-r5-8','pavilion-14','AMD Ryzen 5','8 GB','512 GB','14"'),
	  ('thinkpad-e14-i5-16','thinkpad-e14','Intel Core i5','16 GB','512 GB','14"')`)

	tx.MustExec(`INSERT INTO laptop_prices(variant_id,price_under_1yr,price_1_to_3yrs,price_over_3yrs,
	    deduct_good_pct,deduct_average_pct,deduct_below_avg_pct,charger_deduction,box_deduction,bill_deduction) VALUES
	  ('xps-13-i5-8',      52000,40000,26000, 0,10,25, 1500,500,300),
	  ('xps-13-i7-16',     68000,52000,34000, 0,10,25, 1500,500,300),
	  ('inspiron-15-i5-8', 34000,26000,17000, 0,12,28, 1200,500,300),
	  ('pavilion-14-r5-8', 32000,24500,16000, 0,10,25, 1200,500,300),
	  ('thinkpad-e14-i5-16',45000,35000,23000,0,10,25, 1500,500,300)`)

	tx.MustExec(`INSERT INTO cities(id,name) VALUES
	  ('blr','Bengaluru'),
	  ('del','Delhi NCR'),
	  ('mum','Mumbai'),
	  ('hyd','Hyderabad'),
	  ('che','Chennai'),
	  ('pun','Pune'),
	  ('kol','Kolkata')`)

	tx.MustExec(`INSERT INTO reviews(id,author,city_name,rating,body,approved) VALUES
	  ('rev-1','Priya S','Bengaluru',5,'Pickup was on time and payment instant.',1),
	  ('rev-2','Rahul K','Delhi NCR',4,'Quoted price matched the final offer.',1),
	  ('rev-3','Ananya M','Pune',5,'Sold my old iPhone in under a day.',0)`)

	return tx.Commit()
}

// seedAdmin ensures one back-office account exists (idempotent).
func seedAdmin(db *sqlx.DB) error {
	h, _ := bcrypt.GenerateFromPassword([]byte("Gizmo@dm1n"), 12)
	_, err := db.Exec(`
		INSERT INTO admin_users(id,email,name,password_hash)
		VALUES('adm-root','admin@gizmocash.test','Admin',?)
		ON CONFLICT(email) DO NOTHING
	`, string(h))
	return err
}

// seedSettings inserts baseline key/value settings (idempotent).
func seedSettings(db *sqlx.DB) error {
	defaults := map[string]string{
		"support_phone":     "1800-000-1234",
		"pickup_slots":      "10:00-13:00,13:00-16:00,16:00-19:00",
		"min_pickup_notice": "1",
	}
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()
	for k, v := range defaults {
		if _, err := tx.Exec(`
			INSERT INTO system_settings(key,value) VALUES(?,?)
			ON CONFLICT(key) DO NOTHING
		`, k, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}
