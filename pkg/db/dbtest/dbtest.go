// Package dbtest opens throwaway SQLite databases carrying the full
// planning schema for package tests.
package dbtest

import (
	"regexp"
	"testing"

	"github.com/angelmondragon/weddingplanner-backend/pkg/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// Open returns a client over a private in-memory database named after the test.
func Open(t *testing.T) *db.Client {
	t.Helper()

	dsn := "file:" + unsafeName.ReplaceAllString(t.Name(), "_") + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to get sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range schema {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to apply schema: %v", err)
		}
	}

	client, err := db.Wrap(conn)
	if err != nil {
		t.Fatalf("failed to wrap connection: %v", err)
	}
	return client
}

// Count returns the number of rows in table matching the optional where clause.
func Count(t *testing.T, client *db.Client, table, where string, args ...any) int64 {
	t.Helper()
	q := client.DB().Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

var schema = []string{
	`CREATE TABLE companies (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  subdomain TEXT NOT NULL UNIQUE,
  subscription_status TEXT NOT NULL DEFAULT 'trialing',
  trial_ends_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE users (
  id TEXT PRIMARY KEY,
  external_id TEXT NOT NULL UNIQUE,
  company_id TEXT,
  email TEXT NOT NULL,
  first_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE clients (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  partner1_first_name TEXT NOT NULL,
  partner1_last_name TEXT NOT NULL DEFAULT '',
  partner1_email TEXT,
  partner1_phone TEXT,
  partner2_first_name TEXT,
  partner2_last_name TEXT,
  partner2_email TEXT,
  wedding_date DATETIME,
  venue TEXT,
  wedding_type TEXT NOT NULL DEFAULT 'traditional',
  budget NUMERIC,
  guest_count INTEGER,
  status TEXT NOT NULL DEFAULT 'planning',
  source TEXT NOT NULL DEFAULT 'direct',
  notes TEXT,
  created_by TEXT NOT NULL,
  stats_guest_count INTEGER NOT NULL DEFAULT 0,
  stats_confirmed_guests INTEGER NOT NULL DEFAULT 0,
  stats_vendor_count INTEGER NOT NULL DEFAULT 0,
  stats_budget_estimated NUMERIC NOT NULL DEFAULT 0,
  stats_budget_paid NUMERIC NOT NULL DEFAULT 0,
  stats_updated_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME
);`,
	`CREATE TABLE events (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  client_id TEXT NOT NULL,
  title TEXT NOT NULL,
  type TEXT NOT NULL,
  starts_at DATETIME,
  location TEXT,
  is_primary INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE timeline_entries (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  client_id TEXT NOT NULL,
  event_id TEXT,
  title TEXT NOT NULL,
  starts_at DATETIME,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
	`CREATE TABLE vendors (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  name TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT 'other',
  email TEXT,
  phone TEXT,
  services TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE budget_items (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  client_id TEXT NOT NULL,
  vendor_id TEXT,
  event_id TEXT,
  category TEXT NOT NULL,
  segment TEXT NOT NULL DEFAULT '',
  item TEXT NOT NULL,
  percentage NUMERIC,
  estimated_cost NUMERIC NOT NULL DEFAULT 0,
  actual_cost NUMERIC NOT NULL DEFAULT 0,
  paid_amount NUMERIC NOT NULL DEFAULT 0,
  source TEXT NOT NULL DEFAULT 'manual',
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE client_vendors (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  client_id TEXT NOT NULL,
  vendor_id TEXT NOT NULL,
  payment_status TEXT NOT NULL DEFAULT 'pending',
  approval_status TEXT NOT NULL DEFAULT 'pending',
  contract_amount NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (client_id, vendor_id)
);`,
	`CREATE TABLE guests (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  client_id TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL DEFAULT '',
  email TEXT,
  rsvp_status TEXT NOT NULL DEFAULT 'pending',
  party_size INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE guest_hotels (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  guest_id TEXT NOT NULL,
  hotel_name TEXT NOT NULL,
  check_in_at DATETIME,
  check_out_at DATETIME,
  created_at DATETIME
);`,
	`CREATE TABLE guest_transports (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  guest_id TEXT NOT NULL,
  mode TEXT NOT NULL,
  pickup_at DATETIME,
  notes TEXT,
  created_at DATETIME
);`,
	`CREATE TABLE guest_gifts (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  guest_id TEXT NOT NULL,
  description TEXT NOT NULL,
  thank_you_sent INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
	`CREATE TABLE floor_plans (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  client_id TEXT NOT NULL,
  event_id TEXT,
  name TEXT NOT NULL,
  created_at DATETIME
);`,
	`CREATE TABLE floor_plan_tables (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  floor_plan_id TEXT NOT NULL,
  label TEXT NOT NULL,
  capacity INTEGER NOT NULL DEFAULT 8,
  created_at DATETIME
);`,
	`CREATE TABLE floor_plan_guests (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  floor_plan_id TEXT NOT NULL,
  table_id TEXT NOT NULL,
  guest_id TEXT NOT NULL,
  seat_number INTEGER,
  created_at DATETIME
);`,
	`CREATE TABLE documents (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  client_id TEXT NOT NULL,
  name TEXT NOT NULL,
  storage_key TEXT NOT NULL,
  content_type TEXT NOT NULL DEFAULT 'application/pdf',
  created_at DATETIME
);`,
	`CREATE TABLE gifts (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  client_id TEXT NOT NULL,
  from_name TEXT NOT NULL,
  description TEXT NOT NULL,
  received_at DATETIME,
  created_at DATETIME
);`,
	`CREATE TABLE gift_registry_items (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  client_id TEXT NOT NULL,
  name TEXT NOT NULL,
  url TEXT,
  claimed INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
	`CREATE TABLE messages (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  client_id TEXT NOT NULL,
  sender_user_id TEXT,
  channel TEXT NOT NULL,
  body TEXT NOT NULL,
  sent_at DATETIME,
  created_at DATETIME
);`,
	`CREATE TABLE payments (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  client_id TEXT NOT NULL,
  vendor_id TEXT,
  amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  provider_ref TEXT,
  due_at DATETIME,
  paid_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE wedding_websites (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  client_id TEXT NOT NULL UNIQUE,
  slug TEXT NOT NULL UNIQUE,
  published INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE client_activities (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  client_id TEXT NOT NULL,
  actor_user_id TEXT,
  action TEXT NOT NULL,
  metadata TEXT,
  created_at DATETIME
);`,
	`CREATE TABLE client_users (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  client_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  created_at DATETIME
);`,
	`CREATE TABLE pipeline_stages (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  name TEXT NOT NULL,
  position INTEGER NOT NULL,
  color TEXT,
  is_won INTEGER NOT NULL DEFAULT 0,
  is_lost INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE leads (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  stage_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'new',
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL DEFAULT '',
  email TEXT,
  phone TEXT,
  partner_first_name TEXT,
  partner_last_name TEXT,
  wedding_date DATETIME,
  venue TEXT,
  wedding_type TEXT,
  estimated_budget NUMERIC,
  estimated_guests INTEGER,
  source TEXT,
  tags TEXT,
  notes TEXT,
  converted_to_client_id TEXT,
  converted_at DATETIME,
  created_by TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME
);`,
	`CREATE TABLE pipeline_activities (
  id TEXT PRIMARY KEY,
  company_id TEXT NOT NULL,
  lead_id TEXT NOT NULL,
  actor_user_id TEXT,
  type TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  metadata TEXT,
  created_at DATETIME
);`,
}
