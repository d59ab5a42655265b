package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"uniqueIndex"`
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
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

	if err := conn.AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	client, err := Wrap(conn)
	if err != nil {
		t.Fatalf("wrap failed: %v", err)
	}
	return client
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	client := newTestClient(t)
	db := client.DB()

	ctx := context.Background()
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	var count int64
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return an error")
	}
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed after rollback: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to leave 1 record, got %d", count)
	}
}

func TestWrap_AssignsUUIDs(t *testing.T) {
	client := newTestClient(t)

	single := testModel{Name: "single"}
	if err := client.DB().Create(&single).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if single.ID == uuid.Nil {
		t.Fatal("expected id to be assigned")
	}

	preset := uuid.New()
	batch := []testModel{{Name: "a"}, {ID: preset, Name: "b"}}
	if err := client.DB().Create(&batch).Error; err != nil {
		t.Fatalf("batch create failed: %v", err)
	}
	if batch[0].ID == uuid.Nil {
		t.Fatal("expected batch id to be assigned")
	}
	if batch[1].ID != preset {
		t.Fatalf("expected preset id to be kept, got %s", batch[1].ID)
	}

	// registering twice must not fail
	if _, err := Wrap(client.DB()); err != nil {
		t.Fatalf("second wrap failed: %v", err)
	}
}

func TestWithConn_UsesSingleConnection(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	err := client.WithConn(ctx, func(conn *gorm.DB) error {
		if err := conn.Exec("CREATE TEMP TABLE scratch (v INTEGER)").Error; err != nil {
			return err
		}
		if err := conn.Exec("INSERT INTO scratch (v) VALUES (1)").Error; err != nil {
			return err
		}
		var n int64
		if err := conn.Raw("SELECT COUNT(*) FROM scratch").Row().Scan(&n); err != nil {
			return err
		}
		if n != 1 {
			return fmt.Errorf("expected 1 row in temp table, got %d", n)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithConn failed: %v", err)
	}
}

func TestPing(t *testing.T) {
	client := newTestClient(t)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
	if client.Dialect() != DialectSQLite {
		t.Fatalf("unexpected dialect %q", client.Dialect())
	}
}

func TestIsUniqueViolation(t *testing.T) {
	client := newTestClient(t)
	if err := client.DB().Create(&testModel{Name: "dup"}).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}
	err := client.DB().Create(&testModel{Name: "dup"}).Error
	if !IsUniqueViolation(err, "") {
		t.Fatalf("expected sqlite unique violation, got %v", err)
	}

	pgErr := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_external_id_key"})
	if !IsUniqueViolation(pgErr, "users_external_id_key") {
		t.Fatal("expected pgconn unique violation")
	}
	if IsUniqueViolation(pgErr, "companies_subdomain_key") {
		t.Fatal("constraint name should be matched")
	}
	if !IsUniqueViolation(&pq.Error{Code: "23505"}, "") {
		t.Fatal("expected pq unique violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Fatal("foreign key violation is not a unique violation")
	}
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil is never a violation")
	}
}
