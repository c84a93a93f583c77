package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testModel struct {
	ID   int
	Name string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// one named in-memory database per test so rows never leak across tests
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	client := &Client{conn: db}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestWithinTx_CommitsAndRollbacks(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)

	ctx := context.Background()
	if err := uow.WithinTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	}); err != nil {
		t.Fatalf("WithinTx commit failed: %v", err)
	}

	var count int64
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	err := uow.WithinTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithinTx to return an error")
	}
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed after rollback: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to leave 1 record, got %d", count)
	}
}

func TestScopeCloseWithoutCommitRollsBack(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	ctx := context.Background()

	scope, err := uow.Begin(ctx)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if err := scope.Conn().Create(&testModel{Name: "abandoned"}).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}
	scope.Close()

	var count int64
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to discard the row, got %d", count)
	}
}

func TestScopeCommitThenCloseIsNoop(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	ctx := context.Background()

	scope, err := uow.Begin(ctx)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if err := scope.Conn().Create(&testModel{Name: "kept"}).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := scope.Commit(); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	scope.Close()

	var count int64
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected committed row to survive Close, got %d", count)
	}
}

func TestScopeSharesOneConnectionAcrossStyles(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	ctx := context.Background()

	scope, err := uow.Begin(ctx)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	defer scope.Close()

	// entity-style write and raw read through the same scope must observe
	// each other before commit
	if err := scope.Conn().Create(&testModel{Name: "visible"}).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}
	var count int64
	if err := scope.Conn().Raw("SELECT COUNT(*) FROM test_models").Scan(&count).Error; err != nil {
		t.Fatalf("raw count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("raw path should see uncommitted entity write, got %d", count)
	}
}
