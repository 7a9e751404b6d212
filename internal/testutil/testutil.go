// Package testutil 测试用的数据库和数据构造
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/moongift/internal/domain/product"
	"github.com/xiebiao/moongift/internal/domain/user"
	"github.com/xiebiao/moongift/internal/infrastructure/persistence/mysql"
)

// NewDB 每个测试独立的内存SQLite,已完成迁移
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := mysql.OpenSQLite(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SeedCategory 创建分类
func SeedCategory(t testing.TB, db *gorm.DB, name string) *product.Category {
	t.Helper()
	c := &product.Category{Name: name, Slug: product.Slugify(name)}
	require.NoError(t, mysql.NewCategoryRepository(db).Create(context.Background(), c))
	return c
}

// SeedProduct 创建在售商品
func SeedProduct(t testing.TB, db *gorm.DB, category *product.Category, name, price string, discount int) *product.Product {
	t.Helper()
	p := &product.Product{
		CategoryID:         category.ID,
		Name:               name,
		Slug:               product.Slugify(name),
		Price:              decimal.RequireFromString(price),
		DiscountPercentage: discount,
		IsActive:           true,
	}
	require.NoError(t, mysql.NewProductRepository(db).Create(context.Background(), p))
	return p
}

// SeedUser 创建用户,密码哈希不可用于登录
func SeedUser(t testing.TB, db *gorm.DB, email string) *user.User {
	t.Helper()
	u := user.NewUser(email, "not-a-real-hash", "tester")
	require.NoError(t, mysql.NewUserRepository(db).Create(context.Background(), u))
	return u
}
