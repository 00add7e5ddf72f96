// Package repository hides entity storage behind per-entity interfaces with a
// volatile in-memory backend and a gorm backend for mysql, postgres and sqlite.
package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned when the referenced record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key is already taken
	ErrDuplicate = errors.New("duplicate record")
)

// MutateFunc changes a record in place. Returning an error aborts the change.
type MutateFunc[T any] func(record *T) error

// translateError 将 gorm 错误转换为仓储层错误
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// lockForUpdate 为读改写事务加行锁，sqlite 不支持 FOR UPDATE（库级写锁已足够）
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// likePattern 构造大小写不敏感的包含匹配模式，使用 '!' 作为转义符
func likePattern(query string) string {
	replacer := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + replacer.Replace(strings.ToLower(query)) + "%"
}
