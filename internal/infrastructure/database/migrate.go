package database

import (
	"fmt"

	"github.com/aid4sure/VeganEcosystem/internal/domain/models"
	Logger "github.com/aid4sure/VeganEcosystem/pkg/logger"

	"gorm.io/gorm"
)

// allModels 参与迁移的全部模型
func allModels() []interface{} {
	return []interface{}{
		&models.Admin{},
		&models.Restaurant{},
		&models.Review{},
		&models.Reservation{},
		&models.GiftCard{},
	}
}

// Migrate 根据迁移模式执行数据库迁移
//
// "drop" 删除并重建所有表，其余取值执行 AutoMigrate（只添加新列和新表）。
func Migrate(db *gorm.DB, mode string) error {
	if mode == "drop" {
		Logger.Warning("在drop模式下运行，将删除并重建所有表，所有数据将丢失")
		return dropAndRecreateTables(db)
	}
	return autoMigrate(db)
}

// autoMigrate 自动迁移所有模型
func autoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	Logger.Info("数据库迁移完成")
	return nil
}

// dropAndRecreateTables 删除并重建所有表
func dropAndRecreateTables(db *gorm.DB) error {
	for _, m := range allModels() {
		if err := db.Migrator().DropTable(m); err != nil {
			return fmt.Errorf("drop table for %T: %w", m, err)
		}
	}
	return autoMigrate(db)
}
