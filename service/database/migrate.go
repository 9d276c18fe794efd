/*
 * @module service/database/migrate
 * @description 数据库迁移模块，负责创建和更新数据库表结构
 * @architecture 数据访问层 - 迁移管理
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 应用启动时执行数据库迁移
 * @rules 确保数据库结构与模型定义保持一致，球队表先于球员与比赛表迁移
 * @dependencies sportsdata-etl/service/models, gorm.io/gorm
 * @refs service/init.go
 */

package database

import (
	"log"

	"sportsdata-etl/service/models"

	"gorm.io/gorm"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate(db *gorm.DB) error {
	log.Println("开始数据库迁移...")

	// 球员与比赛表通过外键依赖球队表
	err := db.AutoMigrate(
		&models.Team{},
		&models.Player{},
		&models.Game{},
	)
	if err != nil {
		return err
	}

	log.Println("数据库迁移完成")
	return nil
}
