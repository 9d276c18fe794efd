/*
 * @module service/etl/loaders/database_loader
 * @description 关系型数据库加载器，在单事务内按依赖顺序批量插入或更新球队、球员、比赛
 * @architecture 数据访问层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 开启事务 -> 球队upsert -> 球员upsert -> 比赛upsert -> 提交或回滚
 * @rules 主键冲突时更新全部列，任一批次失败则整体回滚
 * @dependencies gorm.io/gorm
 * @refs service/etl/pipeline/etl_pipeline.go, service/etl/quality/database_quality_checker.go
 */

package loaders

import (
	"context"
	"fmt"
	"log/slog"

	"sportsdata-etl/service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DatabaseLoader 数据库加载器
type DatabaseLoader struct {
	db *gorm.DB
}

// NewDatabaseLoader 创建数据库加载器
func NewDatabaseLoader(db *gorm.DB) *DatabaseLoader {
	return &DatabaseLoader{db: db}
}

// LoadAllData 在单个事务内加载全部数据，比赛依赖球队外键，顺序不可调换
func (l *DatabaseLoader) LoadAllData(ctx context.Context, data *models.TransformedData) (*models.LoadResult, error) {
	result := &models.LoadResult{}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := l.upsertTeams(tx, data.Teams); err != nil {
			return fmt.Errorf("加载球队数据失败: %w", err)
		}
		result.TeamsLoaded = len(data.Teams)

		if err := l.upsertPlayers(tx, data.Players); err != nil {
			return fmt.Errorf("加载球员数据失败: %w", err)
		}
		result.PlayersLoaded = len(data.Players)

		if err := l.upsertGames(tx, data.Games); err != nil {
			return fmt.Errorf("加载比赛数据失败: %w", err)
		}
		result.GamesLoaded = len(data.Games)

		return nil
	})

	// 事务回滚后数据库不含本次数据，结果中保留失败前已累计的计数
	if err != nil {
		slog.Error("数据库加载失败", "error", err)
		result.Success = false
		result.ErrorMessage = err.Error()
		return result, err
	}

	result.Success = true
	slog.Info("数据库加载完成",
		"teams", result.TeamsLoaded,
		"players", result.PlayersLoaded,
		"games", result.GamesLoaded)
	return result, nil
}

func (l *DatabaseLoader) upsertTeams(tx *gorm.DB, teams []models.Team) error {
	if len(teams) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&teams).Error
}

func (l *DatabaseLoader) upsertPlayers(tx *gorm.DB, players []models.Player) error {
	if len(players) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&players).Error
}

func (l *DatabaseLoader) upsertGames(tx *gorm.DB, games []models.Game) error {
	if len(games) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&games).Error
}

// LoadTeamsOnly 单独加载球队数据
func (l *DatabaseLoader) LoadTeamsOnly(ctx context.Context, teams []models.Team) (int, error) {
	if err := l.upsertTeams(l.db.WithContext(ctx), teams); err != nil {
		return 0, fmt.Errorf("加载球队数据失败: %w", err)
	}
	return len(teams), nil
}

// LoadPlayersOnly 单独加载球员数据
func (l *DatabaseLoader) LoadPlayersOnly(ctx context.Context, players []models.Player) (int, error) {
	if err := l.upsertPlayers(l.db.WithContext(ctx), players); err != nil {
		return 0, fmt.Errorf("加载球员数据失败: %w", err)
	}
	return len(players), nil
}

// LoadGamesOnly 单独加载比赛数据
func (l *DatabaseLoader) LoadGamesOnly(ctx context.Context, games []models.Game) (int, error) {
	if err := l.upsertGames(l.db.WithContext(ctx), games); err != nil {
		return 0, fmt.Errorf("加载比赛数据失败: %w", err)
	}
	return len(games), nil
}

// GetTeamCount 查询球队总数
func (l *DatabaseLoader) GetTeamCount(ctx context.Context) (int64, error) {
	var count int64
	if err := l.db.WithContext(ctx).Model(&models.Team{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetPlayerCount 查询球员总数
func (l *DatabaseLoader) GetPlayerCount(ctx context.Context) (int64, error) {
	var count int64
	if err := l.db.WithContext(ctx).Model(&models.Player{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetGameCount 查询比赛总数
func (l *DatabaseLoader) GetGameCount(ctx context.Context) (int64, error) {
	var count int64
	if err := l.db.WithContext(ctx).Model(&models.Game{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ClearAllData 清空全部数据，按外键依赖的逆序删除
func (l *DatabaseLoader) ClearAllData(ctx context.Context) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Game{}).Error; err != nil {
			return fmt.Errorf("清空比赛数据失败: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.Player{}).Error; err != nil {
			return fmt.Errorf("清空球员数据失败: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.Team{}).Error; err != nil {
			return fmt.Errorf("清空球队数据失败: %w", err)
		}
		slog.Info("已清空全部体育数据")
		return nil
	})
}
