/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, time
 * @refs service/models
 */

package testutil

import (
	"fmt"
	"time"

	"sportsdata-etl/service/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建测试数据库
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&models.Team{},
		&models.Player{},
		&models.Game{},
	)
	if err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &TestDB{DB: db}
}

// CleanDB 清理数据库
func (tdb *TestDB) CleanDB() {
	// 按外键依赖的逆序清空所有表
	tables := []string{
		"games",
		"players",
		"teams",
	}

	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

// Close 关闭数据库连接
func (tdb *TestDB) Close() {
	if db, err := tdb.DB.DB(); err == nil {
		db.Close()
	}
}

// TestDataFactory 测试数据工厂
type TestDataFactory struct {
	DB *gorm.DB
}

// NewTestDataFactory 创建测试数据工厂
func NewTestDataFactory(db *gorm.DB) *TestDataFactory {
	return &TestDataFactory{DB: db}
}

// TeamOption 球队选项函数类型
type TeamOption func(*models.Team)

// CreateTeam 创建测试球队
func (f *TestDataFactory) CreateTeam(teamID string, opts ...TeamOption) *models.Team {
	founded := time.Date(1946, 6, 6, 0, 0, 0, 0, time.UTC)
	team := &models.Team{
		TeamID:  teamID,
		Name:    "测试球队" + teamID,
		City:    "Los Angeles",
		League:  "NBA",
		Founded: &founded,
		Venue:   "Test Arena",
	}

	// 应用选项
	for _, opt := range opts {
		opt(team)
	}

	err := f.DB.Create(team).Error
	if err != nil {
		panic(fmt.Sprintf("failed to create test team: %v", err))
	}

	return team
}

// PlayerOption 球员选项函数类型
type PlayerOption func(*models.Player)

// CreatePlayer 创建测试球员
func (f *TestDataFactory) CreatePlayer(playerID, teamID string, opts ...PlayerOption) *models.Player {
	player := &models.Player{
		PlayerID: playerID,
		Name:     "测试球员" + playerID,
		TeamID:   teamID,
		Position: "Guard",
		Age:      25,
		Statistics: models.PlayerStatistics{
			GamesPlayed: 60,
			Points:      1200,
			Assists:     300,
		},
	}

	// 应用选项
	for _, opt := range opts {
		opt(player)
	}

	err := f.DB.Create(player).Error
	if err != nil {
		panic(fmt.Sprintf("failed to create test player: %v", err))
	}

	return player
}

// GameOption 比赛选项函数类型
type GameOption func(*models.Game)

// CreateGame 创建测试比赛
func (f *TestDataFactory) CreateGame(gameID, homeTeamID, awayTeamID string, opts ...GameOption) *models.Game {
	homeScore := 102
	awayScore := 98
	game := &models.Game{
		GameID:     gameID,
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
		Date:       time.Date(2024, 3, 15, 19, 30, 0, 0, time.UTC),
		HomeScore:  &homeScore,
		AwayScore:  &awayScore,
		Status:     models.GameStatusFinal,
	}

	// 应用选项
	for _, opt := range opts {
		opt(game)
	}

	err := f.DB.Create(game).Error
	if err != nil {
		panic(fmt.Sprintf("failed to create test game: %v", err))
	}

	return game
}
