/*
 * @module service/models/sports
 * @description 体育数据实体模型定义，包括球队、球员、比赛三类核心实体
 * @architecture 分层架构 - 实体模型
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 抽取 -> 验证 -> 清洗 -> 标准化 -> 加载
 * @rules 实体主键在抽取后不可变更，球员统计数据缺省为零而非空
 * @dependencies gorm.io/gorm, time
 * @refs service/etl/extractors, service/etl/transformers
 */

package models

import (
	"time"
)

// Team 球队实体
type Team struct {
	TeamID  string     `json:"teamId" gorm:"column:team_id;primaryKey;size:50" example:"LAL"`
	Name    string     `json:"name" gorm:"not null;size:100" example:"Los Angeles Lakers"`
	City    string     `json:"city" gorm:"not null;size:50" example:"Los Angeles"`
	League  string     `json:"league" gorm:"not null;size:50" example:"NBA"`
	Founded *time.Time `json:"founded,omitempty" gorm:"type:date"`
	Venue   string     `json:"venue,omitempty" gorm:"size:100" example:"Crypto.com Arena"`
}

// TableName 指定球队表名
func (Team) TableName() string {
	return "teams"
}

// PlayerStatistics 球员统计数据，所有字段非负且缺省为零
type PlayerStatistics struct {
	GamesPlayed int `json:"gamesPlayed" gorm:"column:games_played;not null;default:0" example:"72"`
	Points      int `json:"points" gorm:"not null;default:0" example:"1800"`
	Assists     int `json:"assists" gorm:"not null;default:0" example:"520"`
}

// Player 球员实体，通过TeamID弱引用球队（写入时不做外键校验）
type Player struct {
	PlayerID   string           `json:"playerId" gorm:"column:player_id;primaryKey;size:50" example:"P001"`
	Name       string           `json:"name" gorm:"not null;size:100" example:"LeBron James"`
	TeamID     string           `json:"teamId" gorm:"column:team_id;not null;size:50;index" example:"LAL"`
	Position   string           `json:"position" gorm:"not null;size:50" example:"Small Forward"`
	Age        int              `json:"age" gorm:"not null" example:"39"`
	Statistics PlayerStatistics `json:"statistics" gorm:"embedded"`
}

// TableName 指定球员表名
func (Player) TableName() string {
	return "players"
}

// 比赛状态受控枚举
const (
	GameStatusScheduled = "Scheduled"
	GameStatusLive      = "Live"
	GameStatusFinal     = "Final"
	GameStatusPostponed = "Postponed"
	GameStatusCancelled = "Cancelled"
)

// Game 比赛实体，主客队不得相同，比分仅在比赛结束后存在
type Game struct {
	GameID     string    `json:"gameId" gorm:"column:game_id;primaryKey;size:50" example:"G001"`
	HomeTeamID string    `json:"homeTeamId" gorm:"column:home_team_id;not null;size:50;index" example:"LAL"`
	AwayTeamID string    `json:"awayTeamId" gorm:"column:away_team_id;not null;size:50;index" example:"GSW"`
	Date       time.Time `json:"date" gorm:"not null"`
	HomeScore  *int      `json:"homeScore,omitempty" gorm:"column:home_score"`
	AwayScore  *int      `json:"awayScore,omitempty" gorm:"column:away_score"`
	Status     string    `json:"status" gorm:"not null;size:20" example:"Final"`
}

// TableName 指定比赛表名
func (Game) TableName() string {
	return "games"
}
