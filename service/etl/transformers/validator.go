/*
 * @module service/etl/transformers/validator
 * @description 批量数据验证器，对整批记录应用验证规则并保留零错误记录
 * @architecture 分层架构 - 数据验证层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 批量记录输入 -> 逐条验证 -> 有效子集输出 -> 汇总计数记录
 * @rules 带警告的记录保留，带错误的记录剔除；验证过程永不返回错误
 * @dependencies log/slog, sportsdata-etl/service/models
 * @refs service/etl/transformers/validation_rules.go
 */

package transformers

import (
	"log/slog"

	"sportsdata-etl/service/models"
)

// DataValidator 批量数据验证器
type DataValidator struct {
	rules *ValidationRules
}

// NewDataValidator 创建批量数据验证器实例
func NewDataValidator() *DataValidator {
	return &DataValidator{
		rules: NewValidationRules(),
	}
}

// ValidateTeams 验证球队批次，返回零错误的记录子集
func (v *DataValidator) ValidateTeams(teams []models.Team) []models.Team {
	validTeams := make([]models.Team, 0)
	if len(teams) == 0 {
		slog.Info("没有需要验证的球队")
		return validTeams
	}

	slog.Info("开始验证球队批次", "count", len(teams))

	errorCount := 0
	warningCount := 0
	for i := range teams {
		result := v.rules.ValidateTeam(&teams[i])
		if result.Valid {
			validTeams = append(validTeams, teams[i])
			if result.HasWarnings() {
				warningCount += result.WarningCount()
				slog.Warn("球队记录存在警告", "teamId", teams[i].TeamID, "warnings", result.Warnings)
			}
		} else {
			errorCount += result.ErrorCount()
			slog.Error("球队记录验证失败", "teamId", teams[i].TeamID, "errors", result.Errors)
		}
	}

	slog.Info("球队验证完成", "valid", len(validTeams), "errors", errorCount, "warnings", warningCount)
	return validTeams
}

// ValidatePlayers 验证球员批次，返回零错误的记录子集
func (v *DataValidator) ValidatePlayers(players []models.Player) []models.Player {
	validPlayers := make([]models.Player, 0)
	if len(players) == 0 {
		slog.Info("没有需要验证的球员")
		return validPlayers
	}

	slog.Info("开始验证球员批次", "count", len(players))

	errorCount := 0
	warningCount := 0
	for i := range players {
		result := v.rules.ValidatePlayer(&players[i])
		if result.Valid {
			validPlayers = append(validPlayers, players[i])
			if result.HasWarnings() {
				warningCount += result.WarningCount()
				slog.Warn("球员记录存在警告", "playerId", players[i].PlayerID, "warnings", result.Warnings)
			}
		} else {
			errorCount += result.ErrorCount()
			slog.Error("球员记录验证失败", "playerId", players[i].PlayerID, "errors", result.Errors)
		}
	}

	slog.Info("球员验证完成", "valid", len(validPlayers), "errors", errorCount, "warnings", warningCount)
	return validPlayers
}

// ValidateGames 验证比赛批次，返回零错误的记录子集
func (v *DataValidator) ValidateGames(games []models.Game) []models.Game {
	validGames := make([]models.Game, 0)
	if len(games) == 0 {
		slog.Info("没有需要验证的比赛")
		return validGames
	}

	slog.Info("开始验证比赛批次", "count", len(games))

	errorCount := 0
	warningCount := 0
	for i := range games {
		result := v.rules.ValidateGame(&games[i])
		if result.Valid {
			validGames = append(validGames, games[i])
			if result.HasWarnings() {
				warningCount += result.WarningCount()
				slog.Warn("比赛记录存在警告", "gameId", games[i].GameID, "warnings", result.Warnings)
			}
		} else {
			errorCount += result.ErrorCount()
			slog.Error("比赛记录验证失败", "gameId", games[i].GameID, "errors", result.Errors)
		}
	}

	slog.Info("比赛验证完成", "valid", len(validGames), "errors", errorCount, "warnings", warningCount)
	return validGames
}
