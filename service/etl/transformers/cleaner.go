/*
 * @module service/etl/transformers/cleaner
 * @description 数据清洗器，按主键去重并规范化自由文本字段中的空白
 * @architecture 分层架构 - 数据清洗层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 批量记录输入 -> 主键去重 -> 字段清洗 -> 清洗后批次输出
 * @rules 去重保留首次出现的记录；全空白字段清洗后视为缺失；清洗保持首见顺序
 * @dependencies log/slog, strings, sportsdata-etl/service/models
 * @refs service/etl/transformers/standardizer.go
 */

package transformers

import (
	"log/slog"
	"strings"

	"sportsdata-etl/service/models"
)

// DataCleaner 数据清洗器
type DataCleaner struct{}

// NewDataCleaner 创建数据清洗器实例
func NewDataCleaner() *DataCleaner {
	return &DataCleaner{}
}

// CleanTeams 清洗球队批次
func (c *DataCleaner) CleanTeams(teams []models.Team) []models.Team {
	cleanedTeams := make([]models.Team, 0)
	if len(teams) == 0 {
		slog.Info("没有需要清洗的球队")
		return cleanedTeams
	}

	slog.Info("开始清洗球队批次", "count", len(teams))

	seen := make(map[string]struct{})
	duplicateCount := 0
	for _, team := range teams {
		if _, exists := seen[team.TeamID]; exists {
			duplicateCount++
			slog.Debug("发现并移除重复球队", "teamId", team.TeamID)
			continue
		}
		seen[team.TeamID] = struct{}{}
		cleanedTeams = append(cleanedTeams, c.cleanTeam(team))
	}

	slog.Info("球队清洗完成", "cleaned", len(cleanedTeams), "duplicates", duplicateCount)
	return cleanedTeams
}

func (c *DataCleaner) cleanTeam(team models.Team) models.Team {
	return models.Team{
		TeamID:  team.TeamID,
		Name:    cleanStringField(team.Name),
		City:    cleanStringField(team.City),
		League:  cleanStringField(team.League),
		Founded: team.Founded,
		Venue:   cleanStringField(team.Venue),
	}
}

// CleanPlayers 清洗球员批次
func (c *DataCleaner) CleanPlayers(players []models.Player) []models.Player {
	cleanedPlayers := make([]models.Player, 0)
	if len(players) == 0 {
		slog.Info("没有需要清洗的球员")
		return cleanedPlayers
	}

	slog.Info("开始清洗球员批次", "count", len(players))

	seen := make(map[string]struct{})
	duplicateCount := 0
	for _, player := range players {
		if _, exists := seen[player.PlayerID]; exists {
			duplicateCount++
			slog.Debug("发现并移除重复球员", "playerId", player.PlayerID)
			continue
		}
		seen[player.PlayerID] = struct{}{}
		cleanedPlayers = append(cleanedPlayers, c.cleanPlayer(player))
	}

	slog.Info("球员清洗完成", "cleaned", len(cleanedPlayers), "duplicates", duplicateCount)
	return cleanedPlayers
}

func (c *DataCleaner) cleanPlayer(player models.Player) models.Player {
	return models.Player{
		PlayerID:   player.PlayerID,
		Name:       cleanStringField(player.Name),
		TeamID:     player.TeamID,
		Position:   cleanStringField(player.Position),
		Age:        player.Age,
		Statistics: player.Statistics,
	}
}

// CleanGames 清洗比赛批次
func (c *DataCleaner) CleanGames(games []models.Game) []models.Game {
	cleanedGames := make([]models.Game, 0)
	if len(games) == 0 {
		slog.Info("没有需要清洗的比赛")
		return cleanedGames
	}

	slog.Info("开始清洗比赛批次", "count", len(games))

	seen := make(map[string]struct{})
	duplicateCount := 0
	for _, game := range games {
		if _, exists := seen[game.GameID]; exists {
			duplicateCount++
			slog.Debug("发现并移除重复比赛", "gameId", game.GameID)
			continue
		}
		seen[game.GameID] = struct{}{}
		cleanedGames = append(cleanedGames, c.cleanGame(game))
	}

	slog.Info("比赛清洗完成", "cleaned", len(cleanedGames), "duplicates", duplicateCount)
	return cleanedGames
}

func (c *DataCleaner) cleanGame(game models.Game) models.Game {
	return models.Game{
		GameID:     game.GameID,
		HomeTeamID: game.HomeTeamID,
		AwayTeamID: game.AwayTeamID,
		Date:       game.Date,
		HomeScore:  game.HomeScore,
		AwayScore:  game.AwayScore,
		Status:     cleanStringField(game.Status),
	}
}

// cleanStringField 去除首尾空白并将内部连续空白折叠为单个空格，全空白结果视为缺失
func cleanStringField(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
