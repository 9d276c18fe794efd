/*
 * @module service/etl/transformers/standardizer
 * @description 数据标准化器，受控词表字段归一到规范标签，专有名词字段转为标题格式
 * @architecture 分层架构 - 数据标准化层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 批量记录输入 -> 词表映射 -> 标题格式化 -> 标准化批次输出
 * @rules 先精确匹配后大小写不敏感匹配；未命中词表的取值原样保留，标准化永不丢弃记录
 * @dependencies golang.org/x/text/cases, sportsdata-etl/service/models
 * @refs service/etl/transformers/cleaner.go
 */

package transformers

import (
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"sportsdata-etl/service/models"
)

// 受控词表映射，进程启动时构建一次，之后只读
var (
	positionMapping = map[string]string{
		"PG": "Point Guard", "Point Guard": "Point Guard",
		"SG": "Shooting Guard", "Shooting Guard": "Shooting Guard",
		"G": "Guard", "Guard": "Guard",
		"SF": "Small Forward", "Small Forward": "Small Forward",
		"PF": "Power Forward", "Power Forward": "Power Forward",
		"F": "Forward", "Forward": "Forward",
		"C": "Center", "Center": "Center",
	}

	leagueMapping = map[string]string{
		"NBA": "NBA", "National Basketball Association": "NBA",
		"WNBA": "WNBA", "Women's National Basketball Association": "WNBA",
		"NCAA": "NCAA", "College Basketball": "NCAA",
	}

	statusMapping = map[string]string{
		"Scheduled": models.GameStatusScheduled, "SCHEDULED": models.GameStatusScheduled, "upcoming": models.GameStatusScheduled,
		"Live": models.GameStatusLive, "LIVE": models.GameStatusLive, "in-progress": models.GameStatusLive,
		"Final": models.GameStatusFinal, "FINAL": models.GameStatusFinal, "completed": models.GameStatusFinal, "finished": models.GameStatusFinal,
		"Postponed": models.GameStatusPostponed, "POSTPONED": models.GameStatusPostponed, "delayed": models.GameStatusPostponed,
		"Cancelled": models.GameStatusCancelled, "CANCELLED": models.GameStatusCancelled, "canceled": models.GameStatusCancelled,
	}
)

// DataStandardizer 数据标准化器
type DataStandardizer struct {
	titleCaser cases.Caser
}

// NewDataStandardizer 创建数据标准化器实例
func NewDataStandardizer() *DataStandardizer {
	return &DataStandardizer{
		titleCaser: cases.Title(language.English),
	}
}

// StandardizeTeams 标准化球队批次
func (s *DataStandardizer) StandardizeTeams(teams []models.Team) []models.Team {
	standardizedTeams := make([]models.Team, 0)
	if len(teams) == 0 {
		slog.Info("没有需要标准化的球队")
		return standardizedTeams
	}

	slog.Info("开始标准化球队批次", "count", len(teams))

	for _, team := range teams {
		standardizedTeams = append(standardizedTeams, models.Team{
			TeamID:  team.TeamID,
			Name:    s.standardizeName(team.Name),
			City:    s.standardizeName(team.City),
			League:  s.standardizeByMapping(team.League, leagueMapping, "league"),
			Founded: team.Founded,
			Venue:   s.standardizeName(team.Venue),
		})
	}

	slog.Info("球队标准化完成", "count", len(standardizedTeams))
	return standardizedTeams
}

// StandardizePlayers 标准化球员批次
func (s *DataStandardizer) StandardizePlayers(players []models.Player) []models.Player {
	standardizedPlayers := make([]models.Player, 0)
	if len(players) == 0 {
		slog.Info("没有需要标准化的球员")
		return standardizedPlayers
	}

	slog.Info("开始标准化球员批次", "count", len(players))

	for _, player := range players {
		standardizedPlayers = append(standardizedPlayers, models.Player{
			PlayerID:   player.PlayerID,
			Name:       s.standardizeName(player.Name),
			TeamID:     player.TeamID,
			Position:   s.standardizeByMapping(player.Position, positionMapping, "position"),
			Age:        player.Age,
			Statistics: player.Statistics,
		})
	}

	slog.Info("球员标准化完成", "count", len(standardizedPlayers))
	return standardizedPlayers
}

// StandardizeGames 标准化比赛批次
func (s *DataStandardizer) StandardizeGames(games []models.Game) []models.Game {
	standardizedGames := make([]models.Game, 0)
	if len(games) == 0 {
		slog.Info("没有需要标准化的比赛")
		return standardizedGames
	}

	slog.Info("开始标准化比赛批次", "count", len(games))

	for _, game := range games {
		standardizedGames = append(standardizedGames, models.Game{
			GameID:     game.GameID,
			HomeTeamID: game.HomeTeamID,
			AwayTeamID: game.AwayTeamID,
			Date:       game.Date,
			HomeScore:  game.HomeScore,
			AwayScore:  game.AwayScore,
			Status:     s.standardizeByMapping(game.Status, statusMapping, "status"),
		})
	}

	slog.Info("比赛标准化完成", "count", len(standardizedGames))
	return standardizedGames
}

// standardizeName 专有名词字段转为标题格式
func (s *DataStandardizer) standardizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return name
	}
	return s.titleCaser.String(strings.ToLower(trimmed))
}

// standardizeByMapping 受控词表归一化：先精确匹配，再大小写不敏感匹配，未命中原样保留
func (s *DataStandardizer) standardizeByMapping(value string, mapping map[string]string, fieldName string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}

	if canonical, exists := mapping[trimmed]; exists {
		return canonical
	}

	for key, canonical := range mapping {
		if strings.EqualFold(key, trimmed) {
			return canonical
		}
	}

	slog.Debug("未找到标准化映射", "field", fieldName, "value", value)
	return trimmed
}
