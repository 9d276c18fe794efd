/*
 * @module service/etl/transformers/validation_rules
 * @description 实体验证规则，逐字段和跨字段检查，产出有效性、错误与警告三元组
 * @architecture 分层架构 - 数据验证层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 单条记录输入 -> 规则应用 -> 验证结论输出
 * @rules 错误导致记录无效，警告仅作记录；受控词表外的取值产生警告而非拒绝
 * @dependencies strings, time, sportsdata-etl/service/models
 * @refs service/etl/transformers/validator.go
 */

package transformers

import (
	"fmt"
	"strings"
	"time"

	"sportsdata-etl/service/models"
)

const (
	minPlayerAge       = 16
	maxPlayerAge       = 50
	maxReasonableScore = 200
)

// 受控词表与历史边界
var (
	validPositions = map[string]struct{}{
		"Point Guard": {}, "PG": {}, "Shooting Guard": {}, "SG": {},
		"Small Forward": {}, "SF": {}, "Power Forward": {}, "PF": {},
		"Center": {}, "C": {}, "Forward": {}, "Guard": {},
	}

	validGameStatuses = map[string]struct{}{
		models.GameStatusScheduled: {}, models.GameStatusLive: {}, models.GameStatusFinal: {},
		models.GameStatusPostponed: {}, models.GameStatusCancelled: {},
	}

	earliestFoundedDate = time.Date(1850, 1, 1, 0, 0, 0, 0, time.UTC)
	earliestGameDate    = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
)

// ValidationResult 单条记录的验证结论
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// HasWarnings 是否存在警告
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// ErrorCount 错误数量
func (r *ValidationResult) ErrorCount() int {
	return len(r.Errors)
}

// WarningCount 警告数量
func (r *ValidationResult) WarningCount() int {
	return len(r.Warnings)
}

// ValidationRules 实体验证规则集
type ValidationRules struct{}

// NewValidationRules 创建验证规则集实例
func NewValidationRules() *ValidationRules {
	return &ValidationRules{}
}

// ValidateTeam 验证球队记录
func (v *ValidationRules) ValidateTeam(team *models.Team) *ValidationResult {
	var errors, warnings []string

	if team == nil {
		errors = append(errors, "Team object is null")
		return &ValidationResult{Valid: false, Errors: errors, Warnings: warnings}
	}

	if strings.TrimSpace(team.TeamID) == "" {
		errors = append(errors, "Team ID is required")
	}
	if strings.TrimSpace(team.Name) == "" {
		errors = append(errors, "Team name is required")
	}
	if strings.TrimSpace(team.City) == "" {
		errors = append(errors, "Team city is required")
	}
	if strings.TrimSpace(team.League) == "" {
		errors = append(errors, "Team league is required")
	}

	if team.Founded != nil {
		if team.Founded.After(time.Now()) {
			errors = append(errors, "Team founded date cannot be in the future")
		} else if team.Founded.Before(earliestFoundedDate) {
			warnings = append(warnings, fmt.Sprintf("Team founded date seems unusually early: %s", team.Founded.Format("2006-01-02")))
		}
	}

	if len(team.Name) > 100 {
		warnings = append(warnings, "Team name is unusually long")
	}
	if len(team.City) > 50 {
		warnings = append(warnings, "City name is unusually long")
	}

	return &ValidationResult{Valid: len(errors) == 0, Errors: errors, Warnings: warnings}
}

// ValidatePlayer 验证球员记录
func (v *ValidationRules) ValidatePlayer(player *models.Player) *ValidationResult {
	var errors, warnings []string

	if player == nil {
		errors = append(errors, "Player object is null")
		return &ValidationResult{Valid: false, Errors: errors, Warnings: warnings}
	}

	if strings.TrimSpace(player.PlayerID) == "" {
		errors = append(errors, "Player ID is required")
	}
	if strings.TrimSpace(player.Name) == "" {
		errors = append(errors, "Player name is required")
	}
	if strings.TrimSpace(player.TeamID) == "" {
		errors = append(errors, "Player team ID is required")
	}

	if position := strings.TrimSpace(player.Position); position == "" {
		errors = append(errors, "Player position is required")
	} else if _, known := validPositions[position]; !known {
		warnings = append(warnings, fmt.Sprintf("Unknown player position: %s", player.Position))
	}

	if player.Age < minPlayerAge {
		errors = append(errors, fmt.Sprintf("Player age is too young: %d", player.Age))
	} else if player.Age > maxPlayerAge {
		warnings = append(warnings, fmt.Sprintf("Player age seems unusually high: %d", player.Age))
	}

	stats := player.Statistics
	if stats.GamesPlayed < 0 {
		errors = append(errors, "Games played cannot be negative")
	}
	if stats.Points < 0 {
		errors = append(errors, "Points cannot be negative")
	}
	if stats.Assists < 0 {
		errors = append(errors, "Assists cannot be negative")
	}

	// 交叉字段检查：零出场却有得分或助攻
	if stats.GamesPlayed == 0 && (stats.Points > 0 || stats.Assists > 0) {
		warnings = append(warnings, "Player has statistics but no games played")
	}

	return &ValidationResult{Valid: len(errors) == 0, Errors: errors, Warnings: warnings}
}

// ValidateGame 验证比赛记录
func (v *ValidationRules) ValidateGame(game *models.Game) *ValidationResult {
	var errors, warnings []string

	if game == nil {
		errors = append(errors, "Game object is null")
		return &ValidationResult{Valid: false, Errors: errors, Warnings: warnings}
	}

	if strings.TrimSpace(game.GameID) == "" {
		errors = append(errors, "Game ID is required")
	}
	if strings.TrimSpace(game.HomeTeamID) == "" {
		errors = append(errors, "Home team ID is required")
	}
	if strings.TrimSpace(game.AwayTeamID) == "" {
		errors = append(errors, "Away team ID is required")
	}

	if game.Date.IsZero() {
		errors = append(errors, "Game date is required")
	} else if game.Date.Before(earliestGameDate) {
		warnings = append(warnings, fmt.Sprintf("Game date seems unusually early: %s", game.Date.Format("2006-01-02 15:04:05")))
	}

	if status := strings.TrimSpace(game.Status); status == "" {
		errors = append(errors, "Game status is required")
	} else if _, known := validGameStatuses[status]; !known {
		warnings = append(warnings, fmt.Sprintf("Unknown game status: %s", game.Status))
	}

	if game.HomeTeamID != "" && game.AwayTeamID != "" && game.HomeTeamID == game.AwayTeamID {
		errors = append(errors, "Home team and away team cannot be the same")
	}

	if game.HomeScore != nil && *game.HomeScore < 0 {
		errors = append(errors, "Home score cannot be negative")
	}
	if game.AwayScore != nil && *game.AwayScore < 0 {
		errors = append(errors, "Away score cannot be negative")
	}
	if game.HomeScore != nil && *game.HomeScore > maxReasonableScore {
		warnings = append(warnings, fmt.Sprintf("Home score seems unusually high: %d", *game.HomeScore))
	}
	if game.AwayScore != nil && *game.AwayScore > maxReasonableScore {
		warnings = append(warnings, fmt.Sprintf("Away score seems unusually high: %d", *game.AwayScore))
	}

	// 状态与比分一致性仅产生警告，不改变有效性
	switch game.Status {
	case models.GameStatusFinal:
		if game.HomeScore == nil || game.AwayScore == nil {
			warnings = append(warnings, "Final game should have both scores recorded")
		}
	case models.GameStatusScheduled:
		if game.HomeScore != nil || game.AwayScore != nil {
			warnings = append(warnings, "Scheduled game should not have scores")
		}
	}

	return &ValidationResult{Valid: len(errors) == 0, Errors: errors, Warnings: warnings}
}
