/*
 * @module service/etl/transformers/cleaner_test
 * @description 数据清洗器测试
 * @architecture 单元测试
 */

package transformers

import (
	"testing"

	"sportsdata-etl/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataCleanerCleanTeams(t *testing.T) {
	cleaner := NewDataCleaner()

	t.Run("按主键去重保留首次出现的记录", func(t *testing.T) {
		teams := []models.Team{
			{TeamID: "T001", Name: "Lakers", City: "Los Angeles", League: "NBA"},
			{TeamID: "T001", Name: "Lakers Duplicate", City: "LA", League: "NBA"},
			{TeamID: "T002", Name: "Celtics", City: "Boston", League: "NBA"},
		}

		cleaned := cleaner.CleanTeams(teams)

		require.Len(t, cleaned, 2)
		assert.Equal(t, "Lakers", cleaned[0].Name)
		assert.Equal(t, "T002", cleaned[1].TeamID)
	})

	t.Run("折叠字段内的连续空白", func(t *testing.T) {
		teams := []models.Team{
			{TeamID: "T001", Name: "  Los   Angeles   Lakers  ", City: "Los\tAngeles", League: "NBA"},
		}

		cleaned := cleaner.CleanTeams(teams)

		require.Len(t, cleaned, 1)
		assert.Equal(t, "Los Angeles Lakers", cleaned[0].Name)
		assert.Equal(t, "Los Angeles", cleaned[0].City)
	})

	t.Run("全空白字段清洗后为空", func(t *testing.T) {
		teams := []models.Team{
			{TeamID: "T001", Name: "Lakers", City: "Los Angeles", League: "NBA", Venue: "   "},
		}

		cleaned := cleaner.CleanTeams(teams)

		require.Len(t, cleaned, 1)
		assert.Empty(t, cleaned[0].Venue)
	})

	t.Run("空批次返回空列表", func(t *testing.T) {
		cleaned := cleaner.CleanTeams(nil)

		assert.NotNil(t, cleaned)
		assert.Empty(t, cleaned)
	})
}

func TestDataCleanerCleanPlayers(t *testing.T) {
	cleaner := NewDataCleaner()

	t.Run("去重并清洗姓名与位置", func(t *testing.T) {
		players := []models.Player{
			{PlayerID: "P001", Name: " LeBron   James ", TeamID: "T001", Position: " Forward ", Age: 39},
			{PlayerID: "P001", Name: "LeBron James Duplicate", TeamID: "T001", Position: "Forward", Age: 39},
		}

		cleaned := cleaner.CleanPlayers(players)

		require.Len(t, cleaned, 1)
		assert.Equal(t, "LeBron James", cleaned[0].Name)
		assert.Equal(t, "Forward", cleaned[0].Position)
	})

	t.Run("清洗不改变统计数据", func(t *testing.T) {
		players := []models.Player{
			{PlayerID: "P001", Name: "LeBron James", TeamID: "T001", Position: "Forward", Age: 39,
				Statistics: models.PlayerStatistics{GamesPlayed: 71, Points: 1822, Assists: 589}},
		}

		cleaned := cleaner.CleanPlayers(players)

		require.Len(t, cleaned, 1)
		assert.Equal(t, 1822, cleaned[0].Statistics.Points)
	})
}

func TestDataCleanerCleanGames(t *testing.T) {
	cleaner := NewDataCleaner()

	t.Run("去重并清洗状态字段", func(t *testing.T) {
		games := []models.Game{
			{GameID: "G001", HomeTeamID: "T001", AwayTeamID: "T002", Status: " Final "},
			{GameID: "G001", HomeTeamID: "T001", AwayTeamID: "T002", Status: "Final"},
			{GameID: "G002", HomeTeamID: "T003", AwayTeamID: "T004", Status: "Scheduled"},
		}

		cleaned := cleaner.CleanGames(games)

		require.Len(t, cleaned, 2)
		assert.Equal(t, "Final", cleaned[0].Status)
	})

	t.Run("清洗具有幂等性", func(t *testing.T) {
		games := []models.Game{
			{GameID: "G001", HomeTeamID: "T001", AwayTeamID: "T002", Status: "  Final  Status "},
		}

		once := cleaner.CleanGames(games)
		twice := cleaner.CleanGames(once)

		assert.Equal(t, once, twice)
	})
}
