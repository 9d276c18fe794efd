/*
 * @module service/etl/loaders/database_loader_test
 * @description 数据库加载器测试
 * @architecture 单元测试
 */

package loaders

import (
	"context"
	"testing"
	"time"

	"sportsdata-etl/service/models"
	"sportsdata-etl/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransformedData() *models.TransformedData {
	founded := time.Date(1947, 1, 1, 0, 0, 0, 0, time.UTC)
	homeScore := 102
	awayScore := 98

	return &models.TransformedData{
		Teams: []models.Team{
			{TeamID: "T001", Name: "Lakers", City: "Los Angeles", League: "NBA", Founded: &founded, Venue: "Crypto Arena"},
			{TeamID: "T002", Name: "Celtics", City: "Boston", League: "NBA", Venue: "TD Garden"},
		},
		Players: []models.Player{
			{PlayerID: "P001", Name: "LeBron James", TeamID: "T001", Position: "Forward", Age: 39,
				Statistics: models.PlayerStatistics{GamesPlayed: 71, Points: 1822, Assists: 589}},
		},
		Games: []models.Game{
			{GameID: "G001", HomeTeamID: "T001", AwayTeamID: "T002",
				Date: time.Date(2024, 3, 15, 19, 30, 0, 0, time.UTC),
				HomeScore: &homeScore, AwayScore: &awayScore, Status: models.GameStatusFinal},
		},
	}
}

func TestDatabaseLoaderLoadAllData(t *testing.T) {
	testDB := testutil.NewTestDB()
	defer testDB.Close()

	loader := NewDatabaseLoader(testDB.DB)
	ctx := context.Background()

	t.Run("加载全部数据并返回计数", func(t *testing.T) {
		defer testDB.CleanDB()

		result, err := loader.LoadAllData(ctx, sampleTransformedData())

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, 2, result.TeamsLoaded)
		assert.Equal(t, 1, result.PlayersLoaded)
		assert.Equal(t, 1, result.GamesLoaded)

		teamCount, err := loader.GetTeamCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), teamCount)
	})

	t.Run("重复加载更新而非插入", func(t *testing.T) {
		defer testDB.CleanDB()

		data := sampleTransformedData()
		_, err := loader.LoadAllData(ctx, data)
		require.NoError(t, err)

		data.Teams[0].Venue = "New Arena"
		result, err := loader.LoadAllData(ctx, data)
		require.NoError(t, err)
		assert.True(t, result.Success)

		teamCount, err := loader.GetTeamCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), teamCount)

		var team models.Team
		require.NoError(t, testDB.DB.First(&team, "team_id = ?", "T001").Error)
		assert.Equal(t, "New Arena", team.Venue)
	})

	t.Run("空批次加载成功且计数为零", func(t *testing.T) {
		defer testDB.CleanDB()

		result, err := loader.LoadAllData(ctx, &models.TransformedData{})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, 0, result.TeamsLoaded)
	})
}

func TestDatabaseLoaderLoadAllDataFailure(t *testing.T) {
	testDB := testutil.NewTestDB()
	defer testDB.Close()

	loader := NewDatabaseLoader(testDB.DB)
	ctx := context.Background()

	t.Run("加载失败时回滚事务并保留失败前的计数", func(t *testing.T) {
		// 删除比赛表使第三步写入失败
		require.NoError(t, testDB.DB.Migrator().DropTable(&models.Game{}))

		result, err := loader.LoadAllData(ctx, sampleTransformedData())

		require.Error(t, err)
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.ErrorMessage)
		assert.Equal(t, 2, result.TeamsLoaded)
		assert.Equal(t, 1, result.PlayersLoaded)
		assert.Zero(t, result.GamesLoaded)

		// 事务回滚，球队与球员数据未落库
		teamCount, countErr := loader.GetTeamCount(ctx)
		require.NoError(t, countErr)
		assert.Zero(t, teamCount)
	})
}

func TestDatabaseLoaderSingleKindLoads(t *testing.T) {
	testDB := testutil.NewTestDB()
	defer testDB.Close()

	loader := NewDatabaseLoader(testDB.DB)
	ctx := context.Background()

	t.Run("单独加载球队", func(t *testing.T) {
		defer testDB.CleanDB()

		count, err := loader.LoadTeamsOnly(ctx, sampleTransformedData().Teams)

		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("单独加载球员与比赛", func(t *testing.T) {
		defer testDB.CleanDB()

		data := sampleTransformedData()
		_, err := loader.LoadTeamsOnly(ctx, data.Teams)
		require.NoError(t, err)

		playerCount, err := loader.LoadPlayersOnly(ctx, data.Players)
		require.NoError(t, err)
		assert.Equal(t, 1, playerCount)

		gameCount, err := loader.LoadGamesOnly(ctx, data.Games)
		require.NoError(t, err)
		assert.Equal(t, 1, gameCount)
	})
}

func TestDatabaseLoaderClearAllData(t *testing.T) {
	testDB := testutil.NewTestDB()
	defer testDB.Close()

	loader := NewDatabaseLoader(testDB.DB)
	ctx := context.Background()

	t.Run("清空后各表计数为零", func(t *testing.T) {
		_, err := loader.LoadAllData(ctx, sampleTransformedData())
		require.NoError(t, err)

		require.NoError(t, loader.ClearAllData(ctx))

		teamCount, err := loader.GetTeamCount(ctx)
		require.NoError(t, err)
		assert.Zero(t, teamCount)

		playerCount, err := loader.GetPlayerCount(ctx)
		require.NoError(t, err)
		assert.Zero(t, playerCount)

		gameCount, err := loader.GetGameCount(ctx)
		require.NoError(t, err)
		assert.Zero(t, gameCount)
	})
}
