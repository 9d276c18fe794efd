/*
 * @module service/etl/pipeline/etl_pipeline_test
 * @description ETL流水线端到端测试
 * @architecture 集成测试
 */

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sportsdata-etl/service/etl/loaders"
	"sportsdata-etl/service/etl/metrics"
	"sportsdata-etl/service/etl/quality"
	"sportsdata-etl/service/models"
	"sportsdata-etl/testutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const teamsCSV = `team_id,name,city,league,founded,venue
T001,  los   angeles  lakers ,los angeles,National Basketball Association,1947-01-01,Crypto Arena
T001,Lakers Duplicate,Los Angeles,NBA,1947-01-01,Crypto Arena
T002,celtics,boston,NBA,1946-06-06,TD Garden
,Missing Id,Boston,NBA,1946-06-06,TD Garden
`

const playersJSON = `{
	"players": [
		{"playerId": "P001", "name": "lebron james", "teamId": "T001", "position": "F", "age": 39,
		 "statistics": {"gamesPlayed": 71, "points": 1822, "assists": 589}},
		{"playerId": "P002", "name": "jayson tatum", "teamId": "T002", "position": "SF", "age": 26},
		{"playerId": "P003", "name": "Too Young", "teamId": "T002", "position": "PG", "age": 12}
	]
}`

const gamesXML = `<?xml version="1.0" encoding="UTF-8"?>
<games>
	<game>
		<gameId>G001</gameId>
		<homeTeamId>T001</homeTeamId>
		<awayTeamId>T002</awayTeamId>
		<date>2024-03-15 19:30:00</date>
		<homeScore>102</homeScore>
		<awayScore>98</awayScore>
		<status>completed</status>
	</game>
	<game>
		<gameId>G002</gameId>
		<homeTeamId>T002</homeTeamId>
		<awayTeamId>T002</awayTeamId>
		<date>2024-03-16 19:30:00</date>
		<status>Scheduled</status>
	</game>
</games>`

func writePipelineInputs(t *testing.T) *models.PipelineConfig {
	t.Helper()
	dir := t.TempDir()

	config := &models.PipelineConfig{
		TeamsCSVPath:    filepath.Join(dir, "teams.csv"),
		PlayersJSONPath: filepath.Join(dir, "players.json"),
		GamesXMLPath:    filepath.Join(dir, "games.xml"),
	}

	require.NoError(t, os.WriteFile(config.TeamsCSVPath, []byte(teamsCSV), 0644))
	require.NoError(t, os.WriteFile(config.PlayersJSONPath, []byte(playersJSON), 0644))
	require.NoError(t, os.WriteFile(config.GamesXMLPath, []byte(gamesXML), 0644))
	return config
}

func TestEtlPipelineExecuteFullPipeline(t *testing.T) {
	t.Run("完整流水线落地数据库", func(t *testing.T) {
		testDB := testutil.NewTestDB()
		defer testDB.Close()

		loader := loaders.NewDatabaseLoader(testDB.DB)
		checker := quality.NewDatabaseQualityChecker(testDB.DB)
		collector := metrics.NewMetricsCollector(prometheus.NewRegistry())
		etlPipeline := NewEtlPipeline(loader, checker, collector)

		config := writePipelineInputs(t)
		result := etlPipeline.ExecuteFullPipeline(context.Background(), config)

		require.NotNil(t, result)
		assert.True(t, result.Success)
		assert.NotEmpty(t, result.PipelineID)
		assert.False(t, result.EndTime.Before(result.StartTime))

		// 重复与无效记录在转换阶段被剔除
		require.NotNil(t, result.TransformedData)
		assert.Len(t, result.TransformedData.Teams, 2)
		assert.Len(t, result.TransformedData.Players, 2)
		assert.Len(t, result.TransformedData.Games, 1)

		// 标准化效果抽查
		assert.Equal(t, "Los Angeles Lakers", result.TransformedData.Teams[0].Name)
		assert.Equal(t, "NBA", result.TransformedData.Teams[0].League)
		assert.Equal(t, "Forward", result.TransformedData.Players[0].Position)
		assert.Equal(t, models.GameStatusFinal, result.TransformedData.Games[0].Status)

		require.NotNil(t, result.LoadResult)
		assert.Equal(t, 2, result.LoadResult.TeamsLoaded)
		assert.Equal(t, 2, result.LoadResult.PlayersLoaded)
		assert.Equal(t, 1, result.LoadResult.GamesLoaded)

		require.NotNil(t, result.QualityReport)
		assert.Equal(t, int64(2), result.QualityReport.TeamCount)
		assert.NotEmpty(t, result.QualityReport.QualityStatus)
	})

	t.Run("输入文件缺失时流水线不中断", func(t *testing.T) {
		testDB := testutil.NewTestDB()
		defer testDB.Close()

		loader := loaders.NewDatabaseLoader(testDB.DB)
		checker := quality.NewDatabaseQualityChecker(testDB.DB)
		collector := metrics.NewMetricsCollector(prometheus.NewRegistry())
		etlPipeline := NewEtlPipeline(loader, checker, collector)

		dir := t.TempDir()
		config := &models.PipelineConfig{
			TeamsCSVPath:    filepath.Join(dir, "missing.csv"),
			PlayersJSONPath: filepath.Join(dir, "missing.json"),
			GamesXMLPath:    filepath.Join(dir, "missing.xml"),
		}

		result := etlPipeline.ExecuteFullPipeline(context.Background(), config)

		require.NotNil(t, result)
		assert.True(t, result.Success)
		assert.Empty(t, result.TransformedData.Teams)
		assert.Equal(t, models.QualityStatusNoData, result.QualityReport.QualityStatus)
	})

	t.Run("未配置的数据源跳过对应抽取", func(t *testing.T) {
		testDB := testutil.NewTestDB()
		defer testDB.Close()

		loader := loaders.NewDatabaseLoader(testDB.DB)
		checker := quality.NewDatabaseQualityChecker(testDB.DB)
		collector := metrics.NewMetricsCollector(prometheus.NewRegistry())
		etlPipeline := NewEtlPipeline(loader, checker, collector)

		// 只配置球队数据源，球员与比赛抽取应整体跳过
		full := writePipelineInputs(t)
		config := &models.PipelineConfig{TeamsCSVPath: full.TeamsCSVPath}

		result := etlPipeline.ExecuteFullPipeline(context.Background(), config)

		require.NotNil(t, result)
		assert.True(t, result.Success)
		assert.Len(t, result.ExtractedData.Teams, 3)
		assert.Empty(t, result.ExtractedData.Players)
		assert.Empty(t, result.ExtractedData.Games)
		assert.Equal(t, 2, result.LoadResult.TeamsLoaded)
		assert.Zero(t, result.LoadResult.PlayersLoaded)
	})
}
