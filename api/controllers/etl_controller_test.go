/*
 * @module api/controllers/etl_controller_test
 * @description ETL控制器单元测试
 * @architecture 测试层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 测试准备 -> 请求构建 -> 响应验证
 * @rules 确保ETL管理API的正确性和完整性
 * @dependencies testing, net/http/httptest, stretchr/testify
 */

package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sportsdata-etl/service/etl/loaders"
	"sportsdata-etl/service/etl/metrics"
	"sportsdata-etl/service/etl/pipeline"
	"sportsdata-etl/service/etl/quality"
	"sportsdata-etl/service/models"
	"sportsdata-etl/service/scheduler"
	"sportsdata-etl/testutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEtlController(t *testing.T) (*EtlController, *testutil.TestDB, *loaders.DatabaseLoader) {
	t.Helper()
	testDB := testutil.NewTestDB()
	t.Cleanup(testDB.Close)

	dir := t.TempDir()
	config := &models.PipelineConfig{
		TeamsCSVPath:    filepath.Join(dir, "teams.csv"),
		PlayersJSONPath: filepath.Join(dir, "players.json"),
		GamesXMLPath:    filepath.Join(dir, "games.xml"),
	}
	teamsCSV := "team_id,name,city,league,founded,venue\n" +
		"T001,Lakers,Los Angeles,NBA,1947-01-01,Crypto Arena\n" +
		"T002,Celtics,Boston,NBA,1946-06-06,TD Garden\n"
	require.NoError(t, os.WriteFile(config.TeamsCSVPath, []byte(teamsCSV), 0644))
	require.NoError(t, os.WriteFile(config.PlayersJSONPath, []byte(`{"players": []}`), 0644))
	require.NoError(t, os.WriteFile(config.GamesXMLPath, []byte("<games></games>"), 0644))

	dbLoader := loaders.NewDatabaseLoader(testDB.DB)
	checker := quality.NewDatabaseQualityChecker(testDB.DB)
	collector := metrics.NewMetricsCollector(prometheus.NewRegistry())
	etlPipeline := pipeline.NewEtlPipeline(dbLoader, checker, collector)
	runner := scheduler.NewEtlRunner(etlPipeline, config)

	return NewEtlController(runner, checker, dbLoader, "database"), testDB, dbLoader
}

// TestExecutePipeline 测试流水线执行接口
func TestExecutePipeline(t *testing.T) {
	t.Run("无请求体时使用默认配置", func(t *testing.T) {
		controller, _, dbLoader := newTestEtlController(t)

		req := httptest.NewRequest(http.MethodPost, "/etl/execute", nil)
		w := httptest.NewRecorder()

		controller.ExecutePipeline(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response APIResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, 0, response.Status)
		assert.NotNil(t, response.Data)

		// 流水线落地后数据可查
		teamCount, err := dbLoader.GetTeamCount(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2), teamCount)
	})

	t.Run("请求体携带自定义数据源路径", func(t *testing.T) {
		controller, _, dbLoader := newTestEtlController(t)

		// 自定义来源只含一支球队，未配置的来源被跳过
		customCSV := "team_id,name,city,league,founded,venue\n" +
			"T100,Warriors,San Francisco,NBA,1946-06-06,Chase Center\n"
		customPath := filepath.Join(t.TempDir(), "custom-teams.csv")
		require.NoError(t, os.WriteFile(customPath, []byte(customCSV), 0644))

		body, err := json.Marshal(models.PipelineConfig{TeamsCSVPath: customPath})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/etl/execute", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		controller.ExecutePipeline(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response APIResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, 0, response.Status)

		teamCount, err := dbLoader.GetTeamCount(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), teamCount)

		playerCount, err := dbLoader.GetPlayerCount(context.Background())
		require.NoError(t, err)
		assert.Zero(t, playerCount)
	})

	t.Run("请求体非法时返回参数错误", func(t *testing.T) {
		controller, _, _ := newTestEtlController(t)

		req := httptest.NewRequest(http.MethodPost, "/etl/execute", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		controller.ExecutePipeline(w, req)

		var response APIResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, 400, response.Status)
	})
}

// TestGetQualityReport 测试质量报告接口
func TestGetQualityReport(t *testing.T) {
	controller, _, _ := newTestEtlController(t)

	req := httptest.NewRequest(http.MethodGet, "/etl/quality-report", nil)
	w := httptest.NewRecorder()

	controller.GetQualityReport(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response APIResponse
	err := json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, 0, response.Status)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok, "响应数据应该是map类型")
	assert.Equal(t, models.QualityStatusNoData, data["qualityStatus"])
}

// TestGetStatus 测试运行状态接口
func TestGetStatus(t *testing.T) {
	controller, testDB, _ := newTestEtlController(t)

	factory := testutil.NewTestDataFactory(testDB.DB)
	factory.CreateTeam("T001")
	factory.CreatePlayer("P001", "T001")

	req := httptest.NewRequest(http.MethodGet, "/etl/status", nil)
	w := httptest.NewRecorder()

	controller.GetStatus(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response APIResponse
	err := json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, 0, response.Status)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "database", data["sink"])
	assert.Equal(t, false, data["running"])

	// 数据库落地模式附带各实体计数
	database, ok := data["database"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), database["teams"])
	assert.Equal(t, float64(1), database["players"])
	assert.Equal(t, float64(0), database["games"])
	assert.Equal(t, float64(2), database["total"])

	system, ok := data["system"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, system["goVersion"])
	assert.Greater(t, system["numCpu"], float64(0))
}

// TestClearData 测试数据清理接口
func TestClearData(t *testing.T) {
	t.Run("数据库落地模式下清理成功", func(t *testing.T) {
		controller, testDB, dbLoader := newTestEtlController(t)

		factory := testutil.NewTestDataFactory(testDB.DB)
		factory.CreateTeam("T001")

		req := httptest.NewRequest(http.MethodDelete, "/etl/data", nil)
		w := httptest.NewRecorder()

		controller.ClearData(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response APIResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, 0, response.Status)

		teamCount, err := dbLoader.GetTeamCount(context.Background())
		require.NoError(t, err)
		assert.Zero(t, teamCount)
	})

	t.Run("对象存储落地模式下返回参数错误", func(t *testing.T) {
		controller, _, _ := newTestEtlController(t)
		controller.dbLoader = nil
		controller.sink = "object_store"

		req := httptest.NewRequest(http.MethodDelete, "/etl/data", nil)
		w := httptest.NewRecorder()

		controller.ClearData(w, req)

		var response APIResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, 400, response.Status)
	})
}

// TestHealthEndpoints 测试健康检查接口
func TestHealthEndpoints(t *testing.T) {
	controller := NewHealthController()

	t.Run("健康检查返回ok", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		controller.Health(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, "ok", response.Status)
		assert.Equal(t, "sportsdata-etl", response.Service)
	})

	t.Run("就绪检查返回ready", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		w := httptest.NewRecorder()

		controller.Ready(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, "ready", response.Status)
	})
}
