/*
 * @module api/controllers/etl_controller
 * @description ETL流水线控制器，提供流水线触发、质量报告查询、运行状态查询与数据清理接口
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow HTTP请求 -> 运行器/检查器调用 -> 统一响应封装
 * @rules 流水线执行为同步调用，同一时刻只允许一条流水线运行
 * @dependencies service/scheduler, service/etl/quality, service/etl/loaders
 * @refs api/routes.go
 */

package controllers

import (
	"context"
	"net/http"
	"runtime"

	"github.com/go-chi/render"

	"sportsdata-etl/service/etl/loaders"
	"sportsdata-etl/service/etl/quality"
	"sportsdata-etl/service/models"
	"sportsdata-etl/service/scheduler"
)

// EtlController ETL流水线控制器
type EtlController struct {
	runner   *scheduler.EtlRunner
	checker  quality.QualityChecker
	dbLoader *loaders.DatabaseLoader
	sink     string
}

// NewEtlController 创建ETL控制器实例，dbLoader仅在数据库落地模式下非空
func NewEtlController(runner *scheduler.EtlRunner, checker quality.QualityChecker, dbLoader *loaders.DatabaseLoader, sink string) *EtlController {
	return &EtlController{
		runner:   runner,
		checker:  checker,
		dbLoader: dbLoader,
		sink:     sink,
	}
}

// EtlStatusResponse ETL运行状态响应结构
type EtlStatusResponse struct {
	Sink     string                 `json:"sink" example:"database"`
	Running  bool                   `json:"running" example:"false"`
	LastRun  *models.PipelineResult `json:"lastRun,omitempty"`
	Database *DatabaseCounts        `json:"database,omitempty"`
	System   SystemInfo             `json:"system"`
}

// DatabaseCounts 数据库中各实体的记录数
type DatabaseCounts struct {
	Teams   int64 `json:"teams" example:"30"`
	Players int64 `json:"players" example:"450"`
	Games   int64 `json:"games" example:"1230"`
	Total   int64 `json:"total" example:"1710"`
}

// SystemInfo 进程运行时信息
type SystemInfo struct {
	GoVersion     string `json:"goVersion" example:"go1.23.1"`
	NumCPU        int    `json:"numCpu" example:"8"`
	NumGoroutine  int    `json:"numGoroutine" example:"12"`
	AllocatedMB   uint64 `json:"allocatedMb" example:"24"`
	SystemMB      uint64 `json:"systemMb" example:"72"`
}

// ExecutePipeline 触发一次完整的ETL流水线
// @Summary 执行ETL流水线
// @Description 同步执行一次完整的抽取、转换、加载流程并返回运行结果，请求体可携带自定义数据源路径，缺省时使用默认配置
// @Tags ETL管理
// @Accept json
// @Produce json
// @Param config body models.PipelineConfig false "自定义数据源路径"
// @Success 200 {object} APIResponse{data=models.PipelineResult}
// @Failure 400 {object} APIResponse
// @Router /etl/execute [post]
func (c *EtlController) ExecutePipeline(w http.ResponseWriter, r *http.Request) {
	var config *models.PipelineConfig
	if r.Body != nil && r.ContentLength != 0 {
		config = &models.PipelineConfig{}
		if err := render.DecodeJSON(r.Body, config); err != nil {
			render.JSON(w, r, BadRequestResponse("解析流水线配置失败: "+err.Error(), nil))
			return
		}
	}

	result, err := c.runner.RunOnce(r.Context(), config)
	if err != nil {
		render.JSON(w, r, BadRequestResponse(err.Error(), nil))
		return
	}

	if !result.Success {
		render.JSON(w, r, InternalErrorResponse("流水线执行失败: "+result.ErrorMessage, nil))
		return
	}
	render.JSON(w, r, SuccessResponse("流水线执行成功", result))
}

// GetQualityReport 查询当前落地数据的质量报告
// @Summary 获取数据质量报告
// @Description 基于当前落地的数据生成质量报告
// @Tags ETL管理
// @Produce json
// @Success 200 {object} APIResponse{data=models.QualityReport}
// @Router /etl/quality-report [get]
func (c *EtlController) GetQualityReport(w http.ResponseWriter, r *http.Request) {
	report := c.checker.GenerateQualityReport(r.Context())
	render.JSON(w, r, SuccessResponse("查询成功", report))
}

// GetStatus 查询ETL运行状态
// @Summary 获取ETL运行状态
// @Description 返回落地方式、当前运行状态、最近一次运行结果、各实体记录数与进程运行时信息
// @Tags ETL管理
// @Produce json
// @Success 200 {object} APIResponse{data=EtlStatusResponse}
// @Failure 500 {object} APIResponse
// @Router /etl/status [get]
func (c *EtlController) GetStatus(w http.ResponseWriter, r *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	status := EtlStatusResponse{
		Sink:    c.sink,
		Running: c.runner.IsRunning(),
		LastRun: c.runner.LastRun(),
		System: SystemInfo{
			GoVersion:    runtime.Version(),
			NumCPU:       runtime.NumCPU(),
			NumGoroutine: runtime.NumGoroutine(),
			AllocatedMB:  memStats.Alloc / (1024 * 1024),
			SystemMB:     memStats.Sys / (1024 * 1024),
		},
	}

	// 数据库落地模式下附带各实体记录数
	if c.dbLoader != nil {
		counts, err := c.databaseCounts(r.Context())
		if err != nil {
			render.JSON(w, r, InternalErrorResponse("查询数据计数失败: "+err.Error(), err))
			return
		}
		status.Database = counts
	}

	render.JSON(w, r, SuccessResponse("查询成功", status))
}

func (c *EtlController) databaseCounts(ctx context.Context) (*DatabaseCounts, error) {
	teams, err := c.dbLoader.GetTeamCount(ctx)
	if err != nil {
		return nil, err
	}
	players, err := c.dbLoader.GetPlayerCount(ctx)
	if err != nil {
		return nil, err
	}
	games, err := c.dbLoader.GetGameCount(ctx)
	if err != nil {
		return nil, err
	}
	return &DatabaseCounts{
		Teams:   teams,
		Players: players,
		Games:   games,
		Total:   teams + players + games,
	}, nil
}

// ClearData 清空已落地的全部体育数据
// @Summary 清空体育数据
// @Description 删除数据库中的全部球队、球员、比赛数据，仅数据库落地模式可用
// @Tags ETL管理
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /etl/data [delete]
func (c *EtlController) ClearData(w http.ResponseWriter, r *http.Request) {
	if c.dbLoader == nil {
		render.JSON(w, r, BadRequestResponse("当前落地模式不支持数据清理", nil))
		return
	}

	if err := c.dbLoader.ClearAllData(r.Context()); err != nil {
		render.JSON(w, r, InternalErrorResponse("清空数据失败: "+err.Error(), err))
		return
	}
	render.JSON(w, r, SuccessResponse("数据已清空", nil))
}
