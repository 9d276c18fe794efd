/*
 * @module service/etl/pipeline/etl_pipeline
 * @description ETL流水线编排器，串联抽取、转换、加载与质量评估四个阶段
 * @architecture 编排层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 抽取 -> 验证 -> 清洗 -> 标准化 -> 加载 -> 质量报告
 * @rules 流水线本身不抛出异常，任何阶段失败都折叠进结果的Success与ErrorMessage
 * @dependencies service/etl/extractors, service/etl/transformers, service/etl/loaders, service/etl/quality, service/etl/metrics
 * @refs api/controllers/etl_controller.go, service/scheduler/etl_runner.go
 */

package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sportsdata-etl/service/etl/extractors"
	"sportsdata-etl/service/etl/loaders"
	"sportsdata-etl/service/etl/metrics"
	"sportsdata-etl/service/etl/quality"
	"sportsdata-etl/service/etl/transformers"
	"sportsdata-etl/service/models"
)

// EtlPipeline ETL流水线编排器
type EtlPipeline struct {
	csvExtractor  *extractors.CSVDataExtractor
	jsonExtractor *extractors.JSONApiExtractor
	xmlExtractor  *extractors.XMLFeedExtractor
	validator     *transformers.DataValidator
	cleaner       *transformers.DataCleaner
	standardizer  *transformers.DataStandardizer
	loader        loaders.Loader
	checker       quality.QualityChecker
	metrics       *metrics.MetricsCollector
}

// NewEtlPipeline 创建流水线，加载器与质量检查器由调用方根据落地方式注入
func NewEtlPipeline(loader loaders.Loader, checker quality.QualityChecker, collector *metrics.MetricsCollector) *EtlPipeline {
	return &EtlPipeline{
		csvExtractor:  extractors.NewCSVDataExtractor(),
		jsonExtractor: extractors.NewJSONApiExtractor(),
		xmlExtractor:  extractors.NewXMLFeedExtractor(),
		validator:     transformers.NewDataValidator(),
		cleaner:       transformers.NewDataCleaner(),
		standardizer:  transformers.NewDataStandardizer(),
		loader:        loader,
		checker:       checker,
		metrics:       collector,
	}
}

// ExecuteFullPipeline 执行完整的ETL流水线
func (p *EtlPipeline) ExecuteFullPipeline(ctx context.Context, config *models.PipelineConfig) *models.PipelineResult {
	result := &models.PipelineResult{
		PipelineID: uuid.NewString(),
		StartTime:  time.Now(),
	}
	slog.Info("开始执行ETL流水线", "pipeline_id", result.PipelineID)

	extracted := p.extractPhase(config)
	result.ExtractedData = extracted

	transformed := p.transformPhase(extracted)
	result.TransformedData = transformed

	loadResult := p.loadPhase(ctx, transformed)
	result.LoadResult = loadResult

	if loadResult.Success {
		result.QualityReport = p.qualityPhase(ctx)
		result.Success = true
	} else {
		result.Success = false
		result.ErrorMessage = loadResult.ErrorMessage
	}

	result.EndTime = time.Now()
	p.metrics.RecordPipelineRun(result.Success)

	slog.Info("ETL流水线执行结束",
		"pipeline_id", result.PipelineID,
		"success", result.Success,
		"duration_ms", result.DurationMs())
	return result
}

// extractPhase 从三种数据源抽取原始数据，未配置的数据源直接跳过，单个数据源失败不影响其余数据源
func (p *EtlPipeline) extractPhase(config *models.PipelineConfig) *models.ExtractedData {
	start := time.Now()

	extracted := &models.ExtractedData{
		Teams:   []models.Team{},
		Players: []models.Player{},
		Games:   []models.Game{},
	}
	if config.TeamsCSVPath != "" {
		extracted.Teams = p.csvExtractor.ExtractTeams(config.TeamsCSVPath)
	} else {
		slog.Info("未配置球队数据源，跳过抽取")
	}
	if config.PlayersJSONPath != "" {
		extracted.Players = p.jsonExtractor.ExtractPlayers(config.PlayersJSONPath)
	} else {
		slog.Info("未配置球员数据源，跳过抽取")
	}
	if config.GamesXMLPath != "" {
		extracted.Games = p.xmlExtractor.ExtractGames(config.GamesXMLPath)
	} else {
		slog.Info("未配置比赛数据源，跳过抽取")
	}

	p.metrics.RecordExtracted("teams", len(extracted.Teams))
	p.metrics.RecordExtracted("players", len(extracted.Players))
	p.metrics.RecordExtracted("games", len(extracted.Games))
	p.metrics.ObservePhase("extract", time.Since(start))

	slog.Info("抽取阶段完成",
		"teams", len(extracted.Teams),
		"players", len(extracted.Players),
		"games", len(extracted.Games))
	return extracted
}

// transformPhase 依次执行验证、清洗、标准化
func (p *EtlPipeline) transformPhase(extracted *models.ExtractedData) *models.TransformedData {
	start := time.Now()

	teams := p.validator.ValidateTeams(extracted.Teams)
	players := p.validator.ValidatePlayers(extracted.Players)
	games := p.validator.ValidateGames(extracted.Games)

	teams = p.cleaner.CleanTeams(teams)
	players = p.cleaner.CleanPlayers(players)
	games = p.cleaner.CleanGames(games)

	transformed := &models.TransformedData{
		Teams:   p.standardizer.StandardizeTeams(teams),
		Players: p.standardizer.StandardizePlayers(players),
		Games:   p.standardizer.StandardizeGames(games),
	}

	p.metrics.ObservePhase("transform", time.Since(start))

	slog.Info("转换阶段完成",
		"teams", len(transformed.Teams),
		"players", len(transformed.Players),
		"games", len(transformed.Games))
	return transformed
}

// loadPhase 将转换后的数据交给加载器落地
func (p *EtlPipeline) loadPhase(ctx context.Context, transformed *models.TransformedData) *models.LoadResult {
	start := time.Now()

	loadResult, err := p.loader.LoadAllData(ctx, transformed)
	if err != nil {
		slog.Error("加载阶段失败", "error", err)
	} else {
		p.metrics.RecordLoaded("teams", loadResult.TeamsLoaded)
		p.metrics.RecordLoaded("players", loadResult.PlayersLoaded)
		p.metrics.RecordLoaded("games", loadResult.GamesLoaded)
	}

	p.metrics.ObservePhase("load", time.Since(start))
	return loadResult
}

// qualityPhase 生成落地后的数据质量报告
func (p *EtlPipeline) qualityPhase(ctx context.Context) *models.QualityReport {
	start := time.Now()

	report := p.checker.GenerateQualityReport(ctx)
	p.metrics.RecordQualityScore(report.OverallQualityScore)
	p.metrics.ObservePhase("quality", time.Since(start))

	return report
}
