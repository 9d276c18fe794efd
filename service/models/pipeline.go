/*
 * @module service/models/pipeline
 * @description ETL管道结果模型定义，包括管道配置、各阶段产物和运行结果封装
 * @architecture 分层架构 - 数据传输对象
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 管道启动 -> 阶段产物累积 -> 结果封装
 * @rules 结果对象仅用于可观测性，不用于重新处理；每次运行生成唯一管道ID
 * @dependencies time
 * @refs service/etl/pipeline, service/etl/loaders
 */

package models

import (
	"time"
)

// PipelineConfig 管道配置，三个来源路径均可选，未配置的来源跳过对应抽取阶段
type PipelineConfig struct {
	TeamsCSVPath    string `json:"teamsCsvPath,omitempty" example:"sample-data/teams.csv"`
	PlayersJSONPath string `json:"playersJsonPath,omitempty" example:"sample-data/players.json"`
	GamesXMLPath    string `json:"gamesXmlPath,omitempty" example:"sample-data/games.xml"`
}

// ExtractedData 抽取阶段产物
type ExtractedData struct {
	Teams   []Team   `json:"teams,omitempty"`
	Players []Player `json:"players,omitempty"`
	Games   []Game   `json:"games,omitempty"`
}

// TransformedData 转换阶段产物（验证、清洗、标准化之后）
type TransformedData struct {
	Teams   []Team   `json:"teams,omitempty"`
	Players []Player `json:"players,omitempty"`
	Games   []Game   `json:"games,omitempty"`
}

// LoadResult 加载阶段结果，按实体类型统计加载数量
type LoadResult struct {
	TeamsLoaded   int    `json:"teamsLoaded" example:"30"`
	PlayersLoaded int    `json:"playersLoaded" example:"450"`
	GamesLoaded   int    `json:"gamesLoaded" example:"1230"`
	Success       bool   `json:"success" example:"true"`
	ErrorMessage  string `json:"errorMessage,omitempty"`
}

// PipelineResult 单次管道运行的结果封装
type PipelineResult struct {
	PipelineID      string           `json:"pipelineId" example:"550e8400-e29b-41d4-a716-446655440000"`
	StartTime       time.Time        `json:"startTime"`
	EndTime         time.Time        `json:"endTime"`
	Success         bool             `json:"success" example:"true"`
	ErrorMessage    string           `json:"errorMessage,omitempty"`
	ExtractedData   *ExtractedData   `json:"extractedData,omitempty"`
	TransformedData *TransformedData `json:"transformedData,omitempty"`
	LoadResult      *LoadResult      `json:"loadResult,omitempty"`
	QualityReport   *QualityReport   `json:"qualityReport,omitempty"`
}

// DurationMs 管道运行耗时（毫秒），结束时间未设置时返回0
func (r *PipelineResult) DurationMs() int64 {
	if r.EndTime.IsZero() {
		return 0
	}
	return r.EndTime.Sub(r.StartTime).Milliseconds()
}

// ObjectStoreMetadata 对象存储加载的辅助元数据记录
type ObjectStoreMetadata struct {
	Timestamp    string    `json:"timestamp" example:"2024-01-01-12-00-00"`
	TeamsCount   int       `json:"teamsCount" example:"30"`
	PlayersCount int       `json:"playersCount" example:"450"`
	GamesCount   int       `json:"gamesCount" example:"1230"`
	TotalRecords int       `json:"totalRecords" example:"1710"`
	LoadedAt     time.Time `json:"loadedAt"`
}
