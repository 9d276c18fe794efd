/*
 * @module service/models/quality
 * @description 数据质量报告模型定义
 * @architecture 分层架构 - 数据传输对象
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 质量指标计算 -> 总分聚合 -> 状态判定
 * @rules 各项指标取值范围[0,1]，总分为所有指标的算术平均值
 * @dependencies time
 * @refs service/etl/quality
 */

package models

import (
	"time"
)

// 质量状态标签
const (
	QualityStatusExcellent = "EXCELLENT"
	QualityStatusGood      = "GOOD"
	QualityStatusFair      = "FAIR"
	QualityStatusPoor      = "POOR"
	QualityStatusNoData    = "NO_DATA"
)

// QualityReport 数据质量报告
type QualityReport struct {
	GeneratedAt         time.Time          `json:"generatedAt"`
	TeamCount           int64              `json:"teamCount" example:"30"`
	PlayerCount         int64              `json:"playerCount" example:"450"`
	GameCount           int64              `json:"gameCount" example:"1230"`
	QualityMetrics      map[string]float64 `json:"qualityMetrics"`
	OverallQualityScore float64            `json:"overallQualityScore" example:"0.95"`
	QualityStatus       string             `json:"qualityStatus" example:"EXCELLENT"`
}

// TotalRecords 已持久化记录总数
func (r *QualityReport) TotalRecords() int64 {
	return r.TeamCount + r.PlayerCount + r.GameCount
}
