/*
 * @module service/etl/quality/quality_checker
 * @description 数据质量检查器接口定义与质量评分的公共逻辑
 * @architecture 策略模式
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 采集指标 -> 计算总分 -> 评定等级
 * @rules 检查器永不返回错误，失败情况折叠进报告的状态字段
 * @dependencies service/models
 * @refs service/etl/pipeline/etl_pipeline.go
 */

package quality

import (
	"context"

	"sportsdata-etl/service/models"
)

// QualityChecker 数据质量检查器接口
type QualityChecker interface {
	// GenerateQualityReport 生成质量报告，任何失败都体现在报告状态上而非error
	GenerateQualityReport(ctx context.Context) *models.QualityReport
}

// overallScore 计算各指标的算术平均分
func overallScore(metrics map[string]float64) float64 {
	if len(metrics) == 0 {
		return 0
	}
	var sum float64
	for _, value := range metrics {
		sum += value
	}
	return sum / float64(len(metrics))
}

// statusForScore 根据总分评定质量等级
func statusForScore(score float64) string {
	switch {
	case score >= 0.9:
		return models.QualityStatusExcellent
	case score >= 0.8:
		return models.QualityStatusGood
	case score >= 0.7:
		return models.QualityStatusFair
	default:
		return models.QualityStatusPoor
	}
}
