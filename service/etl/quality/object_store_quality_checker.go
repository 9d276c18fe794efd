/*
 * @module service/etl/quality/object_store_quality_checker
 * @description 对象存储数据质量检查器，定位最近一次运行的目录并基于元数据评估数据质量
 * @architecture 数据质量评估层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 列举运行目录 -> 取字典序最大目录 -> 读取metadata.json -> 计算指标
 * @rules 元数据缺失时退化为按对象数量统计，列举失败时报告ERROR状态
 * @dependencies client, encoding/json
 * @refs service/etl/pipeline/etl_pipeline.go
 */

package quality

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sportsdata-etl/client"
	"sportsdata-etl/service/models"
)

// ObjectStoreQualityChecker 对象存储质量检查器
type ObjectStoreQualityChecker struct {
	store  client.ObjectStore
	prefix string
}

// NewObjectStoreQualityChecker 创建对象存储质量检查器
func NewObjectStoreQualityChecker(store client.ObjectStore, prefix string) *ObjectStoreQualityChecker {
	return &ObjectStoreQualityChecker{store: store, prefix: prefix}
}

// GenerateQualityReport 生成对象存储侧的质量报告
func (c *ObjectStoreQualityChecker) GenerateQualityReport(ctx context.Context) *models.QualityReport {
	report := &models.QualityReport{
		GeneratedAt:    time.Now(),
		QualityMetrics: make(map[string]float64),
	}

	keys, err := c.store.ListKeys(ctx, c.prefix)
	if err != nil {
		return c.errorReport(report, fmt.Errorf("列举对象存储失败: %w", err))
	}

	latestRun := latestRunTimestamp(c.prefix, keys)
	if latestRun == "" {
		report.QualityStatus = models.QualityStatusNoData
		slog.Warn("对象存储中没有任何运行目录", "prefix", c.prefix)
		return report
	}

	metadata := c.loadRunCounts(ctx, latestRun, keys)
	report.TeamCount = int64(metadata.TeamsCount)
	report.PlayerCount = int64(metadata.PlayersCount)
	report.GameCount = int64(metadata.GamesCount)

	if report.TotalRecords() == 0 {
		report.QualityStatus = models.QualityStatusNoData
		slog.Warn("最近一次运行没有任何记录", "run", latestRun)
		return report
	}

	availability := 0.0
	if metadata.TeamsCount > 0 && metadata.PlayersCount > 0 && metadata.GamesCount > 0 {
		availability = 1.0
	}
	report.QualityMetrics["data_availability"] = availability
	report.QualityMetrics["players_per_team_ratio"] = ratioScore(metadata.PlayersCount, metadata.TeamsCount, 15)
	report.QualityMetrics["games_per_team_ratio"] = ratioScore(metadata.GamesCount, metadata.TeamsCount, 50)
	report.QualityMetrics["data_freshness"] = 1.0

	report.OverallQualityScore = overallScore(report.QualityMetrics)
	report.QualityStatus = statusForScore(report.OverallQualityScore)

	slog.Info("对象存储质量报告已生成",
		"run", latestRun,
		"teams", report.TeamCount,
		"players", report.PlayerCount,
		"games", report.GameCount,
		"score", report.OverallQualityScore,
		"status", report.QualityStatus)
	return report
}

func (c *ObjectStoreQualityChecker) errorReport(report *models.QualityReport, err error) *models.QualityReport {
	slog.Error("生成对象存储质量报告失败", "error", err)
	report.QualityStatus = fmt.Sprintf("ERROR: %s", err.Error())
	return report
}

// loadRunCounts 优先读取metadata.json，失败时按对象数量统计
func (c *ObjectStoreQualityChecker) loadRunCounts(ctx context.Context, run string, keys []string) models.ObjectStoreMetadata {
	metadataKey := fmt.Sprintf("%s/%s/metadata.json", c.prefix, run)
	payload, err := c.store.GetObject(ctx, metadataKey)
	if err == nil {
		var metadata models.ObjectStoreMetadata
		if unmarshalErr := json.Unmarshal(payload, &metadata); unmarshalErr == nil {
			return metadata
		}
		slog.Warn("解析元数据失败，退化为对象计数", "key", metadataKey)
	} else {
		slog.Warn("读取元数据失败，退化为对象计数", "key", metadataKey, "error", err)
	}

	return c.countObjects(run, keys)
}

// countObjects 按目录下的对象数量估算各类记录数
func (c *ObjectStoreQualityChecker) countObjects(run string, keys []string) models.ObjectStoreMetadata {
	metadata := models.ObjectStoreMetadata{Timestamp: run}
	runPrefix := fmt.Sprintf("%s/%s/", c.prefix, run)
	for _, key := range keys {
		if !strings.HasPrefix(key, runPrefix) {
			continue
		}
		switch {
		case strings.Contains(key, "/teams/"):
			metadata.TeamsCount++
		case strings.Contains(key, "/players/"):
			metadata.PlayersCount++
		case strings.Contains(key, "/games/"):
			metadata.GamesCount++
		}
	}
	metadata.TotalRecords = metadata.TeamsCount + metadata.PlayersCount + metadata.GamesCount
	return metadata
}

// latestRunTimestamp 从对象键中提取字典序最大的运行时间戳
func latestRunTimestamp(prefix string, keys []string) string {
	var latest string
	for _, key := range keys {
		trimmed := strings.TrimPrefix(key, prefix+"/")
		if trimmed == key {
			continue
		}
		run, _, found := strings.Cut(trimmed, "/")
		if !found || run == "" {
			continue
		}
		if run > latest {
			latest = run
		}
	}
	return latest
}

// ratioScore 按目标值归一化比例，上限为1
func ratioScore(count, groups, target int) float64 {
	if groups == 0 || target == 0 {
		return 0
	}
	ratio := float64(count) / float64(groups) / float64(target)
	if ratio > 1 {
		return 1
	}
	return ratio
}
