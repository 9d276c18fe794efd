/*
 * @module service/etl/metrics/metrics_collector_test
 * @description 指标采集器单元测试
 * @architecture 测试层
 * @stateFlow 独立Registry初始化 -> 指标更新 -> 指标值断言
 * @rules 每个用例使用独立Registry，避免重复注册
 * @dependencies testing, prometheus/client_golang, stretchr/testify
 */

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCollector(t *testing.T) {
	t.Run("记录抽取和加载数量", func(t *testing.T) {
		collector := NewMetricsCollector(prometheus.NewRegistry())

		collector.RecordExtracted("teams", 5)
		collector.RecordExtracted("teams", 3)
		collector.RecordLoaded("players", 10)

		assert.Equal(t, float64(8), promtestutil.ToFloat64(collector.recordsExtracted.WithLabelValues("teams")))
		assert.Equal(t, float64(10), promtestutil.ToFloat64(collector.recordsLoaded.WithLabelValues("players")))
		assert.Equal(t, float64(0), promtestutil.ToFloat64(collector.recordsExtracted.WithLabelValues("games")))
	})

	t.Run("记录流水线运行结果", func(t *testing.T) {
		collector := NewMetricsCollector(prometheus.NewRegistry())

		collector.RecordPipelineRun(true)
		collector.RecordPipelineRun(true)
		collector.RecordPipelineRun(false)

		assert.Equal(t, float64(2), promtestutil.ToFloat64(collector.pipelineRuns.WithLabelValues("success")))
		assert.Equal(t, float64(1), promtestutil.ToFloat64(collector.pipelineRuns.WithLabelValues("failure")))
		assert.Greater(t, promtestutil.ToFloat64(collector.lastRunTimestamp), float64(0))
	})

	t.Run("记录质量评分", func(t *testing.T) {
		collector := NewMetricsCollector(prometheus.NewRegistry())

		collector.RecordQualityScore(0.85)
		assert.Equal(t, 0.85, promtestutil.ToFloat64(collector.qualityScore))

		// 覆盖旧值
		collector.RecordQualityScore(0.6)
		assert.Equal(t, 0.6, promtestutil.ToFloat64(collector.qualityScore))
	})

	t.Run("记录阶段耗时", func(t *testing.T) {
		registry := prometheus.NewRegistry()
		collector := NewMetricsCollector(registry)

		collector.ObservePhase("extract", 120*time.Millisecond)
		collector.ObservePhase("load", 50*time.Millisecond)

		assert.Equal(t, 2, promtestutil.CollectAndCount(collector.phaseDuration, "etl_phase_duration_seconds"))
	})
}
