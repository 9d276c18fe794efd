/*
 * @module service/etl/metrics/metrics_collector
 * @description ETL流水线的Prometheus指标采集器，覆盖各阶段耗时、记录数与质量分
 * @architecture 可观测性层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 流水线各阶段回调 -> 指标更新 -> /metrics端点暴露
 * @rules 同一Registerer下只允许注册一次，测试场景应传入独立Registry
 * @dependencies github.com/prometheus/client_golang/prometheus
 * @refs service/etl/pipeline/etl_pipeline.go, main.go
 */

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector ETL流水线指标采集器
type MetricsCollector struct {
	recordsExtracted *prometheus.CounterVec
	recordsLoaded    *prometheus.CounterVec
	phaseDuration    *prometheus.HistogramVec
	pipelineRuns     *prometheus.CounterVec
	qualityScore     prometheus.Gauge
	lastRunTimestamp prometheus.Gauge
}

// NewMetricsCollector 创建指标采集器并注册到指定的Registerer
func NewMetricsCollector(registerer prometheus.Registerer) *MetricsCollector {
	factory := promauto.With(registerer)

	return &MetricsCollector{
		recordsExtracted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_records_extracted_total",
			Help: "各实体类型抽取成功的记录总数",
		}, []string{"entity"}),
		recordsLoaded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_records_loaded_total",
			Help: "各实体类型加载成功的记录总数",
		}, []string{"entity"}),
		phaseDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "etl_phase_duration_seconds",
			Help:    "流水线各阶段的执行耗时",
			Buckets: prometheus.DefBuckets,
		}, []string{"phase"}),
		pipelineRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_pipeline_runs_total",
			Help: "流水线运行总次数，按结果分类",
		}, []string{"result"}),
		qualityScore: factory.NewGauge(prometheus.GaugeOpts{
			Name: "etl_quality_score",
			Help: "最近一次质量报告的总评分",
		}),
		lastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "etl_last_run_timestamp_seconds",
			Help: "最近一次流水线运行的完成时间",
		}),
	}
}

// RecordExtracted 记录抽取成功的记录数
func (m *MetricsCollector) RecordExtracted(entity string, count int) {
	m.recordsExtracted.WithLabelValues(entity).Add(float64(count))
}

// RecordLoaded 记录加载成功的记录数
func (m *MetricsCollector) RecordLoaded(entity string, count int) {
	m.recordsLoaded.WithLabelValues(entity).Add(float64(count))
}

// ObservePhase 记录单个阶段的耗时
func (m *MetricsCollector) ObservePhase(phase string, duration time.Duration) {
	m.phaseDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// RecordPipelineRun 记录一次流水线运行结果
func (m *MetricsCollector) RecordPipelineRun(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	m.pipelineRuns.WithLabelValues(result).Inc()
	m.lastRunTimestamp.SetToCurrentTime()
}

// RecordQualityScore 记录最近一次质量评分
func (m *MetricsCollector) RecordQualityScore(score float64) {
	m.qualityScore.Set(score)
}
