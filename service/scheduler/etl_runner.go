/*
 * @module service/scheduler/etl_runner
 * @description ETL定时运行器，支持一次性执行与cron周期执行两种模式
 * @architecture 调度层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 启动 -> 注册cron任务 -> 到点触发流水线 -> 停止时等待运行中任务结束
 * @rules 同一时刻最多一条流水线在运行，cron表达式非法时启动失败
 * @dependencies github.com/robfig/cron/v3
 * @refs main.go
 */

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"sportsdata-etl/service/etl/pipeline"
	"sportsdata-etl/service/models"
)

// EtlRunner ETL定时运行器
type EtlRunner struct {
	pipeline *pipeline.EtlPipeline
	config   *models.PipelineConfig
	cron     *cron.Cron
	mu       sync.Mutex
	running  bool
	lastRun  *models.PipelineResult
}

// NewEtlRunner 创建定时运行器
func NewEtlRunner(etlPipeline *pipeline.EtlPipeline, config *models.PipelineConfig) *EtlRunner {
	return &EtlRunner{
		pipeline: etlPipeline,
		config:   config,
		cron:     cron.New(),
	}
}

// RunOnce 立即执行一次流水线，config为nil时使用默认配置，已有流水线在运行时返回错误
func (r *EtlRunner) RunOnce(ctx context.Context, config *models.PipelineConfig) (*models.PipelineResult, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil, fmt.Errorf("已有流水线正在运行")
	}
	r.running = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	if config == nil {
		config = r.config
	}
	result := r.pipeline.ExecuteFullPipeline(ctx, config)

	r.mu.Lock()
	r.lastRun = result
	r.mu.Unlock()
	return result, nil
}

// StartSchedule 按cron表达式周期执行流水线
func (r *EtlRunner) StartSchedule(spec string) error {
	_, err := r.cron.AddFunc(spec, func() {
		if _, runErr := r.RunOnce(context.Background(), nil); runErr != nil {
			slog.Warn("跳过本次调度", "reason", runErr)
		}
	})
	if err != nil {
		return fmt.Errorf("注册定时任务失败 spec=%s: %w", spec, err)
	}

	r.cron.Start()
	slog.Info("ETL定时调度已启动", "spec", spec)
	return nil
}

// Stop 停止调度并等待运行中的任务结束
func (r *EtlRunner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	slog.Info("ETL定时调度已停止")
}

// IsRunning 查询当前是否有流水线在运行
func (r *EtlRunner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// LastRun 查询最近一次运行结果，从未运行时返回nil
func (r *EtlRunner) LastRun() *models.PipelineResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRun
}
