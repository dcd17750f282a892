package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ipv4-bazaar/internal/model"

	"github.com/robfig/cron/v3"
)

// StatsSource 提供後台統計，portal.Service 實作
type StatsSource interface {
	ComputeDashboardStats(ctx context.Context) (model.DashboardStats, error)
}

const refreshTimeout = 10 * time.Second

// Refresher 依 cron 排程把後台統計寫進 gauge
type Refresher struct {
	cron      *cron.Cron
	source    StatsSource
	collector *Collector
	logger    *slog.Logger
}

// NewRefresher schedule 使用 cron 標準格式或 "@every 1m" 這類描述
func NewRefresher(schedule string, source StatsSource, collector *Collector, logger *slog.Logger) (*Refresher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Refresher{
		cron:      cron.New(),
		source:    source,
		collector: collector,
		logger:    logger,
	}
	if _, err := r.cron.AddFunc(schedule, r.RefreshOnce); err != nil {
		return nil, fmt.Errorf("invalid stats refresh schedule %q: %w", schedule, err)
	}
	return r, nil
}

// RefreshOnce 立即更新一次；失敗時保留舊值
func (r *Refresher) RefreshOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	stats, err := r.source.ComputeDashboardStats(ctx)
	if err != nil {
		r.collector.RecordStatsRefreshError()
		r.logger.Warn("refresh dashboard gauges", "error", err)
		return
	}
	r.collector.SetDashboardStats(stats)
}

// Start 先更新一次再啟動排程
func (r *Refresher) Start() {
	r.RefreshOnce()
	r.cron.Start()
}

// Stop 停止排程並等待執行中的工作結束
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}
