// Package metrics 收集並公開 Prometheus 指標。
package metrics

import (
	"net/http"

	"ipv4-bazaar/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 登入 / 註冊結果標籤
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Collector 業務指標
type Collector struct {
	logins          *prometheus.CounterVec
	signups         *prometheus.CounterVec
	requests        *prometheus.CounterVec
	statusChanges   *prometheus.CounterVec
	usersTotal      prometheus.Gauge
	requestsTotal   prometheus.Gauge
	statsRefreshErr prometheus.Counter
}

// NewCollector 建立 Collector 並註冊到 reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ipv4bazaar_logins_total",
			Help: "登入嘗試次數，依身分種類與結果分類",
		}, []string{"kind", "result"}),
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ipv4bazaar_signups_total",
			Help: "註冊次數",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ipv4bazaar_requests_submitted_total",
			Help: "送出的 IPv4 申請數，依緊急程度分類",
		}, []string{"urgency"}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ipv4bazaar_request_status_changes_total",
			Help: "申請狀態變更次數，依新狀態分類",
		}, []string{"status"}),
		usersTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ipv4bazaar_users",
			Help: "註冊使用者總數",
		}),
		requestsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ipv4bazaar_requests",
			Help: "IPv4 申請總數",
		}),
		statsRefreshErr: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ipv4bazaar_stats_refresh_errors_total",
			Help: "統計 gauge 更新失敗次數",
		}),
	}

	reg.MustRegister(
		c.logins,
		c.signups,
		c.requests,
		c.statusChanges,
		c.usersTotal,
		c.requestsTotal,
		c.statsRefreshErr,
	)
	return c
}

// RecordLogin kind 為 end_user 或 admin
func (c *Collector) RecordLogin(kind model.IdentityKind, ok bool) {
	c.logins.WithLabelValues(string(kind), result(ok)).Inc()
}

func (c *Collector) RecordSignup(ok bool) {
	c.signups.WithLabelValues(result(ok)).Inc()
}

// RequestSubmitted 實作 portal.Recorder
func (c *Collector) RequestSubmitted(u model.Urgency) {
	c.requests.WithLabelValues(string(u)).Inc()
}

// RequestStatusChanged 實作 portal.Recorder
func (c *Collector) RequestStatusChanged(s model.RequestStatus) {
	c.statusChanges.WithLabelValues(string(s)).Inc()
}

// SetDashboardStats 更新總數 gauge
func (c *Collector) SetDashboardStats(s model.DashboardStats) {
	c.usersTotal.Set(float64(s.TotalUsers))
	c.requestsTotal.Set(float64(s.TotalRequests))
}

func (c *Collector) RecordStatsRefreshError() {
	c.statsRefreshErr.Inc()
}

func result(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}

// Handler Prometheus scrape 用的 handler
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
