package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 下载结果标签
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

var (
	// HTTPRequestsTotal 按方法、路由模板与状态码统计请求数
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration 请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// ShoppingListDownloads 购物清单下载次数
	ShoppingListDownloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopping_list_downloads_total",
			Help: "Total number of shopping list downloads",
		},
		[]string{"format", "result"},
	)

	// RecipesPublished 发布的菜谱数
	RecipesPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipes_published_total",
			Help: "Total number of published recipes",
		},
	)

	// RateLimitRejections 被限流拒绝的请求，按规则前缀统计
	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Total number of requests rejected by rate limiting",
		},
		[]string{"rule"},
	)

	// FollowerEmailsSent 关注者通知邮件
	FollowerEmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "follower_emails_total",
			Help: "Total number of follower notification emails",
		},
		[]string{"result"},
	)
)

// RecordHTTPRequest 记录一次请求；route 为空时归入 unmatched
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if strings.TrimSpace(route) == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordShoppingListDownload 记录下载结果，format 为空时按 text 统计
func RecordShoppingListDownload(format string, err error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "text"
	}
	ShoppingListDownloads.WithLabelValues(format, resultLabel(err)).Inc()
}

// RecordRateLimited 记录一次限流拒绝
func RecordRateLimited(rule string) {
	if strings.TrimSpace(rule) == "" {
		rule = "default"
	}
	RateLimitRejections.WithLabelValues(rule).Inc()
}

// RecordFollowerEmail 记录关注者邮件投递结果
func RecordFollowerEmail(err error) {
	FollowerEmailsSent.WithLabelValues(resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return ResultFailed
	}
	return ResultOK
}
