package app

import (
	"os"
	"slices"
	"time"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/logger"

	"go.uber.org/zap"
)

// 运行模式：api 只提供 HTTP，worker 只消费通知队列，all 两者兼有
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

// Modes 可用的运行模式，供命令行帮助展示
var Modes = []string{ModeAll, ModeAPI, ModeWorker}

func isValidMode(mode string) bool {
	return slices.Contains(Modes, mode)
}

func servesHTTP(mode string) bool { return mode == ModeAll || mode == ModeAPI }

func runsWorker(mode string) bool { return mode == ModeAll || mode == ModeWorker }

// Options 应用启动选项，零值字段在启动时补默认值
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// withDefaults 停机超时优先取 server.shutdown_timeout
func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logger.S()
	}
	if o.Mode == "" {
		o.Mode = ModeAll
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = defaultStopTimeout
		if o.Config != nil {
			o.ShutdownTimeout = secondsOr(o.Config.Server.ShutdownTimeout, defaultStopTimeout)
		}
	}
	return o
}
