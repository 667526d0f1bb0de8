// Package logger 基于zap的结构化日志
//
// 设计说明：
// 1. 由config.LogConfig驱动（level/format/output/enable_caller）
// 2. New会替换zap全局Logger，包内其他位置可以直接使用zap.L()
// 3. format=json用于生产（便于ELK/Loki检索），console用于本地调试
package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志选项（与config.LogConfig字段一一对应，避免pkg依赖internal）
type Options struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | /path/to/file
	EnableCaller bool
}

// New 创建Logger并设置为全局Logger
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(defaultString(opts.Level, "info")))
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", opts.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch defaultString(opts.Format, "json") {
	case "console":
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		encoder = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("无效的日志格式: %s", opts.Format)
	}

	sink, err := openSink(defaultString(opts.Output, "stdout"))
	if err != nil {
		return nil, err
	}

	zapOpts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if opts.EnableCaller {
		zapOpts = append(zapOpts, zap.AddCaller())
	}

	l := zap.New(zapcore.NewCore(encoder, sink, level), zapOpts...)
	zap.ReplaceGlobals(l)
	return l, nil
}

// NewNop 测试用Logger
func NewNop() *zap.Logger {
	return zap.NewNop()
}

func openSink(output string) (zapcore.WriteSyncer, error) {
	switch output {
	case "stdout":
		return zapcore.Lock(os.Stdout), nil
	case "stderr":
		return zapcore.Lock(os.Stderr), nil
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("打开日志文件失败: %w", err)
		}
		return zapcore.AddSync(f), nil
	}
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
