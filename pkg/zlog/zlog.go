package zlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"Rephraser/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New 根据日志配置创建 Logger
//
// 文件输出为 JSON，按大小切割并压缩旧文件；Console 为 true 时同时输出到 stdout。
// Error 及以上级别附带调用栈。调用方负责在退出前 Sync。
func New(conf config.LogConfig) (*zap.Logger, error) {
	level := zapcore.DebugLevel
	if name := strings.TrimSpace(conf.Level); name != "" {
		parsed, err := zapcore.ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", conf.Level, err)
		}
		level = parsed
	}

	if dir := filepath.Dir(conf.LogPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   conf.LogPath,
		MaxSize:    conf.MaxSizeMB,
		MaxBackups: conf.MaxBackups,
		MaxAge:     conf.MaxAgeDays,
		Compress:   conf.Compress,
	})

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), fileWriter, level),
	}
	if conf.Console {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.Lock(os.Stdout), level))
	}

	return zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

func encoderConfig() zapcore.EncoderConfig {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	return enc
}
