package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	https_server "Rephraser/api/http"
	"Rephraser/internal/config"
	"Rephraser/internal/modules/rephrase/application/service"
	"Rephraser/internal/modules/rephrase/domain/rephrase"
	"Rephraser/internal/modules/rephrase/infrastructure/llm"
	"Rephraser/internal/modules/rephrase/infrastructure/pipeline"
	"Rephraser/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to the toml config file (default $"+config.ConfigPathEnv+" or "+config.DefaultConfigPath+")")
	flag.Parse()

	// 1. 加载配置
	conf, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := zlog.New(conf.LogConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// 3. 创建补全模型
	ctx := context.Background()
	chatModel, meta, err := llm.NewChatModelFromConfig(ctx, conf)
	if err != nil {
		logger.Fatal("chat model init failed", zap.Error(err))
	}
	logger.Info("chat model created",
		zap.String("provider", meta.Provider),
		zap.String("model", meta.Model))

	// 4. 组装服务
	p := pipeline.NewRephrasePipeline(chatModel, meta.Model, logger.Named("pipeline"),
		pipeline.WithTemperature(rephrase.StylePlain, conf.RephraseConfig.PlainTemperature),
		pipeline.WithTemperature(rephrase.StyleAnalogy, conf.RephraseConfig.CreativeTemperature),
		pipeline.WithTemperature(rephrase.StyleExample, conf.RephraseConfig.CreativeTemperature),
	)
	svc := service.NewRephraseService(p, conf.RephraseConfig.MaxInputChars, logger.Named("service"))

	gin.SetMode(gin.ReleaseMode)
	engine := https_server.NewEngine(https_server.EngineDeps{
		Config:   conf,
		Logger:   logger.Named("http"),
		Service:  svc,
		Provider: meta.Provider,
		Model:    meta.Model,
		Version:  version,
	})

	// 5. 启动 HTTP 服务
	srv := &http.Server{
		Addr:    conf.Addr(),
		Handler: engine,
	}
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 6. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
