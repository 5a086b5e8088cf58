package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"resume-fit-go/internal/api/handler"
	"resume-fit-go/internal/api/router"
	"resume-fit-go/internal/config"
	appCoreLogger "resume-fit-go/internal/logger"
	"resume-fit-go/internal/parser"
	"resume-fit-go/internal/processor"
	"resume-fit-go/internal/scorer"
	"resume-fit-go/internal/storage"
	"resume-fit-go/internal/tracing"
)

var (
	version     = "1.0.0"        //nolint:gochecknoglobals
	serviceName = "resume-fit"   //nolint:gochecknoglobals
)

func main() {
	initLogger()

	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "internal/config/config.yaml", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("加载配置失败: %v", err)
	}
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 链路追踪
	shutdownTracing, err := tracing.InitProvider(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
		ServiceName: cfg.Tracing.ServiceName,
	})
	if err != nil {
		glog.Fatalf("初始化链路追踪失败: %v", err)
	}
	defer func() {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if err := shutdownTracing(shutdownCtx); err != nil {
			glog.Warnf("关闭链路追踪失败: %v", err)
		}
	}()

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()
	glog.Info("存储服务初始化成功")

	// 文本提取器: Tika服务器优先, 否则本地pdf解析
	var textExtractor processor.TextExtractor
	if cfg.Tika.Type == "tika" && cfg.Tika.ServerURL != "" {
		tikaOptions := []parser.TikaOption{
			parser.WithMinimalMetadata(true),
			parser.WithTikaLogger(log.New(os.Stderr, "[TikaMain] ", log.LstdFlags)),
		}
		if cfg.Tika.Timeout > 0 {
			tikaOptions = append(tikaOptions, parser.WithTimeout(time.Duration(cfg.Tika.Timeout)*time.Second))
		}
		textExtractor = parser.NewTikaTextExtractor(cfg.Tika.ServerURL, tikaOptions...)
		glog.Info("使用Tika文本提取器")
	} else {
		einoExtractor, err := parser.NewEinoTextExtractor(ctx, parser.WithEinoLogger(log.New(os.Stderr, "[EinoMain] ", log.LstdFlags)))
		if err != nil {
			glog.Fatalf("创建本地PDF提取器失败: %v", err)
		}
		textExtractor = einoExtractor
		glog.Info("使用本地PDF文本提取器")
	}

	// NLP边车, 未配置时降级为纯规则解析
	var nlpEngine parser.NlpEngine
	var similarity scorer.SimilarityScorer
	if cfg.Nlp.ServerURL != "" {
		httpNlp := parser.NewHTTPNlpEngine(cfg.Nlp.ServerURL,
			parser.WithNlpTimeout(time.Duration(cfg.Nlp.TimeoutSeconds)*time.Second))
		if httpNlp != nil {
			nlpEngine = httpNlp
			similarity = processor.NewCachedSimilarityScorer(httpNlp, storageManager.Redis)
			glog.Infof("NLP边车已接入: %s", cfg.Nlp.ServerURL)
		}
	}
	if nlpEngine == nil {
		glog.Warn("NLP边车未配置, 实体识别和语义匹配均降级")
	}

	profileBuilder := parser.NewProfileBuilder(nlpEngine)
	skillMatcher := scorer.NewSkillMatcher(similarity)
	fitScorer := scorer.NewFitScorer(skillMatcher)
	feedbackGen := scorer.NewFeedbackGenerator()

	checkerLogger := log.New(appCoreLogger.Logger, "[CheckerMain] ", log.LstdFlags|log.Lshortfile)
	resumeChecker, err := processor.NewResumeChecker(
		[]processor.ComponentOpt{
			processor.WithcompTextextractor(textExtractor),
			processor.WithcompProfilebuilder(profileBuilder),
			processor.WithcompFitscorer(fitScorer),
			processor.WithcompFeedback(feedbackGen),
			processor.WithcompStorage(storageManager),
		},
		processor.WithsetDebug(cfg.Logger.Level == "debug"),
		processor.WithsetLogger(checkerLogger),
		processor.WithsetTimelocation(time.Local),
		processor.WithSettingEventTarget(cfg.RabbitMQ.ResumeEventsExchange, cfg.RabbitMQ.ScoredRoutingKey),
	)
	if err != nil {
		glog.Fatalf("初始化ResumeChecker失败: %v", err)
	}
	glog.Info("ResumeChecker初始化成功")

	resumeHandler := handler.NewResumeHandler(cfg, storageManager, resumeChecker)
	jobHandler := handler.NewJobHandler(cfg, storageManager)

	if err := jobHandler.SeedDemoJobs(ctx); err != nil {
		glog.Warnf("写入演示岗位失败: %v", err)
	}

	go func() {
		workers := cfg.RabbitMQ.ConsumerWorkers
		glog.Infof("启动上传消费者, 工作协程数: %d", workers)
		for i := 0; i < workers; i++ {
			if err := resumeHandler.StartResumeUploadConsumer(context.Background()); err != nil {
				glog.Fatalf("启动简历上传消费者失败: %v", err)
			}
		}
		resumeHandler.StartMD5CleanupTask(context.Background())
	}()

	tracer, tracerCfg := hertztracing.NewServerTracer()
	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		tracer,
	)
	h.Use(hertztracing.ServerMiddleware(tracerCfg))
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, cfg, resumeHandler, jobHandler)
	glog.Info("HTTP路由注册成功")

	glog.Infof("%s v%s HTTP服务器启动中, 监听地址: %s", serviceName, version, cfg.Server.Address)

	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号, 正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

func initLogger() {
	logFilePath := "logs/app.log"
	var writers []io.Writer

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}
	writers = append(writers, consoleWriter)

	if err := os.MkdirAll("logs", 0755); err == nil {
		if fileWriter, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			writers = append(writers, fileWriter)
		}
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.TimeFieldFormat = "15:04:05"

	logger := zerolog.New(multiWriter).With().Timestamp().Caller().Logger()
	appCoreLogger.Logger = logger
	zlog.Logger = logger

	hertzCompatibleLogger := hertzadapter.From(appCoreLogger.Logger)
	glog.SetLogger(hertzCompatibleLogger)
	glog.SetLevel(glog.LevelDebug)
}
