package processor

import (
	"fmt"
	"log"
	"time"

	"resume-fit-go/internal/storage"
)

// ComponentOpt 组件选项类型, 仅改变 Components 结构体内的字段
type ComponentOpt func(*Components)

// SettingOpt 设置选项类型, 仅改变 Settings 结构体内的字段
type SettingOpt func(*Settings)

// ----- 组件选项 -----

// WithcompTextextractor 设置文本提取器组件
func WithcompTextextractor(extractor TextExtractor) ComponentOpt {
	return func(c *Components) {
		c.TextExtractor = extractor
	}
}

// WithcompProfilebuilder 设置档案构建器组件
func WithcompProfilebuilder(builder ProfileBuilder) ComponentOpt {
	return func(c *Components) {
		c.ProfileBuilder = builder
	}
}

// WithcompFitscorer 设置评分器组件
func WithcompFitscorer(scorer FitScorer) ComponentOpt {
	return func(c *Components) {
		c.FitScorer = scorer
	}
}

// WithcompFeedback 设置反馈生成器组件
func WithcompFeedback(feedback FeedbackGenerator) ComponentOpt {
	return func(c *Components) {
		c.Feedback = feedback
	}
}

// WithcompStorage 设置存储组件
func WithcompStorage(storage *storage.Storage) ComponentOpt {
	return func(c *Components) {
		c.Storage = storage
	}
}

// ----- 设置选项 -----

// WithsetDebug 设置调试模式
func WithsetDebug(debug bool) SettingOpt {
	return func(s *Settings) {
		s.Debug = debug
	}
}

// WithsetLogger 设置日志记录器
func WithsetLogger(logger *log.Logger) SettingOpt {
	return func(s *Settings) {
		if logger != nil {
			s.Logger = logger
		} else {
			s.Logger = log.New(log.Writer(), "[NilLoggerFallback] ", log.LstdFlags)
		}
	}
}

// WithsetTimelocation 设置时区
func WithsetTimelocation(loc *time.Location) SettingOpt {
	return func(s *Settings) {
		if loc != nil {
			s.TimeLocation = loc
		} else {
			s.TimeLocation = time.Local
		}
	}
}

// ----- 统一的日志包装方法 -----

// logDebug 记录调试级别日志
func (rc *ResumeChecker) logDebug(format string, args ...interface{}) {
	if rc.Settings.Debug && rc.Settings.Logger != nil {
		rc.Settings.Logger.Printf(format, args...)
	}
}

// logInfo 记录信息级别日志
func (rc *ResumeChecker) logInfo(format string, args ...interface{}) {
	if rc.Settings.Logger != nil {
		rc.Settings.Logger.Printf(format, args...)
	}
}

// logWarn 记录警告级别日志
func (rc *ResumeChecker) logWarn(format string, args ...interface{}) {
	if rc.Settings.Logger != nil {
		rc.Settings.Logger.Printf("[WARN] "+format, args...)
	}
}

// logError 记录错误级别日志
func (rc *ResumeChecker) logError(err error, format string, args ...interface{}) {
	if rc.Settings.Logger != nil {
		if err != nil {
			format = fmt.Sprintf("ERROR: %v - %s", err, format)
		} else {
			format = "ERROR: " + format
		}
		rc.Settings.Logger.Printf(format, args...)
	}
}
