package parser

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"resume-fit-go/internal/logger"
	"resume-fit-go/internal/types"
)

// ProfileBuilder 把纯文本简历构建为结构化档案
// 依赖NLP边车做实体识别, 边车缺失时各字段按最大努力降级
type ProfileBuilder struct {
	nlp       NlpEngine
	segmenter *SectionSegmenter
	logger    zerolog.Logger
}

// BuilderOption ProfileBuilder 配置选项
type BuilderOption func(*ProfileBuilder)

// WithBuilderLogger 设置日志记录器
func WithBuilderLogger(l zerolog.Logger) BuilderOption {
	return func(b *ProfileBuilder) {
		b.logger = l
	}
}

// NewProfileBuilder 创建档案构建器, nlp 可为nil
func NewProfileBuilder(nlp NlpEngine, opts ...BuilderOption) *ProfileBuilder {
	b := &ProfileBuilder{
		nlp:       nlp,
		segmenter: NewSectionSegmenter(),
		logger:    logger.Logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build 从纯文本构建简历档案
// 整篇文本只做一次全文NLP分析, 教育/经历条目内的机构和公司识别
// 在各自窗口上单独分析
func (b *ProfileBuilder) Build(ctx context.Context, text string) (*types.ResumeProfile, error) {
	text = strings.TrimSpace(text)

	var analysis *types.NlpAnalysis
	if b.nlp != nil {
		var err error
		analysis, err = b.nlp.Analyze(ctx, text)
		if err != nil {
			// 边车故障不阻断构建, 只损失实体相关字段的质量
			b.logger.Warn().Err(err).Msg("全文NLP分析失败, 按能力缺失降级")
			analysis = nil
		}
	}

	profile := &types.ResumeProfile{
		Name:       extractName(text, analysis),
		Contact:    extractContact(text, analysis),
		Education:  b.extractEducation(ctx, text),
		Skills:     b.extractSkills(text),
		Experience: b.extractExperience(ctx, text),
		RawText:    text,
	}

	b.logger.Debug().
		Int("education_entries", len(profile.Education)).
		Int("skills", len(profile.Skills)).
		Int("experience_entries", len(profile.Experience)).
		Msg("简历档案构建完成")

	return profile, nil
}
