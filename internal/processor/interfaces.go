package processor

import (
	"context"
	"io"

	"resume-fit-go/internal/scorer"
	"resume-fit-go/internal/types"
)

//
// 文本提取相关接口
//

// TextExtractor 简历文本提取器接口
type TextExtractor interface {
	// ExtractFromFile 从文件提取文本和元数据
	ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error)

	// ExtractTextFromReader 从io.Reader提取文本和元数据
	// uri 用于日志和元数据, ext 为文件扩展名 (决定格式通道)
	ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string, ext string) (string, map[string]interface{}, error)

	// ExtractTextFromBytes 从字节数组提取文本和元数据
	ExtractTextFromBytes(ctx context.Context, data []byte, uri string, ext string) (string, map[string]interface{}, error)
}

//
// 档案构建相关接口
//

// ProfileBuilder 结构化档案构建器接口
type ProfileBuilder interface {
	// Build 从纯文本构建简历档案
	Build(ctx context.Context, text string) (*types.ResumeProfile, error)
}

//
// 评分相关接口
//

// FitScorer 匹配度评分器接口
type FitScorer interface {
	// Score 给出简历对岗位的匹配度评分
	Score(ctx context.Context, profile *types.ResumeProfile, job *types.JobRequirement) (*types.ScoreBreakdown, error)

	// MatchStrategy 返回技能匹配策略名, 随评分结果落库
	MatchStrategy() string
}

// FeedbackGenerator 反馈生成器接口
type FeedbackGenerator interface {
	// GenerateRecommendations 按评分结果生成分桶建议
	GenerateRecommendations(profile *types.ResumeProfile, score *types.ScoreBreakdown) *scorer.Recommendations

	// RenderFeedback 渲染完整的反馈文档
	RenderFeedback(profile *types.ResumeProfile, job *types.JobRequirement, score *types.ScoreBreakdown) (string, error)

	// RenderImprovedResume 渲染改进后的简历文本
	RenderImprovedResume(profile *types.ResumeProfile, job *types.JobRequirement, score *types.ScoreBreakdown) (string, error)
}
