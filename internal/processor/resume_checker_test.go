package processor

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-fit-go/internal/parser"
	"resume-fit-go/internal/scorer"
	"resume-fit-go/internal/types"
)

// stubTextExtractor 返回固定文本的提取器桩
type stubTextExtractor struct {
	text string
	err  error
}

func (s *stubTextExtractor) ExtractFromFile(_ context.Context, _ string) (string, map[string]interface{}, error) {
	return s.text, nil, s.err
}

func (s *stubTextExtractor) ExtractTextFromReader(_ context.Context, _ io.Reader, _ string, _ string) (string, map[string]interface{}, error) {
	return s.text, nil, s.err
}

func (s *stubTextExtractor) ExtractTextFromBytes(_ context.Context, _ []byte, _ string, _ string) (string, map[string]interface{}, error) {
	return s.text, nil, s.err
}

const checkerSampleResume = `John Smith
john.smith@example.com | (555) 123-4567

PROFESSIONAL SUMMARY
Experienced software engineer with a strong professional background.

EXPERIENCE
2016 - 2022
Software Engineer at TechCorp
Built and operated backend services.

EDUCATION
Bachelor's degree in Computer Science
State University, 2012 - 2016

SKILLS
Skills: python, react, aws
`

func newTestChecker(t *testing.T, extractor TextExtractor) *ResumeChecker {
	t.Helper()

	checker, err := NewResumeChecker([]ComponentOpt{
		WithcompTextextractor(extractor),
		WithcompProfilebuilder(parser.NewProfileBuilder(nil)),
		WithcompFitscorer(scorer.NewFitScorer(scorer.NewSkillMatcher(nil))),
		WithcompFeedback(scorer.NewFeedbackGenerator()),
	})
	require.NoError(t, err, "创建流水线不应失败")
	return checker
}

func testJob() *types.JobRequirement {
	return &types.JobRequirement{
		JobID:              "job1",
		Title:              "Senior Software Engineer",
		RequiredSkills:     []string{"python", "javascript", "react", "aws", "docker", "kubernetes"},
		MinYearsExperience: 5,
		MinEducation:       "Bachelor's degree",
	}
}

func TestNewResumeCheckerValidation(t *testing.T) {
	_, err := NewResumeChecker([]ComponentOpt{
		WithcompProfilebuilder(parser.NewProfileBuilder(nil)),
		WithcompFitscorer(scorer.NewFitScorer(scorer.NewSkillMatcher(nil))),
		WithcompFeedback(scorer.NewFeedbackGenerator()),
	})
	assert.Error(t, err, "缺少文本提取器时创建应失败")

	_, err = NewResumeChecker([]ComponentOpt{
		WithcompTextextractor(&stubTextExtractor{}),
		WithcompProfilebuilder(parser.NewProfileBuilder(nil)),
		WithcompFitscorer(scorer.NewFitScorer(scorer.NewSkillMatcher(nil))),
	})
	assert.Error(t, err, "缺少反馈生成器时创建应失败")
}

func TestCheckResume(t *testing.T) {
	checker := newTestChecker(t, &stubTextExtractor{text: checkerSampleResume})

	result, err := checker.CheckResume(context.Background(), []byte("fake pdf bytes"), "resume.pdf", testJob())
	require.NoError(t, err, "同步评估不应失败")
	require.NotNil(t, result)

	require.NotNil(t, result.Profile)
	assert.Equal(t, "John Smith", result.Profile.Name)
	assert.NotEmpty(t, result.Profile.Skills)

	require.NotNil(t, result.Score)
	assert.GreaterOrEqual(t, result.Score.OverallScore, 0.0)
	assert.LessOrEqual(t, result.Score.OverallScore, 1.0)
	assert.Equal(t, 1.0, result.Score.ExperienceScore, "6年经验对5年要求应得满分")
	assert.Equal(t, 1.0, result.Score.EducationScore, "本科对本科要求应得满分")

	assert.NotEmpty(t, result.Feedback, "应生成反馈文档")
	assert.NotEmpty(t, result.ImprovedResume, "应生成改进简历")
	assert.Equal(t, testJob().JobID, result.Job.JobID)
}

func TestCheckResumeDefaultExtension(t *testing.T) {
	checker := newTestChecker(t, &stubTextExtractor{text: checkerSampleResume})

	// 没有扩展名的文件按pdf处理
	result, err := checker.CheckResume(context.Background(), []byte("bytes"), "resume", testJob())
	require.NoError(t, err, "无扩展名的文件名应按默认格式处理")
	require.NotNil(t, result)
}

func TestCheckResumeUnsupportedFormat(t *testing.T) {
	checker := newTestChecker(t, &stubTextExtractor{text: checkerSampleResume})

	_, err := checker.CheckResume(context.Background(), []byte("bytes"), "resume.txt", testJob())
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrUnsupportedFormat, "不支持的格式应在提取前被拒绝")
}

func TestCheckResumeNotAResume(t *testing.T) {
	checker := newTestChecker(t, &stubTextExtractor{text: "just a short note"})

	_, err := checker.CheckResume(context.Background(), []byte("bytes"), "note.pdf", testJob())
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrNotAResume, "非简历内容应被拒绝")
}

func TestCheckResumeExtractionFailure(t *testing.T) {
	checker := newTestChecker(t, &stubTextExtractor{err: assert.AnError})

	_, err := checker.CheckResume(context.Background(), []byte("bytes"), "resume.pdf", testJob())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtractTextFailed, "提取失败应返回对应的基础错误")
}

func TestCheckProcessErrorUnwrap(t *testing.T) {
	err := NewScoringError("uuid-123", "detail text")

	assert.ErrorIs(t, err, ErrScoringFailed, "errors.Is 应命中基础错误")
	assert.Contains(t, err.Error(), "uuid-123", "错误信息应包含提交UUID")
	assert.Contains(t, err.Error(), "detail text")
}
