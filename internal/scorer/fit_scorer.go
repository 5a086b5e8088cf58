package scorer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"resume-fit-go/internal/logger"
	"resume-fit-go/internal/parser"
	"resume-fit-go/internal/types"
)

// ErrDataIncomplete 简历档案或岗位要求缺少评分所需的最低信息
var ErrDataIncomplete = errors.New("数据不完整, 无法评分")

// 综合分的维度权重
const (
	overallSkillWeight      = 0.4
	overallExperienceWeight = 0.3
	overallEducationWeight  = 0.3
)

// 经验分的构成: 总年限和相关年限
const (
	experienceTotalWeight    = 0.3
	experienceRelevantWeight = 0.7
	// 岗位无年限要求时的基线分
	noExperienceRequirementBaseline = 0.9
)

// 学历基线分
const (
	noEducationRequirementBaseline = 0.9
	unknownEducationBaseline       = 0.85
)

// educationLevelOrdinals 学历序数表, 子串匹配, 取命中的最高项
var educationLevelOrdinals = map[string]int{
	"high school": 1,
	"associate":   2,
	"bachelor":    3,
	"master":      4,
	"phd":         5,
	"doctorate":   5,
}

// FitScorer 简历-岗位匹配度评分器
// 技能/经验/学历三个维度独立打分后加权汇总
type FitScorer struct {
	matcher  *SkillMatcher
	resolver *parser.DateRangeResolver
	logger   zerolog.Logger
}

// ScorerOption FitScorer 配置选项
type ScorerOption func(*FitScorer)

// WithScorerLogger 设置日志记录器
func WithScorerLogger(l zerolog.Logger) ScorerOption {
	return func(s *FitScorer) {
		s.logger = l
	}
}

// WithDateRangeResolver 注入年限解析器 (测试时注入固定时钟)
func WithDateRangeResolver(r *parser.DateRangeResolver) ScorerOption {
	return func(s *FitScorer) {
		s.resolver = r
	}
}

// NewFitScorer 创建评分器
func NewFitScorer(matcher *SkillMatcher, opts ...ScorerOption) *FitScorer {
	s := &FitScorer{
		matcher:  matcher,
		resolver: parser.NewDateRangeResolver(),
		logger:   logger.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MatchStrategy 返回底层技能匹配器使用的策略名
func (s *FitScorer) MatchStrategy() string {
	return string(s.matcher.Strategy())
}

// Score 给出简历对岗位的匹配度评分
// 前置校验不通过返回 ErrDataIncomplete; 所有分数裁剪到 [0,1] 并保留两位小数
func (s *FitScorer) Score(ctx context.Context, profile *types.ResumeProfile, job *types.JobRequirement) (*types.ScoreBreakdown, error) {
	if err := validateInputs(profile, job); err != nil {
		return nil, err
	}

	skillResult := s.matcher.Match(ctx, profile.Skills, job.RequiredSkills)
	experienceScore := s.scoreExperience(profile.Experience, job.MinYearsExperience)
	educationScore := s.scoreEducation(profile.Education, job.MinEducation)

	overall := clip01(overallSkillWeight*skillResult.Score +
		overallExperienceWeight*experienceScore +
		overallEducationWeight*educationScore)

	breakdown := &types.ScoreBreakdown{
		OverallScore:    round2(overall),
		SkillMatchScore: round2(skillResult.Score),
		ExperienceScore: round2(experienceScore),
		EducationScore:  round2(educationScore),
		MatchingSkills:  skillResult.Matching,
		MissingSkills:   skillResult.Missing,
		ExtraSkills:     skillResult.Extra,
	}
	breakdown.Analysis = buildAnalysis(breakdown)

	s.logger.Debug().
		Str("job_id", job.JobID).
		Float64("overall", breakdown.OverallScore).
		Str("strategy", string(skillResult.Strategy)).
		Msg("评分完成")

	return breakdown, nil
}

// validateInputs 评分前置校验
// 简历侧: 技能/经历/学历三者全空视为空档案; 岗位侧: 缺标题或技能要求字段
func validateInputs(profile *types.ResumeProfile, job *types.JobRequirement) error {
	if profile == nil {
		return fmt.Errorf("%w: 简历档案为空", ErrDataIncomplete)
	}
	if len(profile.Skills) == 0 && len(profile.Experience) == 0 && len(profile.Education) == 0 {
		return fmt.Errorf("%w: 简历缺少技能/经历/学历信息", ErrDataIncomplete)
	}
	if job == nil || job.Title == "" {
		return fmt.Errorf("%w: 岗位缺少标题", ErrDataIncomplete)
	}
	if job.RequiredSkills == nil {
		return fmt.Errorf("%w: 岗位缺少技能要求字段", ErrDataIncomplete)
	}
	return nil
}

// scoreExperience 经验分: 总年限占三成, 相关年限占七成
func (s *FitScorer) scoreExperience(entries []types.ExperienceEntry, minYears int) float64 {
	if minYears <= 0 {
		return noExperienceRequirementBaseline
	}
	if len(entries) == 0 {
		return 0.0
	}

	totalYears := 0.0
	relevantYears := 0.0
	for _, e := range entries {
		years := s.resolver.ResolveYears(e.DateRange)
		totalYears += years
		if s.isRelevantExperience(e) {
			relevantYears += years
		}
	}

	required := float64(minYears)
	score := experienceTotalWeight*math.Min(1.0, totalYears/required) +
		experienceRelevantWeight*math.Min(1.0, relevantYears/required)
	return clip01(score)
}

// isRelevantExperience 相关性判定
// 目前全量相关, 后续可换成基于岗位描述的语义判定
func (s *FitScorer) isRelevantExperience(_ types.ExperienceEntry) bool {
	return true
}

// scoreEducation 学历分: 简历最高学历序数对岗位要求序数
func (s *FitScorer) scoreEducation(entries []types.EducationEntry, minEducation string) float64 {
	if strings.TrimSpace(minEducation) == "" {
		return noEducationRequirementBaseline
	}

	required := educationOrdinal(minEducation)
	if required == 0 {
		// 要求的学历不在序数表内, 无法比较
		return unknownEducationBaseline
	}

	highest := 0
	for _, e := range entries {
		if ord := educationOrdinal(e.Degree); ord > highest {
			highest = ord
		}
	}

	if highest >= required {
		return 1.0
	}
	if highest == 0 {
		return 0.0
	}
	return float64(highest) / float64(required)
}

// educationOrdinal 学历文本映射到序数, 未识别返回0
func educationOrdinal(text string) int {
	lower := strings.ToLower(text)
	highest := 0
	for keyword, ord := range educationLevelOrdinals {
		if strings.Contains(lower, keyword) && ord > highest {
			highest = ord
		}
	}
	return highest
}

// buildAnalysis 按固定阈值分档生成叙述, 同样的分数永远得到同样的文案
func buildAnalysis(b *types.ScoreBreakdown) string {
	sentences := make([]string, 0, 4)

	switch {
	case b.SkillMatchScore >= 0.8:
		sentences = append(sentences, "Strong skill alignment with the role.")
	case b.SkillMatchScore >= 0.5:
		sentences = append(sentences, "Moderate skill overlap, though several required skills are missing.")
	default:
		sentences = append(sentences, "Significant skill gaps against the job requirements.")
	}

	switch {
	case b.ExperienceScore >= 0.8:
		sentences = append(sentences, "Experience level meets or exceeds the requirement.")
	case b.ExperienceScore >= 0.6:
		sentences = append(sentences, "Experience is close to the requirement but falls slightly short.")
	default:
		sentences = append(sentences, "Experience falls well below the stated requirement.")
	}

	switch {
	case b.EducationScore >= 0.8:
		sentences = append(sentences, "Education background satisfies the requirement.")
	case b.EducationScore >= 0.5:
		sentences = append(sentences, "Education is below the required level.")
	default:
		sentences = append(sentences, "Education does not meet the requirement.")
	}

	switch {
	case b.OverallScore >= 0.8:
		sentences = append(sentences, "Overall, this resume is a strong match for the position.")
	case b.OverallScore >= 0.5:
		sentences = append(sentences, "Overall, this resume is a partial match for the position.")
	default:
		sentences = append(sentences, "Overall, this resume is a weak match for the position.")
	}

	return strings.Join(sentences, " ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
