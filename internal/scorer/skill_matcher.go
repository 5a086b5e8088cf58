package scorer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"resume-fit-go/internal/logger"
)

// MatchStrategy 技能匹配策略
type MatchStrategy string

const (
	// StrategyExact 精确匹配 (大小写不敏感)
	StrategyExact MatchStrategy = "exact"
	// StrategySemantic 精确匹配加语义相似度补充
	StrategySemantic MatchStrategy = "semantic"
	// StrategySimpleSet NLP能力缺失时的纯集合运算降级
	StrategySimpleSet MatchStrategy = "simple_set"
)

// 技能匹配的权重和阈值
const (
	// 核心覆盖率权重 (命中岗位要求的比例)
	skillCoreWeight = 0.7
	// 广度权重 (命中数相对简历技能总量)
	skillBreadthWeight = 0.2
	// 精确率权重 (简历中与岗位无关技能的惩罚)
	skillPrecisionWeight = 0.1
	// 岗位未给出要求技能时的基线分
	emptyJobSkillsBaseline = 0.85
	// 语义匹配的相似度判定阈值
	similarityThreshold = 0.8
	// 一次语义命中折算的匹配度
	fuzzyMatchCredit = 0.9
)

// SimilarityScorer 语义相似度能力, 由NLP边车客户端实现
type SimilarityScorer interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// SkillMatchResult 技能匹配结果
// Matching/Missing/Extra 统一为小写归一形式
type SkillMatchResult struct {
	Score    float64
	Strategy MatchStrategy
	Matching []string
	Missing  []string
	Extra    []string
}

// SkillMatcher 多策略技能匹配器
// 有语义能力时在精确匹配之外补跑一轮相似度匹配,
// 没有时降级为纯集合运算, 两种路径的结果结构一致
type SkillMatcher struct {
	nlp    SimilarityScorer
	logger zerolog.Logger
}

// MatcherOption SkillMatcher 配置选项
type MatcherOption func(*SkillMatcher)

// WithMatcherLogger 设置日志记录器
func WithMatcherLogger(l zerolog.Logger) MatcherOption {
	return func(m *SkillMatcher) {
		m.logger = l
	}
}

// NewSkillMatcher 创建技能匹配器, nlp 为nil时语义策略不可用
func NewSkillMatcher(nlp SimilarityScorer, opts ...MatcherOption) *SkillMatcher {
	m := &SkillMatcher{
		nlp:    nlp,
		logger: logger.Logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Strategy 返回当前配置下会使用的匹配策略
func (m *SkillMatcher) Strategy() MatchStrategy {
	if m.nlp != nil {
		return StrategySemantic
	}
	return StrategySimpleSet
}

// Match 计算简历技能与岗位要求技能的匹配度
// 返回裁剪到 [0,1] 的综合分与三个分类列表,
// matching ∪ missing 覆盖全部岗位技能且两者不相交
func (m *SkillMatcher) Match(ctx context.Context, resumeSkills, jobSkills []string) *SkillMatchResult {
	strategy := StrategySimpleSet
	if m.nlp != nil {
		strategy = StrategySemantic
	}

	resumeNorm := normalizeSkills(resumeSkills)
	jobNorm := normalizeSkills(jobSkills)

	// 岗位没给要求技能: 无从比较, 给一个偏乐观的基线分
	if len(jobNorm) == 0 {
		return &SkillMatchResult{
			Score:    emptyJobSkillsBaseline,
			Strategy: strategy,
			Matching: []string{},
			Missing:  []string{},
			Extra:    resumeNorm,
		}
	}

	// 简历没有技能: 岗位要求全部缺失
	if len(resumeNorm) == 0 {
		return &SkillMatchResult{
			Score:    0.0,
			Strategy: strategy,
			Matching: []string{},
			Missing:  jobNorm,
			Extra:    []string{},
		}
	}

	resumeSet := make(map[string]bool, len(resumeNorm))
	for _, s := range resumeNorm {
		resumeSet[s] = true
	}

	matching := []string{}
	missing := []string{}
	absorbed := make(map[string]bool, len(resumeNorm))
	matchCredit := 0.0

	for _, js := range jobNorm {
		if resumeSet[js] {
			matching = append(matching, js)
			absorbed[js] = true
			matchCredit += 1.0
		} else {
			missing = append(missing, js)
		}
	}

	// 语义补充轮: 未命中的岗位技能和简历技能两两比对
	if strategy == StrategySemantic && len(missing) > 0 {
		stillMissing := make([]string, 0, len(missing))
		for _, js := range missing {
			matched := false
			for _, rs := range resumeNorm {
				if absorbed[rs] {
					continue
				}
				sim, err := m.nlp.Similarity(ctx, rs, js)
				if err != nil {
					m.logger.Warn().Err(err).
						Str("resume_skill", rs).
						Str("job_skill", js).
						Msg("相似度计算失败, 跳过该技能对")
					continue
				}
				if sim > similarityThreshold {
					matching = append(matching, fmt.Sprintf("%s (similar to %s)", rs, js))
					absorbed[rs] = true
					matchCredit += fuzzyMatchCredit
					matched = true
					break
				}
			}
			if !matched {
				stillMissing = append(stillMissing, js)
			}
		}
		missing = stillMissing
	}

	extra := []string{}
	for _, rs := range resumeNorm {
		if !absorbed[rs] {
			extra = append(extra, rs)
		}
	}

	coreScore := matchCredit / float64(len(jobNorm))
	breadthScore := matchCredit / float64(len(resumeNorm))
	if breadthScore > 1 {
		breadthScore = 1
	}
	precisionScore := clip01(1.0 - float64(len(extra))/float64(len(resumeNorm)))

	score := clip01(skillCoreWeight*coreScore +
		skillBreadthWeight*breadthScore +
		skillPrecisionWeight*precisionScore)

	return &SkillMatchResult{
		Score:    score,
		Strategy: strategy,
		Matching: matching,
		Missing:  missing,
		Extra:    extra,
	}
}

// normalizeSkills 小写化, 去空白, 大小写不敏感去重
func normalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
