package scorer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-fit-go/internal/parser"
	"resume-fit-go/internal/types"
)

// newTestScorer 固定时钟的评分器, 避免 present 区间随运行时间漂移
func newTestScorer() *FitScorer {
	resolver := parser.NewDateRangeResolverWithClock(func() time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	})
	return NewFitScorer(NewSkillMatcher(nil), WithDateRangeResolver(resolver))
}

func sampleProfile() *types.ResumeProfile {
	return &types.ResumeProfile{
		Name: "John Smith",
		Skills: []string{"Python", "React", "AWS"},
		Education: []types.EducationEntry{
			{Degree: "Bachelor's", Institution: "State University", FieldOfStudy: "Computer Science"},
		},
		Experience: []types.ExperienceEntry{
			{Title: "Software Engineer", Company: "TechCorp", DateRange: "2016 - 2020"},
			{Title: "Developer", Company: "StartupX", DateRange: "2020 - 2022"},
		},
	}
}

func seniorEngineerJob() *types.JobRequirement {
	return &types.JobRequirement{
		JobID:              "job1",
		Title:              "Senior Software Engineer",
		RequiredSkills:     []string{"python", "javascript", "react", "aws", "docker", "kubernetes"},
		MinYearsExperience: 5,
		MinEducation:       "Bachelor's degree",
	}
}

func TestScoreEndToEnd(t *testing.T) {
	s := newTestScorer()

	// 3/6技能命中, 6年经验对5年要求, 本科对本科要求
	breakdown, err := s.Score(context.Background(), sampleProfile(), seniorEngineerJob())
	require.NoError(t, err, "评分不应失败")
	require.NotNil(t, breakdown)

	assert.Equal(t, 0.65, breakdown.SkillMatchScore, "技能分应为0.65")
	assert.Equal(t, 1.0, breakdown.ExperienceScore, "经验满足要求应得满分")
	assert.Equal(t, 1.0, breakdown.EducationScore, "学历满足要求应得满分")
	assert.Equal(t, 0.86, breakdown.OverallScore, "综合分应为 0.4*0.65 + 0.3*1.0 + 0.3*1.0 = 0.86")

	assert.ElementsMatch(t, []string{"python", "react", "aws"}, breakdown.MatchingSkills)
	assert.ElementsMatch(t, []string{"javascript", "docker", "kubernetes"}, breakdown.MissingSkills)
	assert.NotEmpty(t, breakdown.Analysis, "应生成分析叙述")
}

func TestScoreAnalysisDeterministic(t *testing.T) {
	s := newTestScorer()

	first, err := s.Score(context.Background(), sampleProfile(), seniorEngineerJob())
	require.NoError(t, err)
	second, err := s.Score(context.Background(), sampleProfile(), seniorEngineerJob())
	require.NoError(t, err)
	assert.Equal(t, first.Analysis, second.Analysis, "相同输入应产出相同的分析叙述")
}

func TestScoreDataIncomplete(t *testing.T) {
	s := newTestScorer()
	ctx := context.Background()

	_, err := s.Score(ctx, nil, seniorEngineerJob())
	assert.ErrorIs(t, err, ErrDataIncomplete, "空档案应返回 ErrDataIncomplete")

	// 技能/经历/学历三者全空
	_, err = s.Score(ctx, &types.ResumeProfile{Name: "Empty"}, seniorEngineerJob())
	assert.ErrorIs(t, err, ErrDataIncomplete, "无任何内容的档案应返回 ErrDataIncomplete")

	// 岗位缺标题
	_, err = s.Score(ctx, sampleProfile(), &types.JobRequirement{RequiredSkills: []string{"go"}})
	assert.ErrorIs(t, err, ErrDataIncomplete, "岗位缺少标题应返回 ErrDataIncomplete")

	// 技能要求字段缺失 (nil) 与空列表不同, 前者是数据不完整
	_, err = s.Score(ctx, sampleProfile(), &types.JobRequirement{Title: "Any"})
	assert.ErrorIs(t, err, ErrDataIncomplete, "技能要求字段缺失应返回 ErrDataIncomplete")

	// 空列表是合法输入, 走基线分
	breakdown, err := s.Score(ctx, sampleProfile(), &types.JobRequirement{Title: "Any", RequiredSkills: []string{}})
	require.NoError(t, err, "空技能要求列表应正常评分")
	assert.Equal(t, emptyJobSkillsBaseline, breakdown.SkillMatchScore)
}

func TestScoreExperience(t *testing.T) {
	s := newTestScorer()

	tests := []struct {
		name     string
		entries  []types.ExperienceEntry
		minYears int
		expected float64
	}{
		{"无年限要求", []types.ExperienceEntry{{DateRange: "2020 - 2022"}}, 0, noExperienceRequirementBaseline},
		{"有要求但无经历", nil, 3, 0.0},
		{"恰好满足要求", []types.ExperienceEntry{{DateRange: "2018 - 2023"}}, 5, 1.0},
		{"超出要求", []types.ExperienceEntry{{DateRange: "2014 - 2022"}}, 5, 1.0},
		{"不足一半", []types.ExperienceEntry{{DateRange: "2021 - 2023"}}, 4, 0.5},
		{"无法解析的区间按0年计", []types.ExperienceEntry{{DateRange: "some years"}}, 4, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.scoreExperience(tt.entries, tt.minYears)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestScoreExperiencePresentRange(t *testing.T) {
	s := newTestScorer()

	// 固定时钟2024年: 2020 - present 算4年
	entries := []types.ExperienceEntry{{DateRange: "2020 - present"}}
	got := s.scoreExperience(entries, 4)
	assert.InDelta(t, 1.0, got, 1e-9, "present 区间应按注入时钟的年份解析")
}

func TestScoreEducation(t *testing.T) {
	s := newTestScorer()

	bachelor := []types.EducationEntry{{Degree: "Bachelor's"}}
	master := []types.EducationEntry{{Degree: "Master of Science"}}
	phd := []types.EducationEntry{{Degree: "PhD"}}

	tests := []struct {
		name     string
		entries  []types.EducationEntry
		required string
		expected float64
	}{
		{"无学历要求", bachelor, "", noEducationRequirementBaseline},
		{"要求不可识别", bachelor, "Some certificate", unknownEducationBaseline},
		{"恰好满足", bachelor, "Bachelor's degree", 1.0},
		{"超出要求", phd, "Master's degree", 1.0},
		{"本科对硕士要求", bachelor, "Master's degree", 3.0 / 4.0},
		{"高中对本科要求", []types.EducationEntry{{Degree: "High School Diploma"}}, "Bachelor's degree", 1.0 / 3.0},
		{"硕士对博士要求", master, "PhD", 4.0 / 5.0},
		{"doctorate 与 phd 同级", []types.EducationEntry{{Degree: "Doctorate"}}, "PhD required", 1.0},
		{"简历无学历", nil, "Bachelor's degree", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.scoreEducation(tt.entries, tt.required)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestScoreRoundingAndRange(t *testing.T) {
	s := newTestScorer()

	profile := &types.ResumeProfile{
		Skills: []string{"go", "sql", "redis", "docker", "linux"},
		Experience: []types.ExperienceEntry{
			{DateRange: "2021 - 2023"},
		},
		Education: []types.EducationEntry{{Degree: "Bachelor's"}},
	}
	job := &types.JobRequirement{
		Title:              "Backend Engineer",
		RequiredSkills:     []string{"go", "kafka", "postgres"},
		MinYearsExperience: 6,
		MinEducation:       "Master's degree",
	}

	breakdown, err := s.Score(context.Background(), profile, job)
	require.NoError(t, err)

	scores := []float64{
		breakdown.OverallScore,
		breakdown.SkillMatchScore,
		breakdown.ExperienceScore,
		breakdown.EducationScore,
	}
	for _, v := range scores {
		assert.GreaterOrEqual(t, v, 0.0, "分数不应低于0")
		assert.LessOrEqual(t, v, 1.0, "分数不应高于1")
		assert.InDelta(t, v, float64(int(v*100+0.5))/100, 1e-9, "分数应保留两位小数")
	}
}

func TestMatchStrategyExposed(t *testing.T) {
	s := newTestScorer()
	assert.Equal(t, string(StrategySimpleSet), s.MatchStrategy())

	semantic := NewFitScorer(NewSkillMatcher(&stubSimilarity{}))
	assert.Equal(t, string(StrategySemantic), semantic.MatchStrategy())
}
