package scorer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-fit-go/internal/types"
)

func TestGenerateRecommendationsMissingSkills(t *testing.T) {
	g := NewFeedbackGenerator()
	profile := sampleProfile()

	score := &types.ScoreBreakdown{
		SkillMatchScore: 0.65,
		ExperienceScore: 1.0,
		EducationScore:  1.0,
		MissingSkills:   []string{"javascript", "docker", "kubernetes", "terraform"},
	}

	recs := g.GenerateRecommendations(profile, score)
	require.NotEmpty(t, recs.Skills)
	// 超过3个缺失技能时只展示前3个并加 and others 后缀
	assert.Contains(t, recs.Skills[0], "javascript, docker, kubernetes")
	assert.Contains(t, recs.Skills[0], ", and others")
	assert.NotContains(t, recs.Skills[0], "terraform")
}

func TestGenerateRecommendationsThresholds(t *testing.T) {
	g := NewFeedbackGenerator()
	profile := sampleProfile()

	// 技能分低于0.6时额外给出重组建议
	lowSkill := &types.ScoreBreakdown{SkillMatchScore: 0.4, ExperienceScore: 1.0, EducationScore: 1.0}
	recs := g.GenerateRecommendations(profile, lowSkill)
	assert.Len(t, recs.Skills, 1, "无缺失技能但分数低时只有重组建议")
	assert.Contains(t, recs.Skills[0], "Reorganize")

	// 经验分低于0.7时给出经验类建议
	lowExp := &types.ScoreBreakdown{SkillMatchScore: 1.0, ExperienceScore: 0.5, EducationScore: 1.0}
	recs = g.GenerateRecommendations(profile, lowExp)
	assert.Len(t, recs.Experience, 3, "经验分不足应给出三条建议")

	// 高分时技能和经验建议为空
	high := &types.ScoreBreakdown{SkillMatchScore: 0.9, ExperienceScore: 0.9, EducationScore: 1.0}
	recs = g.GenerateRecommendations(profile, high)
	assert.Empty(t, recs.Skills)
	assert.Empty(t, recs.Experience)
	assert.Empty(t, recs.Education, "学历满分时不应有学历建议")
}

func TestGenerateRecommendationsSparseExperience(t *testing.T) {
	g := NewFeedbackGenerator()

	// 经历条目少于2条时建议扩充
	profile := &types.ResumeProfile{
		Skills:     []string{"go"},
		Experience: []types.ExperienceEntry{{Title: "Developer"}},
	}
	score := &types.ScoreBreakdown{SkillMatchScore: 1.0, ExperienceScore: 1.0, EducationScore: 1.0}

	recs := g.GenerateRecommendations(profile, score)
	require.Len(t, recs.Experience, 1)
	assert.Contains(t, recs.Experience[0], "Expand your experience section")
}

func TestGenerateRecommendationsEducation(t *testing.T) {
	g := NewFeedbackGenerator()

	score := &types.ScoreBreakdown{SkillMatchScore: 1.0, ExperienceScore: 1.0, EducationScore: 0.75}
	recs := g.GenerateRecommendations(sampleProfile(), score)
	assert.Len(t, recs.Education, 2, "学历不满分时应给出两条学历建议")
}

func TestFormattingAdviceAlwaysPresent(t *testing.T) {
	g := NewFeedbackGenerator()

	score := &types.ScoreBreakdown{SkillMatchScore: 1.0, ExperienceScore: 1.0, EducationScore: 1.0}
	recs := g.GenerateRecommendations(sampleProfile(), score)
	assert.Len(t, recs.Formatting, 5, "格式建议应始终包含五条")
}

func TestRenderFeedback(t *testing.T) {
	g := NewFeedbackGenerator()
	profile := sampleProfile()
	job := seniorEngineerJob()
	score := &types.ScoreBreakdown{
		OverallScore:    0.86,
		SkillMatchScore: 0.65,
		ExperienceScore: 1.0,
		EducationScore:  1.0,
		MissingSkills:   []string{"javascript", "docker", "kubernetes"},
	}

	feedback, err := g.RenderFeedback(profile, job, score)
	require.NoError(t, err, "渲染反馈不应失败")

	assert.Contains(t, feedback, "Senior Software Engineer", "反馈应包含岗位标题")
	assert.Contains(t, feedback, "0.86", "反馈应包含综合分")
	for _, heading := range []string{"Skills:", "Experience:", "Education:", "Formatting:"} {
		assert.Contains(t, feedback, heading, "反馈应包含 %s 小节", heading)
	}
	assert.Contains(t, feedback, "javascript, docker, kubernetes")
}

func TestRenderImprovedResume(t *testing.T) {
	g := NewFeedbackGenerator()
	profile := sampleProfile()
	profile.Contact = types.ContactInfo{
		Email:    "john@example.com",
		LinkedIn: "https://www.linkedin.com/in/johnsmith",
	}
	job := seniorEngineerJob()
	score := &types.ScoreBreakdown{
		MatchingSkills: []string{"python", "react", "aws"},
		MissingSkills:  []string{"docker"},
	}

	improved, err := g.RenderImprovedResume(profile, job, score)
	require.NoError(t, err, "渲染改进简历不应失败")

	assert.True(t, strings.HasPrefix(improved, "John Smith"), "改进简历应以候选人姓名开头")
	assert.Contains(t, improved, "Email: john@example.com")
	assert.NotContains(t, improved, "Phone:", "没有电话时不应渲染电话行")
	assert.Contains(t, improved, "PROFESSIONAL SUMMARY")
	assert.Contains(t, improved, "python, react, aws", "摘要应列出命中的技能")
	assert.Contains(t, improved, "Recommended skills to develop: docker")
	assert.Contains(t, improved, "EXPERIENCE")
	assert.Contains(t, improved, "TechCorp")
	assert.Contains(t, improved, "EDUCATION")
	assert.Contains(t, improved, "Bachelor's in Computer Science, State University")
}
