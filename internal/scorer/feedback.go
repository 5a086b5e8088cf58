package scorer

import (
	"fmt"
	"strings"
	"text/template"

	"resume-fit-go/internal/types"
)

// 触发各类建议的阈值
const (
	skillReorganizeThreshold  = 0.6
	experienceAdviceThreshold = 0.7
	minExperienceEntries      = 2
)

// Recommendations 按维度分桶的改进建议
type Recommendations struct {
	Skills     []string
	Experience []string
	Education  []string
	Formatting []string
}

// formattingAdvice 通用格式建议, 始终给出
var formattingAdvice = []string{
	"Use a clean, ATS-friendly format without tables or columns",
	"Include relevant keywords from the job description",
	"Remove graphics, images, and special characters",
	"Use standard bullet points for readability",
	"Keep the resume to 1-2 pages",
}

var feedbackTemplate = template.Must(template.New("feedback").Parse(
	`Resume Feedback for {{.JobTitle}} (Overall Score: {{printf "%.2f" .OverallScore}})

Skills:
{{range .Recs.Skills}}- {{.}}
{{end}}{{if not .Recs.Skills}}- Your skills section aligns well with this job.
{{end}}
Experience:
{{range .Recs.Experience}}- {{.}}
{{end}}{{if not .Recs.Experience}}- Your experience section aligns well with this job.
{{end}}
Education:
{{range .Recs.Education}}- {{.}}
{{end}}{{if not .Recs.Education}}- Your education meets the requirement.
{{end}}
Formatting:
{{range .Recs.Formatting}}- {{.}}
{{end}}`))

var improvedResumeTemplate = template.Must(template.New("improved").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(improvedResumeTemplateText))

const improvedResumeTemplateText = `{{.Profile.Name}}
{{if .Profile.Contact.Email}}Email: {{.Profile.Contact.Email}}
{{end}}{{if .Profile.Contact.Phone}}Phone: {{.Profile.Contact.Phone}}
{{end}}{{if .Profile.Contact.LinkedIn}}LinkedIn: {{.Profile.Contact.LinkedIn}}
{{end}}{{if .Profile.Contact.Location}}Location: {{.Profile.Contact.Location}}
{{end}}
PROFESSIONAL SUMMARY
Candidate targeting the {{.JobTitle}} role{{if .MatchingSkills}} with demonstrated strengths in {{join .MatchingSkills ", "}}{{end}}.

SKILLS
{{join .AllSkills ", "}}
{{if .MissingSkills}}
Recommended skills to develop: {{join .MissingSkills ", "}}
{{end}}
EXPERIENCE
{{range .Profile.Experience}}{{.Title}} | {{.Company}} | {{.DateRange}}
{{.Description}}

{{end}}EDUCATION
{{range .Profile.Education}}{{.Degree}}{{if .FieldOfStudy}} in {{.FieldOfStudy}}{{end}}, {{.Institution}}{{if .DateRange}} ({{.DateRange}}){{end}}
{{end}}`

// FeedbackGenerator 基于评分结果生成改进建议和重写后的简历文本
// 建议是规则驱动的, 同样的输入永远产出同样的文案
type FeedbackGenerator struct{}

// NewFeedbackGenerator 创建反馈生成器
func NewFeedbackGenerator() *FeedbackGenerator {
	return &FeedbackGenerator{}
}

// GenerateRecommendations 按评分结果生成分桶建议
func (g *FeedbackGenerator) GenerateRecommendations(profile *types.ResumeProfile, score *types.ScoreBreakdown) *Recommendations {
	recs := &Recommendations{
		Skills:     []string{},
		Experience: []string{},
		Education:  []string{},
		Formatting: formattingAdvice,
	}

	if len(score.MissingSkills) > 0 {
		shown := score.MissingSkills
		suffix := ""
		if len(shown) > 3 {
			shown = shown[:3]
			suffix = ", and others"
		}
		recs.Skills = append(recs.Skills, fmt.Sprintf(
			"Add these key missing skills that match the job requirements: %s%s",
			strings.Join(shown, ", "), suffix))
	}
	if score.SkillMatchScore < skillReorganizeThreshold {
		recs.Skills = append(recs.Skills,
			"Reorganize skills section to highlight relevant technical and soft skills that align with the job")
	}

	if score.ExperienceScore < experienceAdviceThreshold {
		recs.Experience = append(recs.Experience,
			"Quantify achievements with specific metrics and results",
			"Use strong action verbs to begin bullet points",
			"Focus on achievements rather than responsibilities")
	}
	if len(profile.Experience) < minExperienceEntries {
		recs.Experience = append(recs.Experience,
			"Expand your experience section with relevant projects, internships, or volunteer work")
	}

	if score.EducationScore < 1.0 {
		recs.Education = append(recs.Education,
			"Highlight relevant coursework or projects that demonstrate required knowledge",
			"Include any additional certifications or continuing education")
	}

	return recs
}

// RenderFeedback 渲染完整的反馈文档
func (g *FeedbackGenerator) RenderFeedback(profile *types.ResumeProfile, job *types.JobRequirement, score *types.ScoreBreakdown) (string, error) {
	var sb strings.Builder
	err := feedbackTemplate.Execute(&sb, map[string]interface{}{
		"JobTitle":     job.Title,
		"OverallScore": score.OverallScore,
		"Recs":         g.GenerateRecommendations(profile, score),
	})
	if err != nil {
		return "", fmt.Errorf("渲染反馈文档失败: %w", err)
	}
	return sb.String(), nil
}

// RenderImprovedResume 把档案和匹配结果重排为改进后的简历文本
func (g *FeedbackGenerator) RenderImprovedResume(profile *types.ResumeProfile, job *types.JobRequirement, score *types.ScoreBreakdown) (string, error) {
	allSkills := profile.Skills
	if len(allSkills) == 0 {
		allSkills = score.MatchingSkills
	}

	var sb strings.Builder
	err := improvedResumeTemplate.Execute(&sb, map[string]interface{}{
		"Profile":        profile,
		"JobTitle":       job.Title,
		"MatchingSkills": score.MatchingSkills,
		"MissingSkills":  score.MissingSkills,
		"AllSkills":      allSkills,
	})
	if err != nil {
		return "", fmt.Errorf("渲染改进简历失败: %w", err)
	}
	return sb.String(), nil
}
