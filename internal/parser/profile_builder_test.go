package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-fit-go/internal/types"
)

// stubNlpEngine NLP桩, 只返回在被分析文本中实际出现的预设实体
type stubNlpEngine struct {
	entities    []types.Entity
	emailTokens []string
	err         error
}

func (s *stubNlpEngine) Analyze(_ context.Context, text string) (*types.NlpAnalysis, error) {
	if s.err != nil {
		return nil, s.err
	}
	analysis := &types.NlpAnalysis{EmailLikeTokens: s.emailTokens}
	for _, e := range s.entities {
		if strings.Contains(text, e.Text) {
			analysis.Entities = append(analysis.Entities, e)
		}
	}
	return analysis, nil
}

func (s *stubNlpEngine) Similarity(_ context.Context, _, _ string) (float64, error) {
	return 0, nil
}

const builderSampleResume = `John Smith
Seattle, WA
john.smith@example.com | (555) 123-4567 | linkedin.com/in/johnsmith

EXPERIENCE
2018 - 2022
Software Engineer at TechCorp
Built and operated backend services.

EDUCATION
Bachelor's degree in Computer Science
State University, 2014 - 2018

SKILLS
Python, React, AWS, react
`

func newBuilderStub() *stubNlpEngine {
	return &stubNlpEngine{
		entities: []types.Entity{
			{Label: types.EntityPerson, Text: "John Smith"},
			{Label: types.EntityOrg, Text: "State University"},
			{Label: types.EntityOrg, Text: "TechCorp"},
			{Label: types.EntityGPE, Text: "Seattle"},
		},
		emailTokens: []string{"john.smith@example.com"},
	}
}

func TestBuildWithNlp(t *testing.T) {
	b := NewProfileBuilder(newBuilderStub())
	profile, err := b.Build(context.Background(), builderSampleResume)
	require.NoError(t, err, "构建档案不应失败")
	require.NotNil(t, profile)

	assert.Equal(t, "John Smith", profile.Name, "姓名应取第一个PERSON实体")
	assert.Equal(t, "john.smith@example.com", profile.Contact.Email, "邮箱应取第一个邮箱token")
	assert.Equal(t, "Seattle", profile.Contact.Location, "所在地应取第一个GPE实体")
	assert.Equal(t, "(555) 123-4567", profile.Contact.Phone)
	assert.Equal(t, "https://www.linkedin.com/in/johnsmith", profile.Contact.LinkedIn, "LinkedIn应补全协议前缀")

	require.Len(t, profile.Experience, 1, "应抽取到一条工作经历")
	assert.Equal(t, "Software Engineer", profile.Experience[0].Title, "职位应命中常见职位词表")
	assert.Equal(t, "TechCorp", profile.Experience[0].Company, "公司应取条目窗口内的ORG实体")
	assert.Equal(t, "2018 - 2022", profile.Experience[0].DateRange)

	require.Len(t, profile.Education, 1, "应抽取到一条学历")
	assert.Equal(t, "Bachelor's", profile.Education[0].Degree)
	assert.Equal(t, "State University", profile.Education[0].Institution, "机构应取带机构关键词的ORG实体")
	assert.Equal(t, "Computer Science", profile.Education[0].FieldOfStudy)
	assert.Equal(t, "2014 - 2018", profile.Education[0].DateRange)

	// 章节标题与第一个条目之间没有分隔符, 随首条目一起保留; react 与 React 去重
	assert.Equal(t, []string{"SKILLS\nPython", "React", "AWS"}, profile.Skills)
}

func TestBuildWithoutNlp(t *testing.T) {
	// 边车缺失: 姓名退化为首行, 邮箱退化为正则, 机构和公司为未知
	b := NewProfileBuilder(nil)
	profile, err := b.Build(context.Background(), builderSampleResume)
	require.NoError(t, err)

	assert.Equal(t, "John Smith", profile.Name, "无NLP时姓名应退化为首行")
	assert.Equal(t, "john.smith@example.com", profile.Contact.Email, "无NLP时邮箱应退化为正则识别")
	assert.Equal(t, "", profile.Contact.Location, "无NLP时放弃所在地识别")

	require.Len(t, profile.Education, 1)
	assert.Equal(t, "Unknown Institution", profile.Education[0].Institution)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Unknown Company", profile.Experience[0].Company)
}

func TestBuildNlpFailureDegrades(t *testing.T) {
	// 边车故障不阻断构建
	b := NewProfileBuilder(&stubNlpEngine{err: assert.AnError})

	profile, err := b.Build(context.Background(), builderSampleResume)
	require.NoError(t, err, "NLP故障应降级而不是失败")
	assert.Equal(t, "John Smith", profile.Name)
	assert.NotEmpty(t, profile.Skills)
}

func TestExtractSkillsSeparatorPriority(t *testing.T) {
	b := NewProfileBuilder(nil)

	// 逗号和换行同时存在时逗号优先, 换行不再参与切分
	text := "SKILLS\nGo, Rust, Kubernetes\nTerraform"
	skills := b.extractSkills(text)
	assert.Contains(t, skills, "Rust")
	assert.NotContains(t, skills, "Terraform", "逗号生效后换行不应再作为分隔符")

	// 只有项目符号时用项目符号切分
	bulleted := "SKILLS\n• Python • Django • PostgreSQL"
	skills = b.extractSkills(bulleted)
	assert.Contains(t, skills, "Python")
	assert.Contains(t, skills, "Django")
	assert.Contains(t, skills, "PostgreSQL")
}

func TestExtractSkillsFiltering(t *testing.T) {
	b := NewProfileBuilder(nil)

	text := "SKILLS\nGo, C, a very long skill description that clearly is not a single skill name, SQL"
	skills := b.extractSkills(text)
	assert.NotContains(t, skills, "C", "短于最小长度的条目应被丢弃")
	assert.Contains(t, skills, "SQL")
	for _, s := range skills {
		assert.Less(t, len(s), maxSkillLength, "超长条目应被丢弃")
	}
}

func TestExtractSkillsNoSection(t *testing.T) {
	b := NewProfileBuilder(nil)
	skills := b.extractSkills("No relevant headings in this text at all.")
	assert.Empty(t, skills, "缺少技能章节时应返回空列表")
}
