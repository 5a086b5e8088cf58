package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-fit-go/internal/constants"
	"resume-fit-go/internal/processor"
	"resume-fit-go/internal/types"
)

func TestRequirementToJobModelRoundTrip(t *testing.T) {
	req := &types.JobRequirement{
		JobID:              "job42",
		Title:              "Backend Engineer",
		Description:        "Own the ingestion pipeline.",
		RequiredSkills:     []string{"go", "mysql", "rabbitmq"},
		MinYearsExperience: 4,
		MinEducation:       "Bachelor's degree",
	}

	model, err := requirementToJobModel(req)
	require.NoError(t, err, "转换为数据库模型不应失败")
	assert.Equal(t, "job42", model.JobID)
	assert.Equal(t, "Backend Engineer", model.JobTitle)
	assert.Equal(t, constants.JobStatusActive, model.Status, "新建岗位默认为在招状态")
	assert.NotEmpty(t, model.RequiredSkillsJSON, "技能要求应序列化为JSON")

	back, err := processor.JobModelToRequirement(model)
	require.NoError(t, err, "数据库模型转回岗位要求不应失败")
	assert.Equal(t, req.JobID, back.JobID)
	assert.Equal(t, req.Title, back.Title)
	assert.Equal(t, req.Description, back.Description)
	assert.Equal(t, req.RequiredSkills, back.RequiredSkills, "技能列表应在往返转换后保持不变")
	assert.Equal(t, req.MinYearsExperience, back.MinYearsExperience)
	assert.Equal(t, req.MinEducation, back.MinEducation)
}

func TestDemoJobs(t *testing.T) {
	require.Len(t, demoJobs, 3, "应有三个演示岗位")

	byID := make(map[string]types.JobRequirement, len(demoJobs))
	for _, j := range demoJobs {
		byID[j.JobID] = j

		assert.NotEmpty(t, j.Title, "岗位 %s 应有标题", j.JobID)
		assert.NotEmpty(t, j.RequiredSkills, "岗位 %s 应有技能要求", j.JobID)
		assert.Greater(t, j.MinYearsExperience, 0, "岗位 %s 应有年限要求", j.JobID)
		assert.NotEmpty(t, j.MinEducation, "岗位 %s 应有学历要求", j.JobID)

		// 演示岗位必须能完成模型转换, 否则种子写入会失败
		model, err := requirementToJobModel(&j)
		require.NoError(t, err)
		back, err := processor.JobModelToRequirement(model)
		require.NoError(t, err)
		assert.Equal(t, j.RequiredSkills, back.RequiredSkills)
	}

	job1 := byID["job1"]
	assert.Equal(t, "Senior Software Engineer", job1.Title)
	assert.Equal(t, 5, job1.MinYearsExperience)
	assert.Contains(t, job1.RequiredSkills, "kubernetes")

	job2 := byID["job2"]
	assert.Equal(t, "Data Scientist", job2.Title)
	assert.Equal(t, "Master's degree", job2.MinEducation)

	job3 := byID["job3"]
	assert.Equal(t, "Product Manager", job3.Title)
	assert.Contains(t, job3.RequiredSkills, "stakeholder management")
}
