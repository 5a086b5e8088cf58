package handler

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"resume-fit-go/internal/config"
	"resume-fit-go/internal/constants"
	"resume-fit-go/internal/logger"
	"resume-fit-go/internal/processor"
	"resume-fit-go/internal/storage"
	"resume-fit-go/internal/storage/models"
	"resume-fit-go/internal/types"
	"resume-fit-go/pkg/utils"
)

// JobHandler 岗位管理接口处理器
type JobHandler struct {
	cfg     *config.Config
	storage *storage.Storage
}

// NewJobHandler 创建岗位处理器
func NewJobHandler(cfg *config.Config, st *storage.Storage) *JobHandler {
	return &JobHandler{
		cfg:     cfg,
		storage: st,
	}
}

// ListJobs 返回全部在招岗位
func (h *JobHandler) ListJobs(ctx context.Context) ([]types.JobRequirement, error) {
	jobModels, err := h.storage.MySQL.ListJobs(ctx, constants.JobStatusActive)
	if err != nil {
		return nil, fmt.Errorf("查询岗位列表失败: %w", err)
	}

	jobs := make([]types.JobRequirement, 0, len(jobModels))
	for i := range jobModels {
		job, cerr := processor.JobModelToRequirement(&jobModels[i])
		if cerr != nil {
			logger.Warn().Err(cerr).Str("job_id", jobModels[i].JobID).Msg("岗位转换失败, 跳过")
			continue
		}
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

// GetJob 按ID返回单个岗位
func (h *JobHandler) GetJob(ctx context.Context, jobID string) (*types.JobRequirement, error) {
	jobModel, err := h.storage.MySQL.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("查询岗位失败: %w", err)
	}
	if jobModel == nil {
		return nil, fmt.Errorf("%w: %s", processor.ErrJobNotFound, jobID)
	}
	return processor.JobModelToRequirement(jobModel)
}

// CreateJob 新建岗位, 已存在同ID时报错
func (h *JobHandler) CreateJob(ctx context.Context, job *types.JobRequirement) error {
	if job.JobID == "" || job.Title == "" {
		return fmt.Errorf("岗位ID和标题不能为空")
	}

	model, err := requirementToJobModel(job)
	if err != nil {
		return err
	}
	if err := h.storage.MySQL.CreateJob(ctx, model); err != nil {
		return fmt.Errorf("创建岗位失败: %w", err)
	}

	// 清掉可能存在的旧缓存
	if h.storage.Redis != nil {
		if err := h.storage.Redis.InvalidateJobRequirementCache(ctx, job.JobID); err != nil {
			logger.Warn().Err(err).Str("job_id", job.JobID).Msg("清除岗位缓存失败")
		}
	}
	return nil
}

// ArchiveJob 归档岗位, 归档后不再出现在岗位列表中, 历史评分记录保留
func (h *JobHandler) ArchiveJob(ctx context.Context, jobID string) error {
	if err := h.storage.MySQL.UpdateJobStatus(ctx, jobID, constants.JobStatusArchived); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", processor.ErrJobNotFound, jobID)
		}
		return fmt.Errorf("归档岗位失败: %w", err)
	}

	if h.storage.Redis != nil {
		if err := h.storage.Redis.InvalidateJobRequirementCache(ctx, jobID); err != nil {
			logger.Warn().Err(err).Str("job_id", jobID).Msg("清除岗位缓存失败")
		}
	}
	return nil
}

// SeedDemoJobs 空表时写入演示岗位
func (h *JobHandler) SeedDemoJobs(ctx context.Context) error {
	seeds := make([]models.Job, 0, len(demoJobs))
	for i := range demoJobs {
		model, err := requirementToJobModel(&demoJobs[i])
		if err != nil {
			return err
		}
		seeds = append(seeds, *model)
	}

	seeded, err := h.storage.MySQL.SeedJobs(ctx, seeds)
	if err != nil {
		return fmt.Errorf("写入演示岗位失败: %w", err)
	}
	if seeded {
		logger.Info().Int("count", len(seeds)).Msg("已写入演示岗位")
	}
	return nil
}

// demoJobs 演示用的三个岗位
var demoJobs = []types.JobRequirement{
	{
		JobID:              "job1",
		Title:              "Senior Software Engineer",
		Description:        "Build and operate large scale backend services.",
		RequiredSkills:     []string{"python", "javascript", "react", "aws", "docker", "kubernetes"},
		MinYearsExperience: 5,
		MinEducation:       "Bachelor's degree",
	},
	{
		JobID:              "job2",
		Title:              "Data Scientist",
		Description:        "Design experiments and ship ML models to production.",
		RequiredSkills:     []string{"python", "sql", "machine learning", "pandas", "pytorch", "statistics"},
		MinYearsExperience: 3,
		MinEducation:       "Master's degree",
	},
	{
		JobID:              "job3",
		Title:              "Product Manager",
		Description:        "Own the roadmap and drive delivery with engineering.",
		RequiredSkills:     []string{"agile", "jira", "user stories", "roadmap planning", "stakeholder management"},
		MinYearsExperience: 4,
		MinEducation:       "Bachelor's degree",
	},
}

// requirementToJobModel 岗位要求转数据库模型
func requirementToJobModel(job *types.JobRequirement) (*models.Job, error) {
	skillsJSON, err := utils.ConvertArrayToJSON(job.RequiredSkills)
	if err != nil {
		return nil, fmt.Errorf("序列化岗位 %s 的技能要求失败: %w", job.JobID, err)
	}
	return &models.Job{
		JobID:              job.JobID,
		JobTitle:           job.Title,
		JobDescriptionText: job.Description,
		RequiredSkillsJSON: skillsJSON,
		MinYearsExperience: job.MinYearsExperience,
		MinEducation:       job.MinEducation,
		Status:             constants.JobStatusActive,
	}, nil
}
