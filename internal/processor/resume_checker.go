package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"resume-fit-go/internal/constants"
	"resume-fit-go/internal/parser"
	"resume-fit-go/internal/storage"
	"resume-fit-go/internal/storage/models"
	"resume-fit-go/internal/tracing"
	"resume-fit-go/internal/types"
	"resume-fit-go/pkg/utils"
)

var checkerTracer = otel.Tracer("resume-fit-go/processor")

// Components 流水线依赖的组件集合
type Components struct {
	TextExtractor  TextExtractor
	ProfileBuilder ProfileBuilder
	FitScorer      FitScorer
	Feedback       FeedbackGenerator
	Storage        *storage.Storage
}

// Settings 流水线行为设置
type Settings struct {
	Debug        bool
	Logger       *log.Logger
	TimeLocation *time.Location

	// 评分完成事件的发布目标, 为空时不发布
	EventExchange    string
	ScoredRoutingKey string
}

// ResumeChecker 简历处理流水线: 取文件, 提取文本, 构建档案, 评分, 落库
type ResumeChecker struct {
	Components Components
	Settings   Settings
}

// NewResumeChecker 创建流水线, 按选项覆盖默认设置
func NewResumeChecker(componentOpts []ComponentOpt, settingOpts ...SettingOpt) (*ResumeChecker, error) {
	rc := &ResumeChecker{
		Settings: Settings{
			Logger:       log.New(io.Discard, "", 0),
			TimeLocation: time.Local,
		},
	}

	for _, opt := range componentOpts {
		opt(&rc.Components)
	}
	for _, opt := range settingOpts {
		opt(&rc.Settings)
	}

	if rc.Components.TextExtractor == nil {
		return nil, fmt.Errorf("文本提取器组件不能为空")
	}
	if rc.Components.ProfileBuilder == nil {
		return nil, fmt.Errorf("档案构建器组件不能为空")
	}
	if rc.Components.FitScorer == nil {
		return nil, fmt.Errorf("评分器组件不能为空")
	}
	if rc.Components.Feedback == nil {
		return nil, fmt.Errorf("反馈生成器组件不能为空")
	}

	return rc, nil
}

// WithSettingEventTarget 设置评分完成事件的exchange和路由键
func WithSettingEventTarget(exchange, routingKey string) SettingOpt {
	return func(s *Settings) {
		s.EventExchange = exchange
		s.ScoredRoutingKey = routingKey
	}
}

// CheckResume 同步评估: 文件字节 -> 档案 -> 评分 -> 反馈
// 不依赖任何存储后端, 供同步HTTP接口和测试使用
func (rc *ResumeChecker) CheckResume(ctx context.Context, fileBytes []byte, filename string, job *types.JobRequirement) (*types.CheckResult, error) {
	ctx, span := checkerTracer.Start(ctx, "ResumeChecker.CheckResume")
	defer span.End()

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".pdf"
	}
	if _, err := parser.CheckSupportedFormat(ext); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return nil, err
	}

	text, _, err := rc.Components.TextExtractor.ExtractTextFromBytes(ctx, fileBytes, filename, ext)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeExternal)
		return nil, fmt.Errorf("%w: %v", ErrExtractTextFailed, err)
	}

	if err := parser.ValidateResumeContent(text); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return nil, err
	}

	profile, err := rc.Components.ProfileBuilder.Build(ctx, text)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return nil, fmt.Errorf("%w: %v", ErrBuildProfileFailed, err)
	}

	score, err := rc.Components.FitScorer.Score(ctx, profile, job)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return nil, fmt.Errorf("%w: %v", ErrScoringFailed, err)
	}

	feedback, err := rc.Components.Feedback.RenderFeedback(profile, job, score)
	if err != nil {
		return nil, fmt.Errorf("渲染反馈失败: %w", err)
	}
	improved, err := rc.Components.Feedback.RenderImprovedResume(profile, job, score)
	if err != nil {
		return nil, fmt.Errorf("渲染改进简历失败: %w", err)
	}

	span.SetAttributes(
		attribute.Float64("score.overall", score.OverallScore),
		attribute.Int("profile.skills", len(profile.Skills)),
		attribute.String("candidate.name", tracing.SafeAttributeValue("candidate.name", profile.Name, tracing.DefaultMaxLength)),
	)
	span.SetStatus(codes.Ok, "")

	return &types.CheckResult{
		Profile:        profile,
		Job:            job,
		Score:          score,
		Feedback:       feedback,
		ImprovedResume: improved,
	}, nil
}

// ProcessUploadedResume 消费上传消息, 走完整的异步流水线
// 返回nil表示消息应当Ack (含业务上的终态拒绝), 返回错误表示应当Nack重试
func (rc *ResumeChecker) ProcessUploadedResume(ctx context.Context, message storage.ResumeUploadMessage) error {
	ctx, span := checkerTracer.Start(ctx, "ResumeChecker.ProcessUploadedResume",
		trace.WithSpanKind(trace.SpanKindConsumer))
	defer span.End()

	span.SetAttributes(
		attribute.String("submission_uuid", message.SubmissionUUID),
		attribute.String("target_job_id", message.TargetJobID),
	)

	st := rc.Components.Storage
	if st == nil || st.MySQL == nil || st.MinIO == nil {
		err := fmt.Errorf("存储组件未配置, 无法处理上传消息")
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return err
	}

	if err := st.MySQL.UpdateResumeProcessingStatus(ctx, message.SubmissionUUID, constants.StatusProcessing); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return NewUpdateError(message.SubmissionUUID, err.Error())
	}

	// 1. 下载原始文件
	fileBytes, err := st.MinIO.GetResumeFile(ctx, message.OriginalFilePathOSS)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeExternal)
		rc.markFailed(ctx, message.SubmissionUUID, constants.StatusTextExtractionFailed)
		return NewDownloadError(message.SubmissionUUID, err.Error())
	}

	// 2. 提取文本
	ext := strings.ToLower(filepath.Ext(message.OriginalFilename))
	if ext == "" {
		ext = ".pdf"
	}
	text, _, err := rc.Components.TextExtractor.ExtractTextFromBytes(ctx, fileBytes, message.OriginalFilename, ext)
	if err == nil {
		span.SetAttributes(attribute.String("resume.text_preview", tracing.SafeResumeContent(text)))
	}
	if err != nil {
		rc.logError(err, "提取文本失败: uuid=%s", message.SubmissionUUID)
		tracing.RecordError(span, err, tracing.ErrorTypeExternal)
		rc.markFailed(ctx, message.SubmissionUUID, constants.StatusTextExtractionFailed)
		// 提取失败是终态, 重试不会有不同结果
		return nil
	}

	// 3. 内容校验, 非简历直接拒绝
	if err := parser.ValidateResumeContent(text); err != nil {
		rc.logInfo("内容校验未通过, 标记拒绝: uuid=%s, 原因=%v", message.SubmissionUUID, err)
		span.SetAttributes(attribute.String("rejection_reason", err.Error()))
		rc.markFailed(ctx, message.SubmissionUUID, constants.StatusRejectedNotAResume)
		return nil
	}

	// 4. 解析文本级去重 (同一份简历换文件名/格式重复投递)
	textMD5 := utils.CalculateStringMD5(text)
	if st.Redis != nil {
		exists, derr := st.Redis.CheckAndAddParsedTextMD5(ctx, textMD5)
		if derr != nil {
			rc.logWarn("文本去重检查失败, 继续处理: %v", derr)
		} else if exists {
			rc.logInfo("解析文本重复, 跳过: uuid=%s", message.SubmissionUUID)
			span.SetAttributes(attribute.Bool("duplicate_text", true))
			_ = st.MySQL.UpdateResumeSubmissionFields(ctx, nil, message.SubmissionUUID, map[string]interface{}{
				"raw_text_md5":      textMD5,
				"processing_status": constants.StatusDuplicateSkipped,
			})
			return nil
		}
	}

	// 5. 上传解析文本
	parsedPath, err := st.MinIO.UploadParsedText(ctx, message.SubmissionUUID, text)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeExternal)
		return NewStoreError(message.SubmissionUUID, err.Error())
	}

	// 6. 构建结构化档案
	profile, err := rc.Components.ProfileBuilder.Build(ctx, text)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeNLP)
		rc.markFailed(ctx, message.SubmissionUUID, constants.StatusScoringFailed)
		return NewProfileError(message.SubmissionUUID, err.Error())
	}

	// 7. 关联候选人并回写提交记录
	updates := map[string]interface{}{
		"parsed_text_path_oss": parsedPath,
		"raw_text_md5":         textMD5,
		"parser_version":       constants.DefaultParserVersion,
	}
	if basicInfo, merr := json.Marshal(profile); merr == nil {
		updates["parsed_basic_info"] = models.StringToJSON(string(basicInfo))
	}
	if candidate, cerr := st.MySQL.FindOrCreateCandidate(ctx, profile); cerr != nil {
		rc.logWarn("关联候选人失败, 继续处理: %v", cerr)
	} else if candidate != nil {
		updates["candidate_id"] = candidate.CandidateID
	}
	if err := st.MySQL.UpdateResumeSubmissionFields(ctx, nil, message.SubmissionUUID, updates); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return NewUpdateError(message.SubmissionUUID, err.Error())
	}

	// 8. 评分
	jobs, err := rc.resolveTargetJobs(ctx, message.TargetJobID)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		rc.markFailed(ctx, message.SubmissionUUID, constants.StatusScoringFailed)
		if errors.Is(err, ErrJobNotFound) {
			// 岗位不存在是业务终态
			return nil
		}
		return err
	}

	var scoreErr error
	for i := range jobs {
		if err := rc.scoreAndPersist(ctx, message.SubmissionUUID, profile, &jobs[i]); err != nil {
			rc.logError(err, "评分失败: uuid=%s, job=%s", message.SubmissionUUID, jobs[i].JobID)
			scoreErr = err
		}
	}
	if scoreErr != nil {
		tracing.RecordError(span, scoreErr, tracing.ErrorTypeInternal)
		rc.markFailed(ctx, message.SubmissionUUID, constants.StatusScoringFailed)
		return nil
	}

	if err := st.MySQL.UpdateResumeProcessingStatus(ctx, message.SubmissionUUID, constants.StatusScored); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return NewUpdateError(message.SubmissionUUID, err.Error())
	}

	span.SetStatus(codes.Ok, "")
	rc.logInfo("简历处理完成: uuid=%s, 评分岗位数=%d", message.SubmissionUUID, len(jobs))
	return nil
}

// resolveTargetJobs 确定要评分的岗位集合
// 指定了目标岗位只评该岗位, 否则评所有在招岗位
func (rc *ResumeChecker) resolveTargetJobs(ctx context.Context, targetJobID string) ([]types.JobRequirement, error) {
	if targetJobID != "" {
		job, err := rc.getJobRequirement(ctx, targetJobID)
		if err != nil {
			return nil, err
		}
		return []types.JobRequirement{*job}, nil
	}

	jobModels, err := rc.Components.Storage.MySQL.ListJobs(ctx, constants.JobStatusActive)
	if err != nil {
		return nil, NewDatabaseError("", err.Error())
	}
	jobs := make([]types.JobRequirement, 0, len(jobModels))
	for i := range jobModels {
		req, cerr := JobModelToRequirement(&jobModels[i])
		if cerr != nil {
			rc.logWarn("岗位 %s 转换失败, 跳过: %v", jobModels[i].JobID, cerr)
			continue
		}
		jobs = append(jobs, *req)
	}
	return jobs, nil
}

// getJobRequirement 取岗位要求, 优先走Redis缓存
func (rc *ResumeChecker) getJobRequirement(ctx context.Context, jobID string) (*types.JobRequirement, error) {
	st := rc.Components.Storage

	if st.Redis != nil {
		cached, err := st.Redis.GetJobRequirementCache(ctx, jobID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			rc.logWarn("读取岗位缓存失败: %v", err)
		}
	}

	jobModel, err := st.MySQL.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, NewDatabaseError("", err.Error())
	}
	if jobModel == nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	job, err := JobModelToRequirement(jobModel)
	if err != nil {
		return nil, err
	}

	if st.Redis != nil {
		if err := st.Redis.SetJobRequirementCache(ctx, job); err != nil {
			rc.logWarn("写入岗位缓存失败: %v", err)
		}
	}
	return job, nil
}

// scoreAndPersist 对单个岗位评分并落库, 成功后发布评分事件
func (rc *ResumeChecker) scoreAndPersist(ctx context.Context, submissionUUID string, profile *types.ResumeProfile, job *types.JobRequirement) error {
	score, err := rc.Components.FitScorer.Score(ctx, profile, job)
	if err != nil {
		return NewScoringError(submissionUUID, err.Error())
	}

	feedback, err := rc.Components.Feedback.RenderFeedback(profile, job, score)
	if err != nil {
		return NewScoringError(submissionUUID, fmt.Sprintf("渲染反馈失败: %v", err))
	}
	improved, err := rc.Components.Feedback.RenderImprovedResume(profile, job, score)
	if err != nil {
		return NewScoringError(submissionUUID, fmt.Sprintf("渲染改进简历失败: %v", err))
	}

	matchingJSON, _ := utils.ConvertArrayToJSON(score.MatchingSkills)
	missingJSON, _ := utils.ConvertArrayToJSON(score.MissingSkills)
	extraJSON, _ := utils.ConvertArrayToJSON(score.ExtraSkills)

	now := time.Now().In(rc.Settings.TimeLocation)
	evaluationID := uuid.NewString()
	record := &models.FitScore{
		SubmissionUUID:     submissionUUID,
		JobID:              job.JobID,
		OverallScore:       utils.Float64Ptr(score.OverallScore),
		SkillMatchScore:    utils.Float64Ptr(score.SkillMatchScore),
		ExperienceScore:    utils.Float64Ptr(score.ExperienceScore),
		EducationScore:     utils.Float64Ptr(score.EducationScore),
		MatchingSkillsJSON: matchingJSON,
		MissingSkillsJSON:  missingJSON,
		ExtraSkillsJSON:    extraJSON,
		MatchStrategy:      rc.Components.FitScorer.MatchStrategy(),
		Analysis:           score.Analysis,
		Feedback:           feedback,
		ImprovedResume:     improved,
		EvaluationID:       evaluationID,
		EvaluationStatus:   "COMPLETED",
		EvaluatedAt:        utils.TimePtr(now),
	}

	if err := rc.Components.Storage.MySQL.UpsertFitScore(ctx, record); err != nil {
		return NewDatabaseError(submissionUUID, err.Error())
	}

	rc.publishScoredEvent(ctx, storage.ResumeScoredMessage{
		SubmissionUUID: submissionUUID,
		TargetJobID:    job.JobID,
		EvaluationID:   evaluationID,
		OverallScore:   score.OverallScore,
		Status:         constants.StatusScored,
		ScoredAt:       now,
	})
	return nil
}

// publishScoredEvent 发布评分完成事件, 失败只记日志不影响主流程
func (rc *ResumeChecker) publishScoredEvent(ctx context.Context, event storage.ResumeScoredMessage) {
	st := rc.Components.Storage
	if st == nil || st.RabbitMQ == nil || rc.Settings.EventExchange == "" {
		return
	}
	if err := st.RabbitMQ.PublishJSON(ctx, rc.Settings.EventExchange, rc.Settings.ScoredRoutingKey, event, true); err != nil {
		rc.logWarn("发布评分事件失败: %v", err)
	}
}

// markFailed 更新终态失败状态, 更新失败只记日志
func (rc *ResumeChecker) markFailed(ctx context.Context, submissionUUID, status string) {
	if err := rc.Components.Storage.MySQL.UpdateResumeProcessingStatus(ctx, submissionUUID, status); err != nil {
		rc.logError(err, "更新状态为 %s 失败: uuid=%s", status, submissionUUID)
	}
}

// JobModelToRequirement 数据库岗位模型转评分用的岗位要求
func JobModelToRequirement(job *models.Job) (*types.JobRequirement, error) {
	skills, err := utils.ConvertJSONToArray(job.RequiredSkillsJSON)
	if err != nil {
		return nil, fmt.Errorf("解析岗位 %s 的技能要求失败: %w", job.JobID, err)
	}
	return &types.JobRequirement{
		JobID:              job.JobID,
		Title:              job.JobTitle,
		Description:        job.JobDescriptionText,
		RequiredSkills:     skills,
		MinYearsExperience: job.MinYearsExperience,
		MinEducation:       job.MinEducation,
	}, nil
}
