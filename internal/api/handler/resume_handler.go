package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"resume-fit-go/internal/config"
	"resume-fit-go/internal/constants"
	"resume-fit-go/internal/logger"
	"resume-fit-go/internal/parser"
	"resume-fit-go/internal/processor"
	"resume-fit-go/internal/storage"
	"resume-fit-go/internal/storage/models"
	"resume-fit-go/internal/types"
	"resume-fit-go/pkg/utils"
)

// ResumeHandler 简历接口处理器, 协调上传入口和异步消费
type ResumeHandler struct {
	cfg     *config.Config
	storage *storage.Storage
	checker *processor.ResumeChecker
}

// NewResumeHandler 创建简历处理器
func NewResumeHandler(cfg *config.Config, st *storage.Storage, checker *processor.ResumeChecker) *ResumeHandler {
	return &ResumeHandler{
		cfg:     cfg,
		storage: st,
		checker: checker,
	}
}

// ResumeUploadResponse 简历上传响应
type ResumeUploadResponse struct {
	SubmissionUUID string `json:"submission_uuid"`
	Status         string `json:"status"`
}

// ScoreResponse 评分查询响应
type ScoreResponse struct {
	SubmissionUUID   string                `json:"submission_uuid"`
	ProcessingStatus string                `json:"processing_status"`
	Score            *types.ScoreBreakdown `json:"score,omitempty"`
	Feedback         string                `json:"feedback,omitempty"`
	ImprovedResume   string                `json:"improved_resume,omitempty"`
	MatchStrategy    string                `json:"match_strategy,omitempty"`
	JobID            string                `json:"job_id,omitempty"`
	EvaluatedAt      *time.Time            `json:"evaluated_at,omitempty"`
}

// HandleResumeUpload 处理简历上传请求
// 文件MD5去重 -> 生成UUID -> 上传MinIO -> 发布上传事件
func (h *ResumeHandler) HandleResumeUpload(ctx context.Context, reader io.Reader, fileSize int64,
	filename string, targetJobID string, sourceChannel string) (*ResumeUploadResponse, error) {

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".pdf"
	}
	if _, err := parser.CheckSupportedFormat(ext); err != nil {
		return nil, err
	}

	// reader只能读一次, 先全部读出来计算MD5
	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}
	fileMD5Hex := utils.CalculateMD5(fileBytes)

	// 原子的检查加添加, 避免并发上传同一文件时双方都通过检查
	exists, err := h.storage.Redis.CheckAndAddRawFileMD5(ctx, fileMD5Hex)
	if err != nil {
		logger.Error().
			Err(err).
			Str("md5", fileMD5Hex).
			Msg("文件MD5去重检查失败")
		return nil, fmt.Errorf("检查文件MD5重复性失败: %w", err)
	}
	if exists {
		logger.Info().
			Str("md5", fileMD5Hex).
			Str("filename", filename).
			Msg("检测到重复的文件MD5, 跳过处理")
		return &ResumeUploadResponse{
			Status: constants.StatusDuplicateSkipped,
		}, nil
	}

	uuidV7, err := uuid.NewV7()
	if err != nil {
		h.rollbackFileMD5(ctx, fileMD5Hex)
		return nil, fmt.Errorf("生成UUIDv7失败: %w", err)
	}
	submissionUUID := uuidV7.String()

	originalObjectKey, err := h.storage.MinIO.UploadResumeFile(ctx, submissionUUID, ext, bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		h.rollbackFileMD5(ctx, fileMD5Hex)
		return nil, fmt.Errorf("上传简历到MinIO失败: %w", err)
	}

	message := storage.ResumeUploadMessage{
		SubmissionUUID:      submissionUUID,
		OriginalFilePathOSS: originalObjectKey,
		OriginalFilename:    filename,
		TargetJobID:         targetJobID,
		SourceChannel:       sourceChannel,
		RawFileMD5:          fileMD5Hex,
		SubmissionTimestamp: time.Now(),
	}

	err = h.storage.RabbitMQ.PublishJSON(
		ctx,
		h.cfg.RabbitMQ.ResumeEventsExchange,
		h.cfg.RabbitMQ.UploadedRoutingKey,
		message,
		true, // 持久化
	)
	if err != nil {
		h.rollbackFileMD5(ctx, fileMD5Hex)
		return nil, fmt.Errorf("发布消息到RabbitMQ失败: %w", err)
	}

	return &ResumeUploadResponse{
		SubmissionUUID: submissionUUID,
		Status:         "SUBMITTED_FOR_PROCESSING",
	}, nil
}

// rollbackFileMD5 上传后续步骤失败时撤销去重记录, 否则该文件将永远无法重传
func (h *ResumeHandler) rollbackFileMD5(ctx context.Context, md5Hex string) {
	if err := h.storage.Redis.RemoveRawFileMD5(ctx, md5Hex); err != nil {
		logger.Warn().
			Err(err).
			Str("md5", md5Hex).
			Msg("回滚文件MD5记录失败")
	}
}

// HandleCheckResume 同步评估: 上传文件直接返回档案+评分+反馈, 不落库不走队列
func (h *ResumeHandler) HandleCheckResume(ctx context.Context, fileBytes []byte, filename string, jobID string) (*types.CheckResult, error) {
	logger.Info().
		Str("filename", filename).
		Str("job_id", jobID).
		Str("source_channel", constants.SourceChannelSyncCheck).
		Msg("收到同步评估请求")

	jobModel, err := h.storage.MySQL.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("查询岗位失败: %w", err)
	}
	if jobModel == nil {
		return nil, fmt.Errorf("%w: %s", processor.ErrJobNotFound, jobID)
	}
	job, err := processor.JobModelToRequirement(jobModel)
	if err != nil {
		return nil, err
	}
	return h.checker.CheckResume(ctx, fileBytes, filename, job)
}

// HandleGetScore 查询某次提交的评分结果
// jobID为空时返回该提交的任意一条评分 (单岗位投递场景即目标岗位)
func (h *ResumeHandler) HandleGetScore(ctx context.Context, submissionUUID string, jobID string) (*ScoreResponse, error) {
	submission, err := h.storage.MySQL.GetResumeSubmission(ctx, submissionUUID)
	if err != nil {
		return nil, fmt.Errorf("查询提交记录失败: %w", err)
	}
	if submission == nil {
		return nil, fmt.Errorf("提交记录不存在: %s", submissionUUID)
	}

	resp := &ScoreResponse{
		SubmissionUUID:   submissionUUID,
		ProcessingStatus: submission.ProcessingStatus,
	}

	record, err := h.storage.MySQL.GetFitScore(ctx, submissionUUID, jobID)
	if err != nil {
		return nil, fmt.Errorf("查询评分记录失败: %w", err)
	}
	if record == nil {
		return resp, nil
	}

	matching, _ := utils.ConvertJSONToArray(record.MatchingSkillsJSON)
	missing, _ := utils.ConvertJSONToArray(record.MissingSkillsJSON)
	extra, _ := utils.ConvertJSONToArray(record.ExtraSkillsJSON)

	score := &types.ScoreBreakdown{
		MatchingSkills: matching,
		MissingSkills:  missing,
		ExtraSkills:    extra,
		Analysis:       record.Analysis,
	}
	if record.OverallScore != nil {
		score.OverallScore = *record.OverallScore
	}
	if record.SkillMatchScore != nil {
		score.SkillMatchScore = *record.SkillMatchScore
	}
	if record.ExperienceScore != nil {
		score.ExperienceScore = *record.ExperienceScore
	}
	if record.EducationScore != nil {
		score.EducationScore = *record.EducationScore
	}

	resp.Score = score
	resp.Feedback = record.Feedback
	resp.ImprovedResume = record.ImprovedResume
	resp.MatchStrategy = record.MatchStrategy
	resp.JobID = record.JobID
	resp.EvaluatedAt = record.EvaluatedAt
	return resp, nil
}

// StartResumeUploadConsumer 启动简历上传消费者
// 入库提交记录后交给流水线处理
func (h *ResumeHandler) StartResumeUploadConsumer(ctx context.Context) error {
	logger.Info().
		Str("exchange", h.cfg.RabbitMQ.ResumeEventsExchange).
		Str("routing_key", h.cfg.RabbitMQ.UploadedRoutingKey).
		Msg("初始化RabbitMQ拓扑")

	if err := h.storage.RabbitMQ.EnsureExchange(h.cfg.RabbitMQ.ResumeEventsExchange, "direct", true); err != nil {
		return fmt.Errorf("确保交换机存在失败: %w", err)
	}
	if err := h.storage.RabbitMQ.EnsureQueue(h.cfg.RabbitMQ.RawResumeQueue, true); err != nil {
		return fmt.Errorf("确保队列存在失败: %w", err)
	}
	if err := h.storage.RabbitMQ.BindQueue(
		h.cfg.RabbitMQ.RawResumeQueue,
		h.cfg.RabbitMQ.ResumeEventsExchange,
		h.cfg.RabbitMQ.UploadedRoutingKey,
	); err != nil {
		return fmt.Errorf("绑定队列失败: %w", err)
	}

	logger.Info().
		Str("queue", h.cfg.RabbitMQ.RawResumeQueue).
		Int("prefetch_count", h.cfg.RabbitMQ.PrefetchCount).
		Msg("简历上传消费者就绪")

	_, err := h.storage.RabbitMQ.StartConsumer(h.cfg.RabbitMQ.RawResumeQueue, h.cfg.RabbitMQ.PrefetchCount, func(data []byte) bool {
		var message storage.ResumeUploadMessage
		if err := json.Unmarshal(data, &message); err != nil {
			logger.Error().Err(err).Msg("解析上传消息失败")
			// 格式错误的消息重试也没有意义
			return true
		}

		var targetJobID *string
		if message.TargetJobID != "" {
			targetJobID = utils.StringPtr(message.TargetJobID)
		}
		submissions := []models.ResumeSubmission{
			{
				SubmissionUUID:      message.SubmissionUUID,
				OriginalFilePathOSS: message.OriginalFilePathOSS,
				OriginalFilename:    message.OriginalFilename,
				TargetJobID:         targetJobID,
				SourceChannel:       message.SourceChannel,
				RawFileMD5:          message.RawFileMD5,
				SubmissionTimestamp: message.SubmissionTimestamp,
				ProcessingStatus:    constants.StatusPendingParsing,
			},
		}
		if err := h.storage.MySQL.BatchInsertResumeSubmissions(ctx, submissions); err != nil {
			logger.Error().Err(err).Msg("插入简历提交记录失败")
			return false
		}

		if err := h.checker.ProcessUploadedResume(ctx, message); err != nil {
			logger.Error().
				Err(err).
				Str("submission_uuid", message.SubmissionUUID).
				Msg("处理简历失败, 消息将重试")
			return false
		}
		return true
	})
	if err != nil {
		return fmt.Errorf("启动消费者失败: %w", err)
	}
	return nil
}

// StartMD5CleanupTask 定期确保MD5去重集合带有过期时间
// 集合是整体过期的, 某些失败路径下可能丢失TTL
func (h *ResumeHandler) StartMD5CleanupTask(ctx context.Context) {
	cleanupInterval := 7 * 24 * time.Hour

	logger.Info().
		Dur("interval", cleanupInterval).
		Msg("启动MD5记录清理任务")

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	h.cleanupMD5Records(ctx)

	for {
		select {
		case <-ticker.C:
			h.cleanupMD5Records(ctx)
		case <-ctx.Done():
			logger.Info().Msg("MD5记录清理任务退出")
			return
		}
	}
}

func (h *ResumeHandler) cleanupMD5Records(ctx context.Context) {
	for _, setKey := range []string{constants.KeyFileMD5Set, constants.KeyParsedTextMD5Set} {
		ttl, err := h.storage.Redis.Client.TTL(ctx, setKey).Result()
		if err != nil {
			logger.Error().Err(err).Str("setKey", setKey).Msg("获取MD5集合过期时间失败")
			continue
		}
		if ttl >= 0 {
			continue
		}
		expiry := h.storage.Redis.GetMD5ExpireDuration()
		if err := h.storage.Redis.Client.Expire(ctx, setKey, expiry).Err(); err != nil {
			logger.Error().Err(err).Str("setKey", setKey).Msg("设置MD5集合过期时间失败")
		} else {
			logger.Info().Str("setKey", setKey).Dur("expiry", expiry).Msg("已补设MD5集合过期时间")
		}
	}
}
