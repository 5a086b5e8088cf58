package constants

import "time"

const (
	// DefaultParserVersion 写入 resume_submissions.parser_version 字段,
	// 模式表 (patterns.go) 调整时需要同步更新
	DefaultParserVersion = "heuristic-v1"

	// 岗位要求缓存时长
	JobRequirementCacheDuration = 24 * time.Hour
	// 技能相似度缓存时长
	SkillSimilarityCacheDuration = 7 * 24 * time.Hour
)

// 简历处理状态机
const (
	StatusPendingParsing       = "PENDING_PARSING"
	StatusProcessing           = "PROCESSING"
	StatusScored               = "SCORED"
	StatusTextExtractionFailed = "TEXT_EXTRACTION_FAILED"
	StatusRejectedNotAResume   = "REJECTED_NOT_A_RESUME"
	StatusDuplicateSkipped     = "DUPLICATE_FILE_SKIPPED"
	StatusScoringFailed        = "SCORING_FAILED"
)

// 岗位状态
const (
	JobStatusActive   = "ACTIVE"
	JobStatusArchived = "ARCHIVED"
)

// 上传来源渠道
const (
	SourceChannelWebUpload = "web_upload"
	SourceChannelSyncCheck = "sync_check"
)
