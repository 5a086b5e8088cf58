package storage

import "time"

// ResumeUploadMessage 简历上传消息, 字段与resume_submissions表对应
type ResumeUploadMessage struct {
	SubmissionUUID      string    `json:"submission_uuid"`          // 提交UUID, 主键
	SubmissionTimestamp time.Time `json:"submission_timestamp"`     // 提交时间戳
	SourceChannel       string    `json:"source_channel,omitempty"` // 来源渠道
	TargetJobID         string    `json:"target_job_id,omitempty"`  // 目标岗位ID
	OriginalFilename    string    `json:"original_filename"`        // 原始文件名
	OriginalFilePathOSS string    `json:"original_file_path_oss"`   // MinIO中的对象键
	RawFileMD5          string    `json:"raw_file_md5,omitempty"`   // 原始文件MD5, 去重回滚用
}

// ResumeScoredMessage 评分完成事件, 发布给下游系统
type ResumeScoredMessage struct {
	SubmissionUUID string    `json:"submission_uuid"`
	TargetJobID    string    `json:"target_job_id"`
	EvaluationID   string    `json:"evaluation_id"`
	OverallScore   float64   `json:"overall_score"`
	Status         string    `json:"status"`          // SCORED 或失败状态
	Error          string    `json:"error,omitempty"` // 失败时的错误信息
	ScoredAt       time.Time `json:"scored_at"`
}
