package processor

import (
	"errors"
	"fmt"
)

// 流水线各环节的基础错误类型
var (
	ErrResumeDownloadFailed = errors.New("下载简历失败")
	ErrExtractTextFailed    = errors.New("提取简历文本失败")
	ErrStoreTextFailed      = errors.New("上传解析文本失败")
	ErrBuildProfileFailed   = errors.New("构建简历档案失败")
	ErrScoringFailed        = errors.New("评分失败")
	ErrUpdateStatusFailed   = errors.New("更新简历状态失败")
	ErrDatabaseFailed       = errors.New("数据库操作失败")
	ErrJobNotFound          = errors.New("岗位不存在")
)

// CheckProcessError 包含定位信息的处理错误
type CheckProcessError struct {
	SubmissionUUID string
	Op             string
	BaseErr        error
	Detail         string
}

func (e *CheckProcessError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, UUID:%s): %s", e.BaseErr, e.Op, e.SubmissionUUID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, UUID:%s)", e.BaseErr, e.Op, e.SubmissionUUID)
}

func (e *CheckProcessError) Unwrap() error {
	return e.BaseErr
}

// Is 支持 errors.Is 按基础错误比较
func (e *CheckProcessError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewDownloadError(uuid, detail string) error {
	return &CheckProcessError{
		SubmissionUUID: uuid,
		Op:             "download",
		BaseErr:        ErrResumeDownloadFailed,
		Detail:         detail,
	}
}

func NewExtractError(uuid, detail string) error {
	return &CheckProcessError{
		SubmissionUUID: uuid,
		Op:             "extract",
		BaseErr:        ErrExtractTextFailed,
		Detail:         detail,
	}
}

func NewStoreError(uuid, detail string) error {
	return &CheckProcessError{
		SubmissionUUID: uuid,
		Op:             "store",
		BaseErr:        ErrStoreTextFailed,
		Detail:         detail,
	}
}

func NewProfileError(uuid, detail string) error {
	return &CheckProcessError{
		SubmissionUUID: uuid,
		Op:             "profile",
		BaseErr:        ErrBuildProfileFailed,
		Detail:         detail,
	}
}

func NewScoringError(uuid, detail string) error {
	return &CheckProcessError{
		SubmissionUUID: uuid,
		Op:             "score",
		BaseErr:        ErrScoringFailed,
		Detail:         detail,
	}
}

func NewUpdateError(uuid, detail string) error {
	return &CheckProcessError{
		SubmissionUUID: uuid,
		Op:             "update",
		BaseErr:        ErrUpdateStatusFailed,
		Detail:         detail,
	}
}

func NewDatabaseError(uuid, detail string) error {
	return &CheckProcessError{
		SubmissionUUID: uuid,
		Op:             "database",
		BaseErr:        ErrDatabaseFailed,
		Detail:         detail,
	}
}
