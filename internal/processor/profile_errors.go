package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrStoreDocumentFailed = errors.New("上传原始文档失败")
	ErrExtractTextFailed   = errors.New("提取文档文本失败")
	ErrStoreTextFailed     = errors.New("上传提取文本失败")
	ErrPublishEventFailed  = errors.New("发布画像提取事件失败")
	ErrDatabaseFailed      = errors.New("数据库操作失败")
	ErrQuotaExceeded       = errors.New("当日排序配额已耗尽")
	ErrProfileNotFound     = errors.New("画像不存在")
	ErrProfileNotReady     = errors.New("画像尚未完成提取")
)

// ProfileProcessError 包含详细错误信息的自定义错误
type ProfileProcessError struct {
	ProfileID string
	Op        string
	BaseErr   error
	Detail    string
}

func (e *ProfileProcessError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, ProfileID:%s): %s", e.BaseErr, e.Op, e.ProfileID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, ProfileID:%s)", e.BaseErr, e.Op, e.ProfileID)
}

func (e *ProfileProcessError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ProfileProcessError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewStoreDocumentError(profileID, detail string) error {
	return &ProfileProcessError{
		ProfileID: profileID,
		Op:        "store_document",
		BaseErr:   ErrStoreDocumentFailed,
		Detail:    detail,
	}
}

func NewExtractError(profileID, detail string) error {
	return &ProfileProcessError{
		ProfileID: profileID,
		Op:        "extract_text",
		BaseErr:   ErrExtractTextFailed,
		Detail:    detail,
	}
}

func NewStoreTextError(profileID, detail string) error {
	return &ProfileProcessError{
		ProfileID: profileID,
		Op:        "store_text",
		BaseErr:   ErrStoreTextFailed,
		Detail:    detail,
	}
}

func NewPublishError(profileID, detail string) error {
	return &ProfileProcessError{
		ProfileID: profileID,
		Op:        "publish",
		BaseErr:   ErrPublishEventFailed,
		Detail:    detail,
	}
}

func NewDatabaseError(profileID, detail string) error {
	return &ProfileProcessError{
		ProfileID: profileID,
		Op:        "database",
		BaseErr:   ErrDatabaseFailed,
		Detail:    detail,
	}
}
