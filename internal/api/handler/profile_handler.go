package handler

import (
	"context"
	"fmt"
	"io"

	"career-match-go/internal/config"
	"career-match-go/internal/logger"
	"career-match-go/internal/processor"
	"career-match-go/internal/storage"
	"career-match-go/internal/types"
)

// ProfileHandler 画像处理器，负责协调文档上传与画像查询流程
type ProfileHandler struct {
	cfg             *config.Config
	storage         *storage.Storage
	processorModule *processor.ProfileProcessor
}

// NewProfileHandler 创建一个新的画像处理器
func NewProfileHandler(
	cfg *config.Config,
	storage *storage.Storage,
	processorModule *processor.ProfileProcessor,
) *ProfileHandler {
	return &ProfileHandler{
		cfg:             cfg,
		storage:         storage,
		processorModule: processorModule,
	}
}

// ProfileUploadResponse 文档上传响应
type ProfileUploadResponse struct {
	ProfileID       string                   `json:"profile_id"`
	Status          string                   `json:"status"`
	Duplicate       bool                     `json:"duplicate,omitempty"`
	ConfidenceScore float64                  `json:"confidence_score"`
	Profile         *types.StructuredProfile `json:"profile,omitempty"`
}

// ProfileDetailResponse 画像查询响应
type ProfileDetailResponse struct {
	ProfileID        string                   `json:"profile_id"`
	UserID           string                   `json:"user_id,omitempty"`
	Status           string                   `json:"status"`
	OriginalFilename string                   `json:"original_filename,omitempty"`
	Profile          *types.StructuredProfile `json:"profile"`
}

// HandleProfileUpload 处理文档上传请求
func (h *ProfileHandler) HandleProfileUpload(ctx context.Context, reader io.Reader, fileSize int64,
	filename string, userID string) (*ProfileUploadResponse, error) {

	if fileSize > int64(h.cfg.Engine.MaxUploadSizeBytes) {
		return nil, fmt.Errorf("文档大小 %d 超过上限 %d", fileSize, h.cfg.Engine.MaxUploadSizeBytes)
	}

	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}

	result, err := h.processorModule.ProcessUploadedDocument(ctx, processor.UploadRequest{
		UserID:   userID,
		Filename: filename,
		Data:     fileBytes,
	}, h.cfg)
	if err != nil {
		logger.Error().
			Err(err).
			Str("filename", filename).
			Str("user_id", userID).
			Msg("处理上传文档失败")
		return nil, err
	}

	if result.Duplicate {
		logger.Info().
			Str("profile_id", result.ProfileID).
			Str("filename", filename).
			Msg("检测到重复的文档内容，返回已有画像")
	} else {
		logger.Info().
			Str("profile_id", result.ProfileID).
			Float64("confidence", result.Profile.ConfidenceScore).
			Msg("画像提取完成")
	}

	resp := &ProfileUploadResponse{
		ProfileID: result.ProfileID,
		Status:    result.Status,
		Duplicate: result.Duplicate,
		Profile:   result.Profile,
	}
	if result.Profile != nil {
		resp.ConfidenceScore = result.Profile.ConfidenceScore
	}
	return resp, nil
}

// HandleGetProfile 按ID查询画像
func (h *ProfileHandler) HandleGetProfile(ctx context.Context, profileID string) (*ProfileDetailResponse, error) {
	record, profile, err := h.processorModule.LoadProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	return &ProfileDetailResponse{
		ProfileID:        record.ProfileID,
		UserID:           record.UserID,
		Status:           record.ProcessingStatus,
		OriginalFilename: record.OriginalFilename,
		Profile:          profile,
	}, nil
}
