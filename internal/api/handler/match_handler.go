package handler

import (
	"context"
	"fmt"

	"career-match-go/internal/config"
	"career-match-go/internal/logger"
	"career-match-go/internal/processor"
	"career-match-go/internal/types"
)

// MatchHandler 排序处理器，负责候选评分排序的请求协调
type MatchHandler struct {
	cfg             *config.Config
	processorModule *processor.ProfileProcessor
}

// NewMatchHandler 创建一个新的排序处理器
func NewMatchHandler(cfg *config.Config, processorModule *processor.ProfileProcessor) *MatchHandler {
	return &MatchHandler{
		cfg:             cfg,
		processorModule: processorModule,
	}
}

// RankCompaniesRequest 公司排序请求体
type RankCompaniesRequest struct {
	UserID    string                   `json:"user_id"`
	ProfileID string                   `json:"profile_id"`
	Companies []types.CandidateCompany `json:"companies"`
}

// RankCompaniesResponse 公司排序响应
type RankCompaniesResponse struct {
	ProfileID string               `json:"profile_id"`
	FromCache bool                 `json:"from_cache,omitempty"`
	Matches   []types.CompanyMatch `json:"matches"`
}

// RankPeopleRequest 人脉排序请求体
type RankPeopleRequest struct {
	UserID    string                  `json:"user_id"`
	ProfileID string                  `json:"profile_id"`
	People    []types.CandidatePerson `json:"people"`
}

// RankPeopleResponse 人脉排序响应
type RankPeopleResponse struct {
	ProfileID string              `json:"profile_id"`
	FromCache bool                `json:"from_cache,omitempty"`
	Matches   []types.PersonMatch `json:"matches"`
}

// HandleRankCompanies 处理公司排序请求
func (h *MatchHandler) HandleRankCompanies(ctx context.Context, req *RankCompaniesRequest) (*RankCompaniesResponse, error) {
	if req.ProfileID == "" {
		return nil, fmt.Errorf("profile_id 不能为空")
	}

	result, err := h.processorModule.RankCompanies(ctx, req.UserID, req.ProfileID, req.Companies, h.cfg)
	if err != nil {
		logger.Error().
			Err(err).
			Str("profile_id", req.ProfileID).
			Int("candidate_count", len(req.Companies)).
			Msg("公司排序失败")
		return nil, err
	}

	logger.Info().
		Str("profile_id", req.ProfileID).
		Int("candidate_count", len(req.Companies)).
		Bool("from_cache", result.FromCache).
		Msg("公司排序完成")

	return &RankCompaniesResponse{
		ProfileID: req.ProfileID,
		FromCache: result.FromCache,
		Matches:   result.Matches,
	}, nil
}

// HandleRankPeople 处理人脉排序请求
func (h *MatchHandler) HandleRankPeople(ctx context.Context, req *RankPeopleRequest) (*RankPeopleResponse, error) {
	if req.ProfileID == "" {
		return nil, fmt.Errorf("profile_id 不能为空")
	}

	result, err := h.processorModule.RankPeople(ctx, req.UserID, req.ProfileID, req.People, h.cfg)
	if err != nil {
		logger.Error().
			Err(err).
			Str("profile_id", req.ProfileID).
			Int("candidate_count", len(req.People)).
			Msg("人脉排序失败")
		return nil, err
	}

	logger.Info().
		Str("profile_id", req.ProfileID).
		Int("candidate_count", len(req.People)).
		Bool("from_cache", result.FromCache).
		Msg("人脉排序完成")

	return &RankPeopleResponse{
		ProfileID: req.ProfileID,
		FromCache: result.FromCache,
		Matches:   result.Matches,
	}, nil
}
