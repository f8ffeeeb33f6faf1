package processor

import (
	"context"

	"career-match-go/internal/parser"
	"career-match-go/internal/types"
)

//
// 文本提取相关接口
//

// DocumentTextExtractor 文档文本提取接口
// 由 parser.ExtractorRegistry 实现，按格式标签分发到具体提取器
type DocumentTextExtractor interface {
	// ExtractText 将文档载荷解码为单个纯文本串
	ExtractText(ctx context.Context, data []byte, format parser.DocumentFormat) (string, error)
}

//
// 画像构建相关接口
//

// ProfileBuilder 从纯文本构建结构化画像的接口
// 构建是全函数：任何输入都产出画像，信息缺失反映在置信度上
type ProfileBuilder interface {
	ExtractProfile(text string) *types.StructuredProfile
}

//
// 候选排序相关接口
//

// CandidateRanker 候选评分与排序接口
type CandidateRanker interface {
	// RankCompanies 对公司候选列表评分并按分数降序排列
	RankCompanies(profile *types.StructuredProfile, companies []types.CandidateCompany) []types.CompanyMatch

	// RankPeople 对人脉候选列表评分并按分数降序排列
	RankPeople(profile *types.StructuredProfile, people []types.CandidatePerson) []types.PersonMatch
}

//
// 处理流程的输入输出
//

// UploadRequest 一次文档上传请求
type UploadRequest struct {
	UserID   string
	Filename string
	Data     []byte
}

// UploadResult 文档处理结果
type UploadResult struct {
	ProfileID string
	Status    string
	// Duplicate 为true时表示提取文本与已有画像重复，ProfileID指向已有画像
	Duplicate bool
	Profile   *types.StructuredProfile
}

// CompanyRankResult 公司排序结果
type CompanyRankResult struct {
	Matches   []types.CompanyMatch
	FromCache bool
}

// PersonRankResult 人脉排序结果
type PersonRankResult struct {
	Matches   []types.PersonMatch
	FromCache bool
}
