// Package matcher 将结构化画像与外部候选记录（公司或人脉）进行匹配评分，
// 产出有界分数与结构化解释。评分公式中的权重常量为对外兼容值，不得改动。
package matcher

import (
	"io"
	"log"
	"strings"
)

// 公司评分权重，总和为1.0
const (
	companyIndustryWeight        = 0.4
	companySkillsWeight          = 0.3
	companyLocationFullWeight    = 0.2
	companyLocationPartialWeight = 0.1
	companySizeWeight            = 0.1
)

// 人脉评分权重，总和为1.0
const (
	personSkillsWeight        = 0.4
	personInterestWeight      = 0.3
	personSeniorityFullWeight = 0.2
	personSeniorityHalfWeight = 0.1
	personLocationWeight      = 0.1
)

// seniorExperienceThreshold 画像经历条数达到该值视为资深
const seniorExperienceThreshold = 5

// maxRationaleSkills 解释载荷中最多列出的技能数
const maxRationaleSkills = 5

// preferredSizeBuckets 规模偏好命中的两个中型区间
var preferredSizeBuckets = []string{"51-200", "201-500"}

// seniorTitleKeywords 头衔中的资深指示关键词，小写
var seniorTitleKeywords = []string{
	"senior", "lead", "principal", "staff", "director", "head", "vp", "chief",
}

// Matcher 候选匹配评分器
// 无共享可变状态，单个实例可被并发调用
type Matcher struct {
	logger *log.Logger
}

// MatcherOption 评分器的配置选项
type MatcherOption func(*Matcher)

// WithMatcherLogger 配置自定义日志记录器
func WithMatcherLogger(logger *log.Logger) MatcherOption {
	return func(m *Matcher) {
		m.logger = logger
	}
}

// NewMatcher 创建匹配评分器
func NewMatcher(options ...MatcherOption) *Matcher {
	m := &Matcher{
		logger: log.New(io.Discard, "", 0),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// clampScore 将分数收敛到[0,1]
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// containsFold 大小写不敏感的子串判断
func containsFold(haystack, needle string) bool {
	if haystack == "" || needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// firstN 取列表前n项
func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// firstName 取姓名的第一个词，缺失时回退为通用称呼
func firstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}
