package matcher

import (
	"fmt"

	"career-match-go/internal/types"
)

// ScoreCompany 对单个公司候选评分并生成解释
// 候选字段缺失时对应项计0分，不会报错
func (m *Matcher) ScoreCompany(profile *types.StructuredProfile, company types.CandidateCompany) types.CompanyMatch {
	var score float64
	rationale := types.MatchRationale{}

	// 行业匹配 (0.4)：任一画像行业是候选行业字段的子串
	for _, industry := range profile.Industries {
		if containsFold(company.Industry, industry) {
			rationale.MatchedIndustries = append(rationale.MatchedIndustries, industry)
		}
	}
	if len(rationale.MatchedIndustries) > 0 {
		score += companyIndustryWeight
	}

	// 技能匹配 (0.3)：按命中比例折算，候选名称+描述作为匹配语料
	corpus := company.Name + " " + company.Description
	var matchedSkills []string
	for _, skill := range profile.Skills {
		if containsFold(corpus, skill.Name) {
			matchedSkills = append(matchedSkills, skill.Name)
		}
	}
	skillCount := len(profile.Skills)
	if skillCount < 1 {
		skillCount = 1
	}
	ratio := float64(len(matchedSkills)) / float64(skillCount)
	if ratio > 1.0 {
		ratio = 1.0
	}
	score += ratio * companySkillsWeight

	// 地域匹配 (0.2/0.1)：完全命中给满分，有地域但未命中给部分分
	if company.Location != "" {
		if profile.Contact.Location != "" && containsFold(company.Location, profile.Contact.Location) {
			score += companyLocationFullWeight
			rationale.LocationMatch = true
		} else {
			score += companyLocationPartialWeight
		}
	}

	// 规模偏好 (0.1)：命中两个中型区间之一
	for _, bucket := range preferredSizeBuckets {
		if company.SizeBucket == bucket {
			score += companySizeWeight
			break
		}
	}

	rationale.MatchedSkills = firstN(matchedSkills, maxRationaleSkills)
	rationale.Note = company.SizeBucket
	rationale.Explanation = fmt.Sprintf(
		"%s matches %d of your skills and aligns with your profile.",
		company.Name, len(matchedSkills))

	m.logger.Printf("公司评分: %s -> %.2f (技能命中 %d)", company.Name, score, len(matchedSkills))

	return types.CompanyMatch{
		Company:    company,
		MatchScore: clampScore(score),
		Rationale:  rationale,
	}
}
