package matcher

import (
	"sort"

	"career-match-go/internal/types"
)

// RankCompanies 对公司候选列表逐个评分并按分数降序排序
// 画像或候选列表为空时返回空列表，这不是错误
// 分数相同的候选保持输入顺序（稳定排序）
func (m *Matcher) RankCompanies(profile *types.StructuredProfile, companies []types.CandidateCompany) []types.CompanyMatch {
	results := make([]types.CompanyMatch, 0, len(companies))
	if profile == nil || len(companies) == 0 {
		return results
	}

	for _, company := range companies {
		results = append(results, m.ScoreCompany(profile, company))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	return results
}

// RankPeople 对人脉候选列表逐个评分并按分数降序排序
func (m *Matcher) RankPeople(profile *types.StructuredProfile, people []types.CandidatePerson) []types.PersonMatch {
	results := make([]types.PersonMatch, 0, len(people))
	if profile == nil || len(people) == 0 {
		return results
	}

	for _, person := range people {
		results = append(results, m.ScorePerson(profile, person))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	return results
}
