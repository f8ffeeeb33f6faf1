package matcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-match-go/internal/types"
)

// techProfile 构造一个技术方向的测试画像
func techProfile(skills []string, industries []string, location string, experienceCount int) *types.StructuredProfile {
	profile := &types.StructuredProfile{
		Contact:    types.ContactInfo{Name: "Jane Doe", Location: location},
		Industries: industries,
	}
	for _, name := range skills {
		profile.Skills = append(profile.Skills, types.Skill{Name: name, Category: types.SkillCategoryTechnical})
	}
	for i := 0; i < experienceCount; i++ {
		profile.Experience = append(profile.Experience, types.ExperienceEntry{Title: "Engineer"})
	}
	return profile
}

// TestScoreCompanyFullSignalExample 验证公司评分公式的标准场景
// 行业0.4 + 技能全中0.3 + 有地域但未命中0.1 + 规模区间0.1 = 0.9
func TestScoreCompanyFullSignalExample(t *testing.T) {
	m := NewMatcher()
	profile := techProfile([]string{"Python", "AWS"}, []string{"Technology"}, "", 0)

	match := m.ScoreCompany(profile, types.CandidateCompany{
		Name:        "TechCorp",
		Industry:    "Technology",
		Description: "uses Python and AWS",
		Location:    "SF",
		SizeBucket:  "51-200",
	})

	assert.InDelta(t, 0.9, match.MatchScore, 1e-9, "标准场景的公司分数应为0.9")
	assert.Equal(t, []string{"Technology"}, match.Rationale.MatchedIndustries)
	assert.ElementsMatch(t, []string{"Python", "AWS"}, match.Rationale.MatchedSkills)
	assert.False(t, match.Rationale.LocationMatch, "地域未命中时不应标记LocationMatch")
	assert.Contains(t, match.Rationale.Explanation, "TechCorp")
	assert.Contains(t, match.Rationale.Explanation, "2 of your skills")
}

// TestScoreCompanyLocationFullMatch 验证画像地域命中候选地域时给满分并标记
func TestScoreCompanyLocationFullMatch(t *testing.T) {
	m := NewMatcher()
	profile := techProfile(nil, nil, "San Francisco", 0)

	match := m.ScoreCompany(profile, types.CandidateCompany{
		Name:     "LocalCo",
		Location: "San Francisco Bay Area",
	})

	assert.InDelta(t, 0.2, match.MatchScore, 1e-9)
	assert.True(t, match.Rationale.LocationMatch)
}

// TestScoreCompanyNoSignals 验证全空候选得0分且不报错
func TestScoreCompanyNoSignals(t *testing.T) {
	m := NewMatcher()
	profile := techProfile([]string{"Go"}, []string{"Technology"}, "Berlin", 0)

	match := m.ScoreCompany(profile, types.CandidateCompany{Name: "EmptyCo"})

	assert.Zero(t, match.MatchScore)
	assert.Empty(t, match.Rationale.MatchedSkills)
	assert.NotEmpty(t, match.Rationale.Explanation, "即使0分也要有解释文案")
}

// TestScoreCompanySkillRatio 验证技能项按命中比例折算
func TestScoreCompanySkillRatio(t *testing.T) {
	m := NewMatcher()
	profile := techProfile([]string{"Python", "Java", "Rust", "Go"}, nil, "", 0)

	match := m.ScoreCompany(profile, types.CandidateCompany{
		Name:        "HalfMatch",
		Description: "Python and Go shop",
	})

	// 4项技能命中2项: 0.3 * 2/4 = 0.15
	assert.InDelta(t, 0.15, match.MatchScore, 1e-9)
}

// TestScoreCompanyRationaleSkillsCapped 验证解释中的技能列表最多5项
func TestScoreCompanyRationaleSkillsCapped(t *testing.T) {
	m := NewMatcher()
	skills := []string{"Python", "Java", "Go", "Rust", "Ruby", "Scala", "Kotlin"}
	profile := techProfile(skills, nil, "", 0)

	match := m.ScoreCompany(profile, types.CandidateCompany{
		Name:        "Polyglot",
		Description: strings.Join(skills, " "),
	})

	assert.Len(t, match.Rationale.MatchedSkills, 5, "解释载荷的技能列表应截断为前5项")
}

// TestScorePersonSharedSkillAndSeniority 验证人脉评分的共享技能与资历对齐项
func TestScorePersonSharedSkillAndSeniority(t *testing.T) {
	m := NewMatcher()
	// 5条经历视为资深画像
	profile := techProfile([]string{"Kubernetes"}, nil, "", 5)

	match := m.ScorePerson(profile, types.CandidatePerson{
		Name:         "Alex Chen",
		CurrentTitle: "Senior Engineer",
		Skills:       []string{"Kubernetes", "Docker"},
	})

	// 共享技能比例1.0贡献0.4, 资历对齐贡献0.2
	assert.InDelta(t, 0.6, match.MatchScore, 1e-9)
	assert.Equal(t, []string{"Kubernetes"}, match.SharedSkills)
	assert.Equal(t, "seniority aligned", match.Rationale.Note)
}

// TestScorePersonSeniorityMismatch 验证资历不对齐时给半分
func TestScorePersonSeniorityMismatch(t *testing.T) {
	m := NewMatcher()
	// 1条经历的初级画像对资深头衔
	profile := techProfile(nil, nil, "", 1)

	match := m.ScorePerson(profile, types.CandidatePerson{
		Name:         "Sam Lee",
		CurrentTitle: "VP of Engineering",
	})

	assert.InDelta(t, 0.1, match.MatchScore, 1e-9)
	assert.Equal(t, "seniority partially aligned", match.Rationale.Note)
}

// TestScorePersonSharedInterests 验证行业兴趣命中headline或当前公司文本
func TestScorePersonSharedInterests(t *testing.T) {
	m := NewMatcher()
	profile := techProfile(nil, []string{"Finance"}, "", 0)

	match := m.ScorePerson(profile, types.CandidatePerson{
		Name:     "Pat Kim",
		Headline: "Building finance infrastructure",
	})

	assert.Equal(t, []string{"Finance"}, match.SharedInterests)
	// 兴趣0.3 + 资历对齐(双非资深)0.2
	assert.InDelta(t, 0.5, match.MatchScore, 1e-9)
}

// TestConversationStarterVariants 验证破冰语的四级模板选择
func TestConversationStarterVariants(t *testing.T) {
	person := types.CandidatePerson{
		Name:           "Alex Chen",
		CurrentTitle:   "Senior Engineer",
		CurrentCompany: "CloudCo",
	}

	tests := []struct {
		name      string
		skills    []string
		interests []string
		contains  []string
	}{
		{
			name:      "技能和兴趣都共享",
			skills:    []string{"Kubernetes"},
			interests: []string{"Technology"},
			contains:  []string{"Hi Alex!", "Kubernetes", "Technology", "Senior Engineer", "CloudCo"},
		},
		{
			name:     "仅共享技能",
			skills:   []string{"Kubernetes"},
			contains: []string{"Hi Alex!", "Kubernetes", "Senior Engineer"},
		},
		{
			name:      "仅共享兴趣",
			interests: []string{"Technology"},
			contains:  []string{"Hi Alex!", "Technology"},
		},
		{
			name:     "无共享信号的通用回退",
			contains: []string{"Hi Alex!", "caught my attention"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			starter := conversationStarter(person, tt.skills, tt.interests)
			for _, fragment := range tt.contains {
				assert.Contains(t, starter, fragment)
			}
		})
	}
}

// TestConversationStarterFallbacks 验证姓名/头衔/公司缺失时的回退措辞
func TestConversationStarterFallbacks(t *testing.T) {
	starter := conversationStarter(types.CandidatePerson{}, nil, nil)

	assert.Contains(t, starter, "Hi there!")
	assert.Contains(t, starter, "your current role")
	assert.Contains(t, starter, "your company")
}

// TestRankCompaniesOrdering 验证排序输出按分数非递增排列
func TestRankCompaniesOrdering(t *testing.T) {
	m := NewMatcher()
	profile := techProfile([]string{"Python"}, []string{"Technology"}, "", 0)

	matches := m.RankCompanies(profile, []types.CandidateCompany{
		{Name: "NoSignal"},
		{Name: "FullSignal", Industry: "Technology", Description: "Python", SizeBucket: "51-200"},
		{Name: "SkillOnly", Description: "Python shop"},
	})

	require.Len(t, matches, 3)
	assert.Equal(t, "FullSignal", matches[0].Company.Name)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].MatchScore, matches[i].MatchScore,
			"分数必须非递增")
	}
}

// TestRankCompaniesStableTie 验证同分候选保持输入顺序
func TestRankCompaniesStableTie(t *testing.T) {
	m := NewMatcher()
	profile := techProfile(nil, nil, "", 0)

	matches := m.RankCompanies(profile, []types.CandidateCompany{
		{Name: "First", SizeBucket: "51-200"},
		{Name: "Second", SizeBucket: "201-500"},
	})

	require.Len(t, matches, 2)
	assert.InDelta(t, matches[0].MatchScore, matches[1].MatchScore, 1e-9)
	assert.Equal(t, "First", matches[0].Company.Name)
	assert.Equal(t, "Second", matches[1].Company.Name)
}

// TestRankEmptyCandidateLists 验证空列表返回空切片而不是nil
func TestRankEmptyCandidateLists(t *testing.T) {
	m := NewMatcher()
	profile := techProfile([]string{"Python"}, nil, "", 0)

	companyMatches := m.RankCompanies(profile, nil)
	personMatches := m.RankPeople(profile, []types.CandidatePerson{})

	assert.NotNil(t, companyMatches)
	assert.Empty(t, companyMatches)
	assert.NotNil(t, personMatches)
	assert.Empty(t, personMatches)
}

// TestRankPeopleOrdering 验证人脉排序同样按分数降序
func TestRankPeopleOrdering(t *testing.T) {
	m := NewMatcher()
	profile := techProfile([]string{"Kubernetes"}, []string{"Technology"}, "", 5)

	matches := m.RankPeople(profile, []types.CandidatePerson{
		{Name: "Weak Match"},
		{Name: "Strong Match", CurrentTitle: "Senior Engineer", Skills: []string{"Kubernetes"}, Headline: "Technology leader"},
	})

	require.Len(t, matches, 2)
	assert.Equal(t, "Strong Match", matches[0].Person.Name)
	assert.GreaterOrEqual(t, matches[0].MatchScore, matches[1].MatchScore)
}

// TestScoresStayWithinBounds 验证任何组合下分数都在[0,1]内
func TestScoresStayWithinBounds(t *testing.T) {
	m := NewMatcher()
	profile := techProfile([]string{"Python", "AWS", "Kubernetes"}, []string{"Technology", "Finance"}, "Berlin", 10)

	company := m.ScoreCompany(profile, types.CandidateCompany{
		Name:        "MaxCo",
		Industry:    "Technology and Finance",
		Description: "Python AWS Kubernetes",
		Location:    "Berlin, Germany",
		SizeBucket:  "51-200",
	})
	person := m.ScorePerson(profile, types.CandidatePerson{
		Name:         "Max Match",
		CurrentTitle: "Principal Engineer",
		Location:     "Berlin, Germany",
		Headline:     "Technology and Finance",
		Skills:       []string{"Python", "AWS", "Kubernetes"},
	})

	assert.GreaterOrEqual(t, company.MatchScore, 0.0)
	assert.LessOrEqual(t, company.MatchScore, 1.0)
	assert.GreaterOrEqual(t, person.MatchScore, 0.0)
	assert.LessOrEqual(t, person.MatchScore, 1.0)
}
