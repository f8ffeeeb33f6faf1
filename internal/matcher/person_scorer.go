package matcher

import (
	"fmt"
	"strings"

	"career-match-go/internal/types"
)

// ScorePerson 对单个人脉候选评分并生成解释与破冰语
func (m *Matcher) ScorePerson(profile *types.StructuredProfile, person types.CandidatePerson) types.PersonMatch {
	var score float64
	rationale := types.MatchRationale{}

	// 共享技能 (0.4)：画像技能与候选技能集合的大小写不敏感交集
	candidateSkills := make(map[string]bool, len(person.Skills))
	for _, s := range person.Skills {
		candidateSkills[strings.ToLower(s)] = true
	}
	var sharedSkills []string
	for _, skill := range profile.Skills {
		if candidateSkills[strings.ToLower(skill.Name)] {
			sharedSkills = append(sharedSkills, skill.Name)
		}
	}
	skillCount := len(profile.Skills)
	if skillCount < 1 {
		skillCount = 1
	}
	ratio := float64(len(sharedSkills)) / float64(skillCount)
	if ratio > 1.0 {
		ratio = 1.0
	}
	score += ratio * personSkillsWeight

	// 共享行业/兴趣 (0.3)：画像行业出现在候选headline+当前公司文本中
	interestCorpus := person.Headline + " " + person.CurrentCompany
	var sharedInterests []string
	for _, industry := range profile.Industries {
		if containsFold(interestCorpus, industry) {
			sharedInterests = append(sharedInterests, industry)
		}
	}
	if len(sharedInterests) > 0 {
		score += personInterestWeight
		rationale.MatchedIndustries = sharedInterests
	}

	// 资历对齐 (0.2/0.1)：资深画像配资深头衔、初级画像配非资深头衔给满分
	profileSenior := len(profile.Experience) >= seniorExperienceThreshold
	titleSenior := containsAnyFold(person.CurrentTitle, seniorTitleKeywords)
	if profileSenior == titleSenior {
		score += personSeniorityFullWeight
		rationale.Note = "seniority aligned"
	} else {
		score += personSeniorityHalfWeight
		rationale.Note = "seniority partially aligned"
	}

	// 地域 (0.1)
	if person.Location != "" && profile.Contact.Location != "" &&
		containsFold(person.Location, profile.Contact.Location) {
		score += personLocationWeight
		rationale.LocationMatch = true
	}

	rationale.MatchedSkills = firstN(sharedSkills, maxRationaleSkills)
	rationale.Explanation = fmt.Sprintf(
		"You share %d skills and %d interests with %s.",
		len(sharedSkills), len(sharedInterests), person.Name)

	m.logger.Printf("人脉评分: %s -> %.2f (共享技能 %d)", person.Name, score, len(sharedSkills))

	return types.PersonMatch{
		Person:              person,
		MatchScore:          clampScore(score),
		Rationale:           rationale,
		SharedSkills:        sharedSkills,
		SharedInterests:     sharedInterests,
		ConversationStarter: conversationStarter(person, sharedSkills, sharedInterests),
	}
}

// conversationStarter 按优先级选择破冰语模板：
// 共享技能+共享兴趣 > 仅共享技能 > 仅共享兴趣 > 通用回退
func conversationStarter(person types.CandidatePerson, sharedSkills, sharedInterests []string) string {
	name := firstName(person.Name)
	role := person.CurrentTitle
	if role == "" {
		role = "your current role"
	}
	company := person.CurrentCompany
	if company == "" {
		company = "your company"
	}

	switch {
	case len(sharedSkills) > 0 && len(sharedInterests) > 0:
		return fmt.Sprintf(
			"Hi %s! I noticed we both work with %s and share an interest in %s. I'd love to hear about your experience as %s at %s.",
			name, sharedSkills[0], sharedInterests[0], role, company)
	case len(sharedSkills) > 0:
		return fmt.Sprintf(
			"Hi %s! I saw that you also work with %s. I'd love to hear how you use it as %s at %s.",
			name, sharedSkills[0], role, company)
	case len(sharedInterests) > 0:
		return fmt.Sprintf(
			"Hi %s! We share an interest in %s. I'd enjoy hearing about your work as %s at %s.",
			name, sharedInterests[0], role, company)
	default:
		return fmt.Sprintf(
			"Hi %s! Your background as %s at %s caught my attention. I'd love to connect.",
			name, role, company)
	}
}

// containsAnyFold 文本是否包含关键词列表中的任意一项（大小写不敏感）
func containsAnyFold(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
