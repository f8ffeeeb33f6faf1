package types

// SkillCategory 技能类别
type SkillCategory string

const (
	// SkillCategoryTechnical 技术技能
	SkillCategoryTechnical SkillCategory = "technical"
	// SkillCategorySoft 软技能
	SkillCategorySoft SkillCategory = "soft"
)

// ContactInfo 从简历文本中提取的联系方式
// 未匹配到的字段保持为空字符串，不视为错误
type ContactInfo struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	ProfileURL string `json:"profile_url,omitempty"`
	Location   string `json:"location,omitempty"`
}

// Skill 带类别标签的技能条目
type Skill struct {
	Name     string        `json:"name"`
	Category SkillCategory `json:"category"`
}

// ExperienceEntry 一条工作经历
type ExperienceEntry struct {
	Title          string `json:"title"`
	Company        string `json:"company,omitempty"`
	Location       string `json:"location,omitempty"`
	StartPeriod    string `json:"start_period,omitempty"`
	EndPeriod      string `json:"end_period,omitempty"`
	DurationMonths int    `json:"duration_months"`
	Description    string `json:"description,omitempty"`
}

// EducationEntry 一条教育经历
type EducationEntry struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationYear string `json:"graduation_year,omitempty"`
}

// StructuredProfile 简历文本结构化后的完整画像
// 每份文档提取一次，创建后不再修改，由调用方独占持有
type StructuredProfile struct {
	Contact         ContactInfo       `json:"contact"`
	Summary         string            `json:"summary,omitempty"`
	Skills          []Skill           `json:"skills"`
	Experience      []ExperienceEntry `json:"experience"`
	Education       []EducationEntry  `json:"education"`
	Industries      []string          `json:"industries"`
	CareerGoal      string            `json:"career_goal,omitempty"`
	ConfidenceScore float64           `json:"confidence_score"`
}

// SkillNames 返回画像中全部技能名称（保持词表顺序）
func (p *StructuredProfile) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Name)
	}
	return names
}

// CandidateCompany 外部目录服务返回的公司候选记录，本引擎只读
type CandidateCompany struct {
	Name         string `json:"name"`
	DirectoryURL string `json:"directory_url,omitempty"`
	Industry     string `json:"industry,omitempty"`
	SizeBucket   string `json:"size_bucket,omitempty"`
	Location     string `json:"location,omitempty"`
	Description  string `json:"description,omitempty"`
}

// CandidatePerson 外部目录服务返回的人脉候选记录，本引擎只读
type CandidatePerson struct {
	Name           string   `json:"name"`
	DirectoryURL   string   `json:"directory_url,omitempty"`
	CurrentTitle   string   `json:"current_title,omitempty"`
	CurrentCompany string   `json:"current_company,omitempty"`
	Location       string   `json:"location,omitempty"`
	Headline       string   `json:"headline,omitempty"`
	Skills         []string `json:"skills,omitempty"`
}

// MatchRationale 匹配分数的结构化解释，说明哪些信号贡献了分数
type MatchRationale struct {
	MatchedSkills     []string `json:"matched_skills,omitempty"`
	MatchedIndustries []string `json:"matched_industries,omitempty"`
	LocationMatch     bool     `json:"location_match"`
	Note              string   `json:"note,omitempty"`
	Explanation       string   `json:"explanation"`
}

// CompanyMatch 公司候选的评分结果，每次排序调用新建，构造后不再修改
type CompanyMatch struct {
	Company    CandidateCompany `json:"company"`
	MatchScore float64          `json:"match_score"`
	Rationale  MatchRationale   `json:"rationale"`
}

// PersonMatch 人脉候选的评分结果
type PersonMatch struct {
	Person              CandidatePerson `json:"person"`
	MatchScore          float64         `json:"match_score"`
	Rationale           MatchRationale  `json:"rationale"`
	SharedSkills        []string        `json:"shared_skills,omitempty"`
	SharedInterests     []string        `json:"shared_interests,omitempty"`
	ConversationStarter string          `json:"conversation_starter"`
}
