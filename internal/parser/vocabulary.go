package parser

// Vocabulary 字段提取使用的固定查找表
// 进程级常量数据，加载一次后只读，不作为可变全局状态管理
type Vocabulary struct {
	// TechnicalSkills 技术技能词表，命中顺序即输出顺序
	TechnicalSkills []string
	// SoftSkills 软技能词表
	SoftSkills []string
	// Industries 行业名称词表
	Industries []string
	// DegreeKeywords 学历关键词（含缩写形式），小写
	DegreeKeywords []string
	// SectionHeadings 摘要章节标题关键词，小写
	SectionHeadings []string
	// GoalKeywords 职业目标指示关键词，小写
	GoalKeywords []string
}

// DefaultVocabulary 返回内置词表
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		TechnicalSkills: []string{
			"Python", "Java", "JavaScript", "TypeScript", "Go", "C++", "C#",
			"SQL", "HTML", "CSS", "React", "Angular", "Vue", "Node.js",
			"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform",
			"Git", "Linux", "Machine Learning", "Data Analysis",
			"Data Science", "DevOps", "CI/CD", "REST", "GraphQL", "Excel",
		},
		SoftSkills: []string{
			"Leadership", "Communication", "Teamwork", "Problem Solving",
			"Project Management", "Time Management", "Critical Thinking",
			"Adaptability", "Collaboration", "Creativity", "Negotiation",
			"Public Speaking", "Mentoring",
		},
		Industries: []string{
			"Technology", "Finance", "Healthcare", "Education", "Retail",
			"Manufacturing", "Consulting", "Marketing", "Media",
			"Real Estate", "Logistics", "Energy",
		},
		DegreeKeywords: []string{
			"bachelor", "master", "phd", "ph.d", "mba",
			"b.s.", "m.s.", "b.a.", "m.a.", "b.sc", "m.sc",
		},
		SectionHeadings: []string{
			"summary", "objective", "profile", "about",
		},
		GoalKeywords: []string{
			"seeking", "looking for", "interested in", "goal", "objective",
		},
	}
}
