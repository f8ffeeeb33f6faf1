package parser

import (
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"career-match-go/internal/types"
)

const (
	// maxExperienceEntries 最多保留的工作经历条数
	maxExperienceEntries = 5
	// maxEducationEntries 最多保留的教育经历条数
	maxEducationEntries = 3
	// maxSummaryLines 摘要最多采集的行数
	maxSummaryLines = 3

	// defaultExperienceTitle 年份行缺少标题时的占位值
	defaultExperienceTitle = "Professional Role"
	// defaultInstitution 学历行缺少下一行时的机构占位值
	defaultInstitution = "Institution not specified"
	// defaultCareerGoal 未命中目标关键词时的固定回退串
	defaultCareerGoal = "Exploring new career opportunities"

	// confidenceSignalCount 置信度清单的信号总数，评分公式的分母
	confidenceSignalCount = 5
	// confidenceBase 置信度基础加成
	confidenceBase = 0.2
)

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	// 3-3-4分组，国际前缀可选，分隔符容忍 - . 空格或无
	phoneRegex    = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinRegex = regexp.MustCompile(`(?:https?://)?(?:www\.)?linkedin\.com/in/[A-Za-z0-9\-_%]+`)
	yearRegex     = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// ProfileExtractor 从纯文本简历中提取结构化画像
// 各子提取相互独立、顺序无关；任何字段缺失都降级为空值而不是报错
type ProfileExtractor struct {
	vocab  *Vocabulary
	logger *log.Logger
}

// ProfileExtractorOption 画像提取器的配置选项
type ProfileExtractorOption func(*ProfileExtractor)

// WithVocabulary 使用自定义词表
func WithVocabulary(vocab *Vocabulary) ProfileExtractorOption {
	return func(e *ProfileExtractor) {
		if vocab != nil {
			e.vocab = vocab
		}
	}
}

// WithProfileLogger 配置自定义日志记录器
func WithProfileLogger(logger *log.Logger) ProfileExtractorOption {
	return func(e *ProfileExtractor) {
		e.logger = logger
	}
}

// NewProfileExtractor 创建画像提取器，默认使用内置词表
func NewProfileExtractor(options ...ProfileExtractorOption) *ProfileExtractor {
	e := &ProfileExtractor{
		vocab:  DefaultVocabulary(),
		logger: log.New(io.Discard, "", 0),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// ExtractProfile 对文本执行全部字段提取并组装画像
// 相同文本的两次提取产生完全一致的结果
func (e *ProfileExtractor) ExtractProfile(text string) *types.StructuredProfile {
	lines := strings.Split(text, "\n")

	profile := &types.StructuredProfile{
		Contact:         e.extractContact(text, lines),
		Summary:         e.extractSummary(lines),
		Skills:          e.extractSkills(text),
		Experience:      e.extractExperience(lines),
		Education:       e.extractEducation(lines),
		Industries:      e.extractIndustries(text),
		CareerGoal:      e.extractCareerGoal(lines),
		ConfidenceScore: e.confidenceScore(text),
	}

	e.logger.Printf("画像提取完成: %d 项技能, %d 条经历, 置信度 %.2f",
		len(profile.Skills), len(profile.Experience), profile.ConfidenceScore)
	return profile
}

// extractContact 联系方式：首个非空行作为姓名，其余字段走正则
func (e *ProfileExtractor) extractContact(text string, lines []string) types.ContactInfo {
	contact := types.ContactInfo{
		Email: emailRegex.FindString(text),
		Phone: phoneRegex.FindString(text),
	}

	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			contact.Name = trimmed
			break
		}
	}

	if match := linkedinRegex.FindString(text); match != "" {
		if !strings.HasPrefix(match, "http") {
			match = "https://" + match
		}
		contact.ProfileURL = match
	}

	return contact
}

// extractSummary 命中章节标题关键词后采集随后的2-3行
// 无标题时回退到姓名行之后的前几行
func (e *ProfileExtractor) extractSummary(lines []string) string {
	for i, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		if lower == "" {
			continue
		}
		for _, heading := range e.vocab.SectionHeadings {
			if strings.Contains(lower, heading) {
				return joinFollowingLines(lines, i+1, maxSummaryLines)
			}
		}
	}

	// 回退：跳过姓名行，取其后的前几行
	nameIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return ""
	}
	return joinFollowingLines(lines, nameIdx+1, maxSummaryLines)
}

// joinFollowingLines 从start开始收集最多max个非空行，用空格拼接
func joinFollowingLines(lines []string, start, max int) string {
	var collected []string
	for i := start; i < len(lines) && len(collected) < max; i++ {
		if trimmed := strings.TrimSpace(lines[i]); trimmed != "" {
			collected = append(collected, trimmed)
		}
	}
	return strings.Join(collected, " ")
}

// extractSkills 全文与两份词表做大小写不敏感的子串匹配
// 输出顺序跟随词表顺序，而不是文档中出现的顺序
func (e *ProfileExtractor) extractSkills(text string) []types.Skill {
	lower := strings.ToLower(text)
	skills := make([]types.Skill, 0)

	for _, name := range e.vocab.TechnicalSkills {
		if strings.Contains(lower, strings.ToLower(name)) {
			skills = append(skills, types.Skill{Name: name, Category: types.SkillCategoryTechnical})
		}
	}
	for _, name := range e.vocab.SoftSkills {
		if strings.Contains(lower, strings.ToLower(name)) {
			skills = append(skills, types.Skill{Name: name, Category: types.SkillCategorySoft})
		}
	}
	return skills
}

// extractExperience 含4位年份token的行视为一条经历，最多保留前5条
func (e *ProfileExtractor) extractExperience(lines []string) []types.ExperienceEntry {
	entries := make([]types.ExperienceEntry, 0, maxExperienceEntries)

	for i, line := range lines {
		if len(entries) >= maxExperienceEntries {
			break
		}

		loc := yearRegex.FindStringIndex(line)
		if loc == nil {
			continue
		}

		title := strings.Trim(strings.TrimSpace(line[:loc[0]]), "-–|,:;(")
		title = strings.TrimSpace(title)
		if title == "" {
			title = defaultExperienceTitle
		}

		startYear, endYear := yearSpan(yearRegex.FindAllString(line, -1))

		entry := types.ExperienceEntry{
			Title:          title,
			StartPeriod:    strconv.Itoa(startYear),
			EndPeriod:      strconv.Itoa(endYear),
			DurationMonths: (endYear - startYear) * 12,
		}
		if i+1 < len(lines) {
			entry.Description = strings.TrimSpace(lines[i+1])
		}
		entries = append(entries, entry)
	}

	return entries
}

// yearSpan 返回年份token集合中的最早与最晚年份
func yearSpan(tokens []string) (int, int) {
	earliest, latest := 0, 0
	for _, tok := range tokens {
		year, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		if earliest == 0 || year < earliest {
			earliest = year
		}
		if year > latest {
			latest = year
		}
	}
	return earliest, latest
}

// extractEducation 含学历关键词的行，最多保留前3条
func (e *ProfileExtractor) extractEducation(lines []string) []types.EducationEntry {
	entries := make([]types.EducationEntry, 0, maxEducationEntries)

	for i, line := range lines {
		if len(entries) >= maxEducationEntries {
			break
		}

		lower := strings.ToLower(line)
		if !containsAny(lower, e.vocab.DegreeKeywords) {
			continue
		}

		entry := types.EducationEntry{
			Degree:         strings.TrimSpace(line),
			Institution:    defaultInstitution,
			GraduationYear: yearRegex.FindString(line),
		}
		if i+1 < len(lines) {
			if next := strings.TrimSpace(lines[i+1]); next != "" {
				entry.Institution = next
			}
		}
		entries = append(entries, entry)
	}

	return entries
}

// extractIndustries 行业词表的全量子串匹配，不设上限
func (e *ProfileExtractor) extractIndustries(text string) []string {
	lower := strings.ToLower(text)
	industries := make([]string, 0)
	for _, name := range e.vocab.Industries {
		if strings.Contains(lower, strings.ToLower(name)) {
			industries = append(industries, name)
		}
	}
	return industries
}

// extractCareerGoal 首个命中目标关键词的行原样返回
func (e *ProfileExtractor) extractCareerGoal(lines []string) string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		if containsAny(lower, e.vocab.GoalKeywords) {
			return strings.TrimSpace(line)
		}
	}
	return defaultCareerGoal
}

// confidenceScore 五个独立布尔信号的清单式评分
// 公式 min(count/5 + 0.2, 1.0) 为对外兼容值，不得改动
func (e *ProfileExtractor) confidenceScore(text string) float64 {
	lower := strings.ToLower(text)

	signals := []bool{
		strings.Contains(text, "@"),
		phoneRegex.MatchString(text),
		strings.Contains(lower, "linkedin.com"),
		yearRegex.MatchString(text),
		containsAny(lower, e.vocab.DegreeKeywords),
	}

	count := 0
	for _, hit := range signals {
		if hit {
			count++
		}
	}

	score := float64(count)/confidenceSignalCount + confidenceBase
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// containsAny 判断文本是否包含关键词列表中的任意一项
func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
