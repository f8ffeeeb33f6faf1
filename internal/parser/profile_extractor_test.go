package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-match-go/internal/types"
)

const sampleResume = `Jane Doe
Summary
Platform engineer with cloud experience.
Focused on reliability.

Contact: jane.doe@example.com | 415-555-1234
https://www.linkedin.com/in/janedoe

Experience
Software Engineer - 2018 2021
Built deployment pipelines with Python and AWS.

Education
Bachelor of Science in Computer Science, 2015
State University

Seeking a senior platform engineering role in Technology.`

// TestExtractProfileFields 验证完整简历的各字段提取
func TestExtractProfileFields(t *testing.T) {
	e := NewProfileExtractor()

	profile := e.ExtractProfile(sampleResume)
	require.NotNil(t, profile)

	// 联系方式
	assert.Equal(t, "Jane Doe", profile.Contact.Name, "首个非空行应作为姓名")
	assert.Equal(t, "jane.doe@example.com", profile.Contact.Email)
	assert.Equal(t, "415-555-1234", profile.Contact.Phone)
	assert.Equal(t, "https://www.linkedin.com/in/janedoe", profile.Contact.ProfileURL)

	// 摘要来自Summary标题后的行
	assert.Contains(t, profile.Summary, "Platform engineer")

	// 技能命中词表，顺序跟随词表
	skillNames := profile.SkillNames()
	assert.Contains(t, skillNames, "Python")
	assert.Contains(t, skillNames, "AWS")

	// 行业
	assert.Contains(t, profile.Industries, "Technology")

	// 工作经历：含年份token的两行（经历行和学历行）
	require.Len(t, profile.Experience, 2)
	first := profile.Experience[0]
	assert.Equal(t, "Software Engineer", first.Title)
	assert.Equal(t, "2018", first.StartPeriod)
	assert.Equal(t, "2021", first.EndPeriod)
	assert.Equal(t, 36, first.DurationMonths)
	assert.Equal(t, "Built deployment pipelines with Python and AWS.", first.Description)

	// 教育经历
	require.Len(t, profile.Education, 1)
	assert.Equal(t, "Bachelor of Science in Computer Science, 2015", profile.Education[0].Degree)
	assert.Equal(t, "State University", profile.Education[0].Institution)
	assert.Equal(t, "2015", profile.Education[0].GraduationYear)

	// 职业目标取首个命中关键词的行
	assert.Equal(t, "Seeking a senior platform engineering role in Technology.", profile.CareerGoal)

	// 全部5个信号命中: min(5/5 + 0.2, 1.0) = 1.0
	assert.InDelta(t, 1.0, profile.ConfidenceScore, 1e-9)
}

// TestExtractProfileIdempotent 验证相同文本两次提取结果完全一致
func TestExtractProfileIdempotent(t *testing.T) {
	e := NewProfileExtractor()

	first := e.ExtractProfile(sampleResume)
	second := e.ExtractProfile(sampleResume)

	assert.Equal(t, first, second, "提取必须是确定性的")
}

// TestConfidenceScoreNoSignals 验证无任何信号时置信度为基础值0.2
func TestConfidenceScoreNoSignals(t *testing.T) {
	e := NewProfileExtractor()

	profile := e.ExtractProfile("plain note with nothing special")

	assert.InDelta(t, 0.2, profile.ConfidenceScore, 1e-9)
}

// TestExtractProfileEmptyText 验证空文本产出空画像而不是报错
func TestExtractProfileEmptyText(t *testing.T) {
	e := NewProfileExtractor()

	profile := e.ExtractProfile("")
	require.NotNil(t, profile)

	assert.Empty(t, profile.Contact.Name)
	assert.Empty(t, profile.Skills)
	assert.Empty(t, profile.Experience)
	assert.Equal(t, "Exploring new career opportunities", profile.CareerGoal)
	assert.InDelta(t, 0.2, profile.ConfidenceScore, 1e-9)
}

// TestExperienceEntryCap 验证工作经历最多保留前5条
func TestExperienceEntryCap(t *testing.T) {
	e := NewProfileExtractor()

	var sb strings.Builder
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&sb, "Role %d at Firm, 201%d\n", i, i)
	}

	profile := e.ExtractProfile(sb.String())

	assert.Len(t, profile.Experience, 5)
}

// TestExperienceDefaultTitle 验证年份行缺少标题时使用占位标题
func TestExperienceDefaultTitle(t *testing.T) {
	e := NewProfileExtractor()

	profile := e.ExtractProfile("2019 - 2020")

	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Professional Role", profile.Experience[0].Title)
	assert.Equal(t, 12, profile.Experience[0].DurationMonths)
}

// TestEducationDefaultInstitution 验证学历行后无内容时机构使用占位值
func TestEducationDefaultInstitution(t *testing.T) {
	e := NewProfileExtractor()

	profile := e.ExtractProfile("Bachelor of Arts in History, 2012\n")

	require.Len(t, profile.Education, 1)
	assert.Equal(t, "Institution not specified", profile.Education[0].Institution)
	assert.Equal(t, "2012", profile.Education[0].GraduationYear)
}

// TestCareerGoalFallback 验证未命中目标关键词时返回固定回退串
func TestCareerGoalFallback(t *testing.T) {
	e := NewProfileExtractor()

	profile := e.ExtractProfile("Jane Doe\nPlatform engineer.")

	assert.Equal(t, "Exploring new career opportunities", profile.CareerGoal)
}

// TestCustomVocabulary 验证自定义词表替换内置词表
func TestCustomVocabulary(t *testing.T) {
	vocab := &Vocabulary{
		TechnicalSkills: []string{"Fortran"},
		Industries:      []string{"Aerospace"},
	}
	e := NewProfileExtractor(WithVocabulary(vocab))

	profile := e.ExtractProfile("Fortran developer in Aerospace.")

	assert.Equal(t, []types.Skill{{Name: "Fortran", Category: types.SkillCategoryTechnical}}, profile.Skills)
	assert.Equal(t, []string{"Aerospace"}, profile.Industries)
}
