package processor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-match-go/internal/storage/models"
	"career-match-go/internal/types"
)

// TestProfileProcessErrorChain 验证自定义错误支持errors.Is比较
func TestProfileProcessErrorChain(t *testing.T) {
	err := NewExtractError("profile-123", "页面解码失败")

	assert.ErrorIs(t, err, ErrExtractTextFailed)
	assert.NotErrorIs(t, err, ErrDatabaseFailed)
	assert.Contains(t, err.Error(), "profile-123")
	assert.Contains(t, err.Error(), "页面解码失败")
}

// TestProfileProcessErrorWithoutDetail 验证无详情时的错误文案
func TestProfileProcessErrorWithoutDetail(t *testing.T) {
	err := &ProfileProcessError{ProfileID: "p1", Op: "quota", BaseErr: ErrQuotaExceeded}

	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Contains(t, err.Error(), "quota")

	var processErr *ProfileProcessError
	require.True(t, errors.As(err, &processErr))
	assert.Equal(t, "p1", processErr.ProfileID)
}

// TestProfileModelRoundTrip 验证画像与数据库记录的双向转换保持字段
func TestProfileModelRoundTrip(t *testing.T) {
	original := &types.StructuredProfile{
		Contact: types.ContactInfo{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "415-555-1234",
			Location: "San Francisco",
		},
		Summary: "Platform engineer.",
		Skills: []types.Skill{
			{Name: "Python", Category: types.SkillCategoryTechnical},
			{Name: "Leadership", Category: types.SkillCategorySoft},
		},
		Experience: []types.ExperienceEntry{
			{Title: "Software Engineer", StartPeriod: "2018", EndPeriod: "2021", DurationMonths: 36},
		},
		Education: []types.EducationEntry{
			{Degree: "B.S. Computer Science", Institution: "State University", GraduationYear: "2015"},
		},
		Industries:      []string{"Technology"},
		CareerGoal:      "Seeking a platform role.",
		ConfidenceScore: 1.0,
	}

	record := &models.Profile{ProfileID: "profile-1"}
	require.NoError(t, fillModelFromProfile(record, original))

	assert.Equal(t, "Jane Doe", record.Name)
	assert.Equal(t, "jane@example.com", record.Email)
	assert.NotEmpty(t, record.SkillsJSON)

	restored := profileFromModel(record)
	assert.Equal(t, original, restored, "往返转换不应丢失字段")
}

// TestProfileFromModelEmptyJSON 验证JSON列为空时还原为空切片而不是nil panic
func TestProfileFromModelEmptyJSON(t *testing.T) {
	restored := profileFromModel(&models.Profile{ProfileID: "p2", Name: "Sam"})

	require.NotNil(t, restored)
	assert.Equal(t, "Sam", restored.Contact.Name)
	assert.Empty(t, restored.Skills)
	assert.Empty(t, restored.Industries)
}

// TestTopScoreHelpers 验证排序结果的最高分提取
func TestTopScoreHelpers(t *testing.T) {
	assert.Zero(t, topCompanyScore(nil))
	assert.Zero(t, topPersonScore(nil))

	companies := []types.CompanyMatch{{MatchScore: 0.9}, {MatchScore: 0.4}}
	people := []types.PersonMatch{{MatchScore: 0.6}}
	assert.InDelta(t, 0.9, topCompanyScore(companies), 1e-9)
	assert.InDelta(t, 0.6, topPersonScore(people), 1e-9)
}

// TestContentMD5Deterministic 验证内容指纹稳定且区分输入
func TestContentMD5Deterministic(t *testing.T) {
	a := contentMD5([]byte("hello"))
	b := contentMD5([]byte("hello"))
	c := contentMD5([]byte("world"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32)
}
