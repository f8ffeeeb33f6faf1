package models

import (
	"time"

	"gorm.io/datatypes"
)

// Profile 画像主表，一行对应一次文档上传的提取结果
type Profile struct {
	ProfileID        string         `gorm:"type:char(36);primaryKey"`
	UserID           string         `gorm:"type:char(36);index:idx_profiles_user_id"`
	Name             string         `gorm:"type:varchar(255)"`
	Email            string         `gorm:"type:varchar(255);index:idx_profiles_email"`
	Phone            string         `gorm:"type:varchar(50)"`
	ProfileURL       string         `gorm:"type:varchar(512)"`
	Location         string         `gorm:"type:varchar(255)"`
	Summary          string         `gorm:"type:text"`
	CareerGoal       string         `gorm:"type:text"`
	SkillsJSON       datatypes.JSON `gorm:"type:json"`
	ExperienceJSON   datatypes.JSON `gorm:"type:json"`
	EducationJSON    datatypes.JSON `gorm:"type:json"`
	IndustriesJSON   datatypes.JSON `gorm:"type:json"`
	ConfidenceScore  float64        `gorm:"type:double"`
	OriginalFilename string         `gorm:"type:varchar(255)"`
	OriginalPathOSS  string         `gorm:"type:varchar(1024)"`
	ParsedTextPath   string         `gorm:"type:varchar(1024)"`
	RawTextMD5       string         `gorm:"type:char(32);index:idx_profiles_raw_text_md5"`
	ProcessingStatus string         `gorm:"type:varchar(50);default:'PENDING_EXTRACTION';index:idx_profiles_status"`
	CreatedAt        time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt        time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}

// MatchRun 一次排序调用的落库记录
type MatchRun struct {
	RunID          string         `gorm:"type:char(36);primaryKey"`
	ProfileID      string         `gorm:"type:char(36);not null;index:idx_match_runs_profile_id"`
	CandidateKind  string         `gorm:"type:varchar(20);not null;index:idx_match_runs_kind"`
	CandidateCount int            `gorm:"type:int"`
	TopScore       float64        `gorm:"type:double"`
	ResultsJSON    datatypes.JSON `gorm:"type:json"`
	CreatedAt      time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`

	Profile *Profile `gorm:"foreignKey:ProfileID;references:ProfileID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (MatchRun) TableName() string {
	return "match_runs"
}
