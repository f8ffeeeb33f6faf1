package storage

// ProfileExtractedEvent 画像提取完成后发布到消息队列的事件载荷
type ProfileExtractedEvent struct {
	ProfileID       string  `json:"profile_id"`
	UserID          string  `json:"user_id,omitempty"`
	SkillCount      int     `json:"skill_count"`
	IndustryCount   int     `json:"industry_count"`
	ConfidenceScore float64 `json:"confidence_score"`
	ExtractedAt     int64   `json:"extracted_at"` // Unix秒
}
