package constants

// 画像处理状态
const (
	// StatusPendingExtraction 等待文本提取
	StatusPendingExtraction = "PENDING_EXTRACTION"
	// StatusExtracted 画像提取完成
	StatusExtracted = "EXTRACTED"
	// StatusExtractionFailed 提取失败
	StatusExtractionFailed = "FAILED"
	// StatusContentDuplicate 提取文本与已有画像重复，本次上传被跳过
	StatusContentDuplicate = "CONTENT_DUPLICATE"
)

// 候选类型
const (
	// CandidateKindCompany 公司候选
	CandidateKindCompany = "company"
	// CandidateKindPerson 人脉候选
	CandidateKindPerson = "person"
)
