package processor

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"career-match-go/internal/config"
	"career-match-go/internal/constants"
	"career-match-go/internal/matcher"
	"career-match-go/internal/parser"
	"career-match-go/internal/storage"
	"career-match-go/internal/storage/models"
	"career-match-go/internal/tracing"
	"career-match-go/internal/types"
)

var tracer = otel.Tracer("career-match-go/internal/processor")

// Components 聚合所有功能组件依赖，便于集中管理和测试替换
type Components struct {
	// 核心组件接口
	TextExtractor  DocumentTextExtractor // 文档文本提取接口
	ProfileBuilder ProfileBuilder        // 画像构建接口
	Ranker         CandidateRanker       // 候选排序接口

	// 存储层依赖
	Storage *storage.Storage // 聚合的存储服务
}

// Settings 纯配置项，不包含任何业务逻辑组件
type Settings struct {
	Debug  bool        // 是否开启调试模式
	Logger *log.Logger // 日志记录器
}

// ProfileProcessor 画像处理组件聚合类
// 串联文本提取、画像构建、候选排序与各存储层
type ProfileProcessor struct {
	TextExtractor  DocumentTextExtractor
	ProfileBuilder ProfileBuilder
	Ranker         CandidateRanker

	Storage *storage.Storage

	Config Settings
}

// NewProfileProcessor 创建新的画像处理器
func NewProfileProcessor(comp *Components, set *Settings) *ProfileProcessor {
	if set == nil {
		set = &Settings{}
	}
	if set.Logger == nil {
		set.Logger = log.New(os.Stdout, "[Processor] ", log.LstdFlags)
	}

	processor := &ProfileProcessor{
		TextExtractor:  comp.TextExtractor,
		ProfileBuilder: comp.ProfileBuilder,
		Ranker:         comp.Ranker,
		Storage:        comp.Storage,
		Config:         *set,
	}

	if processor.Storage == nil {
		processor.Config.Logger.Println("警告: ProfileProcessor 的 Storage 依赖未初始化。某些功能可能受限。")
	}

	return processor
}

// CreateProcessorFromConfig 从配置创建处理器组件集合
func CreateProcessorFromConfig(cfg *config.Config, storageManager *storage.Storage) (*ProfileProcessor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	debug := cfg.Logger.Level == "debug"
	procLogger := log.New(os.Stdout, "[Processor] ", log.LstdFlags)

	componentLogger := log.New(io.Discard, "", 0)
	if debug {
		componentLogger = log.New(os.Stdout, "[Extractor] ", log.LstdFlags)
	}

	components := &Components{
		TextExtractor:  parser.NewExtractorRegistry(parser.WithRegistryLogger(componentLogger)),
		ProfileBuilder: parser.NewProfileExtractor(parser.WithProfileLogger(componentLogger)),
		Ranker:         matcher.NewMatcher(matcher.WithMatcherLogger(componentLogger)),
		Storage:        storageManager,
	}

	settings := &Settings{
		Debug:  debug,
		Logger: procLogger,
	}

	return NewProfileProcessor(components, settings), nil
}

// ProcessUploadedDocument 接收上传的文档，完成存储、文本提取、去重、画像构建和事件发布的完整流程
func (pp *ProfileProcessor) ProcessUploadedDocument(ctx context.Context, req UploadRequest, cfg *config.Config) (*UploadResult, error) {
	if pp.Storage == nil || pp.Storage.MySQL == nil {
		return nil, fmt.Errorf("ProfileProcessor: MySQL存储未初始化")
	}
	if pp.TextExtractor == nil {
		return nil, fmt.Errorf("ProfileProcessor: TextExtractor 未初始化")
	}
	if pp.ProfileBuilder == nil {
		return nil, fmt.Errorf("ProfileProcessor: ProfileBuilder 未初始化")
	}

	ctx, span := tracer.Start(ctx, "ProfileProcessor.ProcessUploadedDocument",
		trace.WithAttributes(
			attribute.String("user_id", req.UserID),
			attribute.String("filename", req.Filename),
			attribute.Int("size_bytes", len(req.Data)),
		),
	)
	defer span.End()

	// 1. 按扩展名推断文档格式
	format, err := parser.DetectFormat(req.Filename)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return nil, err
	}

	profileID := uuid.New().String()

	// 2. 原始文档入对象存储（提取失败时保留原件供排查）
	var originalPath string
	if pp.Storage.MinIO != nil {
		fileExt := filepath.Ext(req.Filename)
		originalPath, _, err = pp.Storage.MinIO.UploadOriginalDocument(ctx, profileID, fileExt, bytes.NewReader(req.Data), int64(len(req.Data)))
		if err != nil {
			tracing.RecordErrorWithInfo(span, err, tracing.ErrorTypeObjectStore,
				attribute.String("upload.filename", tracing.TruncateString(req.Filename, tracing.MaxObjectNameLength)))
			return nil, NewStoreDocumentError(profileID, err.Error())
		}
		span.AddEvent("original document stored")
	}

	// 3. 落库初始记录
	record := &models.Profile{
		ProfileID:        profileID,
		UserID:           req.UserID,
		OriginalFilename: req.Filename,
		OriginalPathOSS:  originalPath,
		ProcessingStatus: constants.StatusPendingExtraction,
	}
	if err := pp.Storage.MySQL.CreateProfile(ctx, record); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, NewDatabaseError(profileID, err.Error())
	}

	// 4. 提取文本（带超时）
	extractCtx, cancel := context.WithTimeout(ctx, cfg.Engine.ExtractTimeout())
	text, err := pp.TextExtractor.ExtractText(extractCtx, req.Data, format)
	cancel()
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeExtraction)
		pp.markFailed(ctx, profileID)
		// 解码类错误保留原始错误链，调用方按类型映射响应
		var decodeErr *parser.FormatDecodeError
		if errors.As(err, &decodeErr) || errors.Is(err, parser.ErrUnsupportedFormat) {
			return nil, err
		}
		return nil, NewExtractError(profileID, err.Error())
	}
	span.AddEvent("text extracted")
	pp.logDebug("画像 %s 文本提取完成, 格式=%s, 长度=%d", profileID, format, len(text))

	// 5. 按提取文本MD5去重
	textMD5 := contentMD5([]byte(text))
	if existingID, found := pp.lookupDuplicate(ctx, textMD5); found && existingID != profileID {
		pp.logDebug("画像 %s 的提取文本与已有画像 %s 重复, 跳过本次构建", profileID, existingID)
		if err := pp.Storage.MySQL.UpdateProfileStatus(ctx, profileID, constants.StatusContentDuplicate); err != nil {
			pp.logDebug("更新画像 %s 重复状态失败: %v", profileID, err)
		}
		span.AddEvent("duplicate content detected")

		existing, _, loadErr := pp.LoadProfile(ctx, existingID)
		if loadErr != nil {
			return nil, loadErr
		}
		return &UploadResult{
			ProfileID: existingID,
			Status:    existing.ProcessingStatus,
			Duplicate: true,
			Profile:   profileFromModel(existing),
		}, nil
	}

	// 6. 提取文本入对象存储
	var parsedPath string
	if pp.Storage.MinIO != nil {
		parsedPath, err = pp.Storage.MinIO.UploadParsedText(ctx, profileID, text)
		if err != nil {
			tracing.RecordError(span, err, tracing.ErrorTypeObjectStore)
			pp.markFailed(ctx, profileID)
			return nil, NewStoreTextError(profileID, err.Error())
		}
		span.AddEvent("parsed text stored")
	}

	// 7. 构建结构化画像
	profile := pp.ProfileBuilder.ExtractProfile(text)
	span.AddEvent("structured profile built")

	// 8. 回填完整画像并标记提取完成
	if err := fillModelFromProfile(record, profile); err != nil {
		pp.markFailed(ctx, profileID)
		return nil, NewDatabaseError(profileID, fmt.Sprintf("序列化画像字段失败: %v", err))
	}
	record.ParsedTextPath = parsedPath
	record.RawTextMD5 = textMD5
	record.ProcessingStatus = constants.StatusExtracted
	if err := pp.Storage.MySQL.SaveProfile(ctx, record); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		pp.markFailed(ctx, profileID)
		return nil, NewDatabaseError(profileID, err.Error())
	}

	// 9. 记录去重映射，失败只降级为日志，不影响主流程
	if pp.Storage.Redis != nil {
		if err := pp.Storage.Redis.SetProfileIDForTextMD5(ctx, textMD5, profileID, 0); err != nil {
			pp.logDebug("记录画像 %s 的文本MD5映射失败: %v", profileID, err)
		}
	}

	// 10. 发布画像提取完成事件
	if pp.Storage.RabbitMQ != nil {
		event := storage.ProfileExtractedEvent{
			ProfileID:       profileID,
			UserID:          req.UserID,
			SkillCount:      len(profile.Skills),
			IndustryCount:   len(profile.Industries),
			ConfidenceScore: profile.ConfidenceScore,
			ExtractedAt:     time.Now().Unix(),
		}
		if err := pp.Storage.RabbitMQ.PublishJSON(ctx, cfg.RabbitMQ.ProfileExchange, cfg.RabbitMQ.ExtractedRoutingKey, event, true); err != nil {
			// 画像已落库，事件发布失败不回滚，记录后继续
			pp.logDebug("发布画像 %s 提取事件失败: %v", profileID, err)
		} else {
			span.AddEvent("extracted event published")
		}
	}

	pp.logDebug("画像 %s 处理完成, 置信度=%.2f", profileID, profile.ConfidenceScore)
	return &UploadResult{
		ProfileID: profileID,
		Status:    constants.StatusExtracted,
		Profile:   profile,
	}, nil
}

// markFailed 将画像状态更新为提取失败
func (pp *ProfileProcessor) markFailed(ctx context.Context, profileID string) {
	if err := pp.Storage.MySQL.UpdateProfileStatus(ctx, profileID, constants.StatusExtractionFailed); err != nil {
		pp.logDebug("更新画像 %s 失败状态时出错: %v", profileID, err)
	}
}

// lookupDuplicate 按提取文本MD5查找已有画像，优先查Redis，未命中回源MySQL
func (pp *ProfileProcessor) lookupDuplicate(ctx context.Context, textMD5 string) (string, bool) {
	if pp.Storage.Redis != nil {
		existingID, err := pp.Storage.Redis.GetProfileIDByTextMD5(ctx, textMD5)
		if err == nil && existingID != "" {
			return existingID, true
		}
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			pp.logDebug("Redis查询文本MD5映射失败: %v, 回源MySQL", err)
		}
	}

	existing, err := pp.Storage.MySQL.GetProfileByTextMD5(ctx, textMD5)
	if err != nil || existing == nil {
		return "", false
	}

	if pp.Storage.Redis != nil {
		if err := pp.Storage.Redis.SetProfileIDForTextMD5(ctx, textMD5, existing.ProfileID, 0); err != nil {
			pp.logDebug("回填文本MD5映射失败: %v", err)
		}
	}
	return existing.ProfileID, true
}

// LoadProfile 按ID加载画像记录及其结构化画像
func (pp *ProfileProcessor) LoadProfile(ctx context.Context, profileID string) (*models.Profile, *types.StructuredProfile, error) {
	record, err := pp.Storage.MySQL.GetProfileByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &ProfileProcessError{ProfileID: profileID, Op: "load", BaseErr: ErrProfileNotFound}
		}
		return nil, nil, NewDatabaseError(profileID, err.Error())
	}
	return record, profileFromModel(record), nil
}

// RankCompanies 对公司候选列表执行配额检查、缓存查询和评分排序
func (pp *ProfileProcessor) RankCompanies(ctx context.Context, userID, profileID string, companies []types.CandidateCompany, cfg *config.Config) (*CompanyRankResult, error) {
	ctx, span := tracer.Start(ctx, "ProfileProcessor.RankCompanies",
		trace.WithAttributes(
			attribute.String("profile_id", profileID),
			attribute.Int("candidate_count", len(companies)),
		),
	)
	defer span.End()

	profile, candidatesMD5, err := pp.prepareRank(ctx, userID, profileID, companies, cfg)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// 缓存命中直接返回
	if cached := pp.cachedResult(ctx, constants.CandidateKindCompany, profileID, candidatesMD5); cached != "" {
		var matches []types.CompanyMatch
		if err := json.Unmarshal([]byte(cached), &matches); err == nil {
			span.AddEvent("rank cache hit")
			return &CompanyRankResult{Matches: matches, FromCache: true}, nil
		}
	}

	matches := pp.Ranker.RankCompanies(profile, companies)
	span.AddEvent("candidates ranked")

	pp.cacheAndRecord(ctx, constants.CandidateKindCompany, profileID, candidatesMD5, matches, topCompanyScore(matches), len(companies), cfg)

	return &CompanyRankResult{Matches: matches}, nil
}

// RankPeople 对人脉候选列表执行配额检查、缓存查询和评分排序
func (pp *ProfileProcessor) RankPeople(ctx context.Context, userID, profileID string, people []types.CandidatePerson, cfg *config.Config) (*PersonRankResult, error) {
	ctx, span := tracer.Start(ctx, "ProfileProcessor.RankPeople",
		trace.WithAttributes(
			attribute.String("profile_id", profileID),
			attribute.Int("candidate_count", len(people)),
		),
	)
	defer span.End()

	profile, candidatesMD5, err := pp.prepareRank(ctx, userID, profileID, people, cfg)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if cached := pp.cachedResult(ctx, constants.CandidateKindPerson, profileID, candidatesMD5); cached != "" {
		var matches []types.PersonMatch
		if err := json.Unmarshal([]byte(cached), &matches); err == nil {
			span.AddEvent("rank cache hit")
			return &PersonRankResult{Matches: matches, FromCache: true}, nil
		}
	}

	matches := pp.Ranker.RankPeople(profile, people)
	span.AddEvent("candidates ranked")

	pp.cacheAndRecord(ctx, constants.CandidateKindPerson, profileID, candidatesMD5, matches, topPersonScore(matches), len(people), cfg)

	return &PersonRankResult{Matches: matches}, nil
}

// prepareRank 执行排序调用的公共前置步骤：配额消耗、画像加载和候选指纹计算
func (pp *ProfileProcessor) prepareRank(ctx context.Context, userID, profileID string, candidates interface{}, cfg *config.Config) (*types.StructuredProfile, string, error) {
	if pp.Storage == nil || pp.Storage.MySQL == nil {
		return nil, "", fmt.Errorf("ProfileProcessor: MySQL存储未初始化")
	}
	if pp.Ranker == nil {
		return nil, "", fmt.Errorf("ProfileProcessor: Ranker 未初始化")
	}

	// 配额检查
	if pp.Storage.Redis != nil {
		allowed, err := pp.Storage.Redis.ConsumeRankQuota(ctx, userID, cfg.Engine.DailyRankQuota)
		if err != nil {
			// 配额服务不可用时放行，不阻塞排序主流程
			pp.logDebug("消耗排序配额失败: %v, 放行本次调用", err)
		} else if !allowed {
			return nil, "", &ProfileProcessError{ProfileID: profileID, Op: "quota", BaseErr: ErrQuotaExceeded}
		}
	}

	record, profile, err := pp.LoadProfile(ctx, profileID)
	if err != nil {
		return nil, "", err
	}
	if record.ProcessingStatus != constants.StatusExtracted {
		return nil, "", &ProfileProcessError{
			ProfileID: profileID,
			Op:        "rank",
			BaseErr:   ErrProfileNotReady,
			Detail:    fmt.Sprintf("当前状态: %s", record.ProcessingStatus),
		}
	}

	payload, err := json.Marshal(candidates)
	if err != nil {
		return nil, "", fmt.Errorf("序列化候选列表失败: %w", err)
	}
	return profile, contentMD5(payload), nil
}

// cachedResult 查询排序结果缓存，未命中或Redis不可用返回空串
func (pp *ProfileProcessor) cachedResult(ctx context.Context, kind, profileID, candidatesMD5 string) string {
	if pp.Storage.Redis == nil {
		return ""
	}
	cached, err := pp.Storage.Redis.GetCachedRankResult(ctx, kind, profileID, candidatesMD5)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			pp.logDebug("查询排序缓存失败: %v", err)
		}
		return ""
	}
	return cached
}

// cacheAndRecord 写排序缓存并落库本次排序记录，两者失败都只降级为日志
func (pp *ProfileProcessor) cacheAndRecord(ctx context.Context, kind, profileID, candidatesMD5 string, matches interface{}, topScore float64, candidateCount int, cfg *config.Config) {
	payload, err := json.Marshal(matches)
	if err != nil {
		pp.logDebug("序列化排序结果失败: %v", err)
		return
	}

	if pp.Storage.Redis != nil {
		if err := pp.Storage.Redis.CacheRankResult(ctx, kind, profileID, candidatesMD5, string(payload), cfg.Engine.RankCacheTTL()); err != nil {
			pp.logDebug("写排序缓存失败: %v", err)
		}
	}

	run := &models.MatchRun{
		RunID:          uuid.New().String(),
		ProfileID:      profileID,
		CandidateKind:  kind,
		CandidateCount: candidateCount,
		TopScore:       topScore,
		ResultsJSON:    datatypes.JSON(payload),
	}
	if err := pp.Storage.MySQL.CreateMatchRun(ctx, run); err != nil {
		pp.logDebug("落库排序记录失败: %v", err)
	}
}

func topCompanyScore(matches []types.CompanyMatch) float64 {
	if len(matches) == 0 {
		return 0
	}
	return matches[0].MatchScore
}

func topPersonScore(matches []types.PersonMatch) float64 {
	if len(matches) == 0 {
		return 0
	}
	return matches[0].MatchScore
}

// logDebug 调试模式下输出日志
func (pp *ProfileProcessor) logDebug(format string, args ...interface{}) {
	if pp.Config.Debug && pp.Config.Logger != nil {
		pp.Config.Logger.Printf(format, args...)
	}
}

// contentMD5 计算内容MD5的十六进制串
func contentMD5(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// profileFromModel 将数据库记录还原为结构化画像
func profileFromModel(record *models.Profile) *types.StructuredProfile {
	profile := &types.StructuredProfile{
		Contact: types.ContactInfo{
			Name:       record.Name,
			Email:      record.Email,
			Phone:      record.Phone,
			ProfileURL: record.ProfileURL,
			Location:   record.Location,
		},
		Summary:         record.Summary,
		CareerGoal:      record.CareerGoal,
		ConfidenceScore: record.ConfidenceScore,
		Skills:          []types.Skill{},
		Experience:      []types.ExperienceEntry{},
		Education:       []types.EducationEntry{},
		Industries:      []string{},
	}

	if len(record.SkillsJSON) > 0 {
		_ = json.Unmarshal(record.SkillsJSON, &profile.Skills)
	}
	if len(record.ExperienceJSON) > 0 {
		_ = json.Unmarshal(record.ExperienceJSON, &profile.Experience)
	}
	if len(record.EducationJSON) > 0 {
		_ = json.Unmarshal(record.EducationJSON, &profile.Education)
	}
	if len(record.IndustriesJSON) > 0 {
		_ = json.Unmarshal(record.IndustriesJSON, &profile.Industries)
	}
	return profile
}

// fillModelFromProfile 将结构化画像写入数据库记录的各列
func fillModelFromProfile(record *models.Profile, profile *types.StructuredProfile) error {
	record.Name = profile.Contact.Name
	record.Email = profile.Contact.Email
	record.Phone = profile.Contact.Phone
	record.ProfileURL = profile.Contact.ProfileURL
	record.Location = profile.Contact.Location
	record.Summary = profile.Summary
	record.CareerGoal = profile.CareerGoal
	record.ConfidenceScore = profile.ConfidenceScore

	skillsJSON, err := json.Marshal(profile.Skills)
	if err != nil {
		return err
	}
	experienceJSON, err := json.Marshal(profile.Experience)
	if err != nil {
		return err
	}
	educationJSON, err := json.Marshal(profile.Education)
	if err != nil {
		return err
	}
	industriesJSON, err := json.Marshal(profile.Industries)
	if err != nil {
		return err
	}

	record.SkillsJSON = datatypes.JSON(skillsJSON)
	record.ExperienceJSON = datatypes.JSON(experienceJSON)
	record.EducationJSON = datatypes.JSON(educationJSON)
	record.IndustriesJSON = datatypes.JSON(industriesJSON)
	return nil
}
