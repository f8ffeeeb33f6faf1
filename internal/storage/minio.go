package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"

	"career-match-go/internal/config"
)

// ObjectStorage 对象存储接口
type ObjectStorage interface {
	// UploadOriginalDocument 上传原始文档，返回对象路径和内容MD5
	UploadOriginalDocument(ctx context.Context, profileID, fileExt string, reader io.Reader, fileSize int64) (string, string, error)

	// UploadParsedText 上传提取出的纯文本
	UploadParsedText(ctx context.Context, profileID string, text string) (string, error)

	// GetOriginalDocument 下载原始文档
	GetOriginalDocument(ctx context.Context, objectName string) ([]byte, error)

	// GetParsedText 下载提取文本
	GetParsedText(ctx context.Context, objectName string) (string, error)

	// GetPresignedURL 获取预签名URL
	GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// 确保MinIO实现了ObjectStorage接口
var _ ObjectStorage = (*MinIO)(nil)

// MinIO 提供对象存储功能，原始文档与提取文本分桶存放
type MinIO struct {
	client         *minio.Client
	cfg            *config.MinIOConfig
	originalBucket string
	parsedBucket   string
	logger         *log.Logger
}

// NewMinIO 创建MinIO客户端
func NewMinIO(cfg *config.MinIOConfig, logger *log.Logger) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIO{
		client:         client,
		cfg:            cfg,
		originalBucket: cfg.OriginalsBucket,
		parsedBucket:   cfg.ParsedBucket,
		logger:         logger,
	}

	if err := m.ensureBucketExists(m.originalBucket, cfg.Location, cfg.OriginalExpireDays); err != nil {
		return nil, fmt.Errorf("确保原始文档存储桶 %s 存在失败: %w", m.originalBucket, err)
	}
	if err := m.ensureBucketExists(m.parsedBucket, cfg.Location, cfg.ParsedExpireDays); err != nil {
		return nil, fmt.Errorf("确保提取文本存储桶 %s 存在失败: %w", m.parsedBucket, err)
	}

	m.logger.Printf("[MinIO] 客户端初始化成功, originalBucket=%s parsedBucket=%s", m.originalBucket, m.parsedBucket)
	return m, nil
}

// ensureBucketExists 确保存储桶存在，并按配置设置对象过期策略
func (m *MinIO) ensureBucketExists(bucketName, location string, expireDays int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶是否存在失败: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
			return fmt.Errorf("创建存储桶失败: %w", err)
		}
		m.logger.Printf("[MinIO] 创建存储桶: %s", bucketName)
	}

	if expireDays > 0 {
		lcCfg := lifecycle.NewConfiguration()
		lcCfg.Rules = []lifecycle.Rule{
			{
				ID:     "expire-objects",
				Status: "Enabled",
				Expiration: lifecycle.Expiration{
					Days: lifecycle.ExpirationDays(expireDays),
				},
			},
		}
		if err := m.client.SetBucketLifecycle(ctx, bucketName, lcCfg); err != nil {
			// 生命周期设置失败不阻塞启动，记录后继续
			m.logger.Printf("[MinIO] 设置存储桶 %s 生命周期失败: %v", bucketName, err)
		}
	}

	return nil
}

// UploadOriginalDocument 流式上传原始文档并同时计算MD5
func (m *MinIO) UploadOriginalDocument(ctx context.Context, profileID, fileExt string, reader io.Reader, fileSize int64) (string, string, error) {
	objectName := fmt.Sprintf("originals/%s%s", profileID, fileExt)

	hasher := md5.New()
	teeReader := io.TeeReader(reader, hasher)

	_, err := m.client.PutObject(ctx, m.originalBucket, objectName, teeReader, fileSize, minio.PutObjectOptions{
		ContentType: contentTypeForExt(fileExt),
	})
	if err != nil {
		return "", "", fmt.Errorf("上传原始文档失败: %w", err)
	}

	md5sum := hex.EncodeToString(hasher.Sum(nil))
	m.logger.Printf("[MinIO] 原始文档上传完成: %s (MD5: %s)", objectName, md5sum)
	return objectName, md5sum, nil
}

// UploadParsedText 上传提取出的纯文本
func (m *MinIO) UploadParsedText(ctx context.Context, profileID string, text string) (string, error) {
	objectName := fmt.Sprintf("parsed/%s.txt", profileID)

	data := []byte(text)
	_, err := m.client.PutObject(ctx, m.parsedBucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return "", fmt.Errorf("上传提取文本失败: %w", err)
	}

	return objectName, nil
}

// GetOriginalDocument 下载原始文档
func (m *MinIO) GetOriginalDocument(ctx context.Context, objectName string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.originalBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取原始文档失败: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取原始文档失败: %w", err)
	}
	return data, nil
}

// GetParsedText 下载提取文本
func (m *MinIO) GetParsedText(ctx context.Context, objectName string) (string, error) {
	obj, err := m.client.GetObject(ctx, m.parsedBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("获取提取文本失败: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", fmt.Errorf("读取提取文本失败: %w", err)
	}
	return string(data), nil
}

// GetPresignedURL 获取原始文档的预签名下载URL
func (m *MinIO) GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.originalBucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("生成预签名URL失败: %w", err)
	}
	return u.String(), nil
}

// contentTypeForExt 按扩展名返回Content-Type
func contentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
