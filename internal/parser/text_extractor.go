package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
)

// DocumentFormat 文档格式标签
type DocumentFormat string

const (
	// FormatPDF 分页二进制文档（逐页解码）
	FormatPDF DocumentFormat = "pdf"
	// FormatDOCX 流式二进制文档（直接解码正文内容流）
	FormatDOCX DocumentFormat = "docx"
	// FormatPlainText 纯文本文档（原样透传）
	FormatPlainText DocumentFormat = "txt"
)

// ErrUnsupportedFormat 格式标签不在受支持的枚举集合内
var ErrUnsupportedFormat = errors.New("不支持的文档格式")

// FormatDecodeError 文档无法按声明的格式解码，包装底层原因
type FormatDecodeError struct {
	Format DocumentFormat
	Cause  error
}

func (e *FormatDecodeError) Error() string {
	return fmt.Sprintf("解码%s文档失败: %v", e.Format, e.Cause)
}

func (e *FormatDecodeError) Unwrap() error {
	return e.Cause
}

// NewFormatDecodeError 构造解码错误
func NewFormatDecodeError(format DocumentFormat, cause error) error {
	return &FormatDecodeError{Format: format, Cause: cause}
}

// TextExtractor 单一格式的文本提取器接口
// 每种文档格式一个实现，新增格式只需注册新的实现
type TextExtractor interface {
	// Format 返回该提取器负责的格式标签
	Format() DocumentFormat

	// ExtractText 将文档载荷解码为单个纯文本串
	// 解码失败必须返回错误，不允许以空字符串静默掩盖失败
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// ExtractorRegistry 按格式标签分发的提取器注册表
type ExtractorRegistry struct {
	extractors map[DocumentFormat]TextExtractor
	logger     *log.Logger
}

// RegistryOption 注册表的配置选项
type RegistryOption func(*ExtractorRegistry)

// WithRegistryLogger 配置自定义日志记录器
func WithRegistryLogger(logger *log.Logger) RegistryOption {
	return func(r *ExtractorRegistry) {
		r.logger = logger
	}
}

// WithExtractor 注册（或覆盖）某一格式的提取器
func WithExtractor(e TextExtractor) RegistryOption {
	return func(r *ExtractorRegistry) {
		r.extractors[e.Format()] = e
	}
}

// NewExtractorRegistry 创建注册表并装配内置的三种格式提取器
func NewExtractorRegistry(options ...RegistryOption) *ExtractorRegistry {
	r := &ExtractorRegistry{
		extractors: make(map[DocumentFormat]TextExtractor),
		logger:     log.New(io.Discard, "", 0),
	}

	// 内置提取器
	r.extractors[FormatPDF] = NewPDFTextExtractor()
	r.extractors[FormatDOCX] = NewDOCXTextExtractor()
	r.extractors[FormatPlainText] = NewPlainTextExtractor()

	for _, option := range options {
		option(r)
	}
	return r
}

// ExtractText 按格式标签分发到对应的提取器
// 格式不在枚举集合内时返回 ErrUnsupportedFormat
func (r *ExtractorRegistry) ExtractText(ctx context.Context, data []byte, format DocumentFormat) (string, error) {
	extractor, ok := r.extractors[format]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	text, err := extractor.ExtractText(ctx, data)
	if err != nil {
		r.logger.Printf("提取%s文档文本失败: %v", format, err)
		return "", err
	}

	r.logger.Printf("提取%s文档文本完成: %d 个字符", format, len(text))
	return text, nil
}

// DetectFormat 根据文件名扩展名推断格式标签
func DetectFormat(filename string) (DocumentFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt":
		return FormatPlainText, nil
	default:
		return "", fmt.Errorf("%w: 无法识别的扩展名 %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// PlainTextExtractor 纯文本透传提取器
type PlainTextExtractor struct{}

// NewPlainTextExtractor 创建纯文本提取器
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// Format 实现TextExtractor接口
func (e *PlainTextExtractor) Format() DocumentFormat {
	return FormatPlainText
}

// ExtractText 载荷本身已是文本，原样返回
func (e *PlainTextExtractor) ExtractText(_ context.Context, data []byte) (string, error) {
	return string(data), nil
}
