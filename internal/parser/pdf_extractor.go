package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFTextExtractor 分页PDF文本提取器
// 逐页解码并按页序拼接，任何一页解码失败都会中止整个提取，不返回部分文本
type PDFTextExtractor struct{}

// NewPDFTextExtractor 创建PDF文本提取器
func NewPDFTextExtractor() *PDFTextExtractor {
	return &PDFTextExtractor{}
}

// Format 实现TextExtractor接口
func (e *PDFTextExtractor) Format() DocumentFormat {
	return FormatPDF
}

// ExtractText 从PDF字节载荷中提取全文，页与页之间以换行符分隔
func (e *PDFTextExtractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", NewFormatDecodeError(FormatPDF, fmt.Errorf("打开PDF失败: %w", err))
	}

	// pdf库在畸形文件上可能panic，统一转换为解码错误
	pageCount, err := safePageCount(reader)
	if err != nil {
		return "", NewFormatDecodeError(FormatPDF, err)
	}
	if pageCount <= 0 {
		return "", NewFormatDecodeError(FormatPDF, fmt.Errorf("PDF不包含任何页面"))
	}

	var builder strings.Builder
	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return "", NewFormatDecodeError(FormatPDF, err)
		}

		pageText, err := safePageText(reader, i)
		if err != nil {
			// 单页失败即整体失败
			return "", NewFormatDecodeError(FormatPDF, fmt.Errorf("解码第%d页失败: %w", i, err))
		}

		if i > 1 {
			builder.WriteString("\n")
		}
		builder.WriteString(pageText)
	}

	return builder.String(), nil
}

func safePageCount(reader *pdf.Reader) (count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("读取PDF页数时发生panic: %v", r)
		}
	}()
	return reader.NumPage(), nil
}

func safePageText(reader *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("解码页面内容时发生panic: %v", r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", fmt.Errorf("页面对象为空")
	}

	return page.GetPlainText(nil)
}
