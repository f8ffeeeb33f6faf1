package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
)

// DOCX本质上是zip容器，正文内容流位于word/document.xml
const docxDocumentEntry = "word/document.xml"

var (
	docxParagraphEndRegex = regexp.MustCompile(`</w:p>`)
	docxTabRegex          = regexp.MustCompile(`<w:tab[^>]*/?>`)
	docxTagRegex          = regexp.MustCompile(`<[^>]+>`)
)

// DOCXTextExtractor 流式二进制文档提取器（Office Open XML）
type DOCXTextExtractor struct{}

// NewDOCXTextExtractor 创建DOCX文本提取器
func NewDOCXTextExtractor() *DOCXTextExtractor {
	return &DOCXTextExtractor{}
}

// Format 实现TextExtractor接口
func (e *DOCXTextExtractor) Format() DocumentFormat {
	return FormatDOCX
}

// ExtractText 解码word/document.xml正文内容流为单个字符串
// 段落结束标记转换为换行，其余XML标签剥除
func (e *DOCXTextExtractor) ExtractText(_ context.Context, data []byte) (string, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", NewFormatDecodeError(FormatDOCX, fmt.Errorf("打开DOCX容器失败: %w", err))
	}

	for _, file := range zipReader.File {
		if file.Name != docxDocumentEntry {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", NewFormatDecodeError(FormatDOCX, fmt.Errorf("打开%s失败: %w", docxDocumentEntry, err))
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", NewFormatDecodeError(FormatDOCX, fmt.Errorf("读取%s失败: %w", docxDocumentEntry, err))
		}

		text := docxParagraphEndRegex.ReplaceAllString(string(content), "\n")
		text = docxTabRegex.ReplaceAllString(text, "\t")
		text = docxTagRegex.ReplaceAllString(text, "")
		text = html.UnescapeString(text)
		return strings.TrimSpace(text), nil
	}

	return "", NewFormatDecodeError(FormatDOCX, fmt.Errorf("容器中缺少%s", docxDocumentEntry))
}
