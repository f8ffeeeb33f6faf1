package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDOCX 在内存中构造一个最小的DOCX容器
func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	entry, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = entry.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return buf.Bytes()
}

// TestDetectFormat 验证按扩展名推断文档格式
func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     DocumentFormat
	}{
		{"resume.pdf", FormatPDF},
		{"Resume.PDF", FormatPDF},
		{"cv.docx", FormatDOCX},
		{"notes.txt", FormatPlainText},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			format, err := DetectFormat(tt.filename)
			require.NoError(t, err)
			assert.Equal(t, tt.want, format)
		})
	}
}

// TestDetectFormatUnsupported 验证无法识别的扩展名返回ErrUnsupportedFormat
func TestDetectFormatUnsupported(t *testing.T) {
	for _, filename := range []string{"resume.rtf", "resume", "archive.zip"} {
		_, err := DetectFormat(filename)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, "文件名: %s", filename)
	}
}

// TestRegistryPlainTextPassthrough 验证纯文本格式原样透传
func TestRegistryPlainTextPassthrough(t *testing.T) {
	r := NewExtractorRegistry()

	text, err := r.ExtractText(context.Background(), []byte("hello resume"), FormatPlainText)

	require.NoError(t, err)
	assert.Equal(t, "hello resume", text)
}

// TestRegistryUnknownFormat 验证未注册的格式标签被拒绝
func TestRegistryUnknownFormat(t *testing.T) {
	r := NewExtractorRegistry()

	_, err := r.ExtractText(context.Background(), []byte("data"), DocumentFormat("rtf"))

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

// TestRegistryCustomExtractorOverride 验证选项可覆盖内置提取器
func TestRegistryCustomExtractorOverride(t *testing.T) {
	r := NewExtractorRegistry(WithExtractor(&staticExtractor{format: FormatPlainText, text: "overridden"}))

	text, err := r.ExtractText(context.Background(), []byte("ignored"), FormatPlainText)

	require.NoError(t, err)
	assert.Equal(t, "overridden", text)
}

// staticExtractor 测试用的固定输出提取器
type staticExtractor struct {
	format DocumentFormat
	text   string
}

func (s *staticExtractor) Format() DocumentFormat {
	return s.format
}

func (s *staticExtractor) ExtractText(_ context.Context, _ []byte) (string, error) {
	return s.text, nil
}

// TestDOCXExtraction 验证段落转换行、标签剥除和实体反转义
func TestDOCXExtraction(t *testing.T) {
	docXML := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Engineering &amp; Design</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	data := buildDOCX(t, docXML)

	e := NewDOCXTextExtractor()
	text, err := e.ExtractText(context.Background(), data)

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nEngineering & Design", text)
}

// TestDOCXTabConversion 验证制表符标记转换为\t
func TestDOCXTabConversion(t *testing.T) {
	docXML := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Name</w:t><w:tab/><w:t>Value</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	data := buildDOCX(t, docXML)

	e := NewDOCXTextExtractor()
	text, err := e.ExtractText(context.Background(), data)

	require.NoError(t, err)
	assert.Equal(t, "Name\tValue", text)
}

// TestDOCXNotAZip 验证非zip载荷返回解码错误
func TestDOCXNotAZip(t *testing.T) {
	e := NewDOCXTextExtractor()

	_, err := e.ExtractText(context.Background(), []byte("not a zip archive"))

	require.Error(t, err)
	var decodeErr *FormatDecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, FormatDOCX, decodeErr.Format)
}

// TestDOCXMissingDocumentEntry 验证缺少word/document.xml的容器被拒绝
func TestDOCXMissingDocumentEntry(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	entry, err := w.Create("other/file.xml")
	require.NoError(t, err)
	_, err = entry.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	e := NewDOCXTextExtractor()
	_, err = e.ExtractText(context.Background(), buf.Bytes())

	var decodeErr *FormatDecodeError
	require.ErrorAs(t, err, &decodeErr)
}

// TestPDFInvalidBytes 验证非法PDF载荷返回解码错误而不是空文本
func TestPDFInvalidBytes(t *testing.T) {
	e := NewPDFTextExtractor()

	_, err := e.ExtractText(context.Background(), []byte("definitely not a pdf"))

	require.Error(t, err)
	var decodeErr *FormatDecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, FormatPDF, decodeErr.Format)
}
