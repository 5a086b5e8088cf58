package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
)

// EinoTextExtractor 使用 Eino PDF Parser 的本地降级提取器
// 不依赖Tika服务, 但只支持PDF
type EinoTextExtractor struct {
	parser *pdf.PDFParser
	logger *log.Logger
}

// EinoOption 配置选项
type EinoOption func(*EinoTextExtractor)

// WithEinoLogger 配置自定义日志记录器
func WithEinoLogger(logger *log.Logger) EinoOption {
	return func(e *EinoTextExtractor) {
		e.logger = logger
	}
}

var _ TextExtractor = (*EinoTextExtractor)(nil)

// NewEinoTextExtractor 初始化本地PDF文本提取器
// ToPages=false, 整份文档作为单个连续文本返回
func NewEinoTextExtractor(ctx context.Context, options ...EinoOption) (*EinoTextExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false,
	})
	if err != nil {
		return nil, fmt.Errorf("创建Eino PDF解析器失败: %w", err)
	}

	extractor := &EinoTextExtractor{
		parser: p,
		logger: log.New(os.Stderr, "[EinoExtract] ", log.LstdFlags),
	}

	for _, option := range options {
		option(extractor)
	}

	return extractor, nil
}

// ExtractFromFile 从文件提取文本内容
func (e *EinoTextExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error) {
	startTime := time.Now()
	e.logger.Printf("开始处理简历文件: %s", filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return "", nil, fmt.Errorf("打开简历文件 %s 失败: %w", filePath, err)
	}
	defer file.Close()

	text, metadata, err := e.ExtractTextFromReader(ctx, file, filePath, filepath.Ext(filePath))

	duration := time.Since(startTime)
	if err != nil {
		e.logger.Printf("简历文件处理失败: %s (用时 %.2f秒)", err, duration.Seconds())
		return "", nil, err
	}

	e.logger.Printf("简历文件处理完成: 提取了 %d 个字符 (用时 %.2f秒)", len(text), duration.Seconds())
	return text, metadata, nil
}

// ExtractTextFromReader 从io.Reader提取文本内容
func (e *EinoTextExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string, ext string) (string, map[string]interface{}, error) {
	if _, err := CheckSupportedFormat(ext); err != nil {
		return "", nil, err
	}
	// 本地解析器只认PDF, DOCX需要Tika通道
	if strings.ToLower(ext) != ".pdf" {
		return "", nil, fmt.Errorf("%w: 本地解析器不支持 %s", ErrUnsupportedFormat, ext)
	}

	extraMeta := map[string]interface{}{
		"source_file_path": uri,
		"source_format":    ".pdf",
		"extraction_time":  time.Now().Format(time.RFC3339),
	}

	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	docs, err := e.parser.Parse(ctx, reader,
		einoParser.WithURI(uri),
		einoParser.WithExtraMeta(extraMeta),
	)

	duration := time.Since(startTime)
	if err != nil {
		return "", extraMeta, fmt.Errorf("eino解析PDF失败 (URI %s): %w", uri, err)
	}
	if len(docs) == 0 {
		return "", extraMeta, fmt.Errorf("eino解析器未返回文档 (URI %s)", uri)
	}

	var fullContent strings.Builder
	for i, doc := range docs {
		fullContent.WriteString(doc.Content)
		if i < len(docs)-1 {
			fullContent.WriteString("\n\n")
		}
	}

	finalMetadata := make(map[string]interface{})
	if docs[0].MetaData != nil {
		for k, v := range docs[0].MetaData {
			finalMetadata[k] = v
		}
	}
	for k, v := range extraMeta {
		finalMetadata[k] = v
	}
	finalMetadata["processing_duration_ms"] = duration.Milliseconds()
	finalMetadata["document_count"] = len(docs)
	finalMetadata["text_length"] = fullContent.Len()

	e.logger.Printf("PDF提取完成: 提取了 %d 个字符 (用时 %.2f秒)", fullContent.Len(), duration.Seconds())
	return fullContent.String(), finalMetadata, nil
}

// ExtractTextFromBytes 从字节数组提取文本内容
func (e *EinoTextExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string, ext string) (string, map[string]interface{}, error) {
	return e.ExtractTextFromReader(ctx, bytes.NewReader(data), uri, ext)
}
