package parser

import (
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockExtractedText = "这是从简历文件中提取的测试文本内容。"

// createMockTikaServer 模拟Tika服务器, /tika 返回纯文本, /meta 返回元数据JSON
func createMockTikaServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tika":
			if r.Header.Get("Accept") == "text/plain" {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(mockExtractedText))
			} else {
				w.WriteHeader(http.StatusNotAcceptable)
			}
		case "/meta":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"Content-Type":"application/pdf","xmpTPg:NPages":"2","dc:creator":"someone"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestNewTikaTextExtractor(t *testing.T) {
	extractorInterface := NewTikaTextExtractor("http://localhost:9998")
	extractor, ok := extractorInterface.(*TikaTextExtractor)
	require.True(t, ok, "应该能够将接口转换为TikaTextExtractor类型")

	assert.Equal(t, "http://localhost:9998", extractor.ServerURL, "ServerURL应该被正确设置")
	require.NotNil(t, extractor.Client, "HTTP客户端不应为nil")
	assert.Equal(t, 60*time.Second, extractor.Client.Timeout, "HTTP客户端超时应为60秒")
	assert.False(t, extractor.extractFullMetadata, "默认应该不提取完整元数据")
	assert.True(t, extractor.extractMinimalMetadata, "默认应该提取精简元数据")

	customLogger := log.New(os.Stdout, "[测试] ", log.LstdFlags)
	customInterface := NewTikaTextExtractor(
		"http://localhost:9998",
		WithFullMetadata(true),
		WithMinimalMetadata(false),
		WithTikaLogger(customLogger),
		WithTimeout(30*time.Second),
	)
	custom, ok := customInterface.(*TikaTextExtractor)
	require.True(t, ok)

	assert.True(t, custom.extractFullMetadata, "应该设置为提取完整元数据")
	assert.False(t, custom.extractMinimalMetadata, "应该设置为不提取精简元数据")
	assert.Equal(t, customLogger, custom.logger, "应该使用提供的自定义logger")
	assert.Equal(t, 30*time.Second, custom.Client.Timeout, "应该使用自定义超时")
}

func TestCheckSupportedFormat(t *testing.T) {
	contentType, err := CheckSupportedFormat(".pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)

	contentType, err = CheckSupportedFormat(".DOCX")
	require.NoError(t, err, "扩展名判定应大小写不敏感")
	assert.Contains(t, contentType, "wordprocessingml")

	_, err = CheckSupportedFormat(".txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat, "不支持的格式应返回 ErrUnsupportedFormat")
}

func TestTikaExtractTextFromBytes(t *testing.T) {
	server := createMockTikaServer()
	defer server.Close()

	extractor := NewTikaTextExtractor(server.URL, WithMinimalMetadata(true))
	text, metadata, err := extractor.ExtractTextFromBytes(context.Background(), []byte("%PDF-1.4 fake"), "resume.pdf", ".pdf")
	require.NoError(t, err, "提取不应失败")
	assert.Equal(t, mockExtractedText, text, "应返回Tika服务器的纯文本响应")

	require.NotNil(t, metadata)
	assert.Equal(t, ".pdf", metadata["source_format"])
	assert.Equal(t, "resume.pdf", metadata["source_file_path"])
	assert.Equal(t, len(mockExtractedText), metadata["text_length"])
	// 精简模式只保留白名单内的元数据字段
	assert.Equal(t, "2", metadata["xmpTPg:NPages"], "白名单字段应被保留")
	assert.NotContains(t, metadata, "dc:creator", "白名单外的字段应被丢弃")
}

func TestTikaExtractTextFromBytesFullMetadata(t *testing.T) {
	server := createMockTikaServer()
	defer server.Close()

	extractor := NewTikaTextExtractor(server.URL, WithFullMetadata(true), WithMinimalMetadata(false))
	_, metadata, err := extractor.ExtractTextFromBytes(context.Background(), []byte("fake"), "resume.pdf", ".pdf")
	require.NoError(t, err)
	assert.Equal(t, "someone", metadata["dc:creator"], "完整模式应保留全部元数据字段")
}

func TestTikaExtractTextFromReader(t *testing.T) {
	server := createMockTikaServer()
	defer server.Close()

	extractor := NewTikaTextExtractor(server.URL)
	text, _, err := extractor.ExtractTextFromReader(context.Background(), strings.NewReader("fake bytes"), "resume.docx", ".docx")
	require.NoError(t, err)
	assert.Equal(t, mockExtractedText, text)
}

func TestTikaExtractUnsupportedFormat(t *testing.T) {
	extractor := NewTikaTextExtractor("http://localhost:9998")
	_, _, err := extractor.ExtractTextFromBytes(context.Background(), []byte("plain"), "notes.txt", ".txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestTikaExtractServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	extractor := NewTikaTextExtractor(server.URL)
	_, _, err := extractor.ExtractTextFromBytes(context.Background(), []byte("broken"), "resume.pdf", ".pdf")
	assert.Error(t, err, "Tika返回错误状态码时应提取失败")
}
