package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"resume-fit-go/internal/types"
)

// NlpEngine 命名实体与相似度能力的抽象
// 部署中该能力可能缺失 (边车未配置), 调用方需做好降级
type NlpEngine interface {
	// Analyze 对文本做一次实体识别和邮箱token标注
	Analyze(ctx context.Context, text string) (*types.NlpAnalysis, error)
	// Similarity 返回两个短语的语义相似度 [0,1]
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// HTTPNlpEngine 通过HTTP调用spaCy风格的NLP边车服务
type HTTPNlpEngine struct {
	serverURL string
	client    *http.Client
	logger    *log.Logger
}

var _ NlpEngine = (*HTTPNlpEngine)(nil)

// NlpOption HTTPNlpEngine 配置选项
type NlpOption func(*HTTPNlpEngine)

// WithNlpTimeout 设置请求超时
func WithNlpTimeout(timeout time.Duration) NlpOption {
	return func(e *HTTPNlpEngine) {
		e.client.Timeout = timeout
	}
}

// WithNlpLogger 设置日志记录器
func WithNlpLogger(logger *log.Logger) NlpOption {
	return func(e *HTTPNlpEngine) {
		e.logger = logger
	}
}

// NewHTTPNlpEngine 创建NLP边车客户端
// serverURL 为空时返回nil, 调用方以nil表示能力缺失
func NewHTTPNlpEngine(serverURL string, opts ...NlpOption) *HTTPNlpEngine {
	if serverURL == "" {
		return nil
	}

	engine := &HTTPNlpEngine{
		serverURL: serverURL,
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    log.Default(),
	}

	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type similarityRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

type similarityResponse struct {
	Similarity float64 `json:"similarity"`
}

// Analyze 调用 /analyze 端点
func (e *HTTPNlpEngine) Analyze(ctx context.Context, text string) (*types.NlpAnalysis, error) {
	var result types.NlpAnalysis
	if err := e.postJSON(ctx, "/analyze", analyzeRequest{Text: text}, &result); err != nil {
		return nil, fmt.Errorf("NLP分析请求失败: %w", err)
	}
	return &result, nil
}

// Similarity 调用 /similarity 端点
func (e *HTTPNlpEngine) Similarity(ctx context.Context, a, b string) (float64, error) {
	var result similarityResponse
	if err := e.postJSON(ctx, "/similarity", similarityRequest{A: a, B: b}, &result); err != nil {
		return 0, fmt.Errorf("NLP相似度请求失败: %w", err)
	}
	if result.Similarity < 0 {
		return 0, nil
	}
	if result.Similarity > 1 {
		return 1, nil
	}
	return result.Similarity, nil
}

func (e *HTTPNlpEngine) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化请求体失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.serverURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("请求NLP服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		e.logger.Printf("NLP服务返回非200状态码: %d, path: %s", resp.StatusCode, path)
		return fmt.Errorf("NLP服务返回状态码 %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("解析NLP响应失败: %w", err)
	}
	return nil
}
