package parser

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-fit-go/internal/types"
)

// createMockNlpServer 模拟spaCy风格的NLP边车服务
func createMockNlpServer(similarity float64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/analyze":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(types.NlpAnalysis{
				Entities: []types.Entity{
					{Label: types.EntityPerson, Text: "Jane Doe", Start: 0, End: 8},
					{Label: types.EntityOrg, Text: "Acme University", Start: 20, End: 35},
				},
				EmailLikeTokens: []string{"jane@example.com"},
			})
		case "/similarity":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]float64{"similarity": similarity})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestNewHTTPNlpEngine(t *testing.T) {
	engine := NewHTTPNlpEngine("http://localhost:5000")
	require.NotNil(t, engine, "非空URL应创建引擎实例")

	custom := NewHTTPNlpEngine("http://localhost:5000", WithNlpTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, custom.client.Timeout, "应使用自定义超时")

	// 空URL表示能力缺失
	assert.Nil(t, NewHTTPNlpEngine(""), "空URL应返回nil表示能力缺失")
}

func TestHTTPNlpEngineAnalyze(t *testing.T) {
	server := createMockNlpServer(0.5)
	defer server.Close()

	engine := NewHTTPNlpEngine(server.URL)
	analysis, err := engine.Analyze(context.Background(), "Jane Doe studied at Acme University")
	require.NoError(t, err, "分析请求不应失败")
	require.NotNil(t, analysis)

	assert.Equal(t, "Jane Doe", analysis.FirstEntity(types.EntityPerson))
	assert.Equal(t, "Acme University", analysis.FirstEntity(types.EntityOrg))
	assert.Equal(t, "", analysis.FirstEntity(types.EntityGPE), "不存在的标签应返回空串")
	require.Len(t, analysis.EmailLikeTokens, 1)
	assert.Equal(t, "jane@example.com", analysis.EmailLikeTokens[0])
}

func TestHTTPNlpEngineSimilarity(t *testing.T) {
	server := createMockNlpServer(0.87)
	defer server.Close()

	engine := NewHTTPNlpEngine(server.URL)
	sim, err := engine.Similarity(context.Background(), "golang", "go programming")
	require.NoError(t, err)
	assert.InDelta(t, 0.87, sim, 1e-9)
}

func TestHTTPNlpEngineSimilarityClamped(t *testing.T) {
	// 边车返回超出 [0,1] 的值时应裁剪
	over := createMockNlpServer(1.7)
	defer over.Close()

	engine := NewHTTPNlpEngine(over.URL)
	sim, err := engine.Similarity(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 1.0, sim, "大于1的相似度应裁剪为1")

	under := createMockNlpServer(-0.3)
	defer under.Close()

	engine = NewHTTPNlpEngine(under.URL)
	sim, err = engine.Similarity(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim, "小于0的相似度应裁剪为0")
}

func TestHTTPNlpEngineServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	engine := NewHTTPNlpEngine(server.URL)
	_, err := engine.Analyze(context.Background(), "any text")
	assert.Error(t, err, "非200状态码应返回错误")

	_, err = engine.Similarity(context.Background(), "a", "b")
	assert.Error(t, err)
}
