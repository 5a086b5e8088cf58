package scorer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSimilarity 按预设的技能对返回相似度, 未预设的对返回0
type stubSimilarity struct {
	pairs map[[2]string]float64
	err   error
}

func (s *stubSimilarity) Similarity(_ context.Context, a, b string) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.pairs[[2]string{a, b}], nil
}

func TestSkillMatcherExactMatch(t *testing.T) {
	m := NewSkillMatcher(nil)
	assert.Equal(t, StrategySimpleSet, m.Strategy(), "无NLP时应降级为集合运算策略")

	jobSkills := []string{"python", "javascript", "react", "aws", "docker", "kubernetes"}
	result := m.Match(context.Background(), []string{"Python", "React", "AWS"}, jobSkills)

	require.NotNil(t, result)
	assert.Equal(t, StrategySimpleSet, result.Strategy)
	assert.InDelta(t, 0.65, result.Score, 1e-9, "3/6命中且无多余技能时综合分应为0.65")
	assert.ElementsMatch(t, []string{"python", "react", "aws"}, result.Matching, "命中列表应为小写归一形式")
	assert.ElementsMatch(t, []string{"javascript", "docker", "kubernetes"}, result.Missing)
	assert.Empty(t, result.Extra)

	// matching 和 missing 合起来覆盖全部岗位技能且不相交
	union := append(append([]string{}, result.Matching...), result.Missing...)
	assert.ElementsMatch(t, jobSkills, union, "matching 与 missing 的并集应覆盖全部岗位技能")
}

func TestSkillMatcherEmptyJobSkills(t *testing.T) {
	m := NewSkillMatcher(nil)

	result := m.Match(context.Background(), []string{"Go", "SQL"}, nil)
	assert.InDelta(t, emptyJobSkillsBaseline, result.Score, 1e-9, "岗位未给出技能要求时应返回基线分")
	assert.Empty(t, result.Matching)
	assert.Empty(t, result.Missing)
	assert.ElementsMatch(t, []string{"go", "sql"}, result.Extra, "全部简历技能应计为多余技能")
}

func TestSkillMatcherEmptyResumeSkills(t *testing.T) {
	m := NewSkillMatcher(nil)

	result := m.Match(context.Background(), nil, []string{"go", "sql"})
	assert.Equal(t, 0.0, result.Score, "简历无技能时应为0分")
	assert.ElementsMatch(t, []string{"go", "sql"}, result.Missing, "全部岗位技能应计为缺失")
	assert.Empty(t, result.Matching)
	assert.Empty(t, result.Extra)
}

func TestSkillMatcherNormalization(t *testing.T) {
	m := NewSkillMatcher(nil)

	// 大小写和空白归一, 重复技能去重
	result := m.Match(context.Background(),
		[]string{"  Python ", "python", "PYTHON"},
		[]string{"Python"})
	assert.ElementsMatch(t, []string{"python"}, result.Matching)
	assert.Empty(t, result.Extra, "同一技能的不同写法不应产生多余技能")
	assert.InDelta(t, 1.0, result.Score, 1e-9)
}

func TestSkillMatcherSemantic(t *testing.T) {
	nlp := &stubSimilarity{pairs: map[[2]string]float64{
		{"golang", "go"}: 0.92,
	}}
	m := NewSkillMatcher(nlp)
	assert.Equal(t, StrategySemantic, m.Strategy(), "有NLP时应使用语义策略")

	result := m.Match(context.Background(), []string{"golang", "sql"}, []string{"go", "sql"})
	assert.Equal(t, StrategySemantic, result.Strategy)
	assert.Contains(t, result.Matching, "sql")
	assert.Contains(t, result.Matching, "golang (similar to go)", "语义命中应带相似来源标注")
	assert.Empty(t, result.Missing, "语义命中后不应再有缺失技能")
	assert.Empty(t, result.Extra, "被语义命中吸收的技能不应计为多余")

	// 核心分 (1+0.9)/2, 广度分 1.9/2 封顶前, 精确分 1
	expected := skillCoreWeight*(1.9/2) + skillBreadthWeight*(1.9/2) + skillPrecisionWeight*1.0
	assert.InDelta(t, expected, result.Score, 1e-9)
}

func TestSkillMatcherSemanticBelowThreshold(t *testing.T) {
	nlp := &stubSimilarity{pairs: map[[2]string]float64{
		{"java", "javascript"}: 0.62,
	}}
	m := NewSkillMatcher(nlp)

	result := m.Match(context.Background(), []string{"java"}, []string{"javascript"})
	assert.Contains(t, result.Missing, "javascript", "低于阈值的相似度不应算作命中")
	assert.Contains(t, result.Extra, "java")
	assert.Empty(t, result.Matching)
}

func TestSkillMatcherSimilarityErrorSkipsPair(t *testing.T) {
	// 相似度计算失败只跳过该技能对, 不影响整体匹配
	m := NewSkillMatcher(&stubSimilarity{err: assert.AnError})

	result := m.Match(context.Background(), []string{"python", "golang"}, []string{"python", "go"})
	assert.Contains(t, result.Matching, "python")
	assert.Contains(t, result.Missing, "go")
	assert.Contains(t, result.Extra, "golang")
}
