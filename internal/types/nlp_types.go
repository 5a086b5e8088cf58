package types

// 实体标签, 与NLP边车服务返回的标签对齐
const (
	EntityPerson = "PERSON"
	EntityOrg    = "ORG"
	EntityGPE    = "GPE"
)

// Entity 命名实体
type Entity struct {
	Label string `json:"label"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// NlpAnalysis 一次文档分析的结果
type NlpAnalysis struct {
	Entities        []Entity `json:"entities"`
	EmailLikeTokens []string `json:"email_like_tokens"`
}

// FirstEntity 返回第一个指定标签的实体文本, 没有则返回空串
func (a *NlpAnalysis) FirstEntity(label string) string {
	if a == nil {
		return ""
	}
	for _, e := range a.Entities {
		if e.Label == label {
			return e.Text
		}
	}
	return ""
}
