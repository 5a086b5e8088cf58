package parser

import (
	"strings"

	"resume-fit-go/internal/types"
)

// extractName 候选人姓名: 优先取第一个PERSON实体,
// 降级取首行 (过长则视为无法识别)
func extractName(text string, analysis *types.NlpAnalysis) string {
	if name := analysis.FirstEntity(types.EntityPerson); name != "" {
		return name
	}

	firstLine := strings.TrimSpace(strings.SplitN(text, "\n", 2)[0])
	if firstLine != "" && len(firstLine) < 40 {
		return firstLine
	}
	return "Unknown"
}

// extractContact 联系方式: 邮箱/电话/LinkedIn/所在地
// 每个字段独立抽取, 抽不到保持空串
func extractContact(text string, analysis *types.NlpAnalysis) types.ContactInfo {
	contact := types.ContactInfo{}

	if analysis != nil {
		if len(analysis.EmailLikeTokens) > 0 {
			contact.Email = analysis.EmailLikeTokens[0]
		}
		contact.Location = analysis.FirstEntity(types.EntityGPE)
	} else {
		// NLP能力缺失时邮箱退化为正则识别, 所在地放弃
		contact.Email = EmailLikePattern.FindString(text)
	}

	contact.Phone = PhonePattern.FindString(text)

	if m := LinkedInPattern.FindString(strings.ToLower(text)); m != "" {
		contact.LinkedIn = "https://www." + m
	}

	return contact
}
