package parser

import "regexp"

// PatternTableVersion 模式表版本, 调整任何表项时递增
// 并同步更新 constants.DefaultParserVersion
const PatternTableVersion = "1.0"

var (
	// PhonePattern 北美风格电话号码
	PhonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

	// LinkedInPattern 在小写文本上匹配, 结果统一补 https://www. 前缀
	LinkedInPattern = regexp.MustCompile(`linkedin\.com/in/[\w-]+`)

	// EmailLikePattern NLP边车不可用时的降级邮箱识别
	EmailLikePattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// DegreePattern 学位关键词, 长词形排在短词形之前避免子串抢先命中
	DegreePattern = regexp.MustCompile(`Bachelor's|Master's|Bachelor|Master|Ph\.D\.|PhD|MBA|B\.S\.|M\.S\.|B\.A\.|M\.A\.|BSc|MSc|BA|MA`)

	// YearPattern 1900-2099 范围内的四位年份
	YearPattern = regexp.MustCompile(`(19|20)\d{2}`)

	// DateRangeBoundaryPattern 工作经历条目的边界: 年份区间, 终点可为 present/current
	DateRangeBoundaryPattern = regexp.MustCompile(`(?i)(19|20)\d{2}\s*(?:-|–|—|to)\s*(?:(?:19|20)\d{2}|present|current)`)

	// DateRangeResolvePattern 年限解析, 捕获起止两端
	DateRangeResolvePattern = regexp.MustCompile(`(?i)(\d{4})\s*(?:-|–|—|to)\s*(\d{4}|present|current)`)
)

// 各章节的定位关键词
var (
	EducationSectionKeywords  = []string{"education", "academic", "university", "college", "degree"}
	ExperienceSectionKeywords = []string{"experience", "employment", "work history", "professional background"}
	SkillsSectionKeywords     = []string{"skills", "technical skills", "core competencies", "expertise"}
)

// CanonicalSectionNames 章节终点候选表, 分段时从中剔除当前章节自己的关键词
var CanonicalSectionNames = []string{
	"education", "skills", "experience", "employment", "projects",
	"achievements", "certifications", "languages", "interests", "references",
}

// SkillSeparators 技能分隔符, 按优先级尝试, 第一个出现且切出有效结果的生效
var SkillSeparators = []string{",", "•", "●", "■", "\n"}

// CommonJobTitles 常见职位名, 命中即作为条目职位
var CommonJobTitles = []string{
	"Software Engineer", "Product Manager", "Data Scientist",
	"Marketing Manager", "Project Manager", "Sales Representative",
	"Director", "Analyst", "Developer", "Designer", "Consultant",
}

// FieldOfStudyVocabulary 专业领域闭集词表
var FieldOfStudyVocabulary = []string{
	"computer science", "engineering", "business", "marketing",
	"biology", "chemistry", "physics", "mathematics", "economics",
	"psychology", "sociology", "history", "english", "communications",
}

// InstitutionKeywords 机构名确认关键词, 用于过滤窗口内误报的ORG实体
var InstitutionKeywords = []string{"university", "college", "institute", "school"}

// ResumeIndicatorKeywords 简历特征关键词, 内容验证用
var ResumeIndicatorKeywords = []string{
	"experience", "education", "skills", "work", "employment", "job",
	"career", "professional", "certification", "resume", "cv",
	"curriculum vitae", "qualification", "objective", "summary",
	"contact", "reference", "achievement", "project", "volunteer",
}

// 内容验证要求至少命中一个经历类/教育类/技能类关键词组
var (
	ValidationExperienceGroup = []string{"experience", "work", "employment", "job history"}
	ValidationEducationGroup  = []string{"education", "academic", "university", "college", "degree"}
	ValidationSkillsGroup     = []string{"skills", "competencies", "expertise"}
)
