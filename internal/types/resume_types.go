package types

// ContactInfo 简历联系方式, 抽取不到的字段保持空串
type ContactInfo struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	Location string `json:"location"`
}

// EducationEntry 教育经历条目
type EducationEntry struct {
	Degree       string `json:"degree"`
	Institution  string `json:"institution"`
	DateRange    string `json:"date_range"`
	FieldOfStudy string `json:"field_of_study"`
}

// ExperienceEntry 工作经历条目
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	DateRange   string `json:"date_range"`
	Description string `json:"description"`
}

// ResumeProfile 结构化简历档案, 由 ProfileBuilder 从纯文本构建
type ResumeProfile struct {
	Name       string            `json:"name"`
	Contact    ContactInfo       `json:"contact_info"`
	Education  []EducationEntry  `json:"education"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	RawText    string            `json:"raw_text,omitempty"`
}

// JobRequirement 岗位要求, 评分的另一侧输入
type JobRequirement struct {
	JobID              string   `json:"job_id"`
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	RequiredSkills     []string `json:"required_skills"`
	MinYearsExperience int      `json:"min_years_experience"`
	MinEducation       string   `json:"min_education"`
}

// ScoreBreakdown 匹配度评分结果, 所有分数已裁剪到 [0,1] 并保留两位小数
type ScoreBreakdown struct {
	OverallScore     float64  `json:"overall_score"`
	SkillMatchScore  float64  `json:"skill_match_score"`
	ExperienceScore  float64  `json:"experience_score"`
	EducationScore   float64  `json:"education_score"`
	MatchingSkills   []string `json:"matching_skills"`
	MissingSkills    []string `json:"missing_skills"`
	ExtraSkills      []string `json:"extra_skills"`
	Analysis         string   `json:"analysis"`
}

// CheckResult 同步评估接口的聚合返回
type CheckResult struct {
	Profile        *ResumeProfile  `json:"parsed_resume"`
	Job            *JobRequirement `json:"job_data"`
	Score          *ScoreBreakdown `json:"score"`
	Feedback       string          `json:"feedback"`
	ImprovedResume string          `json:"improved_resume"`
}
