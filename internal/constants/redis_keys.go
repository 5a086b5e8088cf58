package constants

// Redis Key 前缀和格式常量
// 统一命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// JobModulePrefix 岗位模块
	JobModulePrefix = "job"
	// FileModulePrefix 文件模块
	FileModulePrefix = "file"
	// SkillModulePrefix 技能模块
	SkillModulePrefix = "skill"

	// EntityRequirement 岗位要求实体
	EntityRequirement = "requirement"
	// EntityDedupSet 去重集合实体
	EntityDedupSet = "dedup_set"
	// EntityTextDedupSet 解析文本去重集合实体
	EntityTextDedupSet = "text_dedup_set"
	// EntitySimilarity 相似度实体
	EntitySimilarity = "similarity"

	// KeyJobRequirement 岗位要求缓存 (STRING, JSON序列化)
	// 格式: app:job:requirement:{jobID}
	KeyJobRequirement = AppPrefix + ":" + JobModulePrefix + ":" + EntityRequirement + ":%s"

	// KeyFileMD5Set 原始文件MD5集合, 用于上传入口快速去重 (SET)
	// 格式: app:file:dedup_set
	KeyFileMD5Set = AppPrefix + ":" + FileModulePrefix + ":" + EntityDedupSet

	// KeyParsedTextMD5Set 解析文本MD5集合, 用于内容级去重 (SET)
	// 格式: app:file:text_dedup_set
	KeyParsedTextMD5Set = AppPrefix + ":" + FileModulePrefix + ":" + EntityTextDedupSet

	// KeySkillSimilarity 技能对相似度缓存 (STRING)
	// 格式: app:skill:similarity:{pairHash}
	KeySkillSimilarity = AppPrefix + ":" + SkillModulePrefix + ":" + EntitySimilarity + ":%s"
)
