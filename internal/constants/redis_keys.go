package constants

// Redis Key 前缀和格式常量
// 使用统一的命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// ProfileModulePrefix 画像模块
	ProfileModulePrefix = "profile"
	// MatchModulePrefix 匹配模块
	MatchModulePrefix = "match"

	// EntityQuota 配额计数实体
	EntityQuota = "quota"
	// EntityCache 缓存实体
	EntityCache = "cache"
	// EntityMD5ToID MD5到画像ID的映射实体
	EntityMD5ToID = "md5_to_id"

	// KeyRankQuota 每用户每日排序配额计数 (STRING, INCR)
	// 格式: app:match:quota:{userID}:{yyyymmdd}
	KeyRankQuota = AppPrefix + ":" + MatchModulePrefix + ":" + EntityQuota + ":%s:%s"

	// KeyRankCache 排序结果缓存 (STRING, JSON)
	// 格式: app:match:cache:{kind}:{profileID}:{candidatesMD5}
	KeyRankCache = AppPrefix + ":" + MatchModulePrefix + ":" + EntityCache + ":%s:%s:%s"

	// KeyTextMD5ToProfileID 原始文本MD5到画像ID的映射，用于重复上传去重 (STRING)
	// 格式: app:profile:md5_to_id:{md5}
	KeyTextMD5ToProfileID = AppPrefix + ":" + ProfileModulePrefix + ":" + EntityMD5ToID + ":%s"
)
