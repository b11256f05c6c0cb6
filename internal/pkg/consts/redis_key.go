package consts

const (
	AccessBlacklistKey    = "auth:blacklist:"
	RefreshTokenKey       = "auth:refresh:"
	UserRefreshSetKey     = "auth:refresh:user:"
	AnalyticsDashboardKey = "analytics:dashboard:"
	AnalyticsBlogKey      = "analytics:blog:"
	BlogLiveChannel       = "blog:live:"
	MediaTempKey          = "media:temp"
)

const (
	MediaCleanLock = "lock:media:clean"
)
