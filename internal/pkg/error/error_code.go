package error

const (
	// 0 ~ 999: 成功類別
	SUCCESS = 0 // 200 OK

	// 40000 ~ 49999: 用戶請求錯誤 (400 系列)
	BAD_REQUEST_BODY   = 40000 // 400 - 無效的請求體
	BAD_REQUEST_PARAMS = 40001 // 400 - 無效的請求參數
	BAD_REQUEST_QUERY  = 40003 // 400 - 無效的查詢參數

	// 40100 ~ 40399: 驗證與權限錯誤 (401 403 系列)
	UNAUTHORIZED    = 40100 // 401 - 未授權
	INVALID_SESSION = 40101 // 401 - token 失效
	INACTIVE_USER   = 40102 // 401 - 帳號停用
	FORBIDDEN       = 40301 // 403 - 角色不足

	// 40400 ~ 40499: 資源錯誤 (404 系列)
	NOT_FOUND = 40400 // 404 - 資源未找到

	// 40900 ~ 40999: 狀態衝突 (409 系列)
	SCHEDULER_BUSY = 40900 // 409 - 排程執行中

	// 50000 ~ 50199: 伺服器內部錯誤 (500 系列)
	INTERNAL_ERROR       = 50000 // 500 - 內部錯誤
	DATABASE_ERROR       = 50001 // 500 - 資料庫錯誤
	SERVICE_UNAVAILABLE  = 50002 // 503 - 服務暫停 (維護模式)
	INVALID_REPORT_INPUT = 50003 // 500 - 報表資料異常 (月份超出範圍)
)
