package middleware

import (
	"strings"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewCors,
	NewLogger,
	NewRecovery,
	NewTraceEntry,
	NewResponse,
	NewAuth,
)

// requestStartKey 請求開始時間，供 response / recovery 計算延遲
const requestStartKey = "requestDuration"

// 不做 tracing / 請求日誌的路徑
var observabilitySkipPrefixes = []string{"/swagger", "/metrics", "/version", "/health-check"}

func skipObservability(endpoint string) bool {
	for _, prefix := range observabilitySkipPrefixes {
		if strings.HasPrefix(endpoint, prefix) {
			return true
		}
	}
	return false
}
