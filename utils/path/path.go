package path

import (
	"path/filepath"
	"runtime"
)

// RootPath 專案根目錄絕對路徑，相對路徑的 --env / --config 以此為基準
func RootPath() string {
	// 此檔位於 <root>/utils/path/path.go
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("❌ 無法取得 caller 位置")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}
