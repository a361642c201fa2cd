package encoding

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const (
	Brotli   = "br"
	Zstd     = "zstd"
	Gzip     = "gzip"
	Identity = ""
)

// MinSize 小於此長度的回應不壓縮
const MinSize = 1024

// preference 伺服器端偏好順序
var preference = []string{Brotli, Zstd, Gzip}

// Negotiate 依 Accept-Encoding 選出編碼；q=0 代表拒絕
func Negotiate(acceptEncoding string) string {
	if strings.TrimSpace(acceptEncoding) == "" {
		return Identity
	}
	accepted := map[string]bool{}
	wildcard := false
	for _, part := range strings.Split(acceptEncoding, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		allowed := true
		if q, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if v, err := strconv.ParseFloat(q, 64); err == nil && v == 0 {
				allowed = false
			}
		}
		if name == "*" {
			wildcard = allowed
			continue
		}
		accepted[name] = allowed
	}
	for _, enc := range preference {
		if allow, listed := accepted[enc]; listed {
			if allow {
				return enc
			}
			continue
		}
		if wildcard {
			return enc
		}
	}
	return Identity
}

// Compress 以指定編碼壓縮；Identity 原樣回傳
func Compress(enc string, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	var writer io.WriteCloser
	switch enc {
	case Identity:
		return data, nil
	case Brotli:
		writer = brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	case Gzip:
		writer = gzip.NewWriter(&buf)
	case Zstd:
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		writer = zw
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress Compress 的反向；主要給 websocket client 與測試使用
func Decompress(enc string, data []byte) ([]byte, error) {
	switch enc {
	case Identity:
		return data, nil
	case Brotli:
		return io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	case Gzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case Zstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
}
