// Package middleware holds the echo middleware used by the catalog
// API. The only piece at the moment is the Redis response cache that
// shields the read-heavy browse endpoints (film lists, popularity
// ranking, reference data) from repeated store hits.
package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/film-catalog/internal/config"
)

// captureWriter captures the response body and status while forwarding
// everything to the client, so a successful response can be stored
// after the handler ran.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 || cw.size+int64(len(b)) <= cw.limit {
		cw.buf.Write(b)
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// cacheKey builds a stable key from method, matched route and raw
// query, hashed so arbitrary query strings cannot blow up key size.
func cacheKey(prefix string, c echo.Context) string {
	r := c.Request()
	sum := sha1.Sum([]byte(r.Method + ":" + c.Path() + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}

// encodePayload packs: [4 bytes status][2 bytes ctypeLen][ctype][body].
func encodePayload(status int, ctype string, body []byte) []byte {
	out := make([]byte, 6+len(ctype)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint16(out[4:6], uint16(len(ctype)))
	copy(out[6:], ctype)
	copy(out[6+len(ctype):], body)
	return out
}

func decodePayload(bs []byte) (status int, ctype string, body []byte, ok bool) {
	if len(bs) < 6 {
		return 0, "", nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	clen := int(binary.BigEndian.Uint16(bs[4:6]))
	if 6+clen > len(bs) {
		return 0, "", nil, false
	}
	ctype = string(bs[6 : 6+clen])
	body = bs[6+clen:]
	return status, ctype, body, true
}

// ResponseCache caches successful responses of the configured methods
// in Redis for the configured TTL. With a nil client or a disabled
// config it degrades to a pass-through, so the server runs fine
// without Redis.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	ttl := cfg.TTL
	maxBody := int64(cfg.MaxBodyBytes)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}

			ctx := c.Request().Context()
			key := cacheKey(cfg.Prefix, c)

			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				if status, ctype, body, ok := decodePayload(bs); ok {
					if ctype != "" {
						c.Response().Header().Set(echo.HeaderContentType, ctype)
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(status)
					if len(body) > 0 {
						_, _ = c.Response().Write(body)
					}
					return nil
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			// Only successful, size-bounded responses are worth keeping.
			if cw.status == http.StatusOK && (maxBody <= 0 || cw.size <= maxBody) {
				ctype := c.Response().Header().Get(echo.HeaderContentType)
				payload := encodePayload(cw.status, ctype, cw.buf.Bytes())
				_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
			}
			return nil
		}
	}
}
