package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "cache:public:"

type cachedResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// ResponseCache serves anonymous GET requests from redis. Authenticated
// requests are never cached because their result depends on the caller.
func ResponseCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet || ctx.GetHeader("Authorization") != "" {
			ctx.Next()
			return
		}

		key := cacheKey(ctx)
		if b, err := rdb.Get(ctx.Request.Context(), key).Bytes(); err == nil {
			var hit cachedResponse
			if err = gob.NewDecoder(bytes.NewReader(b)).Decode(&hit); err == nil {
				for k, values := range hit.Header {
					for _, v := range values {
						ctx.Writer.Header().Add(k, v)
					}
				}
				ctx.Writer.Header().Set("X-Cache", "HIT")
				ctx.Data(hit.Status, hit.Header.Get("Content-Type"), hit.Body)
				ctx.Abort()
				return
			}
		}

		bw := &bufferedWriter{ResponseWriter: ctx.Writer}
		ctx.Writer = bw
		ctx.Writer.Header().Set("X-Cache", "MISS")

		ctx.Next()

		if status := bw.Status(); status < 200 || status >= 300 {
			return
		}

		header := bw.Header().Clone()
		header.Del("X-Cache")
		header.Del("X-Request-Id")

		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(cachedResponse{Status: bw.Status(), Header: header, Body: bw.buf.Bytes()}); err != nil {
			return
		}
		if err := rdb.Set(context.WithoutCancel(ctx.Request.Context()), key, buf.Bytes(), ttl).Err(); err != nil {
			zap.L().Warn("failed to cache response", zap.String("key", key), zap.Error(err))
		}
	}
}

func cacheKey(ctx *gin.Context) string {
	sum := sha1.Sum([]byte(ctx.Request.URL.Path + "?" + ctx.Request.URL.RawQuery))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

type bufferedWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheInvalidator drops cached public responses after writes.
type CacheInvalidator struct {
	rdb *redis.Client
}

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator {
	return &CacheInvalidator{rdb: rdb}
}

func (ci *CacheInvalidator) Purge(ctx context.Context) error {
	iter := ci.rdb.Scan(ctx, 0, cacheKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	return ci.rdb.Del(ctx, keys...).Err()
}

// PurgeOnWrite purges the cache once a non-GET request has succeeded.
func (ci *CacheInvalidator) PurgeOnWrite() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		if ctx.Request.Method == http.MethodGet {
			return
		}
		if status := ctx.Writer.Status(); status < 200 || status >= 300 {
			return
		}
		if err := ci.Purge(context.WithoutCancel(ctx.Request.Context())); err != nil {
			zap.L().Warn("failed to purge response cache", zap.Error(err))
		}
	}
}
