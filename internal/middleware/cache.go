package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/kids-center-booking/internal/config"
	applog "github.com/iliyamo/kids-center-booking/internal/log"
)

const headerXCache = "X-Cache"

// perRequestHeaders are never stored with a cached response.
var perRequestHeaders = []string{headerXCache, echo.HeaderXRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining"}

// recorder tees the response into a bounded buffer while it is streamed.
type recorder struct {
	http.ResponseWriter
	status    int
	body      bytes.Buffer
	written   int64
	limit     int64
	truncated bool
}

func (r *recorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	r.written += int64(len(b))
	switch {
	case r.truncated:
	case r.limit > 0 && r.written > r.limit:
		r.truncated = true
		r.body.Reset()
	default:
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

// cachedResponse is the value stored in Redis.
type cachedResponse struct {
	Status int         `json:"s"`
	Header http.Header `json:"h"`
	Body   []byte      `json:"b"`
}

func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	return json.Marshal(cachedResponse{Status: status, Header: header, Body: body})
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	var cr cachedResponse
	if err := json.Unmarshal(bs, &cr); err != nil || cr.Status == 0 {
		return 0, nil, nil, false
	}
	if cr.Header == nil {
		cr.Header = http.Header{}
	}
	return cr.Status, cr.Header, cr.Body, true
}

// cacheKey hashes the request parts selected by cfg.KeyStrategy.  The
// default strategy is route_query.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()
	var b strings.Builder
	strategy := strings.ToLower(cfg.KeyStrategy)
	if strings.HasPrefix(strategy, "method_") {
		b.WriteString(r.Method)
		b.WriteByte(' ')
	}
	b.WriteString(c.Path())
	if strategy != "route" && strategy != "method_route" {
		b.WriteByte('?')
		b.WriteString(r.URL.RawQuery)
	}
	sum := sha1.Sum([]byte(b.String()))
	return cfg.Prefix + ":" + hex.EncodeToString(sum[:])
}

type responseCache struct {
	cfg    config.CacheConfig
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// replay writes a stored response if one exists for key.
func (rc *responseCache) replay(c echo.Context, key string) bool {
	bs, err := rc.rdb.Get(c.Request().Context(), key).Bytes()
	if err != nil {
		if err != redis.Nil {
			rc.logger.Debug().Err(err).Str("key", key).Msg("redis get failed")
		}
		return false
	}
	status, hdr, body, ok := decodePayload(bs)
	if !ok {
		return false
	}
	// Stored values replace what earlier middleware set (Vary, CORS).
	h := c.Response().Header()
	for k, vals := range hdr {
		if http.CanonicalHeaderKey(k) == echo.HeaderContentLength {
			continue
		}
		h[http.CanonicalHeaderKey(k)] = vals
	}
	h.Set(headerXCache, "HIT")
	c.Response().WriteHeader(status)
	if len(body) > 0 {
		_, _ = c.Response().Write(body)
	}
	return true
}

// store saves a fully captured 200 response.
func (rc *responseCache) store(ctx context.Context, c echo.Context, key string, rec *recorder) {
	if rec.status != http.StatusOK || rec.truncated {
		return
	}
	hdr := c.Response().Header().Clone()
	for _, k := range perRequestHeaders {
		hdr.Del(k)
	}
	payload, err := encodePayload(rec.status, hdr, rec.body.Bytes())
	if err != nil {
		return
	}
	if err := rc.rdb.SetEx(context.WithoutCancel(ctx), key, payload, rc.ttl).Err(); err != nil {
		rc.logger.Debug().Err(err).Str("key", key).Msg("redis set failed")
	}
}

// NewRedisCache replays cached 200 responses (headers and body) for the
// configured methods.  Responses larger than MaxBodyBytes are never stored.
// With caching disabled or no Redis client it is a pass-through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	rc := &responseCache{cfg: cfg, rdb: rdb, ttl: cfg.TTL, logger: applog.WithComponent("cache")}
	if rc.ttl <= 0 {
		rc.ttl = 5 * time.Minute
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}
			key := cacheKey(cfg, c)
			if rc.replay(c, key) {
				return nil
			}

			rec := &recorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: int64(cfg.MaxBodyBytes)}
			c.Response().Writer = rec
			c.Response().Header().Set(headerXCache, "MISS")
			if err := next(c); err != nil {
				return err
			}
			rc.store(c.Request().Context(), c, key, rec)
			return nil
		}
	}
}
