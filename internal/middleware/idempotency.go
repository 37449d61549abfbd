package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-timely/internal/shared/apperror"
	"go-timely/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyLockTTL  = 30 * time.Second
	IdempotencyCacheTTL = 24 * time.Hour

	idempotencyTicketKey = "idempotency_ticket"
)

var ErrRequestInFlight = apperror.New(apperror.CodeConflict, "The same request is still being processed", http.StatusConflict)

type idempotencyTicket struct {
	rdb      redis.Cmdable
	cacheKey string
	lockKey  string
}

// Idempotency replays the stored body for a repeated Idempotency-Key on a
// POST and rejects a repeat that arrives while the first is still running.
// Handlers finish the handshake with Remember and Release.
func Idempotency(rdb redis.Cmdable) gin.HandlerFunc {
	log := zap.L().Named("middleware.idempotency")
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if key == "" || c.Request.Method != http.MethodPost || rdb == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		t := idempotencyTicket{
			rdb:      rdb,
			cacheKey: fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), c.GetString("user_id_validated"), key),
		}
		t.lockKey = t.cacheKey + ":lock"

		cached, err := rdb.Get(ctx, t.cacheKey).Bytes()
		switch {
		case err == nil:
			var body any
			if jsonErr := json.Unmarshal(cached, &body); jsonErr != nil {
				log.Warn("cached idempotent response is corrupt", zap.String("key", t.cacheKey), zap.Error(jsonErr))
			}
			c.Header("Idempotent-Replayed", "true")
			c.AbortWithStatusJSON(http.StatusOK, response.Envelope{Ok: true, Data: body})
			return
		case !errors.Is(err, redis.Nil):
			log.Warn("idempotency cache unavailable", zap.Error(err))
		}

		// The lock expires on its own if the process dies mid-request.
		acquired, err := rdb.SetNX(ctx, t.lockKey, "locked", IdempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock unavailable, continuing without it", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.Abort(c, ErrRequestInFlight)
			return
		}

		c.Set(idempotencyTicketKey, t)
		c.Next()
	}
}

func ticket(c *gin.Context) (idempotencyTicket, bool) {
	v, ok := c.Get(idempotencyTicketKey)
	if !ok {
		return idempotencyTicket{}, false
	}
	t, ok := v.(idempotencyTicket)
	return t, ok
}

// Remember stores payload as the replay body for this request's key. It is a
// no-op when the request carried no key.
func Remember(c *gin.Context, payload any) {
	t, ok := ticket(c)
	if !ok {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := t.rdb.Set(c.Request.Context(), t.cacheKey, raw, IdempotencyCacheTTL).Err(); err != nil {
		zap.L().Named("middleware.idempotency").Warn("store idempotent response failed", zap.Error(err))
	}
}

// Release drops the in-flight lock. Call it once the handler is done,
// whether or not it succeeded.
func Release(c *gin.Context) {
	if t, ok := ticket(c); ok {
		t.rdb.Del(c.Request.Context(), t.lockKey)
	}
}
