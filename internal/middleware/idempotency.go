package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-payroll/internal/shared/response"
)

// Idempotency guards POST endpoints against duplicate submissions. A client
// supplying an Idempotency-Key gets at most one in-flight request per key;
// a concurrent duplicate is rejected with 409 while the first one runs.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost || rdb == nil {
			c.Next()
			return
		}

		username := c.GetString(ctxUsernameKey)
		lockKey := fmt.Sprintf("idemp:%s:%s:%s:lock", c.FullPath(), username, idempKey)

		// Short expiry so a crashed server releases the lock on its own.
		isNew, err := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()
		if err != nil {
			// Redis being down must not block writes.
			c.Next()
			return
		}

		if !isNew {
			response.Error(c, http.StatusConflict, "PROCESSING",
				"A request with this idempotency key is already being processed", nil)
			c.Abort()
			return
		}

		c.Next()

		// Keep the key for the full window on success so retries of a
		// completed request are also rejected; release early on failure so
		// the client can retry.
		if c.Writer.Status() >= http.StatusBadRequest {
			_ = rdb.Del(c.Request.Context(), lockKey).Err()
		}
	}
}
