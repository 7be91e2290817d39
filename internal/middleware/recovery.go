package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"adherence-srv/pkg/discord"
	"adherence-srv/pkg/log"
	"adherence-srv/pkg/response"
)

// Recovery turns a handler panic into a 500 and reports it to the operator
// webhook.
func Recovery(logger log.Logger, discordClient discord.IDiscord) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ctx := c.Request.Context()
				logger.Errorf(ctx, "internal.middleware.Recovery: panic recovered: %v | Method: %s | Path: %s",
					err, c.Request.Method, c.Request.URL.Path)

				if discordClient != nil {
					_ = discordClient.SendError(ctx, "HTTP handler panic",
						fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path),
						fmt.Errorf("%v", err))
				}

				response.Error(c, http.StatusInternalServerError, "internal server error")
			}
		}()
		c.Next()
	}
}
