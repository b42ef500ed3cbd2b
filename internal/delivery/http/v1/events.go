package v1

import (
	"io"

	"github.com/gin-gonic/gin"
)

// HandleEvents streams store change events as server-sent events until the
// client disconnects. Events a slow client can't keep up with are dropped.
func (h *handlerImpl) HandleEvents(c *gin.Context) {
	ch := h.tasks.Subscribe()
	defer h.tasks.Unsubscribe(ch)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	h.logger.Debug().
		Str("client_ip", c.ClientIP()).
		Msg("opened event stream")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Op), event)
			return true
		}
	})

	h.logger.Debug().
		Str("client_ip", c.ClientIP()).
		Msg("closed event stream")
}
