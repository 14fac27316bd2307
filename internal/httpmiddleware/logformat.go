package httpmiddleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// LogFormatter renders the access-log line with the correlation id attached
// by RequestID, so log lines can be joined to the X-Request-ID a client saw.
func LogFormatter(p gin.LogFormatterParams) string {
	reqID, _ := p.Keys["request_id"].(string)
	return fmt.Sprintf("[GIN] %s | %3d | %13v | %15s | %-7s %#v | req_id=%s\n",
		p.TimeStamp.Format("2006/01/02 - 15:04:05"),
		p.StatusCode,
		p.Latency,
		p.ClientIP,
		p.Method,
		p.Path,
		reqID,
	)
}
