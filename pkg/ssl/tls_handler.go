package ssl

import (
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// TlsHandler 强制 HTTPS 访问的中间件
func TlsHandler(host string) gin.HandlerFunc {
	return func(c *gin.Context) {
		secureMiddleware := secure.New(secure.Options{
			SSLRedirect: true,
			SSLHost:     host,
		})
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	}
}
