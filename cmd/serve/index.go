package serve

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (api *serveAPI) ServeIndex(c *gin.Context) {
	c.HTML(
		http.StatusOK,
		"index.html",
		gin.H{
			"Documents": api.store.Documents(),
		},
	)
}
