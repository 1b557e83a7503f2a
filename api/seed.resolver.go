package api

import (
	"github.com/gin-gonic/gin"
)

func (m ApiHandler) runSeed(c *gin.Context) {
	if err := m.SeedService.Seed(c.Request.Context()); err != nil {
		m.returnErrorJson(err, c)
		return
	}

	successJson(c, 200, nil, "Database seeded")
}
