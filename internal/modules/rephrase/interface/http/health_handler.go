package http

import (
	"Rephraser/pkg/back"

	"github.com/gin-gonic/gin"
)

type healthRespond struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Version  string `json:"version"`
}

// Health 存活检查，不访问外部模型
//
//	GET /health
func Health(provider, modelName, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		back.Success(c, healthRespond{
			Status:   "ok",
			Provider: provider,
			Model:    modelName,
			Version:  version,
		})
	}
}
