package routes

import (
	"github.com/gin-gonic/gin"

	"customgpt-actions/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates media route registration.
type Routes struct {
	handlers *handlers.Provider
}

func New(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// Register attaches the generation routes under the /media prefix.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/media")
	group.POST("/generate-image", r.handlers.Media.GenerateImage)
	group.POST("/generate-3d", r.handlers.Media.Generate3D)
	group.POST("/generate-video", r.handlers.Media.GenerateVideo)
	group.POST("/generate-audio", r.handlers.Media.GenerateAudio)
}
