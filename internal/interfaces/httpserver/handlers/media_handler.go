package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"customgpt-actions/internal/config"
	domain "customgpt-actions/internal/domain/media"
	"customgpt-actions/internal/interfaces/httpserver/requests"
	"customgpt-actions/internal/interfaces/httpserver/responses"
)

// MediaHandler exposes the generation endpoints.
type MediaHandler struct {
	cfg     *config.Config
	service *domain.Service
	log     zerolog.Logger
}

func NewMediaHandler(cfg *config.Config, service *domain.Service, log zerolog.Logger) *MediaHandler {
	return &MediaHandler{
		cfg:     cfg,
		service: service,
		log:     log.With().Str("component", "media-handler").Logger(),
	}
}

// GenerateImage godoc
// @Summary      Generate an image
// @Description  Generates an image from a text prompt via Replicate.
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        request  body      requests.GenerateImageRequest  true  "Image generation request"
// @Success      200      {object}  responses.MediaResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /media/generate-image [post]
func (h *MediaHandler) GenerateImage(c *gin.Context) {
	var req requests.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}

	result, err := h.service.GenerateImage(c.Request.Context(), req.ToParams())
	if err != nil {
		h.log.Error().Err(err).Msg("image generation failed")
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Generate3D godoc
// @Summary      Generate a 3D model
// @Description  Converts a source image into a downloadable 3D model.
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        request  body      requests.Generate3DRequest  true  "3D generation request"
// @Success      200      {object}  responses.MediaResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /media/generate-3d [post]
func (h *MediaHandler) Generate3D(c *gin.Context) {
	var req requests.Generate3DRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}

	result, err := h.service.GenerateThreeD(c.Request.Context(), req.ToParams())
	if err != nil {
		h.log.Error().Err(err).Msg("3d generation failed")
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GenerateVideo godoc
// @Summary      Generate a video
// @Description  Generates a video from a prompt, optionally animating a source image.
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        request  body      requests.GenerateVideoRequest  true  "Video generation request"
// @Success      200      {object}  responses.MediaResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /media/generate-video [post]
func (h *MediaHandler) GenerateVideo(c *gin.Context) {
	var req requests.GenerateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}

	result, err := h.service.GenerateVideo(c.Request.Context(), req.ToParams())
	if err != nil {
		h.log.Error().Err(err).Msg("video generation failed")
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GenerateAudio godoc
// @Summary      Generate music
// @Description  Generates a music clip from a text prompt.
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        request  body      requests.GenerateAudioRequest  true  "Audio generation request"
// @Success      200      {object}  responses.MediaResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /media/generate-audio [post]
func (h *MediaHandler) GenerateAudio(c *gin.Context) {
	var req requests.GenerateAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}

	result, err := h.service.GenerateAudio(c.Request.Context(), req.ToParams())
	if err != nil {
		h.log.Error().Err(err).Msg("audio generation failed")
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
