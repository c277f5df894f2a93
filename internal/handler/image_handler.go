package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/okezie/marketlive-backend/internal/imagestore"
)

type ImageHandler struct {
	store imagestore.Store
}

func NewImageHandler(store imagestore.Store) *ImageHandler {
	return &ImageHandler{store: store}
}

type UploadImageRequest struct {
	Data string `json:"data"`
}

type UploadImageResponse struct {
	ImageRef string `json:"imageRef"`
}

// Upload accepts an inline-encoded image and returns the stored reference
// for use as a listing's imageRef.
func (h *ImageHandler) Upload(c echo.Context) error {
	var req UploadImageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if req.Data == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "data is required"))
	}
	ref, err := h.store.Save(c.Request().Context(), req.Data)
	if err != nil {
		if errors.Is(err, imagestore.ErrInvalidImage) {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid image data"))
		}
		c.Logger().Errorf("image save failed: %v", err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to store image"))
	}
	return c.JSON(http.StatusCreated, UploadImageResponse{ImageRef: ref})
}
