// Package images holds the HTTP handlers for uploading and browsing images.
package images

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/lanternfly/gallery/internal/response"
	"github.com/lanternfly/gallery/internal/storage"
)

// MaxUploadBytes is the largest accepted image payload.
const MaxUploadBytes = 10 << 20 // 10 MiB

// maxMultipartOverhead allows for the multipart boundary and part headers on
// top of a maximum-size file before the body reader cuts the request off.
const maxMultipartOverhead = 10 << 10

const sizeLimitMessage = "File size exceeds the limit of 10MB."

// allowedContentTypes is the allow-list of image types the upload accepts.
var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadResult is the success body of the upload endpoint.
type UploadResult struct {
	OK  bool   `json:"ok"`
	URL string `json:"url"`
}

// GalleryResult is the success body of the gallery endpoint.
type GalleryResult struct {
	OK      bool     `json:"ok"`
	Gallery []string `json:"gallery"`
}

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Handler holds HTTP handlers for image upload, gallery, and health endpoints.
// store is nil when storage initialization failed at startup; every handler
// then degrades to an explicit error response instead of crashing.
type Handler struct {
	store storage.Storage
	now   func() time.Time
}

// NewHandler creates a new image Handler. store may be nil.
func NewHandler(store storage.Storage) *Handler {
	return &Handler{store: store, now: time.Now}
}

// Upload godoc
//
//	@Summary		Upload an image
//	@Description	Accepts a multipart form with a single "file" field, stores it in the public container, and returns its URL.
//	@Tags			images
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"image file (jpeg, png, gif, or webp, max 10MB)"
//	@Success		200	{object}	UploadResult
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		413	{object}	response.ErrorBody
//	@Failure		415	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	// Bound the whole body before any parsing so an oversized upload is cut
	// off mid-read instead of being buffered and rejected afterwards.
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+maxMultipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			response.PayloadTooLarge(w, sizeLimitMessage)
			return
		}
		// A part named "file" with an empty filename parses as a plain form
		// value, which is how browsers submit an empty file input.
		if errors.Is(err, http.ErrMissingFile) && r.MultipartForm != nil && len(r.MultipartForm.Value["file"]) > 0 {
			response.BadRequest(w, "No selected file")
			return
		}
		response.BadRequest(w, "No file part in the request")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		response.BadRequest(w, "No selected file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedContentTypes[contentType] {
		response.UnsupportedMediaType(w, fmt.Sprintf("Invalid content type: %s. Only image types are allowed.", contentType))
		return
	}

	if header.Size > MaxUploadBytes {
		response.PayloadTooLarge(w, sizeLimitMessage)
		return
	}

	if h.store == nil {
		response.InternalError(w, "object storage not configured")
		return
	}

	key := StorageKey(header.Filename, h.now())
	if err := h.store.Upload(r.Context(), key, file, header.Size, contentType); err != nil {
		log.Printf("upload of %q failed: %v", key, err)
		response.InternalError(w, err.Error())
		return
	}

	log.Printf("uploaded %q (%d bytes, %s)", key, header.Size, contentType)
	response.JSON(w, http.StatusOK, UploadResult{OK: true, URL: h.store.PublicURL(key)})
}

// Gallery godoc
//
//	@Summary		List uploaded images
//	@Description	Returns the public URL of every image in the container, in backend order.
//	@Tags			images
//	@Produce		json
//	@Success		200	{object}	GalleryResult
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/gallery [get]
func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		response.InternalError(w, "object storage not configured")
		return
	}

	keys, err := h.store.List(r.Context())
	if err != nil {
		log.Printf("gallery listing failed: %v", err)
		response.InternalError(w, err.Error())
		return
	}

	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		urls = append(urls, h.store.PublicURL(key))
	}

	log.Printf("gallery fetched: %d images", len(urls))
	response.JSON(w, http.StatusOK, GalleryResult{OK: true, Gallery: urls})
}

// Health godoc
//
//	@Summary		Storage health check
//	@Description	Probes the storage backend and reports OK, DEGRADED, or UNHEALTHY.
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthStatus
//	@Failure		503	{object}	HealthStatus
//	@Router			/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		response.JSON(w, http.StatusServiceUnavailable, HealthStatus{
			Status:  "UNHEALTHY",
			Message: "Storage client failed to initialize",
		})
		return
	}

	if err := h.store.Ping(r.Context()); err != nil {
		response.JSON(w, http.StatusServiceUnavailable, HealthStatus{
			Status:  "DEGRADED",
			Message: "Storage connection failed: " + err.Error(),
		})
		return
	}

	response.JSON(w, http.StatusOK, HealthStatus{
		Status:  "OK",
		Message: "Object storage connection successful",
	})
}

// isTooLarge reports whether err came from the MaxBytesReader cutting the
// body off. The multipart reader does not always wrap the original error, so
// the message match covers older parse paths.
func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}
