package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/transcriptor/errors"
	"github.com/kbukum/transcriptor/logger"
	"github.com/kbukum/transcriptor/server"
	"github.com/kbukum/transcriptor/transcriber"
)

// FormField is the multipart field carrying the upload.
const FormField = "file"

// Transcriber runs the transcription pipeline over an uploaded file.
type Transcriber interface {
	TranscribeBytes(ctx context.Context, data []byte, ext string) (string, error)
	Language() string
}

// TranscribeResponse is the success body of POST /transcribe.
type TranscribeResponse struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// Handler holds the transcription routes.
type Handler struct {
	svc Transcriber
	log *logger.Logger
}

// New creates a Handler.
func New(svc Transcriber, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{svc: svc, log: log.WithComponent("handler")}
}

// Register mounts the routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Index)
	r.StaticFS("/static", staticFS())
	r.POST("/transcribe", h.Transcribe)
}

// Transcribe accepts a multipart upload in the "file" field and returns its
// transcript. The extension is checked before the body is read. The pipeline
// runs detached from the client connection: a disconnect does not abort it.
func (h *Handler) Transcribe(c *gin.Context) {
	log := h.log.WithContext(c.Request.Context())

	fh, err := c.FormFile(FormField)
	if err != nil {
		server.RespondWithError(c, uploadError(err))
		return
	}

	ext := transcriber.ExtFromFilename(fh.Filename)
	if !transcriber.SupportedFormat(ext) {
		server.RespondWithError(c, apperrors.UnsupportedFormat(ext, transcriber.SupportedFormats))
		return
	}

	data, err := readUpload(fh)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	log.Info("transcription requested", logger.Fields(
		"filename", fh.Filename,
		logger.FieldFormat, ext,
		"size", humanize.Bytes(uint64(len(data))),
		"content_type", mimetype.Detect(data).String(),
	))

	start := time.Now()
	text, err := h.svc.TranscribeBytes(context.WithoutCancel(c.Request.Context()), data, ext)
	if err != nil {
		log.Error("transcription failed", logger.MergeWithError(logger.Fields(
			"filename", fh.Filename,
			logger.FieldDuration, time.Since(start).Milliseconds(),
		), err))
		server.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TranscribeResponse{Filename: fh.Filename, Text: text})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.IO("open upload", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperrors.IO("read upload", err)
	}
	return data, nil
}

// uploadError maps a multipart parse failure to its response error.
func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			fmt.Sprintf("upload exceeds the maximum size of %s", humanize.Bytes(uint64(tooLarge.Limit))),
			http.StatusRequestEntityTooLarge)
	}
	if errors.Is(err, http.ErrMissingFile) {
		return apperrors.MissingField(FormField)
	}
	return apperrors.InvalidInput(FormField, err.Error())
}
