package handler

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/transcriptor/logger"
	"github.com/kbukum/transcriptor/transcriber"
	"github.com/kbukum/transcriptor/version"
)

//go:embed templates/index.html
var templatesFS embed.FS

//go:embed static
var assetsFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type indexData struct {
	Language string
	Accept   string
	Formats  string
	Version  string
}

// Index renders the upload page.
func (h *Handler) Index(c *gin.Context) {
	accept := make([]string, len(transcriber.SupportedFormats))
	for i, f := range transcriber.SupportedFormats {
		accept[i] = "." + f
	}
	data := indexData{
		Language: h.svc.Language(),
		Accept:   strings.Join(accept, ","),
		Formats:  strings.Join(transcriber.SupportedFormats, ", "),
		Version:  version.Get().Version,
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := indexTemplate.Execute(c.Writer, data); err != nil {
		h.log.WithContext(c.Request.Context()).Error("render index", logger.ErrorFields("render", err))
	}
}

func staticFS() http.FileSystem {
	sub, err := fs.Sub(assetsFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
