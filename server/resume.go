package server

import (
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/placementsprint/sprintd/observability"
	"github.com/placementsprint/sprintd/resume"
)

type uploadResponse struct {
	OK          bool   `json:"ok"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Text        string `json:"text"`
	Chars       int    `json:"chars"`
}

func handleUploadResume() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()
		log := observability.LoggerFromContext(ctx)

		fileHeader, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "multipart field 'file' is required")
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		kind, ok := resume.ContentTypes[contentType]
		if !ok {
			c.JSON(http.StatusUnsupportedMediaType, apiError{
				Error:     "unsupported_media_type",
				Detail:    "Unsupported file type. Upload a PDF or DOCX resume.",
				RequestID: observability.RequestID(ctx),
			})
			return
		}
		if fileHeader.Size > resume.MaxFileBytes {
			c.JSON(http.StatusRequestEntityTooLarge, apiError{
				Error:     "payload_too_large",
				Detail:    "File too large. Max 2MB.",
				RequestID: observability.RequestID(ctx),
			})
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			badRequest(c, "could not read uploaded file")
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil || len(data) == 0 {
			badRequest(c, "Empty file.")
			return
		}

		text, err := resume.Extract(kind, data)
		if err != nil {
			log.Error("resume extraction failed", "kind", kind, "error", err)
			unprocessable(c, "Failed to parse resume file.")
			return
		}
		if utf8.RuneCountInString(strings.TrimSpace(text)) < resume.MinExtractedChars {
			unprocessable(c, "Could not extract enough text from this file. Try another PDF/DOCX (non-scanned).")
			return
		}

		log.Info("resume uploaded", "kind", kind, "bytes", len(data), "ms", time.Since(start).Milliseconds())
		c.JSON(http.StatusOK, uploadResponse{
			OK:          true,
			Filename:    fileHeader.Filename,
			ContentType: contentType,
			Text:        text,
			Chars:       utf8.RuneCountInString(text),
		})
	}
}

func unprocessable(c *gin.Context, detail string) {
	c.JSON(http.StatusUnprocessableEntity, apiError{
		Error:     "unprocessable",
		Detail:    detail,
		RequestID: observability.RequestID(c.Request.Context()),
	})
}
