package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/onchainrugs/rugweave"
	"github.com/onchainrugs/rugweave/errs"
)

// maxBodyBytes bounds POST /v1/render bodies.
const maxBodyBytes = 1 << 20

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// fail writes err as JSON with a status derived from it: 422 for input
// errors, 404 for unknown tokens, 504 for timeouts and 500 otherwise.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	body := errorBody{Code: "INTERNAL", Message: "internal server error"}
	switch {
	case rugweave.IsInputError(err):
		status = http.StatusUnprocessableEntity
		body = errorBody{Code: string(errs.GetCode(err)), Message: errs.UserMessage(err)}
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
		body = errorBody{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		body = errorBody{Code: "TIMEOUT", Message: "render timed out"}
	case errors.Is(err, context.Canceled):
		// The client went away; the status is never seen.
		status = 499
		body = errorBody{Code: "CANCELLED", Message: "request cancelled"}
	default:
		if code := errs.GetCode(err); code != "" {
			body.Code = string(code)
		}
	}
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", c.Request.URL.Path, "error", err,
			"request_id", c.GetString("request_id"))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": rugweave.Version})
}

func (s *Server) tokenParams(c *gin.Context) (rugweave.RenderParameters, bool) {
	id, err := strconv.ParseUint(c.Param("tokenId"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{
			Code:    string(errs.CodeValidation),
			Message: fmt.Sprintf("token id %q is not a number", c.Param("tokenId")),
		})
		return rugweave.RenderParameters{}, false
	}
	p, err := s.src.Params(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return rugweave.RenderParameters{}, false
	}
	return p, true
}

func (s *Server) preview(c *gin.Context) {
	p, ok := s.tokenParams(c)
	if !ok {
		return
	}
	data, err := s.previewPNG(c.Request.Context(), p)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", data)
}

func (s *Server) ogCard(c *gin.Context) {
	p, ok := s.tokenParams(c)
	if !ok {
		return
	}
	data, err := s.previewPNG(c.Request.Context(), p)
	if err != nil {
		s.fail(c, err)
		return
	}
	rug, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		s.fail(c, fmt.Errorf("decode cached preview: %w", err))
		return
	}
	card, err := ComposeOG(rug, p.TokenID)
	if err != nil {
		s.fail(c, err)
		return
	}
	out, err := encodePNG(card)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", out)
}

func (s *Server) traits(c *gin.Context) {
	p, ok := s.tokenParams(c)
	if !ok {
		return
	}
	if err := p.Validate(s.cfg.Render); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p.Traits())
}

// renderBody renders parameters posted as JSON. Previews are cached;
// interactive renders take their size from the width and height query
// parameters and default to the preview size.
func (s *Server) renderBody(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		s.fail(c, errs.Wrap(errs.CodeValidation, err, "read body"))
		return
	}
	p, err := rugweave.ParseParametersJSON(body)
	if err != nil {
		s.fail(c, err)
		return
	}

	if p.Mode == rugweave.ModePreview {
		data, err := s.previewPNG(c.Request.Context(), p)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", data)
		return
	}

	w, err := queryInt(c, "width", s.cfg.Render.PreviewWidth)
	if err != nil {
		s.fail(c, err)
		return
	}
	h, err := queryInt(c, "height", s.cfg.Render.PreviewHeight)
	if err != nil {
		s.fail(c, err)
		return
	}
	pm, err := s.render(c.Request.Context(), p, rugweave.Target{Mode: rugweave.ModeInteractive, Width: w, Height: h})
	if err != nil {
		s.fail(c, err)
		return
	}
	data, err := pixmapPNG(pm)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("X-Render-Hash", pm.Hash())
	c.Data(http.StatusOK, "image/png", data)
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Field(errs.CodeValidation, name, "%s %q is not an integer", name, raw)
	}
	return v, nil
}
