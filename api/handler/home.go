package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/gotodo/backend/pkg/httpcontext"
	"github.com/gotodo/backend/static"
)

type HomeHandler struct {
	baseHandler
}

func NewHomeHandler(adapter *httpcontext.Adapter, logger *zap.Logger) *HomeHandler {
	return &HomeHandler{
		baseHandler: newBaseHandler(adapter, logger),
	}
}

// @Summary To-do list page
// @Tags home
// @Router / [get]
func (h *HomeHandler) Index(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.SetContentType("text/html; charset=utf-8")
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(static.IndexHTML())
}
