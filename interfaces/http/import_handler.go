package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lcmtv/domain/dto"
	"lcmtv/infrastructure/configuration"
	"lcmtv/usecase"
)

// IImportHandler defines the admin import endpoints.
type IImportHandler interface {
	ImportByURL(ctx *gin.Context)
	ImportByKeyword(ctx *gin.Context)
	ImportFromPlaylist(ctx *gin.Context)
	ImportFromChannel(ctx *gin.Context)
	ImportTrending(ctx *gin.Context)
	ImportLivestreamByURL(ctx *gin.Context)
	ImportLiveFromChannel(ctx *gin.Context)
	RunInitialImport(ctx *gin.Context)
}

// ImportHandler implements the admin import endpoints.
type ImportHandler struct {
	ingestionUseCase usecase.IIngestionUseCase
}

// NewImportHandler creates a new import handler instance.
func NewImportHandler(ingestionUseCase usecase.IIngestionUseCase) IImportHandler {
	return &ImportHandler{ingestionUseCase: ingestionUseCase}
}

// ImportByURL handles POST /api/import/url
func (h *ImportHandler) ImportByURL(ctx *gin.Context) {
	req := &dto.ImportURLRequest{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	imported, err := h.ingestionUseCase.ImportByURL(ctx.Request.Context(), req.URL, req.CategoryID)
	h.respond(ctx, imported, err)
}

// ImportByKeyword handles POST /api/import/keyword
func (h *ImportHandler) ImportByKeyword(ctx *gin.Context) {
	req := &dto.ImportKeywordRequest{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	imported, err := h.ingestionUseCase.ImportByKeyword(ctx.Request.Context(), req.Keyword, req.CategoryID, req.Limit)
	h.respond(ctx, imported, err)
}

// ImportFromPlaylist handles POST /api/import/playlist
func (h *ImportHandler) ImportFromPlaylist(ctx *gin.Context) {
	req := &dto.ImportPlaylistRequest{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	imported, err := h.ingestionUseCase.ImportFromPlaylist(ctx.Request.Context(), req.PlaylistID, req.CategoryID, req.Limit)
	h.respond(ctx, imported, err)
}

// ImportFromChannel handles POST /api/import/channel
func (h *ImportHandler) ImportFromChannel(ctx *gin.Context) {
	req := &dto.ImportChannelRequest{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	imported, err := h.ingestionUseCase.ImportFromChannel(ctx.Request.Context(), req.ChannelID, req.CategoryID, req.Limit)
	h.respond(ctx, imported, err)
}

// ImportTrending handles POST /api/import/trending
func (h *ImportHandler) ImportTrending(ctx *gin.Context) {
	req := &dto.ImportTrendingRequest{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	imported, err := h.ingestionUseCase.ImportTrending(ctx.Request.Context(), req.CategoryID, req.Limit, req.RegionCode)
	h.respond(ctx, imported, err)
}

// ImportLivestreamByURL handles POST /api/import/livestream/url
func (h *ImportHandler) ImportLivestreamByURL(ctx *gin.Context) {
	req := &dto.ImportURLRequest{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	imported, err := h.ingestionUseCase.ImportLivestreamByURL(ctx.Request.Context(), req.URL, req.CategoryID)
	h.respond(ctx, imported, err)
}

// ImportLiveFromChannel handles POST /api/import/livestream/channel
func (h *ImportHandler) ImportLiveFromChannel(ctx *gin.Context) {
	req := &dto.ImportChannelRequest{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	imported, err := h.ingestionUseCase.ImportLiveFromChannel(ctx.Request.Context(), req.ChannelID, req.CategoryID, req.Limit)
	h.respond(ctx, imported, err)
}

// RunInitialImport handles POST /api/import/initial
func (h *ImportHandler) RunInitialImport(ctx *gin.Context) {
	seeds := configuration.ImportSeeds()
	imported, err := h.ingestionUseCase.RunInitialImport(ctx.Request.Context(), seeds)
	h.respond(ctx, imported, err)
}

func (h *ImportHandler) respond(ctx *gin.Context, imported int, err error) {
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	res := dto.ImportResponse{Imported: imported}
	if imported == 0 {
		res.Message = "no new records imported"
	}
	ctx.JSON(http.StatusOK, res)
}
