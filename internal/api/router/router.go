package router

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"career-match-go/internal/api/handler"
	"career-match-go/internal/parser"
	"career-match-go/internal/processor"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, profileHandler *handler.ProfileHandler, matchHandler *handler.MatchHandler) {
	api := h.Group("/api/v1")

	api.POST("/profile/upload", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		userID := ctx.PostForm("user_id")

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		resp, err := profileHandler.HandleProfileUpload(c, file, fileHeader.Size, fileHeader.Filename, userID)
		if err != nil {
			ctx.JSON(statusForError(err), utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/profile/:id", func(c context.Context, ctx *app.RequestContext) {
		profileID := ctx.Param("id")
		if profileID == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "画像ID不能为空"})
			return
		}

		resp, err := profileHandler.HandleGetProfile(c, profileID)
		if err != nil {
			ctx.JSON(statusForError(err), utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/match/companies", func(c context.Context, ctx *app.RequestContext) {
		var req handler.RankCompaniesRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
			return
		}

		resp, err := matchHandler.HandleRankCompanies(c, &req)
		if err != nil {
			ctx.JSON(statusForError(err), utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/match/people", func(c context.Context, ctx *app.RequestContext) {
		var req handler.RankPeopleRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
			return
		}

		resp, err := matchHandler.HandleRankPeople(c, &req)
		if err != nil {
			ctx.JSON(statusForError(err), utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	// 添加健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}

// statusForError 将处理流程的错误映射为HTTP状态码
func statusForError(err error) int {
	var decodeErr *parser.FormatDecodeError
	switch {
	case errors.Is(err, parser.ErrUnsupportedFormat):
		return consts.StatusBadRequest
	case errors.As(err, &decodeErr):
		return consts.StatusUnprocessableEntity
	case errors.Is(err, processor.ErrQuotaExceeded):
		return consts.StatusTooManyRequests
	case errors.Is(err, processor.ErrProfileNotFound):
		return consts.StatusNotFound
	case errors.Is(err, processor.ErrProfileNotReady):
		return consts.StatusConflict
	default:
		return consts.StatusInternalServerError
	}
}
