package router

import (
	"context"
	"errors"
	"io"
	"mime/multipart"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"

	"resume-fit-go/internal/api/handler"
	"resume-fit-go/internal/config"
	"resume-fit-go/internal/constants"
	"resume-fit-go/internal/processor"
	"resume-fit-go/internal/types"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, cfg *config.Config,
	resumeHandler *handler.ResumeHandler, jobHandler *handler.JobHandler) {

	api := h.Group("/api/v1")

	api.POST("/resume/upload", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		targetJobID := ctx.PostForm("target_job_id")
		sourceChannel := ctx.PostForm("source_channel")
		if sourceChannel == "" {
			sourceChannel = constants.SourceChannelWebUpload
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		resp, err := resumeHandler.HandleResumeUpload(
			c,
			file,
			fileHeader.Size,
			fileHeader.Filename,
			targetJobID,
			sourceChannel,
		)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/resume/:submission_uuid/score", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("submission_uuid")
		jobID := ctx.Query("job_id")

		resp, err := resumeHandler.HandleGetScore(c, submissionUUID, jobID)
		if err != nil {
			ctx.JSON(consts.StatusNotFound, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// 同步评估, 不落库
	api.POST("/resume/check", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}
		jobID := ctx.PostForm("job_id")
		if jobID == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "job_id不能为空"})
			return
		}

		fileBytes, err := fileHeaderBytes(fileHeader)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "读取文件失败"})
			return
		}

		result, err := resumeHandler.HandleCheckResume(c, fileBytes, fileHeader.Filename, jobID)
		if err != nil {
			ctx.JSON(consts.StatusUnprocessableEntity, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, result)
	})

	api.GET("/jobs", func(c context.Context, ctx *app.RequestContext) {
		jobs, err := jobHandler.ListJobs(c)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"jobs": jobs})
	})

	api.GET("/jobs/:job_id", func(c context.Context, ctx *app.RequestContext) {
		job, err := jobHandler.GetJob(c, ctx.Param("job_id"))
		if err != nil {
			ctx.JSON(consts.StatusNotFound, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, job)
	})

	// 管理接口走API Key认证
	admin := api.Group("/admin")
	admin.Use(keyauth.New(
		keyauth.WithKeyLookUp("header:X-API-Key", ""),
		keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, key string) (bool, error) {
			return cfg.Server.APIKey != "" && key == cfg.Server.APIKey, nil
		}),
	))

	admin.POST("/jobs", func(c context.Context, ctx *app.RequestContext) {
		var job types.JobRequirement
		if err := ctx.BindJSON(&job); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式错误"})
			return
		}
		if err := jobHandler.CreateJob(c, &job); err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusCreated, job)
	})

	admin.DELETE("/jobs/:job_id", func(c context.Context, ctx *app.RequestContext) {
		jobID := ctx.Param("job_id")
		if err := jobHandler.ArchiveJob(c, jobID); err != nil {
			if errors.Is(err, processor.ErrJobNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": err.Error()})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"job_id": jobID, "status": constants.JobStatusArchived})
	})

	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}

func fileHeaderBytes(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
