package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/streakbeast/beastcore/errcode"
	"github.com/streakbeast/beastcore/service/svc"
	service "github.com/streakbeast/beastcore/service/v1"
	types "github.com/streakbeast/beastcore/types/v1"
	"github.com/streakbeast/beastcore/xhttp"
)

func Distribute(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		poolID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req types.DistributeReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.NewCustomErr(err.Error()))
			return
		}
		res, err := service.Distribute(c.Request.Context(), svcCtx, poolID, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

func GetPool(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		poolID, ok := pathID(c, "id")
		if !ok {
			return
		}
		res, err := service.GetPool(c.Request.Context(), svcCtx, poolID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

func GetLeaderboard(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		poolID, ok := pathID(c, "id")
		if !ok {
			return
		}
		res, err := service.GetLeaderboard(c.Request.Context(), svcCtx, poolID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}
