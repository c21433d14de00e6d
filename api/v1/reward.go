package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/streakbeast/beastcore/errcode"
	"github.com/streakbeast/beastcore/service/svc"
	service "github.com/streakbeast/beastcore/service/v1"
	types "github.com/streakbeast/beastcore/types/v1"
	"github.com/streakbeast/beastcore/xhttp"
)

func ClaimReward(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		poolID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req types.ClaimReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.NewCustomErr(err.Error()))
			return
		}
		res, err := service.ClaimReward(c.Request.Context(), svcCtx, poolID, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

func GetRewardBalance(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		poolID, ok := pathID(c, "id")
		if !ok {
			return
		}
		addr := c.Param("addr")
		if addr == "" {
			xhttp.Error(c, errcode.NewCustomErr("user addr is null"))
			return
		}
		res, err := service.GetRewardBalance(c.Request.Context(), svcCtx, poolID, addr)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

func GetUserPayouts(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		addr := c.Param("addr")
		if addr == "" {
			xhttp.Error(c, errcode.NewCustomErr("user addr is null"))
			return
		}
		res, err := service.GetUserPayouts(c.Request.Context(), svcCtx, addr)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}
