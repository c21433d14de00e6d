package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/streakbeast/beastcore/errcode"
	"github.com/streakbeast/beastcore/service/svc"
	service "github.com/streakbeast/beastcore/service/v1"
	types "github.com/streakbeast/beastcore/types/v1"
	"github.com/streakbeast/beastcore/xhttp"
)

func SetAgent(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SetAgentReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.NewCustomErr(err.Error()))
			return
		}
		res, err := service.SetAgent(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

func GetAgent(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		xhttp.OkJson(c, types.SetAgentResp{Agent: svcCtx.Ledger.Agent().Hex()})
	}
}
