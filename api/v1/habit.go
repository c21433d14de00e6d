package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/streakbeast/beastcore/errcode"
	"github.com/streakbeast/beastcore/service/svc"
	service "github.com/streakbeast/beastcore/service/v1"
	types "github.com/streakbeast/beastcore/types/v1"
	"github.com/streakbeast/beastcore/xhttp"
)

func Stake(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.StakeReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.NewCustomErr(err.Error()))
			return
		}
		res, err := service.Stake(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

func CheckIn(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		habitID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req types.CheckInReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.NewCustomErr(err.Error()))
			return
		}
		res, err := service.CheckIn(c.Request.Context(), svcCtx, habitID, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

func GetHabit(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		habitID, ok := pathID(c, "id")
		if !ok {
			return
		}
		res, err := service.GetHabit(c.Request.Context(), svcCtx, habitID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

func GetStreak(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		habitID, ok := pathID(c, "id")
		if !ok {
			return
		}
		streak, err := service.GetStreak(c.Request.Context(), svcCtx, habitID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, gin.H{"habit_id": habitID, "current_streak": streak})
	}
}

func GetUserHabits(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		addr := c.Param("addr")
		if addr == "" {
			xhttp.Error(c, errcode.NewCustomErr("user addr is null"))
			return
		}
		res, err := service.GetUserHabits(c.Request.Context(), svcCtx, addr)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

func GetUserBadges(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		addr := c.Param("addr")
		if addr == "" {
			xhttp.Error(c, errcode.NewCustomErr("user addr is null"))
			return
		}
		res, err := service.GetUserBadges(c.Request.Context(), svcCtx, addr)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// pathID parses a numeric path segment, replying 400 itself on bad input.
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		xhttp.Error(c, errcode.NewCustomErr("invalid "+name+" param"))
		return 0, false
	}
	return id, true
}
