package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	v1 "github.com/streakbeast/beastcore/api/v1"
	"github.com/streakbeast/beastcore/metrics"
	"github.com/streakbeast/beastcore/service/svc"
)

func NewRouter(svcCtx *svc.ServerCtx) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(traceMiddleware())
	r.Use(accessLogMiddleware())
	r.Use(metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Trace-Id"},
		ExposeHeaders: []string{"X-Trace-Id"},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		habits := api.Group("/habits")
		{
			habits.POST("/stake", v1.Stake(svcCtx))
			habits.POST("/:id/checkin", v1.CheckIn(svcCtx))
			habits.GET("/:id", v1.GetHabit(svcCtx))
			habits.GET("/:id/streak", v1.GetStreak(svcCtx))
		}

		pools := api.Group("/pools")
		{
			pools.POST("/:id/distribute", v1.Distribute(svcCtx))
			pools.POST("/:id/claim", v1.ClaimReward(svcCtx))
			pools.GET("/:id", v1.GetPool(svcCtx))
			pools.GET("/:id/leaderboard", v1.GetLeaderboard(svcCtx))
			pools.GET("/:id/rewards/:addr", v1.GetRewardBalance(svcCtx))
		}

		users := api.Group("/users")
		{
			users.GET("/:addr/habits", v1.GetUserHabits(svcCtx))
			users.GET("/:addr/badges", v1.GetUserBadges(svcCtx))
			users.GET("/:addr/payouts", v1.GetUserPayouts(svcCtx))
		}

		api.POST("/agent", v1.SetAgent(svcCtx))
		api.GET("/agent", v1.GetAgent(svcCtx))
	}
	return r
}

// registerValidators adds the hexaddr binding rule used by request structs.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hexaddr", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if len(s) != 42 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
				return false
			}
			for _, r := range s[2:] {
				switch {
				case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
				default:
					return false
				}
			}
			return true
		})
	}
}
