package main

import (
	"flag"
	_ "net/http/pprof"

	"github.com/streakbeast/beastcore/api/router"
	"github.com/streakbeast/beastcore/app"
	"github.com/streakbeast/beastcore/config"
	"github.com/streakbeast/beastcore/logger/xzap"
	"github.com/streakbeast/beastcore/metrics"
	"github.com/streakbeast/beastcore/service/svc"
	service "github.com/streakbeast/beastcore/service/v1"
)

const (
	defaultConfigPath = "./config/config.toml"
)

func main() {
	conf := flag.String("conf", defaultConfigPath, "conf file path")
	flag.Parse()
	c, err := config.UnmarshalConfig(*conf)
	if err != nil {
		panic(err)
	}

	if err := xzap.Init(c.Log); err != nil {
		panic(err)
	}
	defer xzap.Sync()

	metrics.Init()

	serverCtx, err := svc.NewServiceContext(c)
	if err != nil {
		panic(err)
	}

	r := router.NewRouter(serverCtx)

	// Sweeps ended pools and settles them without waiting for an api call.
	service.StartPoolMonitor(serverCtx)

	platform, err := app.NewPlatform(c, r, serverCtx)
	if err != nil {
		panic(err)
	}
	platform.Start()
}
