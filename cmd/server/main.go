package main

import (
	"flag"

	be "attend_now/be"
	"attend_now/be/biz/config"
	"attend_now/be/biz/db/mysql"
	"attend_now/be/biz/db/redis"
	"attend_now/be/biz/util/logger"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	confPath := flag.String("conf", "./conf/deploy.yml", "config file path")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	config.Init(*confPath)
	logger.Init()
	mysql.Init()
	redis.Init()

	h := be.NewEngine(server.WithHostPorts(*addr))
	h.Spin()
}
