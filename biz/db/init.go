package db

import (
	"attend_now/be/biz/db/mysql"
	"attend_now/be/biz/db/redis"
)

func Init() {
	mysql.Init()
	redis.Init()
}
