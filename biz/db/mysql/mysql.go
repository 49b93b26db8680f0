package mysql

import (
	"fmt"

	"attend_now/be/biz/config"
	"attend_now/be/biz/model/storage"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var dbConn *gorm.DB

func Init() {
	conf := config.GetMySQLConf()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.Username, conf.Password, conf.IP, conf.Port, conf.DBName)

	conn, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	if err := conn.AutoMigrate(
		&storage.UserRecord{},
		&storage.UserCredentialRecord{},
		&storage.MfaSecretRecord{},
		&storage.AttendanceRecord{},
		&storage.LoginAttemptRecord{},
		&storage.SecurityEventRecord{},
	); err != nil {
		panic(err)
	}

	dbConn = conn
}

func GetDbConn() *gorm.DB {
	return dbConn
}
