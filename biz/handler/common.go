package handler

import (
	"attend_now/be/biz/model/domain"

	"github.com/cloudwego/hertz/pkg/app"
)

func clientInfo(c *app.RequestContext) domain.ClientInfo {
	return domain.ClientInfo{
		IPAddress: c.ClientIP(),
		UserAgent: string(c.UserAgent()),
	}
}
