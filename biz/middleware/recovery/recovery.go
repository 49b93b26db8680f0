package recovery

import (
	"context"
	"net/http"

	"attend_now/be/biz/model/dto"
	"attend_now/be/biz/model/errs"

	"github.com/cloudwego/hertz/pkg/app"
	hertzrecovery "github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func New() app.HandlerFunc {
	return hertzrecovery.Recovery(hertzrecovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.CtxErrorf(ctx, "panic recovered: %v\n%s", err, stack)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.CommonResp{
				Success: false,
				Code:    int(errs.ServerError.Code()),
				Message: errs.ServerError.Msg(),
			})
		}))
}
