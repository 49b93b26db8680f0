package logger

import (
	"io"
	"os"

	"attend_now/be/biz/util/trace_info"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzlogrus "github.com/hertz-contrib/logger/logrus"
	"github.com/sirupsen/logrus"
)

func Init() {
	logger := hertzlogrus.NewLogger(hertzlogrus.WithHook(&logIdHook{}))
	logger.SetLevel(newLevel())
	logger.SetOutput(io.MultiWriter(os.Stdout, newOutput()))

	l := logger.Logger()
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	hlog.SetLogger(logger)
}

// logIdHook copies the request's trace id from the entry context into
// the structured fields.
type logIdHook struct{}

func (h *logIdHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *logIdHook) Fire(entry *logrus.Entry) error {
	if entry.Context == nil {
		return nil
	}
	if logId := trace_info.GetLogId(entry.Context); logId != "" {
		entry.Data["log_id"] = logId
	}
	return nil
}
