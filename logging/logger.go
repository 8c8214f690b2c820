package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func BoostrapLogger() {
	Log = &logrus.Logger{
		Formatter: &logrus.TextFormatter{
			DisableColors: false,
			FullTimestamp: true,
		},
		Level: logrus.DebugLevel,
	}

	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		Log.Level = lvl
	}

	Log.SetReportCaller(true)
	Log.Out = os.Stdout
}
