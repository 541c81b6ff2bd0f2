package main

import (
	"github.com/kaspanet/shapow/infrastructure/logger"
	"github.com/kaspanet/shapow/util/panics"
)

var (
	log, _ = logger.Get(logger.SubsystemTags.VGEN)
	spawn  = panics.GoroutineWrapperFunc(log)
)

func initLog(logFile, errLogFile string, verbose bool) {
	stdoutLevel := logger.LevelOff
	if verbose {
		stdoutLevel = logger.LevelInfo
	}
	logger.InitLog(logFile, errLogFile, stdoutLevel)
}
