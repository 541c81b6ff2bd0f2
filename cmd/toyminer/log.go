package main

import (
	"github.com/kaspanet/shapow/infrastructure/logger"
	"github.com/kaspanet/shapow/util/panics"
)

var (
	log, _ = logger.Get(logger.SubsystemTags.TMNR)
	spawn  = panics.GoroutineWrapperFunc(log)
)

func initLog(logFile, errLogFile string) {
	logger.InitLog(logFile, errLogFile, logger.LevelInfo)
}
