package hwminer

import (
	"github.com/kaspanet/shapow/infrastructure/logger"
	"github.com/kaspanet/shapow/util/panics"
)

var log, _ = logger.Get(logger.SubsystemTags.HWMN)
var spawn = panics.GoroutineWrapperFunc(log)
