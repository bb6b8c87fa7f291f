package logging

import (
	"path"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// ContextHook will add go source information (file, line, func)
type ContextHook struct{}

// Levels defines which logging levels fire the hook. In our case, all levels.
func (hook ContextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire is the method that's executed when logging event is logged. This method will go back the call stack
// and find the first method outside of logrus and of this hook.
func (hook ContextHook) Fire(entry *logrus.Entry) error {
	for skip := 1; skip < 16; skip++ {
		pc, file, line, ok := runtime.Caller(skip)
		if !ok {
			break
		}
		funcName := runtime.FuncForPC(pc).Name()
		if strings.Contains(funcName, "github.com/sirupsen/logrus") ||
			strings.Contains(funcName, "ContextHook.") ||
			strings.Contains(funcName, "ContextHook).") {
			continue
		}
		entry.Data["file"] = path.Base(file)
		entry.Data["line"] = line
		entry.Data["func"] = path.Base(funcName)
		break
	}
	return nil
}
