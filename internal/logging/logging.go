// Package logging configures the commonlog backend shared by the noa
// commands and the language server, and hands out named loggers.
package logging

import (
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// Root is the name every noa logger is nested under.
const Root = "noa"

// Configure sets the process-wide verbosity; higher is chattier and 0 is
// the default. An empty path logs to stderr.
func Configure(verbosity int, path string) {
	if path == "" {
		commonlog.Configure(verbosity, nil)
		return
	}
	commonlog.Configure(verbosity, &path)
}

// Get returns the logger named noa.<name>.
func Get(name string) commonlog.Logger {
	if name == "" {
		return commonlog.GetLogger(Root)
	}
	return commonlog.GetLogger(Root + "." + name)
}
