//go:build windows

package signals

import "os"

// Termination lists the signals an orchestrator uses to stop a task.
var Termination = []os.Signal{os.Interrupt}
