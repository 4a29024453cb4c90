package fault

import (
	"errors"
	"fmt"

	"faultline/internal/monitor"
)

// Fixed demo faults. Every one of these is raised on purpose; nothing in
// the process treats them as actionable beyond reporting.
var (
	ErrDemoPanic     = errors.New("intentional demo panic")
	ErrDeferredPanic = errors.New("deferred demo panic fired outside the request stack")
	ErrRejection     = errors.New("demo background task failed with nobody awaiting it")
	ErrTrailPanic    = errors.New("deferred panic annotated by the preceding breadcrumb trail")
)

// OverflowError reports the controlled recursion bound being exceeded.
// Raising it on an explicit depth counter keeps the reported error
// deterministic instead of depending on the host's stack limit.
type OverflowError struct {
	Depth int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("recursion depth %d exceeded bound %d", e.Depth, maxRecursionDepth)
}

// BusinessError is a tagged domain error carrying a machine-readable code
// and a structured context block. The context exists purely to enrich the
// report sent to the monitoring client.
type BusinessError struct {
	Message string
	Code    string
	Context monitor.Context
}

func (e *BusinessError) Error() string {
	return e.Message
}
