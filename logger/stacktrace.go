package logger

import (
	"fmt"
	"runtime"
	"strings"
)

// CaptureStacktrace captures the current call stack with a depth bound.
// skip is the number of frames to drop (CaptureStacktrace itself plus
// the wrapping logger call), depth limits the number of frames recorded
// (0 means the default of 32).
func CaptureStacktrace(skip int, depth int) string {
	maxDepth := depth
	if maxDepth <= 0 {
		maxDepth = 32
	}

	pcs := make([]uintptr, maxDepth*2)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return ""
	}

	var frames []string
	callersFrames := runtime.CallersFrames(pcs[:n])
	frameCount := 0
	for {
		frame, more := callersFrames.Next()
		frames = append(frames, fmt.Sprintf("%s\n\t%s:%d", frame.Function, frame.File, frame.Line))
		frameCount++
		if frameCount >= maxDepth || !more {
			break
		}
	}

	return strings.Join(frames, "\n")
}

func shouldCaptureStacktrace(level string, config ManagerConfig) bool {
	if !config.EnableStacktrace {
		return false
	}

	levels := map[string]int{
		"debug": 0,
		"info":  1,
		"warn":  2,
		"error": 3,
		"fatal": 4,
	}
	return levels[level] >= levels[config.StacktraceLevel]
}
