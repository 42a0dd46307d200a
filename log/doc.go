// Package log provides the leveled logging interface used across
// scalargrad, mainly by the training loop.
//
// The Logger interface has the usual four levels. Two implementations ship
// with the package: DefaultLogger on the standard library's log package, and
// GologLogger wrapping github.com/kataras/golog for colored leveled output.
// A package-level default logger backs the free functions, so libraries can
// log without threading a logger through every call:
//
//	log.SetLogLevel(log.LogLevelDebug)
//	log.Info("epoch %d: loss %.6f", epoch, loss)
//
// NoOpLogger silences a component entirely.
package log
