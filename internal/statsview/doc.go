// Package statsview serves runtime statistics of the emulator process
// (heap, goroutines, GC pauses) over http.
//
// The server is only compiled in with the statsview build tag:
//
//	go build -tags statsview ./cmd/sdl
//
// After launch the statistics are viewable at
// http://localhost:12600/debug/statsview and the standard pprof endpoints
// at http://localhost:12600/debug/pprof/.
package statsview

// Address is where the statistics server listens.
const Address = "localhost:12600"

const url = "/debug/statsview"
