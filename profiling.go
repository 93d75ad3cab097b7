package main

import (
	"os"
	"runtime/pprof"
	"sync"
)

// startCPUCapture begins writing a CPU profile to the provided path. The
// returned stop function is safe to call more than once.
func startCPUCapture(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	var once sync.Once
	stop := func() {
		once.Do(func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		})
	}
	return stop, nil
}
