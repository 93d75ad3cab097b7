package main

import "flag"

// Command-line flags that control optional rendering, simulation, and runtime
// behavior.
var (
	// debugFlag enables the FPS and entity count overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and entity count overlay")

	// showLabelsFlag draws element symbols next to protons.
	showLabelsFlag = flag.Bool("show-labels", false, "draw element labels next to protons")

	// enableAudioFlag toggles the optional chime played on fusion events.
	enableAudioFlag = flag.Bool("enable-audio", false, "enable audio output for fusion events")

	// gridCellFlag overrides the spatial grid cell size.
	gridCellFlag = flag.Float64("grid-cell-size", 200.0, "spatial grid cell size in pixels")

	// cpuProfileFlag writes a CPU profile for the first seconds of the run.
	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to the given file")
)
