package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()

	if *cpuProfileFlag != "" {
		stop, err := startCPUCapture(*cpuProfileFlag)
		if err != nil {
			log.Fatalf("CPU profile start failed: %v", err)
		}
		time.AfterFunc(pgoRecordDuration, stop)
		defer stop()
	}

	g := newGame()
	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowTitle("Pond")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("game loop failed: %v", err)
	}
}
