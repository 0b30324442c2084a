// Command arena runs a playable sandbox encounter against a boss spec.
// It plays the game-loop integrator role: the engine decides, the arena
// moves bodies, tests collisions, and renders.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	bossFile := flag.String("boss", "bosses/riverlord_heron.yaml", "boss spec file")
	enemyFile := flag.String("enemy", "enemies/marsh_stoat.yaml", "enemy spec file, empty to skip")
	flag.Parse()

	g, err := NewGame(*bossFile, *enemyFile)
	if err != nil {
		log.Fatalf("arena: %v", err)
	}
	defer g.Close()

	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("Otterblade Arena")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
