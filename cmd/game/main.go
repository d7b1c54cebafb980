package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"chivarun/internal/config"
	"chivarun/internal/draw"
	"chivarun/internal/game"
	"chivarun/internal/loop"
	"chivarun/internal/obstacle"
)

const (
	defaultCourseFile = "course.yaml"
	defaultAssetDir   = "assets/sprites"
	carSpriteRef      = "car.txt"
)

func main() {
	courseFile := config.GetEnv("COURSE_FILE", defaultCourseFile)
	assetDir := config.GetEnv("ASSET_DIR", defaultAssetDir)

	course, batch, err := config.Load(courseFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load course %s: %v\n", courseFile, err)
		os.Exit(1)
	}

	resolver := draw.DirResolver(assetDir)
	cache := obstacle.NewSpriteCache(obstacle.Resolver(resolver))
	engine := game.NewEngine(course, batch, cache)

	carSprite, err := resolver(carSpriteRef)
	if err != nil {
		log.Warn("car sprite unavailable, drawing a plain box", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(reader, os.Stdout, engine, loop.Options{CarSprite: carSprite}); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
