package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"scenescribe/common"
	"scenescribe/demo/tui"
	"scenescribe/store"
)

func main() {
	// Load environment
	_ = godotenv.Load()

	backendURL := flag.String("backend", os.Getenv("BACKEND_URL"), "video backend URL")
	projectName := flag.String("project", "demo", "project name")
	videoPath := flag.String("video", "", "path to the source video")
	durationMs := flag.Int("duration", 60000, "video duration in milliseconds")
	useRedis := flag.Bool("redis", false, "persist projects in Redis instead of memory")
	flag.Parse()

	var projects store.ProjectStore = store.NewMemoryStore()
	if *useRedis {
		redisStore, err := store.NewRedisStoreFromEnv(context.Background())
		if err != nil {
			log.Fatalf("redis store: %v", err)
		}
		defer redisStore.Close()
		projects = redisStore
	}

	videoName := ""
	if *videoPath != "" {
		videoName = filepath.Base(*videoPath)
	}

	archiver, err := common.NewArchiverFromEnv(context.Background())
	if err != nil {
		log.Printf("export archiver disabled: %v", err)
	}

	m := tui.NewModel(tui.Config{
		ProjectName: *projectName,
		VideoName:   videoName,
		VideoPath:   *videoPath,
		DurationMs:  *durationMs,
		BackendURL:  *backendURL,
		Projects:    projects,
		Archiver:    archiver,
	})

	// Stream progress back into the program once it exists.
	var program *tea.Program
	m.Send = func(msg tea.Msg) {
		if program != nil {
			program.Send(msg)
		}
	}
	program = tea.NewProgram(m, tea.WithAltScreen())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
