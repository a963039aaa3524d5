package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ivlev/asciimator/internal/animation"
	"github.com/ivlev/asciimator/internal/broadcast"
	"github.com/ivlev/asciimator/internal/codec"
	"github.com/ivlev/asciimator/internal/config"
	"github.com/ivlev/asciimator/internal/export"
	"github.com/ivlev/asciimator/internal/player"
	"github.com/ivlev/asciimator/internal/shell"
	"github.com/ivlev/asciimator/internal/system"
	"github.com/ivlev/asciimator/internal/terminal"
)

var buildVersion = "dev"

func main() {
	configPtr := flag.String("config", "asciimator.yaml", "YAML config file (missing file = defaults)")
	loadPtr := flag.String("load", "", "Animation to open: a .json/.yaml file or 'latest'")
	speedPtr := flag.Int("speed", 0, "Speed of the demo animation in ms")
	ticksPtr := flag.Int("ticks", 0, "Maximum frames shown per play command")
	dirPtr := flag.String("dir", "", "Directory for generated save/export files")
	formatPtr := flag.String("format", "", "Default save format: json, yaml")
	mqttPtr := flag.String("mqtt", "", "MQTT broker URL to mirror playback to, e.g. tcp://localhost:1883")
	exportPtr := flag.String("export", "", "Export the loaded animation to this GIF file and exit")
	statsPtr := flag.Bool("stats", false, "Print a performance report after export")
	versionPtr := flag.Bool("version", false, "Print version and exit")

	flag.Parse()

	if *versionPtr {
		fmt.Println(buildVersion)
		return
	}

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatalf("[-] Config error: %v", err)
	}
	cfg.BuildVersion = buildVersion

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "load":
			cfg.LoadPath = *loadPtr
		case "speed":
			cfg.SpeedMs = *speedPtr
		case "ticks":
			cfg.PlayTicks = *ticksPtr
		case "dir":
			cfg.AnimationsDir = *dirPtr
		case "format":
			cfg.Format = *formatPtr
		case "mqtt":
			cfg.Mqtt.URL = *mqttPtr
		case "stats":
			cfg.Export.ShowStats = *statsPtr
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Invalid configuration: %v", err)
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("[-] Cannot open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	anim, err := openAnimation(cfg)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *exportPtr != "" {
		if err := runExport(ctx, cfg, anim, *exportPtr); err != nil {
			log.Fatalf("[-] Export failed: %v", err)
		}
		return
	}

	var sinks []player.Sink
	if cfg.Mqtt.URL != "" {
		pub, err := broadcast.Connect(cfg.Mqtt)
		if err != nil {
			log.Printf("[!] MQTT mirror disabled: %v", err)
		} else {
			defer pub.Close()
			sinks = append(sinks, pub)
		}
	}

	err = terminal.Run(os.Stdin, os.Stdout, func(s *terminal.Session) error {
		return shell.New(cfg, s, anim, sinks...).Run(ctx)
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("[-] %v", err)
	}
}

func openAnimation(cfg *config.Config) (*animation.Animation, error) {
	path := cfg.LoadPath
	if path == "" {
		return shell.Demo(cfg.SpeedMs)
	}
	if path == "latest" {
		latest, err := system.FindLatestAnimation(cfg.AnimationsDir)
		if err != nil {
			return nil, err
		}
		path = latest
	}

	a, err := codec.Load(path)
	if err != nil {
		return nil, err
	}
	log.Printf("[*] Animation loaded from %s (%d frames, %dms)", path, a.Len(), a.Speed())
	return a, nil
}

func runExport(ctx context.Context, cfg *config.Config, anim *animation.Animation, path string) error {
	opts, err := export.OptionsFromConfig(cfg.Export)
	if err != nil {
		return err
	}
	res, err := export.WriteFile(ctx, anim, path, opts)
	if err != nil {
		return err
	}

	if cfg.Export.ShowStats {
		stats, err := system.ReadStats()
		if err != nil {
			log.Printf("[!] Could not read stats: %v", err)
		} else {
			fmt.Print(system.Report(cfg.BuildVersion, res.Frames, res.Elapsed, stats))
		}
	}

	fmt.Printf("[+++] Success! Result: %s\n", res.Path)
	return nil
}
