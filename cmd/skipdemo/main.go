// Command skipdemo builds a small skip list, prints its levels, and dumps it
// to the configured store file.
package main

import (
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"

	"github.com/metailurini/skipkv"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	load := flag.Bool("load", false, "load the store file before running")
	verbose := flag.Bool("v", false, "log every operation")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *configPath, *load); err != nil {
		logger.Error("skipdemo failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, configPath string, load bool) error {
	cfg := skipkv.DefaultConfig()
	cfg.MaxLevel = 7
	if configPath != "" {
		loaded, err := skipkv.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	list, err := skipkv.NewFromConfig[int, string](cfg, skipkv.WithLogger(logger))
	if err != nil {
		return err
	}
	defer list.Close()

	if load {
		err := list.LoadFile()
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Info("no store file yet", slog.String("path", list.StorePath()))
		case err != nil:
			return err
		default:
			logger.Info("loaded store file", slog.String("path", list.StorePath()), slog.Int("size", list.Len()))
		}
	}

	for _, k := range []int{1, 4, 9, 10, 30, 40, 50, 60, 70} {
		st := list.Insert(k, "A")
		logger.Info("insert", slog.Int("key", k), slog.String("status", st.String()))
	}
	if err := list.Display(os.Stdout); err != nil {
		return err
	}

	st := list.Delete(4)
	logger.Info("delete", slog.Int("key", 4), slog.String("status", st.String()))
	if err := list.Display(os.Stdout); err != nil {
		return err
	}

	logger.Info("size", slog.Int("len", list.Len()), slog.Int("level", list.Level()))

	for _, k := range []int{9, 18} {
		v, ok := list.Search(k)
		logger.Info("search", slog.Int("key", k), slog.Bool("found", ok), slog.String("value", v))
	}

	if err := list.DumpFile(); err != nil {
		return err
	}
	logger.Info("dumped", slog.String("path", list.StorePath()))
	return nil
}
