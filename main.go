package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"motionaura/internal/aura"
	"motionaura/internal/config"
	"motionaura/internal/frame"
	"motionaura/internal/logging"
	"motionaura/internal/motion"
	"motionaura/internal/video"
)

const usage = "Использование: motion-aura <video_file>"

func newApp() *cli.App {
	return &cli.App{
		Name:            "motion-aura",
		Usage:           "Обработка видео с эффектом 'ауры'.",
		ArgsUsage:       "video_file",
		HideHelp:        true,
		HideHelpCommand: true,
		Action:          run,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(usage, 2)
	}

	cfg := config.DefaultConfig()
	cfg.VideoPath = c.Args().First()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New(os.Stderr, cfg.Verbose)

	report, err := aura.Run(ctx, cfg, logger)
	if err != nil {
		color.Red("%s", errorMessage(err))
		return cli.Exit("", 1)
	}

	fmt.Printf("Обработанное видео сохранено как %s\n", report.Output)
	return nil
}

func errorMessage(err error) string {
	var notFound *video.NotFoundError
	var openErr *video.OpenError

	switch {
	case errors.As(err, &notFound):
		return fmt.Sprintf("Ошибка: Файл %s не найден!", notFound.Path)
	case errors.As(err, &openErr):
		return "Ошибка: Не удалось открыть видеофайл!"
	case errors.Is(err, frame.ErrEmptyVideo), errors.Is(err, motion.ErrTooShort):
		return fmt.Sprintf("Ошибка: В видеофайле недостаточно кадров для обработки (%v)", err)
	default:
		return fmt.Sprintf("Ошибка: %v", err)
	}
}
