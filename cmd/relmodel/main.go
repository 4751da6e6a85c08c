// relmodel builds the persistence entity model of a package tree and
// writes it out for the generation stage.
//
// Usage:
//
//	relmodel [flags] [patterns...]
//
// Patterns follow the Go package-pattern syntax ("./...", "./models").
// Without an output path the model is written to stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/syssam/relmodel/compiler/gen"
	"github.com/syssam/relmodel/compiler/load"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a relmodel.yaml config file")
		output     = flag.String("o", "", "output path (default stdout)")
		format     = flag.String("format", "json", "output format: json or msgpack")
		watch      = flag.Bool("watch", false, "rebuild on source changes")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fail(err)
	}
	if args := flag.Args(); len(args) > 0 {
		cfg.Patterns = args
	}

	if *watch {
		err = runWatch(cfg, *format, *output)
	} else {
		err = run(cfg, *format, *output)
	}
	if err != nil {
		fail(err)
	}
}

func loadConfig(path string) (*load.Config, error) {
	if path == "" {
		return &load.Config{}, nil
	}
	return load.ConfigFromFile(path)
}

func run(cfg *load.Config, format, output string) error {
	decls, err := load.Parse(cfg)
	if err != nil {
		return err
	}
	graphs, err := gen.Build(decls)
	if err != nil {
		return err
	}
	buf, err := encode(graphs, format)
	if err != nil {
		return err
	}
	if output == "" {
		_, err = os.Stdout.Write(buf)
		return err
	}
	return os.WriteFile(output, buf, 0o644)
}

func runWatch(cfg *load.Config, format, output string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := run(cfg, format, output); err != nil {
		// Keep watching; the next save may fix the model.
		fmt.Fprintln(os.Stderr, "relmodel:", err)
	}
	return load.Watch(ctx, []string{dir}, func() error {
		if err := run(cfg, format, output); err != nil {
			fmt.Fprintln(os.Stderr, "relmodel:", err)
		}
		return nil
	})
}

func encode(graphs *gen.Graphs, format string) ([]byte, error) {
	switch format {
	case "json":
		buf, err := json.MarshalIndent(graphs, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(buf, '\n'), nil
	case "msgpack":
		return graphs.MarshalBinary()
	default:
		return nil, fmt.Errorf("relmodel: unknown output format %q", format)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "relmodel:", err)
	os.Exit(1)
}
