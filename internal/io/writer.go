package io

import (
	"encoding/json"
	"fmt"
	stdio "io"
	"os"
	"reflect"

	"github.com/baldidon/transfermarkt-api/internal/config"
)

// ResultWriter writes results to a file or to Stdout
type ResultWriter struct {
	Config *config.IOConfig
	Stdout stdio.Writer
}

// NewResultWriter creates a new result writer
func NewResultWriter(config *config.IOConfig) *ResultWriter {
	return &ResultWriter{
		Config: config,
		Stdout: os.Stdout,
	}
}

// Write encodes v in the configured format to the configured destination.
// With the jsonl format a slice is written one element per line.
func (w *ResultWriter) Write(v any) error {
	if w.Config.OutputFile == "" || w.Config.OutputFile == "-" {
		return w.encode(w.Stdout, v)
	}

	f, err := os.Create(w.Config.OutputFile)
	if err != nil {
		return err
	}
	if err := w.encode(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (w *ResultWriter) encode(out stdio.Writer, v any) error {
	switch w.Config.OutputFormat {
	case "", "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)

	case "jsonl":
		enc := json.NewEncoder(out)
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			return enc.Encode(v)
		}
		for i := 0; i < rv.Len(); i++ {
			if err := enc.Encode(rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", w.Config.OutputFormat)
	}
}
