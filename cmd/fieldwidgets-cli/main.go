package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-fieldwidgets/pkg/dispatch"
	"github.com/goliatone/go-fieldwidgets/pkg/field"
	"github.com/goliatone/go-fieldwidgets/pkg/handler"
	"github.com/goliatone/go-fieldwidgets/pkg/handlers"
	"github.com/goliatone/go-fieldwidgets/pkg/registry"
	"github.com/goliatone/go-fieldwidgets/pkg/render/html"
	"github.com/goliatone/go-fieldwidgets/pkg/render/tui"
	"github.com/goliatone/go-fieldwidgets/pkg/source/openapi"
	"github.com/goliatone/go-fieldwidgets/pkg/uihints"
	"github.com/goliatone/go-fieldwidgets/pkg/widget"
)

func main() {
	source := flag.String("source", "", "OpenAPI document path")
	record := flag.String("record", "", "component schema to render (lists schemas if empty)")
	hintsDir := flag.String("hints", "", "directory with YAML hint overlays")
	values := flag.String("values", "", "JSON file with current record values")
	renderer := flag.String("renderer", "html", "renderer to use: html or tui")
	output := flag.String("output", "", "output file (stdout if empty)")
	verbose := flag.Bool("verbose", false, "log handler diagnostics")
	flag.Parse()

	if *source == "" {
		log.Fatal("missing -source: an OpenAPI document path is required")
	}

	ctx := context.Background()

	doc, err := openapi.LoadFile(ctx, *source, openapi.Options{})
	if err != nil {
		log.Fatalf("load document: %v", err)
	}

	if *record == "" {
		fmt.Println(strings.Join(doc.RecordNames(), "\n"))
		return
	}

	fields, err := doc.Descriptors(*record)
	if err != nil {
		log.Fatalf("read record: %v", err)
	}

	if *hintsDir != "" {
		store, err := uihints.LoadFS(os.DirFS(*hintsDir))
		if err != nil {
			log.Fatalf("load hint overlays: %v", err)
		}
		fields = store.Apply(*record, fields)
	}

	state, err := loadValues(*values)
	if err != nil {
		log.Fatalf("load values: %v", err)
	}

	logger := logrus.New()
	if !*verbose {
		logger.SetLevel(logrus.ErrorLevel)
	}

	reg := registry.New()
	handlers.Install(reg, logger)
	dispatcher := dispatch.New(reg, dispatch.WithLogger(logger))

	widgets := renderWidgets(dispatcher, fields, state)

	switch *renderer {
	case "html":
		if err := runHTML(ctx, *record, widgets, *output); err != nil {
			log.Fatalf("render html: %v", err)
		}
	case "tui":
		if err := runTUI(ctx, *record, widgets, state, *output); err != nil {
			log.Fatalf("run tui: %v", err)
		}
	default:
		log.Fatalf("unknown renderer %q (want html or tui)", *renderer)
	}
}

func renderWidgets(dispatcher *dispatch.Dispatcher, fields []field.Descriptor, state map[string]any) []*widget.Widget {
	widgets := make([]*widget.Widget, 0, len(fields))
	for _, desc := range fields {
		widgets = append(widgets, dispatcher.RenderField(
			state,
			desc.Name,
			desc,
			state[desc.Name],
			handler.Config{},
			func(value any) {
				state[desc.Name] = value
			},
		))
	}
	return widgets
}

func runHTML(ctx context.Context, record string, widgets []*widget.Widget, output string) error {
	renderer, err := html.New()
	if err != nil {
		return err
	}
	markup, err := renderer.Render(ctx, html.Form{Record: record, Widgets: widgets})
	if err != nil {
		return err
	}
	return writeOutput(output, markup)
}

func runTUI(ctx context.Context, record string, widgets []*widget.Widget, state map[string]any, output string) error {
	session := tui.NewSession()
	if err := session.Run(ctx, tui.Form{Record: record, Widgets: widgets}); err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(output, append(encoded, '\n'))
}

func loadValues(path string) (map[string]any, error) {
	state := make(map[string]any)
	if path == "" {
		return state, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return state, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("written to %s\n", path)
	return nil
}
