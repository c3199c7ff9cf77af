package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/goliatone/go-scenario/pkg/model"
	"github.com/goliatone/go-scenario/pkg/orchestrator"
	"github.com/goliatone/go-scenario/pkg/payload"
	"github.com/goliatone/go-scenario/pkg/render"
	"github.com/goliatone/go-scenario/pkg/renderers/jsonview"
)

const snapshotRendererName = "descriptor-snapshot"

// snapshotRenderer writes the JSON render description to disk as a side
// effect of rendering.
type snapshotRenderer struct {
	path string
	json *jsonview.Renderer
}

func (r *snapshotRenderer) Name() string {
	return snapshotRendererName
}

func (r *snapshotRenderer) ContentType() string {
	return r.json.ContentType()
}

func (r *snapshotRenderer) Render(ctx context.Context, page model.Page, options render.RenderOptions) ([]byte, error) {
	out, err := r.json.Render(ctx, page, options)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(r.path, out, 0o644); err != nil {
		return nil, err
	}
	return out, nil
}

func main() {
	var (
		payloadPath = flag.String("payload", "pkg/testsupport/testdata/onboarding.json", "page payload (JSON or YAML)")
		outputPath  = flag.String("output", "onboarding.descriptors.json", "output path for the render description")
		presetPath  = flag.String("preset", "", "optional field preset applied before rendering")
	)
	flag.Parse()

	data, err := os.ReadFile(*payloadPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read payload: %v\n", err)
		os.Exit(1)
	}

	registry, err := render.NewRegistry(&snapshotRenderer{
		path: *outputPath,
		json: jsonview.New(jsonview.WithIndent("  ")),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "registry: %v\n", err)
		os.Exit(1)
	}

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(snapshotRendererName),
	}
	if *presetPath != "" {
		raw, err := os.ReadFile(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read preset: %v\n", err)
			os.Exit(1)
		}
		preset, err := orchestrator.NewPresetTransformer(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "preset: %v\n", err)
			os.Exit(1)
		}
		options = append(options, orchestrator.WithTransformer(preset))
	}

	_, err = orchestrator.New(options...).Generate(context.Background(), orchestrator.Request{
		Payload: data,
		Format:  payload.FormatFromPath(*payloadPath),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("render description written to %s\n", *outputPath)
}
