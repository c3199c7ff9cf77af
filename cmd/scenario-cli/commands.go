package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-scenario/internal/openapi/parser"
	"github.com/goliatone/go-scenario/pkg/openapi"
	"github.com/goliatone/go-scenario/pkg/orchestrator"
	"github.com/goliatone/go-scenario/pkg/payload"
	"github.com/goliatone/go-scenario/pkg/render"
	"github.com/goliatone/go-scenario/pkg/renderers/tui"
)

func (a *app) orchestrator(presetPath string) (*orchestrator.Orchestrator, error) {
	options := []orchestrator.Option{orchestrator.WithLogger(a.logger)}
	if presetPath != "" {
		data, err := os.ReadFile(presetPath)
		if err != nil {
			return nil, fmt.Errorf("read preset: %w", err)
		}
		preset, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTransformer(preset))
	}
	return orchestrator.New(options...), nil
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		renderer string
		format   string
		title    string
		output   string
		preset   string
		watch    bool
		answers  answerFlags
	)
	cmd := &cobra.Command{
		Use:   "render [payload]",
		Short: "Render a page payload",
		Long: `Render a page payload with one of the registered renderers (html, json).

The renderer defaults to $SCENARIO_RENDERER, then html.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := firstArg(args)
			pageFormat, err := a.resolveFormat(format, path)
			if err != nil {
				return err
			}
			seed, err := answers.load()
			if err != nil {
				return err
			}
			gen, err := a.orchestrator(preset)
			if err != nil {
				return err
			}

			name := renderer
			if name == "" {
				name = a.envDefault(envRenderer, "html")
			}
			renderOnce := func() error {
				data, err := a.readInput(path)
				if err != nil {
					return err
				}
				out, err := gen.Generate(cmd.Context(), orchestrator.Request{
					Payload:       data,
					Format:        pageFormat,
					Renderer:      name,
					RenderOptions: render.RenderOptions{Answers: seed, Title: title},
				})
				if err != nil {
					return err
				}
				return a.writeOutput(output, out)
			}

			if !watch {
				return renderOnce()
			}
			if path == "" || path == "-" || output == "" {
				return fmt.Errorf("--watch needs a payload file and --output")
			}
			if err := renderOnce(); err != nil {
				a.logger.Error("render failed", zap.String("path", path), zap.Error(err))
			}
			return a.watchFile(cmd.Context(), path, renderOnce)
		},
	}
	cmd.Flags().StringVarP(&renderer, "renderer", "r", "", "Renderer name (html, json)")
	cmd.Flags().StringVar(&format, "format", "", "Payload format: json or yaml (default: detect)")
	cmd.Flags().StringVar(&title, "title", "", "Document title")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().StringVar(&preset, "preset", "", "Field preset document applied before rendering")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render whenever the payload file changes")
	addAnswerFlags(cmd, &answers)
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	var (
		format  string
		answers answerFlags
	)
	cmd := &cobra.Command{
		Use:   "validate [payload]",
		Short: "Validate answers against a page",
		Long: `Decode a page payload, check the given answers against every field and
print the per-field results as JSON. Exits non-zero when the page is invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := firstArg(args)
			data, err := a.readInput(path)
			if err != nil {
				return err
			}
			pageFormat, err := a.resolveFormat(format, path)
			if err != nil {
				return err
			}
			seed, err := answers.load()
			if err != nil {
				return err
			}
			gen, err := a.orchestrator("")
			if err != nil {
				return err
			}

			result, err := gen.Validate(cmd.Context(), orchestrator.Request{
				Payload:       data,
				Format:        pageFormat,
				RenderOptions: render.RenderOptions{Answers: seed},
			})
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			if err := a.writeOutput("", append(out, '\n')); err != nil {
				return err
			}
			if !result.Valid {
				return fmt.Errorf("page is invalid: %s", strings.Join(result.Invalid(), ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Payload format: json or yaml (default: detect)")
	addAnswerFlags(cmd, &answers)
	return cmd
}

func newPromptCmd(a *app) *cobra.Command {
	var (
		format       string
		outputFormat string
		attempts     int
		answers      answerFlags
	)
	cmd := &cobra.Command{
		Use:   "prompt [payload]",
		Short: "Fill a page interactively in the terminal",
		Long: `Walk the page stage by stage: text is printed, text fields are asked until
they validate and the buttons are offered as the final choice. The chosen
action and the answers are printed when done.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := firstArg(args)
			if path == "" || path == "-" {
				return fmt.Errorf("prompt needs a payload file, stdin is used for answers")
			}
			data, err := a.readInput(path)
			if err != nil {
				return err
			}
			pageFormat, err := a.resolveFormat(format, path)
			if err != nil {
				return err
			}
			seed, err := answers.load()
			if err != nil {
				return err
			}
			decoder, err := payload.NewDecoder(payload.WithLogger(a.logger))
			if err != nil {
				return err
			}
			page, err := decoder.Decode(data, pageFormat)
			if err != nil {
				return err
			}

			renderer, err := tui.New(
				tui.WithOutputFormat(tui.OutputFormat(outputFormat)),
				tui.WithMaxAttempts(attempts),
				tui.WithLogger(a.logger),
				tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}),
			)
			if err != nil {
				return err
			}
			out, err := renderer.Render(cmd.Context(), page, render.RenderOptions{Answers: seed})
			if err != nil {
				return err
			}
			return a.writeOutput("", append(out, '\n'))
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Payload format: json or yaml (default: detect)")
	cmd.Flags().StringVar(&outputFormat, "output-format", string(tui.OutputFormatJSON), "Result format: json, form or pretty")
	cmd.Flags().IntVar(&attempts, "attempts", tui.DefaultMaxAttempts, "How often an invalid field is asked again")
	addAnswerFlags(cmd, &answers)
	return cmd
}

func newFromOpenAPICmd(a *app) *cobra.Command {
	var (
		operation  string
		list       bool
		submitText string
		output     string
	)
	cmd := &cobra.Command{
		Use:   "from-openapi [document]",
		Short: "Build a page payload from an OpenAPI operation",
		Long: `Build a page payload from the JSON request body of an OpenAPI operation.
Properties become fields sorted by name; string properties are text fields.
Use --list to print the available operation ids.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(firstArg(args))
			if err != nil {
				return err
			}
			ops, err := parser.New(parser.Options{}).Operations(cmd.Context(), data)
			if err != nil {
				return err
			}
			if list {
				return a.writeOutput("", []byte(strings.Join(parser.OperationIDs(ops), "\n")+"\n"))
			}
			op, ok := ops[operation]
			if !ok {
				return fmt.Errorf("operation %q not found (available: %s)", operation, strings.Join(parser.OperationIDs(ops), ", "))
			}

			page, err := openapi.NewPageBuilder(
				openapi.WithSubmitText(submitText),
				openapi.WithLogger(a.logger),
			).Build(op)
			if err != nil {
				return err
			}
			out, err := payload.Encode(page)
			if err != nil {
				return err
			}
			return a.writeOutput(output, append(out, '\n'))
		},
	}
	cmd.Flags().StringVar(&operation, "operation", "", "Operation id to convert")
	cmd.Flags().BoolVar(&list, "list", false, "List operation ids and exit")
	cmd.Flags().StringVar(&submitText, "submit-text", openapi.DefaultSubmitText, "Label of the closing button")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	return cmd
}

func addAnswerFlags(cmd *cobra.Command, answers *answerFlags) {
	cmd.Flags().StringArrayVarP(&answers.pairs, "answer", "a", nil, "Answer as id=value (repeatable)")
	cmd.Flags().StringVar(&answers.file, "answers", "", "JSON or YAML file mapping field ids to values")
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
