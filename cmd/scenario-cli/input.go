package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-scenario/pkg/model"
	"github.com/goliatone/go-scenario/pkg/payload"
)

// readInput reads the named file, or stdin when name is empty or "-".
func (a *app) readInput(name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(a.stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// resolveFormat picks the flag value, then SCENARIO_FORMAT, then the file
// extension.
func (a *app) resolveFormat(flagValue, path string) (payload.Format, error) {
	raw := flagValue
	if raw == "" {
		raw = a.envDefault(envFormat, "")
	}
	if raw == "" {
		return payload.FormatFromPath(path), nil
	}
	return payload.ParseFormat(raw)
}

// answerFlags collects --answer id=value pairs and an optional --answers
// file holding a JSON or YAML map.
type answerFlags struct {
	pairs []string
	file  string
}

func (f answerFlags) load() (model.Answers, error) {
	values := map[string]string{}
	if f.file != "" {
		data, err := os.ReadFile(f.file)
		if err != nil {
			return nil, fmt.Errorf("read answers: %w", err)
		}
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parse answers %s: %w", f.file, err)
		}
	}
	for _, pair := range f.pairs {
		id, value, ok := strings.Cut(pair, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid answer %q, want id=value", pair)
		}
		values[id] = value
	}
	return model.AnswersFromStrings(values), nil
}

func (a *app) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := a.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	a.logger.Info("output written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
