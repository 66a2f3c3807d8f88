// Package results reads recorded test sessions from JSON or YAML result files.
package results

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/romanresh/test-runner-nunit-reporter/internal/model"
	"github.com/romanresh/test-runner-nunit-reporter/internal/ports"
	reporterrors "github.com/romanresh/test-runner-nunit-reporter/pkg/errors"
)

const defaultConcurrency = 4

var lineRegex = regexp.MustCompile(`line (\d+)`)

// Loader implements ports.ResultLoader over files on disk.
type Loader struct {
	logger      ports.Logger
	concurrency int
}

// Option customises a Loader.
type Option func(*Loader)

// WithConcurrency bounds how many files are read at once.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// NewLoader constructs a Loader. A nil logger disables logging.
func NewLoader(logger ports.Logger, opts ...Option) *Loader {
	l := &Loader{logger: logger, concurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.ResultLoader = (*Loader)(nil)

// Load reads every path concurrently and concatenates their sessions in path order.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]model.Session, error) {
	perFile := make([][]model.Session, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sessions, err := l.loadFile(gctx, path)
			if err != nil {
				return err
			}
			perFile[i] = sessions
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var sessions []model.Session
	for _, s := range perFile {
		sessions = append(sessions, s...)
	}
	return sessions, nil
}

func (l *Loader) loadFile(ctx context.Context, path string) ([]model.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, reporterrors.NewParseError(path, 0, err)
	}

	sessions, err := Decode(path, data)
	if err != nil {
		return nil, err
	}

	if err := Validate(path, sessions); err != nil {
		return nil, err
	}

	if l.logger != nil {
		l.logger.Debug(ctx, "loaded result file", "path", path, "sessions", len(sessions))
	}
	return sessions, nil
}

// Decode parses a result document. Three shapes are accepted: a list of
// sessions, a mapping with a "sessions" list, or a single session mapping.
// Files with a .json extension are read as strict JSON, everything else as YAML.
func Decode(path string, data []byte) ([]model.Session, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return decodeJSON(path, data)
	}
	return decodeYAML(path, data)
}

func decodeJSON(path string, data []byte) ([]model.Session, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var sessions []model.Session
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &sessions); err != nil {
			return nil, jsonParseError(path, data, err)
		}
	case '{':
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &keys); err != nil {
			return nil, jsonParseError(path, data, err)
		}
		if _, ok := keys["sessions"]; ok {
			var envelope struct {
				Sessions []model.Session `json:"sessions"`
			}
			if err := json.Unmarshal(trimmed, &envelope); err != nil {
				return nil, jsonParseError(path, data, err)
			}
			return envelope.Sessions, nil
		}
		var session model.Session
		if err := json.Unmarshal(trimmed, &session); err != nil {
			return nil, jsonParseError(path, data, err)
		}
		sessions = []model.Session{session}
	default:
		return nil, reporterrors.NewParseError(path, 1, fmt.Errorf("expected a session list or object"))
	}

	return sessions, nil
}

// jsonParseError converts the byte offset reported by encoding/json into a line.
func jsonParseError(path string, data []byte, err error) error {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}

	line := 0
	if offset > 0 {
		start := len(data) - len(bytes.TrimLeft(data, " \t\r\n"))
		end := min(start+int(offset), len(data))
		line = bytes.Count(data[:end], []byte("\n")) + 1
	}
	return reporterrors.NewParseError(path, line, err)
}

func decodeYAML(path string, data []byte) ([]model.Session, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, reporterrors.NewParseError(path, extractLine(err), err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	var sessions []model.Session

	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&sessions); err != nil {
			return nil, reporterrors.NewParseError(path, extractLine(err), err)
		}
	case yaml.MappingNode:
		if hasKey(doc, "sessions") {
			var envelope struct {
				Sessions []model.Session `yaml:"sessions"`
			}
			if err := doc.Decode(&envelope); err != nil {
				return nil, reporterrors.NewParseError(path, extractLine(err), err)
			}
			sessions = envelope.Sessions
			break
		}
		var session model.Session
		if err := doc.Decode(&session); err != nil {
			return nil, reporterrors.NewParseError(path, extractLine(err), err)
		}
		sessions = []model.Session{session}
	default:
		return nil, reporterrors.NewParseError(path, doc.Line, fmt.Errorf("expected a session list or mapping"))
	}

	return sessions, nil
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}

func extractLine(err error) int {
	matches := lineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}
