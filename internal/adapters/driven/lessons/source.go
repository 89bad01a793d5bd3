package lessons

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/core/ports/driven"
	"github.com/custodia-labs/khareeta/internal/logger"
)

// Ensure YAMLSource implements the interface.
var _ driven.LessonSource = (*YAMLSource)(nil)

//go:embed default_lessons.yaml
var defaultLessons []byte

// EmbeddedLocation is the Location of the embedded dataset.
const EmbeddedLocation = "embedded"

// YAMLSource reads the lesson dataset from a YAML file, or from the
// embedded default dataset when no path is set.
type YAMLSource struct {
	path string
}

// NewYAMLSource creates a lesson source. An empty path selects the
// embedded dataset.
func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{path: path}
}

// Location returns the file path or "embedded".
func (s *YAMLSource) Location() string {
	if s.path == "" {
		return EmbeddedLocation
	}
	return s.path
}

// Load reads and decodes the dataset.
func (s *YAMLSource) Load(ctx context.Context) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Section("Lesson Loading")
	logger.Debug("Source: %s", s.Location())

	data := defaultLessons
	if s.path != "" {
		var err error
		data, err = os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read lessons %s: %w", s.path, err)
		}
	}

	dataset, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode lessons %s: %w", s.Location(), err)
	}

	logger.Debug("Loaded %d lessons, %d points",
		len(dataset.Lessons), len(domain.Points(dataset.Lessons)))
	return dataset, nil
}

// Decode parses and validates a YAML dataset. Optional fields may be
// absent; every lesson needs an id.
func Decode(r io.Reader) (*domain.Dataset, error) {
	var dataset domain.Dataset
	if err := yaml.NewDecoder(r).Decode(&dataset); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrNoLessons
		}
		return nil, err
	}
	if err := validate(&dataset); err != nil {
		return nil, err
	}
	return &dataset, nil
}

func validate(dataset *domain.Dataset) error {
	if len(dataset.Lessons) == 0 {
		return domain.ErrNoLessons
	}

	lessonIDs := make(map[string]bool, len(dataset.Lessons))
	for i, l := range dataset.Lessons {
		if l.ID == "" {
			return fmt.Errorf("%w: lesson %d has no id", domain.ErrInvalidInput, i)
		}
		if lessonIDs[l.ID] {
			return fmt.Errorf("%w: duplicate lesson id %q", domain.ErrInvalidInput, l.ID)
		}
		lessonIDs[l.ID] = true

		for j, p := range l.Points {
			if p.ID == "" {
				logger.Warn("Lesson %s point %d has no id", l.ID, j)
			}
		}
		for _, q := range l.Quiz {
			if q.Answer < 0 || q.Answer >= len(q.Options) {
				return fmt.Errorf("%w: lesson %s question %s answer %d out of range",
					domain.ErrInvalidInput, l.ID, q.ID, q.Answer)
			}
		}
	}
	return nil
}
