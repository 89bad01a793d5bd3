package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/khareeta/internal/adapters/driven/lessons"
	"github.com/custodia-labs/khareeta/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/core/services"
)

const testLessons = `
lessons:
  - id: resources
    title: موارد مصر
    objectives:
      - يتعرف على أماكن الثروة المعدنية
    images:
      - img/منجم-السكري.jpg
      - img/النيل.jpg
    points:
      - id: sukari
        name: منجم السكري
        type: minerals
        lat: 24.95
        lng: 34.7
        info: أكبر منجم ذهب في مصر
      - id: high-dam
        name: السد العالي
        type: projects
        lat: 23.97
        lng: 32.88
        funFact: بحيرة ناصر خلف السد
    quiz:
      - id: q1
        q: أين يقع منجم السكري؟
        options: [الصحراء الشرقية, الدلتا]
        answer: 0
  - id: water
    title: مصادر المياه
    points:
      - id: nile
        name: نهر النيل
        type: fresh
        lat: 30.0
        lng: 31.2
        quickFacts: [أطول أنهار العالم]
`

type stubSearcher struct {
	images []domain.Image
	err    error
}

func (s *stubSearcher) SearchImages(_ context.Context, _ string, _ int) ([]domain.Image, error) {
	return s.images, s.err
}

type testEnv struct {
	knowledge *services.KnowledgeService
	progress  *services.ProgressService
	media     *services.MediaService
	settings  *services.SettingsService
	searcher  *stubSearcher
}

// setupTestServices injects real services over in-memory stores and
// restores the command state when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	dataset, err := lessons.Decode(strings.NewReader(testLessons))
	require.NoError(t, err)

	env := &testEnv{
		knowledge: services.NewKnowledgeService(dataset),
		progress:  services.NewProgressService(memory.NewProgressStore(), dataset.Lessons),
		settings:  services.NewSettingsService(memory.NewConfigStore()),
		searcher:  &stubSearcher{},
	}
	env.knowledge.SetAwarder(env.progress)
	env.media, err = services.NewMediaService(env.searcher, domain.DefaultMediaConfig())
	require.NoError(t, err)

	SetServices(&Services{
		Knowledge: env.knowledge,
		Progress:  env.progress,
		Media:     env.media,
		Settings:  env.settings,
	})
	t.Cleanup(func() {
		SetServices(nil)
		resetFlags()
	})
	return env
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// executeSplit runs the root command with separate stdout and stderr buffers.
func executeSplit(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	outBuf, errBuf := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(errBuf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// resetFlags restores flag variables, which cobra keeps between runs.
func resetFlags() {
	verbose = false
	dataDir = ""
	lessonsPath = ""
	lessonScope = ""
	askJSON = false
	askRandom = false
	searchLimit = 0
	searchJSON = false
	factsKind = ""
	factsJSON = false
	imagesLocal = false
	imagesCount = 4
	imagesJSON = false
	quizAnswer = ""
	progressJSON = false
	resetYes = false
	mcpHTTPAddr = ""
}
