package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/spf13/pflag"

	"github.com/corvid-labs/quarry-cli/internal/core/domain"
)

// fakeIngestor records the path it was asked to ingest.
type fakeIngestor struct {
	report  *domain.IngestReport
	err     error
	gotPath string
}

func (f *fakeIngestor) Ingest(_ context.Context, inputPath string) (*domain.IngestReport, error) {
	f.gotPath = inputPath
	return f.report, f.err
}

// fakeAnswerer returns a canned answer and records questions.
type fakeAnswerer struct {
	answer    string
	err       error
	questions []string
}

func (f *fakeAnswerer) Answer(_ context.Context, question string) (string, error) {
	f.questions = append(f.questions, question)
	return f.answer, f.err
}

// fakeAdmin records reset calls.
type fakeAdmin struct {
	infos          []domain.CollectionInfo
	statusErr      error
	resetErr       error
	resetNames     []string
	resetAllCalled bool
}

func (f *fakeAdmin) Status(_ context.Context) ([]domain.CollectionInfo, error) {
	return f.infos, f.statusErr
}

func (f *fakeAdmin) Reset(_ context.Context, collection string) error {
	f.resetNames = append(f.resetNames, collection)
	return f.resetErr
}

func (f *fakeAdmin) ResetAll(_ context.Context) error {
	f.resetAllCalled = true
	return f.resetErr
}

// withServices installs a fixed service bundle for the duration of a test.
func withServices(t *testing.T, svcs *Services) {
	t.Helper()
	SetServicesBuilder(func(_, _ string) (*Services, error) {
		return svcs, nil
	})
	t.Cleanup(func() { servicesBuilder = nil })
}

// execute runs the root command with the given args and optional stdin,
// returning the combined output.
func execute(t *testing.T, in io.Reader, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	if in != nil {
		rootCmd.SetIn(in)
	}
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd.PersistentFlags())
		for _, c := range rootCmd.Commands() {
			resetFlags(c.Flags())
		}
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores changed flags to their defaults so one test's
// arguments do not leak into the next.
func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
}
