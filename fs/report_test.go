package fs_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/sourceeval"
	"github.com/fwojciec/sourceeval/csv"
	"github.com/fwojciec/sourceeval/fs"
	"github.com/fwojciec/sourceeval/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFile_Save(t *testing.T) {
	t.Parallel()

	allowed := true
	report := &sourceeval.Report{Rows: []sourceeval.EvaluationRow{
		{Website: "ANSA", URL: "https://www.ansa.it", Scrape: &allowed},
	}}

	t.Run("writes report and creates directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "2025", "result.csv")

		err := fs.NewReportFile(path, csv.NewReportWriter()).Save(report)

		require.NoError(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "website,url,scrape,scrapegraph,categorization,secondary_category\n"+
			"ANSA,https://www.ansa.it,true,,,\n", string(content))
		assert.NoFileExists(t, path+".tmp")
	})

	t.Run("replaces existing report", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "result.csv")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

		err := fs.NewReportFile(path, csv.NewReportWriter()).Save(report)

		require.NoError(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(content), "old")
	})

	t.Run("keeps previous report when rendering fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "result.csv")
		require.NoError(t, os.WriteFile(path, []byte("previous"), 0o600))
		failing := &mock.ReportWriter{
			WriteReportFn: func(w io.Writer, _ *sourceeval.Report) error {
				_, _ = w.Write([]byte("partial"))
				return errors.New("disk full")
			},
		}

		err := fs.NewReportFile(path, failing).Save(report)

		require.Error(t, err)
		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "previous", string(content))
		assert.NoFileExists(t, path+".tmp")
	})

	t.Run("requires a path", func(t *testing.T) {
		t.Parallel()

		err := fs.NewReportFile("", csv.NewReportWriter()).Save(report)

		assert.Equal(t, sourceeval.ECONFIG, sourceeval.ErrorCode(err))
	})
}
