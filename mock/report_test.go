package mock_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/fwojciec/sourceeval"
	"github.com/fwojciec/sourceeval/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where ReportWriter is expected
	var _ sourceeval.ReportWriter = &mock.ReportWriter{}
}

func TestReportWriter_WriteReport(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteReportFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *sourceeval.Report
		rw := &mock.ReportWriter{
			WriteReportFn: func(w io.Writer, report *sourceeval.Report) error {
				calledWith = report
				_, err := io.WriteString(w, "written")
				return err
			},
		}

		report := &sourceeval.Report{
			RunID: "run-1",
			Rows:  []sourceeval.EvaluationRow{{Website: "ANSA", URL: "https://www.ansa.it"}},
		}

		var buf bytes.Buffer
		err := rw.WriteReport(&buf, report)

		require.NoError(t, err)
		assert.Equal(t, report, calledWith)
		assert.Equal(t, "written", buf.String())
	})
}
