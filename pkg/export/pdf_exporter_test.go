package export

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()
	out, err := exporter.Render(Dataset{
		Columns: []Column{{Key: "name", Label: "Name"}, {Key: "batch", Label: "Batch"}},
		Rows:    []map[string]string{{"name": "Asha", "batch": "7"}},
	}, "Participant Report")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	require.Equal(t, "%PDF", string(out[:4]))
}

func TestPDFExporterRequiresColumns(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "Empty")
	require.Error(t, err)
}
