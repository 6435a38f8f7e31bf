package salary

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_RenderSlipPDF(t *testing.T) {
	t.Parallel()
	f := newSlipFixture(testWorker("w1", "Ravi", "mall", "", ""))

	var buf bytes.Buffer
	err := f.exports.RenderSlipPDF(tenantCtx(), "w1", 2, 2024, &buf)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
	assert.Zero(t, f.slipRepo.upserts)
}

func TestExportService_RenderSlipPDF_UnknownWorker(t *testing.T) {
	t.Parallel()
	f := newSlipFixture()

	var buf bytes.Buffer
	err := f.exports.RenderSlipPDF(tenantCtx(), "nobody", 2, 2024, &buf)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestExportService_ExportMonth(t *testing.T) {
	t.Parallel()
	f := newSlipFixture(
		testWorker("w1", "Zaid", "mall", "", ""),
		testWorker("w2", "Amir", "camp", "helper", ""),
	)
	_, err := f.slips.SaveSlip(tenantCtx(), salary.SaveSlipRequest{WorkerID: "w1", Month: 6, Year: 2024}, "a")
	require.NoError(t, err)
	_, err = f.slips.SaveSlip(tenantCtx(), salary.SaveSlipRequest{
		WorkerID: "w2", Month: 6, Year: 2024,
		ManualInputs: salary.ManualInputs{PresentDays: intPtr(30)},
	}, "a")
	require.NoError(t, err)

	result, err := f.exports.ExportMonth(tenantCtx(), 6, 2024)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Count)
	assert.True(t, strings.HasPrefix(result.Path, "exports/"+testTenant+"/salary-2024-07-"))
	assert.True(t, strings.HasSuffix(result.Path, ".xlsx"))
	assert.Equal(t, "http://files.test/"+result.Path, result.URL)

	data, ok := f.storage.files[result.Path]
	require.True(t, ok)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Slips")
	require.NoError(t, err)
	// header, two slips, then the totals row after a gap
	require.GreaterOrEqual(t, len(rows), 4)
	assert.Equal(t, "Employee Code", rows[0][0])
	assert.Equal(t, "Amir", rows[1][1])
	assert.Equal(t, "Zaid", rows[2][1])
	assert.Equal(t, "TOTAL", rows[len(rows)-1][0])
}

func TestExportService_ExportMonth_InvalidPeriod(t *testing.T) {
	t.Parallel()
	f := newSlipFixture()

	_, err := f.exports.ExportMonth(tenantCtx(), 13, 2024)
	assert.ErrorIs(t, err, salary.ErrInvalidPeriod)
	assert.Empty(t, f.storage.files)
}
