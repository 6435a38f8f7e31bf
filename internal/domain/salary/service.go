package salary

import (
	"context"
	"encoding/json"
	"io"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/activity"
	"github.com/shopspring/decimal"
)

type SettingsService interface {
	// GetSettings returns the active version, creating it from defaults on first use.
	GetSettings(ctx context.Context) (Settings, error)
	GetCategory(ctx context.Context, category string) (any, error)
	SaveSettings(ctx context.Context, req SaveSettingsRequest, modifiedBy string) (Settings, error)
	UpdateCategory(ctx context.Context, category string, partial map[string]json.RawMessage, modifiedBy string) (Settings, error)
	ResetToDefaults(ctx context.Context, modifiedBy string) (Settings, error)
}

type SlipService interface {
	// GetSlip returns the stored slip or an unsaved preview with status new_preview.
	GetSlip(ctx context.Context, workerID string, month, year int) (Slip, error)
	SaveSlip(ctx context.Context, req SaveSlipRequest, preparedBy string) (Slip, error)
	ListSlips(ctx context.Context, month, year int) ([]Slip, error)
	Attendance(ctx context.Context, workerID string, month, year int) (activity.Aggregate, error)
	// Preview runs the calculator without a worker record.
	Preview(ctx context.Context, req PreviewRequest) (Breakdown, error)
	// RunDrafts saves a draft for every active worker without a finalized slip.
	RunDrafts(ctx context.Context, month, year int, preparedBy string) (RunResult, error)
}

type ExportService interface {
	RenderSlipPDF(ctx context.Context, workerID string, month, year int, w io.Writer) error
	ExportMonth(ctx context.Context, month, year int) (ExportResult, error)
}

// PriorBalanceResolver supplies the balance carried into a period from the one before it.
type PriorBalanceResolver interface {
	PriorBalance(ctx context.Context, tenantID, workerID string, month, year int) (decimal.Decimal, error)
}
