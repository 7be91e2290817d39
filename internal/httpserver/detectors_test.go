package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"adherence-srv/internal/detector"
	"adherence-srv/internal/store/postgre"
	"adherence-srv/pkg/log"
)

type fakeDetector struct {
	checkedID string
	checkErr  error
}

func (f *fakeDetector) RunReminderTiers(context.Context) (*detector.ReminderSummary, error) {
	return &detector.ReminderSummary{}, nil
}

func (f *fakeDetector) CheckMedication(_ context.Context, medicationID string) (*detector.StockSummary, error) {
	f.checkedID = medicationID
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	return &detector.StockSummary{Checked: 1}, nil
}

func (f *fakeDetector) RunStockSweep(context.Context) (*detector.StockSummary, error) {
	return &detector.StockSummary{}, nil
}

func (f *fakeDetector) RunWeeklyDigest(context.Context) (*detector.DigestSummary, error) {
	return &detector.DigestSummary{}, nil
}

var _ detector.UseCase = &fakeDetector{}

func newDetectorRouter(det *fakeDetector) *gin.Engine {
	gin.SetMode(gin.TestMode)
	srv := &HTTPServer{logger: log.NewNop(), detector: det}
	r := gin.New()
	r.POST("/detectors/low-stock/check/:medicationID", srv.runLowStockCheck)
	return r
}

func TestRunLowStockCheck(t *testing.T) {
	const medID = "6f9619ff-8b86-4d01-b42d-00cf4fc964ff"

	tests := []struct {
		name         string
		medicationID string
		checkErr     error
		wantStatus   int
		wantChecked  string
	}{
		{
			name:         "valid id runs the inline check",
			medicationID: medID,
			wantStatus:   http.StatusOK,
			wantChecked:  medID,
		},
		{
			name:         "malformed id rejected before any lookup",
			medicationID: "not-a-uuid",
			wantStatus:   http.StatusBadRequest,
		},
		{
			name:         "unknown medication maps to not found",
			medicationID: medID,
			checkErr:     postgres.ErrNotFound,
			wantStatus:   http.StatusNotFound,
			wantChecked:  medID,
		},
		{
			name:         "store failure maps to internal error",
			medicationID: medID,
			checkErr:     errors.New("store unreachable"),
			wantStatus:   http.StatusInternalServerError,
			wantChecked:  medID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			det := &fakeDetector{checkErr: tt.checkErr}
			r := newDetectorRouter(det)

			req := httptest.NewRequest(http.MethodPost, "/detectors/low-stock/check/"+tt.medicationID, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if det.checkedID != tt.wantChecked {
				t.Errorf("checked medication = %q, want %q", det.checkedID, tt.wantChecked)
			}
		})
	}
}
