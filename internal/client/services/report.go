package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lostfound/internal/client/client"
	"github.com/dmitrijs2005/lostfound/internal/client/flow"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/querycache"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

// ReportService hands out report forms.
type ReportService interface {
	NewForm(kind models.ReportKind) (*ReportForm, error)
}

type reportService struct {
	client     client.Client
	cache      *querycache.Cache
	previewDir string
	log        logging.Logger
}

func NewReportService(c client.Client, cache *querycache.Cache, previewDir string, log logging.Logger) ReportService {
	return &reportService{client: c, cache: cache, previewDir: previewDir, log: log}
}

func (s *reportService) NewForm(kind models.ReportKind) (*ReportForm, error) {
	photo, err := flow.NewPhotoSet(s.previewDir, 1)
	if err != nil {
		return nil, err
	}
	return &ReportForm{Report: models.NewReport{Kind: kind}, Photo: photo, svc: s}, nil
}

// ReportForm is one report being filled in. Fields survive a failed
// submission and are cleared by a successful one.
type ReportForm struct {
	Report models.NewReport
	Photo  *flow.PhotoSet

	sub flow.Submission
	svc *reportService
}

func (f *ReportForm) Busy() bool {
	return f.sub.Busy()
}

func (f *ReportForm) validate() error {
	err := f.Report.Validate()
	if f.Photo.Len() > 0 {
		return err
	}
	v := models.ValidationErrors{}
	errors.As(err, &v)
	v["foto"] = "Foto wajib diunggah"
	return v
}

// Submit files the report. Concurrent calls get flow.ErrBusy.
func (f *ReportForm) Submit(ctx context.Context) (Result, error) {
	var res Result
	err := f.sub.Submit(ctx, func(ctx context.Context) error {
		if f.Report.Kind != models.KindFound {
			f.Report.GuardID = ""
		}
		if err := f.validate(); err != nil {
			return err
		}

		uploads, closeAll, err := f.Photo.Open()
		if err != nil {
			return err
		}
		defer closeAll()

		msg, err := f.svc.client.CreateItem(ctx, f.Report, &uploads[0])
		if err != nil {
			f.svc.log.Warn(ctx, "create report failed", "kind", f.Report.Kind, "error", err)
			res = failure(err, "Gagal", "Laporan gagal dikirim.", "Kamu tidak memiliki izin membuat laporan.", false)
			return fmt.Errorf("create report: %w", err)
		}

		f.svc.cache.Invalidate(querycache.KeyItemList)
		f.svc.log.Info(ctx, "report created", "kind", f.Report.Kind)
		res = Result{Notice: success("Berhasil", msg, "Laporan berhasil dibuat.")}
		return nil
	})
	if errors.Is(err, flow.ErrBusy) {
		return Result{}, err
	}

	if err == nil {
		f.Report = models.NewReport{Kind: models.KindLost}
		f.Photo.Clear()
	}
	f.sub.Reset()
	return res, err
}

// Close releases the staged photo.
func (f *ReportForm) Close() error {
	return f.Photo.Close()
}
