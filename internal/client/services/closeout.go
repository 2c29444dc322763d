package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lostfound/internal/client/client"
	"github.com/dmitrijs2005/lostfound/internal/client/flow"
	"github.com/dmitrijs2005/lostfound/internal/client/guard"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/querycache"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

// Closer says who is closing an item out.
type Closer int

const (
	// ByReporter is the owner of a lost report confirming it was found.
	ByReporter Closer = iota
	// ByCustodian is a guard recording the handover of a found item.
	ByCustodian
)

func (c Closer) String() string {
	if c == ByCustodian {
		return "custodian"
	}
	return "reporter"
}

const msgNotOwner = "Kamu tidak berhak mengkonfirmasi barang ini!"

// CloseOutService hands out close-out forms.
type CloseOutService interface {
	NewForm(by Closer, itemID string) (*CloseOutForm, error)
}

type closeOutService struct {
	client     client.Client
	cache      *querycache.Cache
	previewDir string
	log        logging.Logger
}

func NewCloseOutService(c client.Client, cache *querycache.Cache, previewDir string, log logging.Logger) CloseOutService {
	return &closeOutService{client: c, cache: cache, previewDir: previewDir, log: log}
}

// NewForm prepares a close-out of itemID. Custodian forms stage evidence
// photos; reporter forms carry no fields.
func (s *closeOutService) NewForm(by Closer, itemID string) (*CloseOutForm, error) {
	f := &CloseOutForm{By: by, ItemID: itemID, svc: s}
	if by == ByCustodian {
		photos, err := flow.NewPhotoSet(s.previewDir, 0)
		if err != nil {
			return nil, err
		}
		f.Photos = photos
		f.Pickup.ItemID = itemID
	}
	return f, nil
}

// CloseOutForm is the single Idle/Submitting/Resolved flow behind both
// confirm found and confirm pickup.
type CloseOutForm struct {
	By     Closer
	ItemID string

	// Pickup and Photos are used by ByCustodian only.
	Pickup models.PickupDetails
	Photos *flow.PhotoSet

	sub flow.Submission
	svc *closeOutService
}

func (f *CloseOutForm) Busy() bool {
	return f.sub.Busy()
}

// Submit performs the close-out. A custodian form without photos fails
// with flow.ErrNoPhotos before any request.
func (f *CloseOutForm) Submit(ctx context.Context) (Result, error) {
	var res Result
	err := f.sub.Submit(ctx, func(ctx context.Context) error {
		var err error
		if f.By == ByCustodian {
			res, err = f.confirmPickup(ctx)
		} else {
			res, err = f.confirmFound(ctx)
		}
		if err != nil {
			return err
		}
		f.svc.cache.Invalidate(querycache.KeyItemList)
		f.svc.log.Info(ctx, "item closed out", "by", f.By, "id", f.ItemID)
		return nil
	})
	if errors.Is(err, flow.ErrBusy) {
		return Result{}, err
	}
	f.sub.Reset()
	return res, err
}

func (f *CloseOutForm) confirmFound(ctx context.Context) (Result, error) {
	msg, err := f.svc.client.ConfirmFound(ctx, f.ItemID)
	if err != nil {
		f.svc.log.Warn(ctx, "confirm found failed", "id", f.ItemID, "error", err)
		return failure(err, "Gagal", "Gagal mengkonfirmasi barang.", msgNotOwner, true), fmt.Errorf("confirm found: %w", err)
	}
	return Result{
		Notice:   success("Berhasil", msg, "Barang ditandai sudah ditemukan."),
		Navigate: guard.HomePath,
	}, nil
}

func (f *CloseOutForm) confirmPickup(ctx context.Context) (Result, error) {
	if f.Photos.Len() == 0 {
		return Result{Notice: Notice{
			Level:   LevelWarning,
			Title:   "Foto bukti",
			Message: "Harap sertakan minimal 1 foto bukti pengambilan.",
		}}, flow.ErrNoPhotos
	}
	f.Pickup.ItemID = f.ItemID
	if err := f.Pickup.Validate(); err != nil {
		return Result{}, err
	}

	uploads, closeAll, err := f.Photos.Open()
	if err != nil {
		return Result{}, err
	}
	defer closeAll()

	msg, err := f.svc.client.ConfirmPickup(ctx, f.Pickup, uploads)
	if err != nil {
		f.svc.log.Warn(ctx, "confirm pickup failed", "id", f.ItemID, "error", err)
		return failure(err, "Gagal", "Gagal melakukan konfirmasi.", "Kamu tidak berhak mengkonfirmasi pengambilan ini.", false), fmt.Errorf("confirm pickup: %w", err)
	}
	return Result{
		Notice:   success("Berhasil", msg, "Konfirmasi pengambilan barang berhasil!"),
		Navigate: guard.HomePath,
	}, nil
}

// Close releases staged photos.
func (f *CloseOutForm) Close() error {
	if f.Photos == nil {
		return nil
	}
	return f.Photos.Close()
}
