package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/netx"
)

func (c *RESTClient) Login(ctx context.Context, cr models.Credentials) (*AuthResult, error) {
	env, err := c.PostJSON(ctx, "/login", cr)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: env.Token, Message: env.Message}, nil
}

func (c *RESTClient) Register(ctx context.Context, r models.Registration) (*AuthResult, error) {
	env, err := c.PostJSON(ctx, "/register", r)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: env.Token, Message: env.Message}, nil
}

// ListItems returns every report. A missing data member is an empty list.
func (c *RESTClient) ListItems(ctx context.Context) ([]models.Item, error) {
	env, err := c.Get(ctx, "/barang")
	if err != nil {
		return nil, err
	}
	items := []models.Item{}
	if err := env.DecodeData(&items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem files a report. photo may be nil when the caller has none.
func (c *RESTClient) CreateItem(ctx context.Context, r models.NewReport, photo *models.Upload) (string, error) {
	form := netx.NewForm().
		Field("tipe_laporan", string(r.Kind)).
		Field("judul_laporan", r.Title).
		Field("lokasi", r.Location).
		Field("tanggal", r.Date).
		Field("deskripsi", r.Description)
	if photo != nil {
		form.File("foto", photo.Filename, photo.ContentType, photo.Body)
	}
	if r.GuardID != "" {
		form.Field("id_satpam", r.GuardID)
	}

	env, err := c.PostMultipart(ctx, "/barang", form)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

type confirmFoundRequest struct {
	ItemID string            `json:"id_barang"`
	Status string            `json:"status"`
	Kind   models.ReportKind `json:"tipe_laporan"`
}

// ConfirmFound marks the caller's lost report as recovered.
func (c *RESTClient) ConfirmFound(ctx context.Context, itemID string) (string, error) {
	env, err := c.PostJSON(ctx, "/barang/ditemukan", confirmFoundRequest{
		ItemID: itemID,
		Status: models.StatusCompleted,
		Kind:   models.KindDone,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *RESTClient) ListGuards(ctx context.Context) ([]models.Satpam, error) {
	env, err := c.Get(ctx, "/satpam")
	if err != nil {
		return nil, err
	}
	guards := []models.Satpam{}
	if err := env.DecodeData(&guards); err != nil {
		return nil, err
	}
	return guards, nil
}

// ConfirmPickup records the handover of a found item with evidence photos.
func (c *RESTClient) ConfirmPickup(ctx context.Context, p models.PickupDetails, photos []models.Upload) (string, error) {
	form := netx.NewForm().
		Field("id_barang", p.ItemID).
		Field("nama_pengambil", p.Name).
		Field("npm_pengambil", p.NPM).
		Field("prodi_pengambil", p.Program).
		Field("no_hp_pengambil", p.Phone).
		Field("catatan", p.Note)
	for _, ph := range photos {
		form.File("foto", ph.Filename, ph.ContentType, ph.Body)
	}

	env, err := c.PostMultipart(ctx, fmt.Sprintf("/barang/%s/konfirmasi", url.PathEscape(p.ItemID)), form)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

var _ Client = (*RESTClient)(nil)
