package models

import (
	"fmt"
	"net/url"
	"strings"
)

// ReportKind is the tipe_laporan of an item report.
type ReportKind string

const (
	KindLost  ReportKind = "hilang"
	KindFound ReportKind = "ditemukan"
	KindDone  ReportKind = "selesai"
)

// StatusCompleted is the status the backend stores once an item is closed.
const StatusCompleted = "sudah selesai"

// Item is one lost or found report as listed by GET /barang.
type Item struct {
	ID          FlexString `json:"id_barang"`
	Title       string     `json:"judul_laporan"`
	Kind        ReportKind `json:"tipe_laporan"`
	Location    string     `json:"lokasi"`
	Date        string     `json:"tanggal"`
	Description string     `json:"deskripsi"`
	Photos      Photos     `json:"foto"`
	Status      string     `json:"status"`

	ReporterName  string     `json:"nama_lengkap"`
	ReporterNPM   FlexString `json:"npm"`
	ReporterPhone FlexString `json:"no_hp"`

	GuardID   FlexString `json:"id_satpam"`
	GuardName string     `json:"nama_satpam"`

	CreatedAt string `json:"created_at"`
}

func (i Item) IsLost() bool  { return i.Kind == KindLost }
func (i Item) IsFound() bool { return i.Kind == KindFound }

// IsCompleted reports whether the item has been closed out.
func (i Item) IsCompleted() bool {
	return i.Kind == KindDone || strings.EqualFold(i.Status, StatusCompleted)
}

// Badge is the listing label: DICARI for lost reports, DITEMUKAN otherwise.
func (i Item) Badge() string {
	if i.IsLost() {
		return "DICARI"
	}
	return "DITEMUKAN"
}

// Reporter returns the reporter's name, or "Anonim".
func (i Item) Reporter() string {
	if strings.TrimSpace(i.ReporterName) == "" {
		return "Anonim"
	}
	return i.ReporterName
}

// ContactURL links to a WhatsApp chat with the reporter.
func (i Item) ContactURL() string {
	return fmt.Sprintf("https://api.whatsapp.com/send?phone=%s&text=Halo...", url.QueryEscape(i.ReporterPhone.String()))
}

// ImageURL returns the first photo, or fallback when there is none.
func (i Item) ImageURL(fallback string) string {
	return i.Photos.FirstOr(fallback)
}

// CanConfirmFound reports whether the reporter may mark the item recovered.
func (i Item) CanConfirmFound() bool {
	return i.IsLost()
}

// CanConfirmPickup reports whether a guard may record a handover.
func (i Item) CanConfirmPickup(isGuard bool) bool {
	return i.IsFound() && isGuard
}

// Satpam is a member of campus security who can hold found items.
type Satpam struct {
	ID   FlexString `json:"id_satpam"`
	Name string     `json:"nama_satpam"`
}
