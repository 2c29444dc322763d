package models

import (
	"errors"
	"io"
	"regexp"
	"sort"
	"strings"
)

// ErrValidation is matched by every ValidationErrors value.
var ErrValidation = errors.New("validation failed")

// ValidationErrors maps a form field to its message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

func (v ValidationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v ValidationErrors) required(field, value, msg string) bool {
	if strings.TrimSpace(value) == "" {
		v[field] = msg
		return false
	}
	return true
}

var (
	emailPattern  = regexp.MustCompile(`(?i)^\S+@\S+$`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
)

const minPasswordLen = 6

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	v := ValidationErrors{}
	if v.required("email", c.Email, "Email wajib diisi") && !emailPattern.MatchString(c.Email) {
		v["email"] = "Format email salah"
	}
	if v.required("password", c.Password, "Password wajib diisi") && len(c.Password) < minPasswordLen {
		v["password"] = "Minimal 6 karakter"
	}
	return v.err()
}

// Registration is the sign-up form.
type Registration struct {
	NPM          string `json:"npm"`
	FullName     string `json:"nama_lengkap"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	StudyProgram string `json:"program_studi"`
	Phone        string `json:"no_hp"`
}

func (r Registration) Validate() error {
	v := ValidationErrors{}
	if v.required("npm", r.NPM, "NPM wajib diisi") && !digitsPattern.MatchString(r.NPM) {
		v["npm"] = "Format NPM salah"
	}
	v.required("nama_lengkap", r.FullName, "Nama Lengkap wajib diisi")
	if v.required("email", r.Email, "Email wajib diisi") && !emailPattern.MatchString(r.Email) {
		v["email"] = "Format email salah"
	}
	if v.required("password", r.Password, "Password wajib diisi") && len(r.Password) < minPasswordLen {
		v["password"] = "Minimal 6 karakter"
	}
	v.required("program_studi", r.StudyProgram, "Program Studi wajib diisi")
	if v.required("no_hp", r.Phone, "No Whatsapp wajib diisi") && !digitsPattern.MatchString(r.Phone) {
		v["no_hp"] = "Format No Whatsapp salah"
	}
	return v.err()
}

// NewReport holds the text fields of a report. The photo travels
// separately as an Upload.
type NewReport struct {
	Kind        ReportKind
	Title       string
	Location    string
	Date        string
	Description string
	GuardID     string
}

func (r NewReport) Validate() error {
	v := ValidationErrors{}
	switch r.Kind {
	case KindLost, KindFound:
	default:
		v["tipe_laporan"] = "Tipe laporan tidak dikenal"
	}
	v.required("judul_laporan", r.Title, "Judul wajib diisi")
	v.required("lokasi", r.Location, "Lokasi wajib diisi")
	v.required("tanggal", r.Date, "Tanggal wajib diisi")
	v.required("deskripsi", r.Description, "Deskripsi wajib diisi")
	if r.Kind == KindFound {
		v.required("id_satpam", r.GuardID, "Satpam wajib dipilih")
	}
	return v.err()
}

// PickupDetails identifies the person collecting a found item.
type PickupDetails struct {
	ItemID  string
	Name    string
	NPM     string
	Program string
	Phone   string
	Note    string
}

func (p PickupDetails) Validate() error {
	v := ValidationErrors{}
	v.required("id_barang", p.ItemID, "Barang tidak diketahui")
	v.required("nama_pengambil", p.Name, "Nama wajib diisi")
	v.required("npm_pengambil", p.NPM, "NPM wajib diisi")
	v.required("prodi_pengambil", p.Program, "Prodi wajib diisi")
	if v.required("no_hp_pengambil", p.Phone, "No HP wajib diisi") && !digitsPattern.MatchString(p.Phone) {
		v["no_hp_pengambil"] = "Hanya angka"
	}
	return v.err()
}

// Upload is one file part of a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}
