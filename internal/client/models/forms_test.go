package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) ValidationErrors {
	t.Helper()
	require.ErrorIs(t, err, ErrValidation)
	var v ValidationErrors
	require.True(t, errors.As(err, &v))
	return v
}

func TestCredentials_Validate(t *testing.T) {
	require.NoError(t, Credentials{Email: "a@b", Password: "secret"}.Validate())

	v := fieldErrors(t, Credentials{Email: "no-at-sign", Password: "12345"}.Validate())
	assert.Equal(t, "Format email salah", v["email"])
	assert.Equal(t, "Minimal 6 karakter", v["password"])

	v = fieldErrors(t, Credentials{}.Validate())
	assert.Equal(t, "Email wajib diisi", v["email"])
	assert.Equal(t, "Password wajib diisi", v["password"])

	v = fieldErrors(t, Credentials{Email: "a b@c", Password: "secret"}.Validate())
	assert.Contains(t, v, "email")
}

func TestRegistration_Validate(t *testing.T) {
	ok := Registration{
		NPM: "2021001", FullName: "Budi", Email: "budi@ukri.ac.id",
		Password: "secret", StudyProgram: "Informatika", Phone: "08123",
	}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.NPM = "20A1"
	bad.Phone = "+62 812"
	v := fieldErrors(t, bad.Validate())
	assert.Equal(t, "Format NPM salah", v["npm"])
	assert.Equal(t, "Format No Whatsapp salah", v["no_hp"])
	assert.Len(t, v, 2)
}

func TestNewReport_Validate(t *testing.T) {
	lost := NewReport{Kind: KindLost, Title: "Dompet", Location: "Kantin", Date: "2025-12-04T17:00", Description: "hitam"}
	require.NoError(t, lost.Validate())

	found := lost
	found.Kind = KindFound
	v := fieldErrors(t, found.Validate())
	assert.Equal(t, "Satpam wajib dipilih", v["id_satpam"])

	found.GuardID = "3"
	require.NoError(t, found.Validate())

	v = fieldErrors(t, NewReport{Kind: "other"}.Validate())
	assert.Len(t, v, 5)
}

func TestPickupDetails_Validate(t *testing.T) {
	p := PickupDetails{ItemID: "9", Name: "Ani", NPM: "2021002", Program: "Sipil", Phone: "0812"}
	require.NoError(t, p.Validate())

	p.Phone = "0812-33"
	v := fieldErrors(t, p.Validate())
	assert.Equal(t, "Hanya angka", v["no_hp_pengambil"])
}

func TestValidationErrors_ErrorIsSorted(t *testing.T) {
	err := ValidationErrors{"b": "two", "a": "one"}
	assert.Equal(t, "validation failed: a: one; b: two", err.Error())
}
