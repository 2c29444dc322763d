package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lostfound/internal/client/guard"
	"github.com/dmitrijs2005/lostfound/internal/client/services"
)

var errNotAllowed = errors.New("action not offered for this item")

func (a *App) itemArg(ctx context.Context, usage string, args []string) (string, error) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage:", usage)
		return "", errUsage
	}
	return strings.TrimPrefix(args[0], "#"), nil
}

// ConfirmFound marks a lost report as recovered after a yes/no prompt.
func (a *App) ConfirmFound(ctx context.Context, args []string) error {
	id, err := a.itemArg(ctx, "found <id>", args)
	if err != nil {
		return err
	}
	it, err := a.findItem(ctx, id)
	if err != nil {
		return err
	}
	if !a.items.Actions(ctx, it).ConfirmFound {
		a.notify(services.Notice{Level: services.LevelWarning, Title: "Tidak tersedia", Message: "Hanya laporan barang hilang yang bisa dikonfirmasi."})
		return errNotAllowed
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Tandai %q sudah ditemukan? (y/N)", it.Title), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		return nil
	}

	form, err := a.closeOut.NewForm(services.ByReporter, id)
	if err != nil {
		return err
	}
	defer form.Close()

	res, err := form.Submit(ctx)
	return a.apply(ctx, res, err)
}

// Pickup records the handover of a found item. The view requires a
// session, and the action is offered to guards only.
func (a *App) Pickup(ctx context.Context, args []string) error {
	id, err := a.itemArg(ctx, "pickup <id>", args)
	if err != nil {
		return err
	}
	path := services.PickupPath(id)
	if loc := a.navigate(ctx, path); loc != path {
		a.notify(services.Notice{Level: services.LevelWarning, Title: "Login dulu", Message: "Halaman ini memerlukan login."})
		return errNotLoggedIn
	}

	it, err := a.findItem(ctx, id)
	if err != nil {
		return err
	}
	if !a.items.Actions(ctx, it).ConfirmPickup {
		a.notify(services.Notice{Level: services.LevelWarning, Title: "Akses ditolak!", Message: "Konfirmasi pengambilan hanya untuk satpam."})
		a.navigate(ctx, guard.HomePath)
		return errNotAllowed
	}

	form, err := a.closeOut.NewForm(services.ByCustodian, id)
	if err != nil {
		return err
	}
	defer form.Close()

	fmt.Fprintf(a.out, "Konfirmasi pengambilan: %s\n", titleStyle.Render(it.Title))
	paths, err := GetLines(a.reader, "Path foto bukti, satu per baris", a.out)
	if err != nil {
		return err
	}
	for _, p := range paths {
		photo, err := form.Photos.AddFile(strings.TrimSpace(p))
		if err != nil {
			a.notify(services.Notice{Level: services.LevelError, Title: "Foto ditolak", Message: fmt.Sprintf("%s: %v", p, err)})
			continue
		}
		renderPhoto(a.out, photo)
	}

	d := &form.Pickup
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Nama pengambil", &d.Name},
		{"NPM pengambil", &d.NPM},
		{"Prodi pengambil", &d.Program},
		{"No HP pengambil", &d.Phone},
		{"Catatan (opsional)", &d.Note},
	}
	for _, f := range fields {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}

	res, err := form.Submit(ctx)
	return a.apply(ctx, res, err)
}
