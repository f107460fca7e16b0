package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/client/services"
	"github.com/mattn/go-runewidth"
)

const (
	msgLoadingAddresses = "Loading addresses..."
	msgNoAddresses      = "No addresses found. Add your first address!"

	addressColumnWidth = 48
)

func (a *App) listAddresses(ctx context.Context) error {
	err := a.addresses.Refresh(ctx)
	a.renderAddresses()
	return err
}

func (a *App) renderAddresses() {
	if a.addresses.Loading() {
		fmt.Fprintln(a.out, msgLoadingAddresses)
		return
	}
	rows := a.addresses.Rows()
	if len(rows) == 0 {
		if a.addresses.ErrorMessage() == "" {
			fmt.Fprintln(a.out, msgNoAddresses)
		}
		return
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.ID.String(), r.User, runewidth.Truncate(r.Address, addressColumnWidth, "..."), string(r.Type),
		})
	}
	writeTable(a.out, []string{"ID", "USER", "ADDRESS", "TYPE"}, cells)
}

func (a *App) findAddress(ctx context.Context, raw string) (models.Address, error) {
	id, err := parseID(raw)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return models.Address{}, err
	}
	if ad, ok := a.addresses.Find(id); ok {
		return ad, nil
	}
	ad, err := a.addresses.Lookup(ctx, id)
	if err != nil {
		return models.Address{}, err
	}
	return *ad, nil
}

func (a *App) ownerLabel(id models.ID) string {
	for _, o := range a.addresses.UserOptions() {
		if o.Value == id {
			return o.Label
		}
	}
	return services.UnknownOwner
}

func (a *App) showAddress(ctx context.Context, raw string) error {
	ad, err := a.findAddress(ctx, raw)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Address #%s\n", ad.AddressID)
	fmt.Fprintf(a.out, "  User:     %s\n", a.ownerLabel(ad.UserID))
	fmt.Fprintf(a.out, "  Address:  %s\n", ad.FullAddress)
	fmt.Fprintf(a.out, "  Type:     %s\n", ad.AddressType)
	return nil
}

func (a *App) editAddress(ctx context.Context, raw string) error {
	ad, err := a.findAddress(ctx, raw)
	if err != nil {
		return err
	}
	a.addresses.BeginEdit(ad)
	return a.submitAddress(ctx)
}

func (a *App) submitAddress(ctx context.Context) error {
	if err := a.fillAddressForm(); err != nil {
		return err
	}
	if err := a.addresses.Submit(ctx); err != nil {
		return err
	}
	a.renderAddresses()
	return nil
}

func (a *App) fillAddressForm() error {
	form := a.addresses.Form()

	if _, editing := a.addresses.Editing(); editing {
		fmt.Fprintln(a.out, "Edit Address (Enter keeps the current value)")
		fmt.Fprintf(a.out, "User: %s\n", a.ownerLabel(form.UserID))
	} else {
		fmt.Fprintln(a.out, "Add New Address")
		opts := a.addresses.UserOptions()
		if len(opts) == 0 {
			fmt.Fprintln(a.out, "  (no users available)")
		}
		for _, o := range opts {
			fmt.Fprintf(a.out, "  %s  %s\n", o.Value, o.Label)
		}

		current := ""
		if !form.UserID.IsZero() {
			current = form.UserID.String()
		}
		if err := a.askUntilValid("Select user id *", current, func(v string) error {
			return a.addresses.SetField(services.FieldUserID, v)
		}); err != nil {
			return err
		}
	}

	full, err := GetTextWithDefault(a.reader, "Full address *", form.FullAddress, a.out)
	if err != nil {
		return err
	}
	if err := a.addresses.SetField(services.FieldFullAddress, full); err != nil {
		return err
	}

	typePrompt := "Address type (" + joinValues(models.AddressTypes) + ")"
	return a.askUntilValid(typePrompt, string(form.AddressType), func(v string) error {
		return a.addresses.SetField(services.FieldAddressType, v)
	})
}

func (a *App) deleteAddress(ctx context.Context, raw string) error {
	id, err := parseID(raw)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	if err := a.addresses.Remove(ctx, id); err != nil {
		if errors.Is(err, services.ErrConfirmationDeclined) {
			fmt.Fprintln(a.out, "Cancelled.")
		}
		return err
	}
	a.renderAddresses()
	return nil
}

func (a *App) filterAddresses(ctx context.Context, arg string) error {
	var userID models.ID
	if arg != "-" {
		id, err := parseID(arg)
		if err != nil {
			fmt.Fprintln(a.out, err)
			return err
		}
		userID = id
	}
	err := a.addresses.FilterByUser(ctx, userID)
	a.renderAddresses()
	return err
}
