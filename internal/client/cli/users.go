package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/client/services"
)

const (
	msgLoadingUsers = "Loading users..."
	msgNoUsers      = "No users found. Create your first user!"
)

func (a *App) listUsers(ctx context.Context) error {
	err := a.users.Refresh(ctx)
	a.renderUsers()
	return err
}

func (a *App) renderUsers() {
	if a.users.Loading() {
		fmt.Fprintln(a.out, msgLoadingUsers)
		return
	}
	rows := a.users.Rows()
	if len(rows) == 0 {
		if a.users.ErrorMessage() == "" {
			fmt.Fprintln(a.out, msgNoUsers)
		}
		return
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.ID.String(), r.Name, r.Phone, r.Registered, string(r.Status), strconv.Itoa(r.Addresses),
		})
	}
	writeTable(a.out, []string{"ID", "NAME", "PHONE", "REGISTERED", "STATUS", "ADDRESSES"}, cells)
}

// findUser prefers the fetched list and falls back to GET /users/{id}.
func (a *App) findUser(ctx context.Context, raw string) (models.User, error) {
	id, err := parseID(raw)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return models.User{}, err
	}
	if u, ok := a.users.Find(id); ok {
		return u, nil
	}
	u, err := a.users.Lookup(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	return *u, nil
}

func (a *App) showUser(ctx context.Context, raw string) error {
	u, err := a.findUser(ctx, raw)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "User #%s\n", u.UserID)
	fmt.Fprintf(a.out, "  Name:        %s\n", u.UserName)
	fmt.Fprintf(a.out, "  Phone:       %s\n", u.UserPhoneNumber)
	fmt.Fprintf(a.out, "  Status:      %s\n", u.Status)
	fmt.Fprintf(a.out, "  Registered:  %s\n", u.DateOfRegistration.DateString())
	if len(u.Addresses) == 0 {
		fmt.Fprintln(a.out, "  Addresses:   none")
		return nil
	}
	fmt.Fprintln(a.out, "  Addresses:")
	for _, ad := range u.Addresses {
		fmt.Fprintf(a.out, "    #%s %s (%s)\n", ad.AddressID, ad.FullAddress, ad.AddressType)
	}
	return nil
}

func (a *App) editUser(ctx context.Context, raw string) error {
	u, err := a.findUser(ctx, raw)
	if err != nil {
		return err
	}
	a.users.BeginEdit(u)
	return a.submitUser(ctx)
}

// submitUser walks the form, then submits it. An input error leaves the
// form as entered so far.
func (a *App) submitUser(ctx context.Context) error {
	if err := a.fillUserForm(); err != nil {
		return err
	}
	if err := a.users.Submit(ctx); err != nil {
		return err
	}
	a.renderUsers()
	return nil
}

func (a *App) fillUserForm() error {
	form := a.users.Form()
	_, editing := a.users.Editing()

	if editing {
		fmt.Fprintln(a.out, "Edit User (Enter keeps the current value)")
	} else {
		fmt.Fprintln(a.out, "Add New User")
	}

	name, err := GetTextWithDefault(a.reader, "User name *", form.UserName, a.out)
	if err != nil {
		return err
	}
	if err := a.users.SetField(services.FieldUserName, name); err != nil {
		return err
	}

	prompt := "Password *"
	if editing {
		prompt = "Password (leave blank to keep current)"
	}
	password, err := GetPassword(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if password != "" || !editing {
		if err := a.users.SetField(services.FieldUserPassword, password); err != nil {
			return err
		}
	}

	phone, err := GetTextWithDefault(a.reader, "Phone number * (10 digits)", form.UserPhoneNumber, a.out)
	if err != nil {
		return err
	}
	if err := a.users.SetField(services.FieldUserPhoneNumber, phone); err != nil {
		return err
	}

	statusPrompt := "Status (" + joinValues(models.UserStatuses) + ")"
	if err := a.askUntilValid(statusPrompt, string(form.Status), func(v string) error {
		return a.users.SetField(services.FieldStatus, v)
	}); err != nil {
		return err
	}

	return a.fillDraftAddresses()
}

// fillDraftAddresses lets the user append nested addresses, or remove one
// with "-N", until an empty line.
func (a *App) fillDraftAddresses() error {
	for {
		drafts := a.users.Form().Addresses
		if len(drafts) > 0 {
			fmt.Fprintln(a.out, "Addresses:")
			for i, d := range drafts {
				fmt.Fprintf(a.out, "  %d. %s (%s)\n", i+1, d.FullAddress, d.AddressType)
			}
		}

		line, err := GetSimpleText(a.reader, "Add address (Enter to finish, -N removes entry N)", a.out)
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}

		if rest, ok := strings.CutPrefix(line, "-"); ok {
			if n, err := strconv.Atoi(rest); err == nil {
				a.users.RemoveDraftAddress(n - 1)
				continue
			}
		}

		if err := a.users.SetPendingField(services.FieldFullAddress, line); err != nil {
			return err
		}
		typePrompt := "Address type (" + joinValues(models.AddressTypes) + ")"
		if err := a.askUntilValid(typePrompt, string(a.users.PendingAddress().AddressType), func(v string) error {
			return a.users.SetPendingField(services.FieldAddressType, v)
		}); err != nil {
			return err
		}
		a.users.AddDraftAddress()
	}
}

func (a *App) deleteUser(ctx context.Context, raw string) error {
	id, err := parseID(raw)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	if err := a.users.Remove(ctx, id); err != nil {
		if errors.Is(err, services.ErrConfirmationDeclined) {
			fmt.Fprintln(a.out, "Cancelled.")
		}
		return err
	}
	a.renderUsers()
	return nil
}

func (a *App) filterUsers(ctx context.Context, arg string) error {
	var status models.UserStatus
	if arg != "-" {
		st, err := models.ParseUserStatus(arg)
		if err != nil {
			fmt.Fprintf(a.out, "Unknown status %q (%s, or - to clear)\n", arg, joinValues(models.UserStatuses))
			return err
		}
		status = st
	}
	err := a.users.FilterByStatus(ctx, status)
	a.renderUsers()
	return err
}
