package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/usermanager/internal/client/client"
	"github.com/dmitrijs2005/usermanager/internal/client/config"
	"github.com/dmitrijs2005/usermanager/internal/client/services"
	"github.com/dmitrijs2005/usermanager/internal/logging"
)

// Tab is one of the two views.
type Tab string

const (
	TabUsers     Tab = "users"
	TabAddresses Tab = "addresses"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	users     *services.UserController
	addresses *services.AddressController
	tab       Tab
	reader    *bufio.Reader
	out       io.Writer
}

// NewApp builds the HTTP client and both controllers from c. The REPL reads
// stdin and writes stdout.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	api, err := client.NewHTTPClient(c.APIBaseURL, client.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return newApp(c, logger, api, bufio.NewReader(os.Stdin), os.Stdout), nil
}

func newApp(c *config.Config, logger logging.Logger, api client.Client, reader *bufio.Reader, out io.Writer) *App {
	a := &App{
		config: c,
		logger: logger,
		tab:    TabUsers,
		reader: reader,
		out:    out,
	}

	confirm := services.ConfirmFunc(a.confirm)
	opts := []services.Option{
		services.WithLogger(logger),
		services.WithMessageTTL(c.SuccessMessageTTL),
	}
	a.users = services.NewUserController(api, confirm, opts...)
	a.addresses = services.NewAddressController(api, api, confirm, opts...)
	return a
}

// Run mounts the first view and blocks in the REPL until the user exits or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	a.logger.Info(ctx, "admin client started", "api_base_url", a.config.APIBaseURL)
	fmt.Fprintln(a.out, "User Management admin client (type 'help' for commands)")

	_ = a.mount(ctx)
	a.Report()
	a.Root(ctx)
}

// Root runs the REPL on the app's reader.
func (a *App) Root(ctx context.Context) {
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) getStatus() string {
	s := string(a.tab)
	switch a.tab {
	case TabUsers:
		if f := a.users.StatusFilter(); f != "" {
			s += " status=" + string(f)
		}
		if u, ok := a.users.Editing(); ok {
			s += " editing #" + u.UserID.String()
		}
	case TabAddresses:
		if f := a.addresses.UserFilter(); !f.IsZero() {
			s += " user=" + f.String()
		}
		if ad, ok := a.addresses.Editing(); ok {
			s += " editing #" + ad.AddressID.String()
		}
	}
	return s
}

func (a *App) confirm(_ context.Context, prompt string) bool {
	return GetConfirmation(a.reader, prompt, a.out)
}

// mount remounts the active view: its form is reset and its data
// re-fetched, then the list is shown.
func (a *App) mount(ctx context.Context) error {
	var err error
	if a.tab == TabUsers {
		err = a.users.Mount(ctx)
		a.renderUsers()
	} else {
		err = a.addresses.Mount(ctx)
		a.renderAddresses()
	}
	return err
}

// SwitchTab activates the named view and remounts it.
func (a *App) SwitchTab(ctx context.Context, name string) error {
	switch Tab(name) {
	case TabUsers, TabAddresses:
		a.tab = Tab(name)
	default:
		fmt.Fprintf(a.out, "Unknown tab %q (users, addresses)\n", name)
		return fmt.Errorf("unknown tab %q", name)
	}
	a.logger.Debug(ctx, "tab switched", "tab", a.tab)
	return a.mount(ctx)
}

func (a *App) List(ctx context.Context) error {
	if a.tab == TabUsers {
		return a.listUsers(ctx)
	}
	return a.listAddresses(ctx)
}

func (a *App) Show(ctx context.Context, id string) error {
	if a.tab == TabUsers {
		return a.showUser(ctx, id)
	}
	return a.showAddress(ctx, id)
}

// New starts a fresh create form.
func (a *App) New(ctx context.Context) error {
	if a.tab == TabUsers {
		a.users.Cancel()
		return a.submitUser(ctx)
	}
	a.addresses.Cancel()
	return a.submitAddress(ctx)
}

func (a *App) Edit(ctx context.Context, id string) error {
	if a.tab == TabUsers {
		return a.editUser(ctx, id)
	}
	return a.editAddress(ctx, id)
}

// Resume walks the current form again, keeping what was entered, and
// submits it.
func (a *App) Resume(ctx context.Context) error {
	if a.tab == TabUsers {
		return a.submitUser(ctx)
	}
	return a.submitAddress(ctx)
}

func (a *App) Cancel(_ context.Context) error {
	if a.tab == TabUsers {
		a.users.Cancel()
	} else {
		a.addresses.Cancel()
	}
	fmt.Fprintln(a.out, "Form cleared.")
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if a.tab == TabUsers {
		return a.deleteUser(ctx, id)
	}
	return a.deleteAddress(ctx, id)
}

func (a *App) Filter(ctx context.Context, arg string) error {
	if a.tab == TabUsers {
		return a.filterUsers(ctx, arg)
	}
	return a.filterAddresses(ctx, arg)
}

// Report prints the active view's error and success banners.
func (a *App) Report() {
	var errMsg, okMsg string
	if a.tab == TabUsers {
		errMsg, okMsg = a.users.ErrorMessage(), a.users.SuccessMessage()
	} else {
		errMsg, okMsg = a.addresses.ErrorMessage(), a.addresses.SuccessMessage()
	}
	if errMsg != "" {
		fmt.Fprintln(a.out, "Error:", errMsg)
	}
	if okMsg != "" {
		fmt.Fprintln(a.out, okMsg)
	}
}
