// Package cli provides the interactive admin client for the user
// management backend.
//
// It wires configuration, the HTTP resource client and the two view
// controllers into a REPL with two tabs, users and addresses. Each tab
// shows its list as a table, walks a create/edit form field by field,
// deletes after a y/N confirmation, and prints the view's error and
// success messages after every command.
//
// Switching tabs remounts the target view: its form is reset and its data
// fetched again.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or ctx is cancelled, including while it waits at the prompt.
// See runREPL for the command set.
package cli
