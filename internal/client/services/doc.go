// Package services contains the controllers behind the admin client views.
//
// A controller owns the state of one view: the authoritative list fetched
// from the backend, the create/edit form, the record being edited, the
// loading flag and the error/success messages. Front ends drive it through
// user intents (Refresh, BeginEdit, SetField, Submit, Remove, Cancel) and
// read state back through accessors; every accessor returns a copy.
//
// Lists are never patched locally. Every successful mutation is followed by
// exactly one re-fetch, so the view only ever shows what the server returned.
//
// Controllers record the user-facing message in their state and also return
// the error, so callers may either render state or branch on the error:
//
//	if err := users.Submit(ctx); err != nil {
//		var ve *models.ValidationError
//		if errors.As(err, &ve) {
//			// nothing was sent
//		}
//	}
//
// All methods are safe for concurrent use.
package services
