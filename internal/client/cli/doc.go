// Package cli provides the interactive secondwear command-line client.
//
// The App wires the session, the listing history and the API services into
// a read-eval-print loop. Listing commands (items, filter, unfilter, open,
// back, forward) all move through the serialized listing query, so the
// prompt always shows the query the visible items belong to.
//
// Typical flow: restore the stored session, browse the listing, log in to
// sell, message and manage orders.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
