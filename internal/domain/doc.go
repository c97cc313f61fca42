// Package domain contains the core entities and value objects for drivecli.
//
// This package has no dependencies on infrastructure concerns (sockets,
// terminals, logging) and contains only the protocol rules.
//
// # Entities
//
//   - [Command]: One parsed line of user input (command name plus optional arguments)
//   - [Frame] helpers: the 8-byte decimal length header used on server responses
//
// # Wire format
//
// Requests are a single newline-terminated line with no length prefix.
// Responses are a fixed 8-byte ASCII decimal length followed by exactly that
// many bytes of UTF-8 payload. The asymmetry is part of the server contract.
package domain
