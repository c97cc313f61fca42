// Package ports defines the interfaces (ports) that connect the session
// loop to infrastructure adapters.
//
// # Port Interfaces
//
//   - [Transport]: Sends request lines and receives length-prefixed frames
//   - [CommandSource]: Reads one parsed command per line of user input
//   - [Renderer]: Displays server responses to the user
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them over TCP
// sockets, terminals and zerolog.
package ports
