// Package cli is the interactive terminal surface of the Lost & Found client.
//
// The REPL treats every command as a navigation between views. Entering
// a view runs its route guard first, so anonymous-only views (login,
// register) bounce a signed-in user home, and the pickup confirmation view
// sends an anonymous user to login. Output is styled with lipgloss; the
// password prompt reads from the terminal without echo.
package cli
