// Package cli is the interactive DocLocker console.
//
// The App shows a numeric main menu (register, login, exit) to anonymous
// users and a dashboard (upload, list, download, delete, search, logout) once
// someone is logged in. Invalid selections re-prompt; end of input leaves the
// loop. Every command turns its error into a one-line message and returns to
// the menu.
package cli
