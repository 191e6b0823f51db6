// Package widgets implements the bar's clock and workspace indicator.
//
// Widgets are owned by the UI thread; nothing here blocks or touches the
// compositor socket.
package widgets
