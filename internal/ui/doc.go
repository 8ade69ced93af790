// Package ui implements an interactive terminal console using bubbletea's
// Elm architecture.
//
// Views map one-to-one onto the console's routes:
//   - /login : credential form (username, password, optional code)
//   - /datasource : configured data sources
//   - /system-variables : system variables
//   - /workflow-management : missions, with manual run from the list
//   - /run-logs : run records
//   - /files : uploaded files
//
// Every view switch goes through [router.Router.Navigate], so the guard is
// applied on each transition and an expired session lands the operator back
// on the login form. The [Model] implements bubbletea/Elm's standard
// Init/Update/View pattern.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) plus
// number keys for page switching, with contextual help displayed via
// charmbracelet/bubbles/help.
package ui
