// SPDX-License-Identifier: Unlicense OR MIT

// Package widget implements the Sortable widget. A Sortable contains the
// persistent state of a drag and drop reorderable list, processes pointer
// events and animates items out of the way of the dragged item. Drawing
// the items is left to the caller.
package widget
