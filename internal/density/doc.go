// Package density holds the per-platform format table (scale factor to iOS filename
// suffix or Android density folder) and the selection rules that keep iOS and
// Android choices consistent. It is the single source of truth for supported
// scale factors; nothing else in the module spells them out.
package density
