// Package preflight provides readiness checks for the paths and files discsift
// depends on.
//
// The CLI "discsift check" command runs RunAll and renders every result.
// "discsift detect" runs CheckFileReadable on its input before reading it so a
// bad path fails with a short, specific message.
package preflight
