// Package output renders parbench reports as tables, JSON or YAML.
//
// Table output colors statuses when the writer is a terminal; JSON and
// YAML encode the report value itself.
package output
