// Package driving provides interfaces for primary/inbound adapters:
// the operations the CLI and the agent tool surface invoke on the core.
package driving
