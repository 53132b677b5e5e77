/*
Package domain contains the core domain models of the synthmc pipeline engine.

It defines the entities the engine sequences (Stages and Steps), the immutable run
Configuration that gates them, the Range used for partial execution, the error
taxonomy, and the lifecycle events emitted while a pipeline executes. This package
is kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Config: The resolved, immutable run-time options (top module, skip flags, techlib...).
  - Stage: A labelled, ordered group of Steps; the unit of range selection.
  - Step: One external command invocation with its resolved argument string.
  - Range: An inclusive interval of stages selected by start/end labels.
  - Report: The evidence record produced by every execution.
*/
package domain
