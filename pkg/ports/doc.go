/*
Package ports defines the driven ports (interfaces) of the synthmc engine.

These interfaces decouple the pipeline core from the environment it runs in, so the
executor can drive a real Yosys process, emit a script, or talk to a recording mock
in tests without any change to the sequencing logic.

# Key Interfaces

  - Host: Invokes a named external command and answers the full-selection predicate.
  - ReportStore: Persists run reports (file system, Redis).
  - Engine: The inspection and execution surface consumed by the HTTP and MCP adapters.
*/
package ports
