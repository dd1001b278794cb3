// Package script interprets linker scripts.
//
// There is no syntax tree: the interpreter pulls tokens from a cursor and
// applies each directive as soon as it is recognised, writing straight into
// the session Config and registering inputs with a Registrar.
//
// Supported commands: ENTRY, EXTERN, GROUP, INPUT (with AS_NEEDED), INCLUDE,
// OUTPUT, OUTPUT_ARCH, OUTPUT_FORMAT, SEARCH_DIR and SECTIONS. Expressions,
// PROVIDE, MEMORY and version scripts are not understood.
//
// # Errors
//
// The first error wins. It is reported once through the diag.Reporter and
// returned from Run as *Error; from then on every cursor operation is inert,
// so the handlers unwind through their ordinary loops without producing
// more diagnostics or touching the file system again.
//
// # INCLUDE
//
// Each file being read has its own frame on a cursor stack. INCLUDE lexes
// the named file and pushes a frame; an exhausted frame is popped and the
// outer one resumes right after the INCLUDE argument. Token text of included
// files is copied into the session arena before the frame is pushed.
package script
