// Package imaging implements the compositing pipeline that turns a
// decoded photograph, a metadata record, and user-chosen overlay/frame
// settings into a rendered pixel buffer.
//
// The pipeline runs in a fixed order: decode, metadata overlay, frame,
// encode. The overlay is always applied before the frame so overlay
// content is never obscured by the border. All operations work with
// standard Go image.Image types and a coordinate system where (0,0) is
// the top-left corner, X increases rightward, and Y increases downward.
//
// # Value Semantics
//
// Compositors never mutate the caller's pixel buffer. ApplyOverlay and
// ApplyFrame clone or reallocate before drawing, so the input image is
// unchanged from the caller's perspective.
//
// # Graceful Font Degradation
//
// Text rendering is the only step permitted to degrade silently: when
// no usable font can be resolved (embedded default first, then a fixed
// list of system font paths), the overlay text is skipped with a log
// entry and the render continues. Every other failure is surfaced as a
// typed *Error with a machine-readable Kind.
//
// # Thread Safety
//
// A Processor is stateless apart from its font set and logger and is
// safe for concurrent use. Each render owns its pixel buffer
// exclusively, so no buffer-level locking is needed.
package imaging
