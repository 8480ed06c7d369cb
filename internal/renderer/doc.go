// Package renderer provides the display-independent visual primitives of
// glyphfall: colors, registered style tokens and emphasis attributes.
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│      RenderScheduler (internal/app)     │
//	├─────────────────────────────────────────┤
//	│  Columns │ FrameBuffer │ Gradient       │
//	│  (internal/rain)      DirtySet (dirty)  │
//	├─────────────────────────────────────────┤
//	│      Surface abstraction (backend)      │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullBackend (tests) │
//	└─────────────────────────────────────────┘
//
// Colors are plain values. Before the first frame they are registered with
// the surface, which hands back a StyleToken; the simulation only ever deals
// in tokens and Attribute flags.
package renderer
