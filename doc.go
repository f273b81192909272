// Package rugweave renders woven doormat rugs from on-chain parameters.
//
// # Overview
//
// A rug is a stack of colored stripes woven from warp and weft threads,
// with optional text woven into the body, fringe on the short edges and
// selvedge loops on the long ones. Everything random is drawn from one
// seeded generator, so equal parameters always give equal pixels.
//
// # Quick Start
//
//	import "github.com/onchainrugs/rugweave"
//
//	cfg := rugweave.DefaultConfig()
//	params := rugweave.GenerateParameters(42, cfg)
//	params.TextRows = []string{"WELCOME"}
//
//	pm, err := rugweave.RenderPreview(ctx, cfg, params)
//	if err != nil {
//		return err
//	}
//	pm.SavePNG("rug.png")
//
// # Lifecycle
//
// Render and RenderPreview drive an Orchestrator through Create, Configure,
// Draw and Finalize. Callers that redraw the same canvas, such as the
// terminal viewer, hold an Orchestrator and call Reset between frames.
// Parameters are validated in full by Configure, before any pixel is
// touched.
//
// # Modes
//
// Interactive renders draw at any size up to Config.MaxCanvasSide and
// include aging: dirt, worn texture and the frame. Preview renders always
// use the configured preview size and never draw aging.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Config, RenderParameters, Orchestrator, Pixmap
//   - Model: palette, glyph, aging (state and overlay), traits
//   - Drawing: surface (Canvas, Path, ImageSurface), weave
//   - Internal: raster (fixed-point scanline), blend (compositing), detmath
//
// # Coordinate System
//
// Rug space is the body plus fringe and frame margin on every side, with
// the origin at the top-left. The orchestrator scales rug space uniformly
// into the canvas and centers it.
package rugweave

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
