// Package render draws Tisserand curves.
//
// A [Scene] pairs every computed [tisserand.CurvePair] with a label and a
// palette colour. Any [Renderer] can consume it; [Draw] renders each body on
// its own and then the combined overlay, in table order.
//
//   - [Figure]: PNG, SVG or PDF files through gonum/plot
//   - [Terminal]: asciigraph previews on an io.Writer
//   - [Summary]: a styled per-body table
//
// Missing samples are never drawn. Figures split a branch into separate line
// segments around them and the terminal view leaves a gap.
package render
