// Package geom provides the 2D and 3D math shared by the layout engine and
// the renderers: vectors, axis-aligned boxes, affine transforms and the
// pinhole perspective projection.
//
// Vectors and matrices come from github.com/deadsy/sdfx. Every function in
// this package is pure; values are passed and returned by copy.
package geom
