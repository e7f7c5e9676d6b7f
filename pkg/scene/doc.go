// Package scene holds the data model between parsing and rendering.
//
// ParsedElement is the structured input: a shape kind, a color word, a size
// hint and relations to other elements. The layout engine turns a list of
// elements into a SceneGraph of positioned, layered SceneNodes. Nodes are
// mutated only while layout runs; renderers treat them as read-only.
package scene
