// Package xmltree provides path normalization and node access primitives
// over xmlquery document trees.
//
// Configuration paths are XPath expressions, optionally written as a
// parenthesized alternation of several expressions joined by "|". A path can
// be re-anchored for evaluation against a whole document (absolute) or
// against a single node (relative). Values live either in element text or in
// attribute values; a path whose final step is an attribute selector ("@x")
// addresses the attribute.
//
// Writes go through SetValue, which overwrites an existing target in place
// and otherwise falls back to a configured insertion strategy that
// materializes the missing elements at the correct position. Attribute
// targets never insert: the owning element must pre-exist.
package xmltree
