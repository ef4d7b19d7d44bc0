// Package buildclean finds build-output directories of known project types.
//
// It walks directory trees using fastwalk for parallel traversal up to a
// bounded depth, recognizes project roots by marker files, measures each
// project's build-output directory and selects the ones worth removing.
package buildclean
