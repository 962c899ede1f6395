// Package eject materializes build-tool configuration into a generated
// project. Files are copied verbatim except that regions fenced by
// "// @remove-on-eject-begin" and "// @remove-on-eject-end" are removed and
// files carrying "// @remove-file-on-eject" are left out entirely.
package eject
