// Package platform isolates the few host-specific decisions the scaffolder
// makes: which operating systems are supported, which line terminator ends a
// generated JSON file, and how permission bits are applied to copied files.
package platform
