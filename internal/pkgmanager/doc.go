// Package pkgmanager runs the Node package manager that installs a generated
// project's dependencies. Dispatch selects npm or yarn by name and Detect
// picks yarn when it is on PATH. Child processes inherit the terminal and run
// in the project directory.
package pkgmanager
