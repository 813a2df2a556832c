// Package tools holds the built-in tool modules of the catalog.
//
// Every tool is a pure transformation over a JSON-style argument map and is
// registered in the explicit list returned by Modules. Adding a tool means
// writing its handler and appending it to that list; nothing is discovered
// at run time.
package tools
