// Package scripted provides typed access to engine APIs that the plain
// action channel cannot reach.
//
// Standard actions cover a fixed command surface, but several EPLAN
// capabilities — the parts master database (MDPartsManagement), typed
// settings, path-variable substitution — only exist as in-process APIs.
// This package generates small C# scripts against those APIs and runs
// them through the script bridge, which returns each script's JSON result
// document.
//
// Every generated script carries a unique class-name suffix so repeated
// runs never collide inside the engine's script host, and all embedded
// caller inputs are escaped for C# string literals.
package scripted
