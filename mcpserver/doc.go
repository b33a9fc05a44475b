// Package mcpserver exposes the automation client over the Model Context
// Protocol.
//
// The tool surface is deliberately narrow: connection management
// (status, servers, connect, disconnect, ping), the generic
// eplan_execute_action dispatch, eplan_run_script for custom payloads,
// and the typed scripted helpers (settings, path variables, parts
// database). Domain-specific action wrappers are built by callers from
// these primitives; they are not enumerated here.
//
// Every tool returns the core's uniform result shapes as structured
// content, so a connected MCP client sees the same success/message
// contract the Go API has.
package mcpserver
