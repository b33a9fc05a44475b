// Package script turns EPLAN's fire-and-forget script execution into a
// synchronous call with a typed result.
//
// The remoting channel can register and trigger a C# script inside the
// engine, but offers no channel for the script to answer on. The bridge
// closes that gap with a filesystem mailbox: it writes the script next to
// a per-job result path, substitutes that path into the script source,
// registers and triggers the script, then polls the result path until the
// script's JSON document appears or the deadline passes.
//
// A script payload must contain the [ResultPathToken] placeholder and is
// contractually required to write a single JSON object to that path when
// it finishes:
//
//	string json = Newtonsoft.Json.JsonConvert.SerializeObject(results);
//	File.WriteAllText(@"{{RESULT_PATH}}", json);
//
// Every run is a transient job: a fresh collision-resistant identifier
// derives the script and result paths, registration is always paired with
// unregistration, and both files are removed on every exit path — success,
// rejection, timeout, or parse failure. The reply channel is the [Mailbox]
// strategy interface, so a transport with a real completion signal could
// replace file polling without touching any caller.
package script
