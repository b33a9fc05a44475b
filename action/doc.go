// Package action builds EPLAN action strings from a name and keyed parameters.
//
// EPLAN's remoting channel accepts one opaque command string per dispatch,
// of the form:
//
//	backup /TYPE:PROJECT /DESTINATIONPATH:"C:\Backups" /INCLIMAGES:1
//
// The encoder is a pure scalar-to-string translation with a small, fixed
// rule set:
//
//   - parameters with an absent or empty value are omitted entirely
//   - booleans encode as 1/0
//   - string values containing whitespace are wrapped in double quotes,
//     unless already quoted
//   - numeric values are emitted verbatim
//   - output order follows insertion order
//
// List-valued parameters are deliberately not handled here. EPLAN expects
// 1-based indexed keys (PAGENAME1, PAGENAME2, ...) and each call site owns
// that expansion; [Indexed] produces the scalar params for it.
package action
