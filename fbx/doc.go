// Package fbx parses the ASCII variant of the FBX scene interchange format
// into a tree of named nodes.
//
// # Grammar
//
// Input is line oriented. A line whose first non-blank character is ';' is a
// comment. A line containing ':' is a node header:
//
//	Name: prop1, prop2, ... [{]
//
// The name is the text before the first colon with all tabs removed. The
// properties are the comma-separated fragments after it; whitespace-only
// fragments are dropped and one leading space is removed from the rest.
// Properties are kept as literal text; a '{' ending the line is not one. A
// header containing '{' anywhere opens a scope over the lines that follow it,
// whose headers become children of the node. The first following line that
// contains '}' closes the scope, even when that line is itself a header.
//
// # Limitations
//
// Headers are split at the first colon only, and '{' or '}' anywhere in a
// line is structural, including inside quoted string properties. The binary
// FBX encoding is not supported.
//
// # Usage
//
//	doc, err := fbx.ParseFile(ctx, "cube.fbx")
//	if err != nil {
//		return err
//	}
//
//	if model, ok := doc.FindNode("Objects/Model"); ok {
//		for _, p := range model.FindChildren("Properties70") {
//			fmt.Println(p)
//		}
//	}
//
// Malformed structure is recovered from rather than reported as an error;
// see [Document.Anomalies].
package fbx
