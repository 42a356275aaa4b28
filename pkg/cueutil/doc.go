// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Both the tool configuration (next-to-firebase.cue) and the Firebase project
// file (firebase.json, which is valid CUE) are validated the same way:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema definition
//  3. Validate and decode to a Go value
//
// # Usage
//
//	//go:embed firebase_schema.cue
//	var schema []byte
//
//	result, err := cueutil.ParseAndDecode[projectFile](
//	    schema,
//	    data,
//	    "#Firebase",
//	    cueutil.WithFilename("firebase.json"),
//	)
//	if err != nil {
//	    return Hosting{}, err // error includes the JSON path of the bad field
//	}
package cueutil
