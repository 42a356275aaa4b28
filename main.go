// SPDX-License-Identifier: MPL-2.0

// Command next-to-firebase deploys a serverless Next.js build to Firebase.
package main

import cmd "github.com/LowieHuyghe/next-to-firebase/cmd/nexttofirebase"

func main() {
	cmd.Execute()
}
