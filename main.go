// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "github.com/skyhook-io/create-deployment-matrix/cmd/create-deployment-matrix"
)

func main() {
	cmd.Execute()
}
